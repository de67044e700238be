package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

func TestBearerAuth_MissingHeader(t *testing.T) {
	h := newTestServer(t, &fakeUserProvider{}, &fakeItemProvider{items: map[string]*models.Item{}})

	rr := doRequest(t, h, http.MethodGet, "/api/items", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "Authentication required" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestBearerAuth_NotBearer(t *testing.T) {
	h := newTestServer(t, &fakeUserProvider{}, &fakeItemProvider{items: map[string]*models.Item{}})

	rr := doRequest(t, h, http.MethodGet, "/api/items", "Basic abc", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	h := newTestServer(t, &fakeUserProvider{}, &fakeItemProvider{items: map[string]*models.Item{}})

	rr := doRequest(t, h, http.MethodGet, "/api/items", "Bearer not.a.token", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "Invalid or expired token" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestBearerAuth_ExpiredToken(t *testing.T) {
	h := newTestServer(t, &fakeUserProvider{}, &fakeItemProvider{items: map[string]*models.Item{}})

	tok, err := auth.GenerateToken("u1", []byte(testSecret), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rr := doRequest(t, h, http.MethodGet, "/api/items", "Bearer "+tok, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestBearerAuth_UnknownUser(t *testing.T) {
	// token is valid but the user no longer exists
	h := newTestServer(t, &fakeUserProvider{users: map[string]*models.User{}}, &fakeItemProvider{items: map[string]*models.Item{}})

	rr := doRequest(t, h, http.MethodGet, "/api/items", bearerToken(t, "u-gone"), "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestBearerAuth_ValidToken(t *testing.T) {
	users := &fakeUserProvider{users: map[string]*models.User{
		"u1": {ID: "u1", Name: "Alice", Email: "alice@example.com"},
	}}
	h := newTestServer(t, users, &fakeItemProvider{items: map[string]*models.Item{}})

	rr := doRequest(t, h, http.MethodGet, "/api/auth/me", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	// the profile comes back as a bare object
	body := decodeBody(t, rr)
	if body["id"] != "u1" || body["email"] != "alice@example.com" {
		t.Fatalf("unexpected user %v", body)
	}
}

func TestRecoverer(t *testing.T) {
	s := &HTTPServer{logger: testLogger()}
	panicking := s.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := doRequest(t, panicking, http.MethodGet, "/panic", "", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "Server error" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}
