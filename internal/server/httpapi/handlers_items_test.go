package httpapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

func itemsFixture() (*fakeUserProvider, *fakeItemProvider) {
	users := &fakeUserProvider{users: map[string]*models.User{
		"u1": {ID: "u1", Name: "Alice", Email: "alice@example.com"},
		"u2": {ID: "u2", Name: "Bob", Email: "bob@example.com"},
	}}
	items := &fakeItemProvider{items: map[string]*models.Item{
		"i1/u1": {ID: "i1", UserID: "u1", Title: "laptop", Description: "work laptop"},
		"i2/u2": {ID: "i2", UserID: "u2", Title: "camera", Description: "bob's camera", AttachmentKey: "users/k2"},
	}}
	return users, items
}

func TestListItems(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodGet, "/api/items", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	// the body is a bare array, not an envelope
	list := decodeArray(t, rr)
	if len(list) != 1 {
		t.Fatalf("expected 1 item for u1, got %d", len(list))
	}
	if list[0]["id"] != "i1" || list[0]["title"] != "laptop" {
		t.Fatalf("unexpected items %v", list)
	}
}

func TestListItems_EmptyIsArray(t *testing.T) {
	users := &fakeUserProvider{users: map[string]*models.User{
		"u3": {ID: "u3", Name: "Carol", Email: "carol@example.com"},
	}}
	h := newTestServer(t, users, &fakeItemProvider{items: map[string]*models.Item{}})

	rr := doRequest(t, h, http.MethodGet, "/api/items", bearerToken(t, "u3"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("empty list must serialize as a bare [], got %s", got)
	}
}

func TestCreateItem(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodPost, "/api/items", bearerToken(t, "u1"),
		`{"title":"keys","description":"spare house keys"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["title"] != "keys" {
		t.Fatalf("unexpected item %v", body)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodPost, "/api/items", bearerToken(t, "u1"),
		`{"title":"","description":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["message"] != "Title and description are required" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestGetItem(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodGet, "/api/items/i1", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["id"] != "i1" {
		t.Fatalf("unexpected item %v", body)
	}
}

func TestGetItem_NotOwned(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	// i2 belongs to u2; u1 must get the same 404 as for a missing id
	for _, id := range []string{"i2", "does-not-exist"} {
		rr := doRequest(t, h, http.MethodGet, "/api/items/"+id, bearerToken(t, "u1"), "")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("id=%s: expected 404, got %d", id, rr.Code)
		}
		if body := decodeBody(t, rr); body["message"] != "Item not found" {
			t.Fatalf("id=%s: unexpected message %q", id, body["message"])
		}
	}
}

func TestUpdateItem(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodPut, "/api/items/i1", bearerToken(t, "u1"),
		`{"title":"laptop","description":"personal laptop"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["description"] != "personal laptop" {
		t.Fatalf("unexpected item %v", body)
	}
}

func TestUpdateItem_NotOwned(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodPut, "/api/items/i2", bearerToken(t, "u1"),
		`{"title":"camera","description":"mine now"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteItem(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodDelete, "/api/items/i1", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	if body := decodeBody(t, rr); body["message"] != "Item deleted successfully" {
		t.Fatalf("unexpected message %q", body["message"])
	}

	rr = doRequest(t, h, http.MethodGet, "/api/items/i1", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestDeleteItem_NotOwned(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodDelete, "/api/items/i2", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if _, stillThere := items.items["i2/u2"]; !stillThere {
		t.Fatal("foreign item must not be deleted")
	}
}

func TestCreateAttachmentURL(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodPost, "/api/items/i1/attachment", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["key"] == "" || body["url"] == "" {
		t.Fatalf("expected key and url, got %v", body)
	}
}

func TestCreateAttachmentURL_NotOwned(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodPost, "/api/items/i2/attachment", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestGetAttachmentURL(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodGet, "/api/items/i2/attachment", bearerToken(t, "u2"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	if body := decodeBody(t, rr); body["url"] == "" || body["url"] == nil {
		t.Fatalf("expected url, got %v", body)
	}
}

func TestGetAttachmentURL_NoAttachment(t *testing.T) {
	users, items := itemsFixture()
	h := newTestServer(t, users, items)

	rr := doRequest(t, h, http.MethodGet, "/api/items/i1/attachment", bearerToken(t, "u1"), "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
