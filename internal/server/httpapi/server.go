// Package httpapi exposes the REST surface of the server: authentication
// routes, ownership-scoped item CRUD, and attachment URL minting.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// UserProvider is the authentication surface the HTTP layer needs.
// *services.UserService satisfies it; tests can provide a stub.
type UserProvider interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ItemProvider is the item surface the HTTP layer needs.
// *services.ItemService satisfies it; tests can provide a stub.
type ItemProvider interface {
	List(ctx context.Context, userID string) ([]*models.Item, error)
	Create(ctx context.Context, userID, title, description string) (*models.Item, error)
	Get(ctx context.Context, userID, id string) (*models.Item, error)
	Update(ctx context.Context, userID, id, title, description string) (*models.Item, error)
	Delete(ctx context.Context, userID, id string) error
	CreateAttachmentUploadURL(ctx context.Context, userID, itemID string) (string, string, error)
	GetAttachmentDownloadURL(ctx context.Context, userID, itemID string) (string, error)
}

type HTTPServer struct {
	address    string
	logger     logging.Logger
	users      UserProvider
	items      ItemProvider
	jwtSecret  []byte
	corsOrigin string
}

func NewHTTPServer(a string, l logging.Logger, us UserProvider, is ItemProvider, secretKey string, corsOrigin string) (*HTTPServer, error) {
	return &HTTPServer{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		items:      is,
		jwtSecret:  []byte(secretKey),
		corsOrigin: corsOrigin,
	}, nil
}

// Router assembles the chi router with CORS, panic recovery, and all routes.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	var origins []string
	for _, p := range strings.Split(s.corsOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(s.recoverer)

	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.bearerAuth)

		r.Get("/api/auth/me", s.handleMe)

		r.Get("/api/items", s.handleListItems)
		r.Post("/api/items", s.handleCreateItem)
		r.Get("/api/items/{id}", s.handleGetItem)
		r.Put("/api/items/{id}", s.handleUpdateItem)
		r.Delete("/api/items/{id}", s.handleDeleteItem)
		r.Post("/api/items/{id}/attachment", s.handleCreateAttachmentURL)
		r.Get("/api/items/{id}/attachment", s.handleGetAttachmentURL)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	notFound := func(w http.ResponseWriter, r *http.Request) {
		errorJSON(w, http.StatusNotFound, "Route not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
