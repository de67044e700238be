package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type itemDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toItemDTO(i *models.Item) itemDTO {
	return itemDTO{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

type itemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := s.items.List(r.Context(), user.ID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	// an empty list serializes as [], not null
	dtos := make([]itemDTO, 0, len(items))
	for _, i := range items {
		dtos = append(dtos, toItemDTO(i))
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.items.Create(r.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemDTO(item))
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	item, err := s.items.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemDTO(item))
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.items.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.Title, req.Description)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemDTO(item))
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := s.items.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		s.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Item deleted successfully"})
}

func (s *HTTPServer) handleCreateAttachmentURL(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	key, url, err := s.items.CreateAttachmentUploadURL(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"key": key, "url": url})
}

func (s *HTTPServer) handleGetAttachmentURL(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	url, err := s.items.GetAttachmentDownloadURL(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"url": url})
}
