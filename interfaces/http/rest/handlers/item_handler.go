package handlers

import (
	"errors"
	"io"
	"net/http"

	"itemstore-backend/application/items"
	pkgauth "itemstore-backend/pkg/auth"
	apperrors "itemstore-backend/pkg/errors"
	"itemstore-backend/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	service      *items.Service
	writer       *response.Writer
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(service *items.Service, writer *response.Writer, maxBodyBytes int64, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		service:      service,
		writer:       writer,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Create handles POST /items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := pkgauth.GetPrincipal(r.Context())
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	var in items.CreateInput
	if err := h.decode(r, &in); err != nil {
		h.writer.Error(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), principal.UserID, in)
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusCreated, created, "Item created successfully")
}

// Get handles GET /items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := pkgauth.GetPrincipal(r.Context())
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	it, err := h.service.Get(r.Context(), principal.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusOK, it, "Success")
}

// List handles GET /items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, err := pkgauth.GetPrincipal(r.Context())
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	list, err := h.service.List(r.Context(), principal.UserID)
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusOK, list, "Success")
}

// Update handles PUT /items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := pkgauth.GetPrincipal(r.Context())
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	var in items.UpdateInput
	if err := h.decode(r, &in); err != nil {
		h.writer.Error(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), principal.UserID, chi.URLParam(r, "id"), in)
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusOK, updated, "Item updated successfully")
}

// Delete handles DELETE /items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := pkgauth.GetPrincipal(r.Context())
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	result, err := h.service.Delete(r.Context(), principal.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusOK, result, "Item deleted successfully")
}

// decode parses a JSON body fail-closed: unknown fields, mistyped fields,
// and missing bodies are all validation errors.
func (h *ItemHandler) decode(r *http.Request, v interface{}) error {
	if err := response.ParseJSONBody(r, v, h.maxBodyBytes); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("Request body is required")
		}
		return apperrors.NewValidationError("Invalid request body: " + err.Error())
	}
	return nil
}
