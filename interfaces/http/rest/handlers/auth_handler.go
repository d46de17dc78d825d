package handlers

import (
	"errors"
	"io"
	"net/http"

	appauth "itemstore-backend/application/auth"
	apperrors "itemstore-backend/pkg/errors"
	"itemstore-backend/pkg/response"

	"go.uber.org/zap"
)

// AuthHandler handles sign-up, sign-in, and current-user requests
type AuthHandler struct {
	service      *appauth.Service
	writer       *response.Writer
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *appauth.Service, writer *response.Writer, maxBodyBytes int64, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		writer:       writer,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in appauth.SignUpInput
	if err := h.decode(r, &in); err != nil {
		h.writer.Error(w, err)
		return
	}

	result, err := h.service.SignUp(r.Context(), in)
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusCreated, result, "User created successfully")
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in appauth.SignInInput
	if err := h.decode(r, &in); err != nil {
		h.writer.Error(w, err)
		return
	}

	tokens, err := h.service.SignIn(r.Context(), in)
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusOK, tokens, "Success")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := h.service.CurrentUser(r.Context())
	if err != nil {
		h.writer.Error(w, err)
		return
	}

	h.writer.Success(w, http.StatusOK, principal, "Success")
}

func (h *AuthHandler) decode(r *http.Request, v interface{}) error {
	if err := response.ParseJSONBody(r, v, h.maxBodyBytes); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("Request body is required")
		}
		return apperrors.NewValidationError("Invalid request body: " + err.Error())
	}
	return nil
}
