package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"agency-backend/internal/auth"
	"agency-backend/internal/metrics"
	"agency-backend/internal/middleware"
	"agency-backend/internal/models"
	"agency-backend/pkg/utils"
)

type AuthHandler struct {
	session *auth.Session
	// onLogin hydrates the aggregate after a successful login; nil in local
	// mode where the data is already on disk.
	onLogin func(ctx context.Context)
}

func NewAuthHandler(session *auth.Session, onLogin func(ctx context.Context)) *AuthHandler {
	return &AuthHandler{session: session, onLogin: onLogin}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	resp, err := h.session.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		writeServiceError(w, err)
		return
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if h.onLogin != nil {
		h.onLogin(r.Context())
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me echoes the identity behind the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, middleware.UserFrom(r.Context()))
}
