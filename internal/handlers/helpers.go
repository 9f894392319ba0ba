package handlers

import (
	"errors"
	"net/http"

	"agency-backend/internal/auth"
	"agency-backend/internal/remote"
	"agency-backend/internal/services"
	"agency-backend/pkg/utils"
)

// writeServiceError maps service and upstream errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, remote.ErrAuthRejected):
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		var apiErr *remote.APIError
		if errors.As(err, &apiErr) {
			utils.RespondError(w, http.StatusBadGateway, "upstream request failed")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
