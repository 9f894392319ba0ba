package services

import (
	"errors"
	"net/http"

	"agency-backend/internal/remote"
)

var (
	ErrInvalid  = errors.New("invalid request")
	ErrNotFound = errors.New("not found")
)

// ignoreNotFound drops upstream 404s on delete: the entity being already
// gone server-side still means the local copy should go.
func ignoreNotFound(err error) error {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil
	}
	return err
}
