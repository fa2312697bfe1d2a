package handler

import (
	"errors"
	"net/http"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

// describeError maps core errors to an HTTP status and a user-facing advisory.
func describeError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return http.StatusBadRequest, "list name must not be empty"
	case errors.Is(err, domain.ErrInvalidRadius):
		return http.StatusBadRequest, "search radius must be positive"
	case errors.Is(err, domain.ErrNoListExists):
		return http.StatusConflict, "create a shopping list first"
	case errors.Is(err, domain.ErrListNotFound):
		return http.StatusNotFound, "shopping list not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "price alert not found"
	case errors.Is(err, domain.ErrLocationUnavailable):
		return http.StatusPreconditionFailed, "location unavailable, enable location services and try again"
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway, "error finding nearby stores, please try again later"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
