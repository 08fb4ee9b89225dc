// Package controllers translates HTTP requests into service calls and
// service results into JSON envelopes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

// fail maps a service error onto the HTTP error envelope.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrVariantNotFound):
		response.NotFound(w, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w)

	case errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrHasChildren),
		errors.Is(err, services.ErrCategoryCycle),
		errors.Is(err, services.ErrTooManyAddresses),
		errors.Is(err, services.ErrInvalidOTP):
		response.Error(w, http.StatusBadRequest, err.Error())

	default:
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// currentUserID pulls the authenticated user id from the request
// context. Routes behind the auth middleware always have it.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return "", false
	}
	return id, true
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(r *http.Request) bool {
	roles, ok := middleware.RolesFromCtx(r.Context())
	if !ok {
		return false
	}
	for _, role := range roles {
		if role == string(models.RoleAdmin) {
			return true
		}
	}
	return false
}
