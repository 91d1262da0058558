package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sumanth789856/Get-Updated/policy"
	"github.com/Sumanth789856/Get-Updated/registry"
)

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// currentActor reads the identity attached by the auth middleware. The
// zero Actor (unauthenticated) is returned on public routes.
func currentActor(c echo.Context) policy.Actor {
	actor, _ := c.Get("actor").(policy.Actor)
	return actor
}

// registryError maps the registry error taxonomy onto HTTP statuses with
// the shared {"error": CODE} body shape.
func registryError(c echo.Context, err error) error {
	var verr *registry.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": verr.Fields})
	case errors.Is(err, registry.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "UNAUTHENTICATED"})
	case errors.Is(err, registry.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	case errors.Is(err, registry.ErrDenied):
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	case errors.Is(err, registry.ErrDuplicate):
		return c.JSON(http.StatusConflict, map[string]any{"error": "DUPLICATE"})
	case errors.Is(err, registry.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORAGE_ERROR"})
	}
}
