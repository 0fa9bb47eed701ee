package handlers

import (
	"errors"
	"log"
	"net/http"

	"copiadora_xpto/internal/adapter/http/middleware"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errUnauthorized   = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)
)

// mapUseCaseError translates a domain error kind into the HTTP error body.
// Internal causes are logged and never returned to the caller.
func mapUseCaseError(err error) *pkg.AppError {
	var domainErr *entities.DomainError
	msg := "An internal error occurred"
	if errors.As(err, &domainErr) {
		msg = err.Error()
	}

	switch {
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", msg, err, http.StatusNotFound)
	case errors.Is(err, entities.ErrForbidden):
		return pkg.NewDomainError("FORBIDDEN", msg, err, http.StatusForbidden)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", msg, err, http.StatusConflict)
	case errors.Is(err, entities.ErrValidation):
		return pkg.NewDomainError("VALIDATION_ERROR", msg, err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrConflict):
		return pkg.NewDomainError("CONFLICT", msg, err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func respondError(c *gin.Context, err error) {
	appErr := mapUseCaseError(err)
	if appErr.HTTPStatus == http.StatusInternalServerError {
		log.Printf("[http][handler] internal error path=%s err=%v", c.FullPath(), err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func respondAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// actorOrAbort returns the authenticated actor or writes 401.
func actorOrAbort(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondAppError(c, errUnauthorized)
	}
	return actor, ok
}
