package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"murim-academy/internal/domain"
	"murim-academy/internal/service"
)

// respondError maps err to a status and writes the error envelope. Unexpected
// errors are logged and answered with a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := classifyError(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).
			WithField("request_id", c.GetString(requestIDKey)).
			WithField("route", c.FullPath()).
			Error("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func classifyError(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "permission denied"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, domain.ErrNoRowsAffected):
		return http.StatusInternalServerError, "no record was changed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
