package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"murim-academy/internal/domain"
	"murim-academy/internal/metrics"
)

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.toNewUser())
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, "user_id", user.ID)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "invalid_credentials"
		}
		metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
		h.respondError(c, err)
		return
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, res)
}

// logout only acknowledges: tokens are stateless and expire on their own.
func (h *Handler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.users.UpdateProfile(c.Request.Context(), identityFrom(c).UserID, req.toPatch()); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}
