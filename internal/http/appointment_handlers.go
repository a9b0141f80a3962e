package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listAppointments(c *gin.Context) {
	appts, err := h.appointments.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(appts))
}

func (h *Handler) listUserAppointments(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	appts, err := h.appointments.ListForUser(c.Request.Context(), identityFrom(c), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(appts))
}

func (h *Handler) getAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	appt, err := h.appointments.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) createAppointment(c *gin.Context) {
	var req appointmentRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, err := h.appointments.Book(c.Request.Context(), identityFrom(c), req.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, "id", id)
}

func (h *Handler) updateAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req appointmentUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.appointments.Update(c.Request.Context(), id, req.toPatch()); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) deleteAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.appointments.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}
