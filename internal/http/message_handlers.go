package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"murim-academy/internal/metrics"
)

func (h *Handler) listMessages(c *gin.Context) {
	msgs, err := h.messages.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(msgs))
}

// createMessage accepts the public contact form.
func (h *Handler) createMessage(c *gin.Context) {
	var req messageRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.messages.Submit(c.Request.Context(), req.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	metrics.ContactMessagesTotal.Inc()
	created(c, "id", id)
}

func (h *Handler) countUnreadMessages(c *gin.Context) {
	count, err := h.messages.CountUnread(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) getMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	msg, err := h.messages.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) updateMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req messageUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.messages.Update(c.Request.Context(), id, req.toPatch()); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) markMessageRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.messages.MarkRead(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) deleteMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.messages.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}
