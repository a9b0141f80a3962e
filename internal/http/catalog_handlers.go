package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"murim-academy/internal/metrics"
	"murim-academy/internal/service"
)

const maxImageSize = 5 << 20

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(products))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, err := h.products.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, "id", id)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req productUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.products.Update(c.Request.Context(), id, req.toPatch()); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) listSchedules(c *gin.Context) {
	schedules, err := h.schedules.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(schedules))
}

func (h *Handler) getSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := h.schedules.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) createSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, err := h.schedules.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, "id", id)
}

func (h *Handler) updateSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req scheduleUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.schedules.Update(c.Request.Context(), id, req.toPatch()); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) deleteSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.schedules.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) listTrainers(c *gin.Context) {
	trainers, err := h.trainers.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(trainers))
}

func (h *Handler) getTrainer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.trainers.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) createTrainer(c *gin.Context) {
	var req trainerRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, err := h.trainers.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	created(c, "id", id)
}

func (h *Handler) updateTrainer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req trainerUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.trainers.Update(c.Request.Context(), id, req.toPatch()); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

func (h *Handler) deleteTrainer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.trainers.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c)
}

// uploadImage takes a multipart "imagem" file and makes it the picture of the addressed record.
func (h *Handler) uploadImage(entity string, target service.ImageTarget) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if h.images == nil {
			h.respondError(c, service.ErrStorageUnavailable)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize+(1<<20))
		fh, err := c.FormFile("imagem")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				badRequest(c, "imagem must be at most 5 MB")
				return
			}
			badRequest(c, "imagem file is required")
			return
		}
		if fh.Size > maxImageSize {
			badRequest(c, "imagem must be at most 5 MB")
			return
		}

		f, err := fh.Open()
		if err != nil {
			h.respondError(c, err)
			return
		}
		defer f.Close()

		// trust the bytes, not the client's Content-Type
		head := make([]byte, 512)
		n, err := io.ReadFull(f, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			h.respondError(c, err)
			return
		}
		head = head[:n]
		contentType := http.DetectContentType(head)

		url, err := h.images.Replace(c.Request.Context(), entity, id, target,
			io.MultiReader(bytes.NewReader(head), f), contentType)
		if err != nil {
			h.respondError(c, err)
			return
		}
		metrics.ImagesUploadedTotal.WithLabelValues(entity).Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "imagem": url})
	}
}
