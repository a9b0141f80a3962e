package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"murim-academy/internal/auth"
	"murim-academy/internal/service"
)

// Pinger reports whether the database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies bundles what the handlers need. Limiter may be nil for a default one.
type Dependencies struct {
	Users        service.UserService
	Messages     service.MessageService
	Products     service.ProductService
	Schedules    service.ScheduleService
	Trainers     service.TrainerService
	Appointments service.AppointmentService
	Images       *service.ImageService
	Guard        *auth.Guard
	Limiter      *RateLimiter
	DB           Pinger
	Logger       logrus.FieldLogger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	messages     service.MessageService
	products     service.ProductService
	schedules    service.ScheduleService
	trainers     service.TrainerService
	appointments service.AppointmentService
	images       *service.ImageService
	guard        *auth.Guard
	limiter      *RateLimiter
	db           Pinger
	log          logrus.FieldLogger
}

func NewHandler(deps Dependencies) *Handler {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(RateLimiterConfig{})
	}
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		users:        deps.Users,
		messages:     deps.Messages,
		products:     deps.Products,
		schedules:    deps.Schedules,
		trainers:     deps.Trainers,
		appointments: deps.Appointments,
		images:       deps.Images,
		guard:        deps.Guard,
		limiter:      limiter,
		db:           deps.DB,
		log:          log,
	}
}

// NewRouter returns a gin engine that only honours X-Forwarded-For from the
// given proxies. An empty list makes ClientIP the socket peer.
func NewRouter(trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	return router, nil
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestIDMiddleware(), corsMiddleware(), loggingMiddleware(h.log), metricsMiddleware())

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := h.limiter.Middleware()
	authed := h.requireAuth()
	admin := h.requireAdmin()

	api := router.Group("/api")
	{
		api.POST("/register", limited, h.register)
		api.POST("/login", limited, h.login)
		api.POST("/logout", authed, h.logout)
		api.GET("/profile", authed, h.getProfile)
		api.PUT("/profile", authed, h.updateProfile)

		api.GET("/usuarios", admin, h.listUsers)
		api.GET("/usuarios/stats", admin, h.userStats)
		api.GET("/usuarios/:id", admin, h.getUser)
		api.PUT("/usuarios/:id", admin, h.updateUser)
		api.DELETE("/usuarios/:id", admin, h.deleteUser)

		api.GET("/mensagens", admin, h.listMessages)
		api.POST("/mensagens", limited, h.createMessage)
		api.GET("/mensagens/unread/count", admin, h.countUnreadMessages)
		api.GET("/mensagens/:id", admin, h.getMessage)
		api.PUT("/mensagens/:id", admin, h.updateMessage)
		api.PATCH("/mensagens/:id/read", admin, h.markMessageRead)
		api.DELETE("/mensagens/:id", admin, h.deleteMessage)

		api.GET("/produtos", h.listProducts)
		api.GET("/produtos/:id", h.getProduct)
		api.POST("/produtos", admin, h.createProduct)
		api.PUT("/produtos/:id", admin, h.updateProduct)
		api.DELETE("/produtos/:id", admin, h.deleteProduct)
		api.POST("/produtos/:id/imagem", admin, h.uploadImage("produtos", h.products))

		api.GET("/horarios", h.listSchedules)
		api.GET("/horarios/:id", h.getSchedule)
		api.POST("/horarios", admin, h.createSchedule)
		api.PUT("/horarios/:id", admin, h.updateSchedule)
		api.DELETE("/horarios/:id", admin, h.deleteSchedule)

		api.GET("/trainers", h.listTrainers)
		api.GET("/trainers/:id", h.getTrainer)
		api.POST("/trainers", admin, h.createTrainer)
		api.PUT("/trainers/:id", admin, h.updateTrainer)
		api.DELETE("/trainers/:id", admin, h.deleteTrainer)
		api.POST("/trainers/:id/imagem", admin, h.uploadImage("trainers", h.trainers))

		api.GET("/agendamentos", admin, h.listAppointments)
		api.GET("/agendamentos/usuario/:userId", authed, h.listUserAppointments)
		api.GET("/agendamentos/:id", admin, h.getAppointment)
		api.POST("/agendamentos", authed, h.createAppointment)
		api.PUT("/agendamentos/:id", admin, h.updateAppointment)
		api.DELETE("/agendamentos/:id", admin, h.deleteAppointment)
	}
}

func (h *Handler) health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.log.WithError(err).Warn("health check: database unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+param)
		return 0, false
	}
	return id, true
}

func listResponse[T any](items []T) gin.H {
	if items == nil {
		items = []T{}
	}
	return gin.H{
		"hydra:member":     items,
		"hydra:totalItems": len(items),
	}
}

func created(c *gin.Context, key string, id int64) {
	c.JSON(http.StatusCreated, gin.H{"success": true, key: id})
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
