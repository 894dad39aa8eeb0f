// Package api exposes the services over JSON/HTTP with gin.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"universo/internal/logging"
	"universo/internal/realtime"
	"universo/internal/service"
)

// Services groups everything the handlers call into.
type Services struct {
	Auth      *service.AuthService
	Tasks     *service.TaskService
	Comments  *service.CommentService
	Sectors   *service.SectorService
	Users     *service.UserService
	Meetings  *service.MeetingService
	Resources *service.ResourceService
	Reports   *service.ReportService
}

// Publisher receives change events after successful mutations.
type Publisher interface {
	Publish(realtime.Event)
}

// Options configures the router. Hub and Ping are optional.
type Options struct {
	Logger         *log.Logger
	AllowedOrigins []string
	Hub            *realtime.Hub
	// Ping checks the store for /healthz.
	Ping func(context.Context) error
	Now  func() time.Time
}

type Handler struct {
	svc    Services
	events Publisher
	logger *log.Logger
	ping   func(context.Context) error
	now    func() time.Time
}

// NewRouter builds the HTTP handler with every route registered.
func NewRouter(svc Services, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := &Handler{
		svc:    svc,
		events: noopPublisher{},
		logger: opts.Logger,
		ping:   opts.Ping,
		now:    opts.Now,
	}
	if opts.Hub != nil {
		h.events = opts.Hub
	}

	r := gin.New()
	r.Use(logging.Requests(opts.Logger.WithPrefix("http")), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = opts.AllowedOrigins
	if len(opts.AllowedOrigins) == 0 || (len(opts.AllowedOrigins) == 1 && opts.AllowedOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "auth-token"}
	r.Use(cors.New(corsConfig))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ruta no encontrada"})
	})

	r.GET("/healthz", h.healthz)
	r.POST("/auth/login", h.login)

	api := r.Group("/")
	api.Use(h.requireAuth)
	{
		api.GET("/auth/me", h.me)

		api.GET("/tasks", h.listTasks)
		api.GET("/tasks/:id", h.getTask)
		api.POST("/tasks", h.createTask)
		api.PUT("/tasks/:id", h.updateTask)
		api.PATCH("/tasks/:id/status", h.setTaskStatus)
		api.DELETE("/tasks/:id", h.deleteTask)
		api.GET("/tasks/:id/comments", h.listTaskComments)

		api.GET("/comments", h.listComments)
		api.POST("/comments", h.createComment)

		api.GET("/sectors", h.listSectors)
		api.GET("/sectors/:id", h.getSector)
		api.POST("/sectors", h.requireAdmin, h.createSector)
		api.PUT("/sectors/:id", h.requireAdmin, h.updateSector)
		api.DELETE("/sectors/:id", h.requireAdmin, h.deleteSector)

		api.GET("/users", h.listUsers)
		api.GET("/users/:id", h.getUser)
		api.POST("/users", h.requireAdmin, h.createUser)
		api.PUT("/users/:id", h.requireAdmin, h.updateUser)
		api.DELETE("/users/:id", h.requireAdmin, h.deleteUser)

		api.GET("/meetings", h.listMeetings)
		api.GET("/meetings/:id", h.getMeeting)
		api.POST("/meetings", h.createMeeting)
		api.PUT("/meetings/:id", h.updateMeeting)
		api.DELETE("/meetings/:id", h.deleteMeeting)

		api.GET("/resources", h.listResources)
		api.POST("/resources", h.requireAdmin, h.createResource)
		api.PUT("/resources/:id", h.requireAdmin, h.updateResource)
		api.DELETE("/resources/:id", h.requireAdmin, h.deleteResource)

		api.GET("/reports/summary", h.reportSummary)

		if opts.Hub != nil {
			api.GET("/ws", opts.Hub.ServeWs)
		}
	}

	return r
}

func (h *Handler) healthz(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			h.logger.Error("health check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) publish(kind string, id uint) {
	h.events.Publish(realtime.Event{Type: kind, ID: id})
}

type noopPublisher struct{}

func (noopPublisher) Publish(realtime.Event) {}
