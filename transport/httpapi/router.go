package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-contacts/auth"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/service"
)

// DefaultMaxUploadBytes bounds multipart bodies before the photo store
// applies its own size check.
const DefaultMaxUploadBytes = 6 << 20

// Authenticator logs callers in and resolves bearer tokens.
type Authenticator interface {
	Login(ctx context.Context, input auth.LoginInput) (types.Session, error)
	Authenticate(ctx context.Context, token string) (types.ActorRef, error)
}

// Config wires the HTTP transport.
type Config struct {
	Service        *service.Service
	Authenticator  Authenticator
	Logger         types.Logger
	Clock          types.Clock
	AllowOrigins   []string
	MaxUploadBytes int64
	Mode           string
}

type handlers struct {
	svc       *service.Service
	auth      Authenticator
	logger    types.Logger
	clock     types.Clock
	maxUpload int64
}

// NewRouter builds the gin engine serving the contacts API.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.Service == nil {
		return nil, types.ErrServiceNotReady
	}
	if cfg.Authenticator == nil {
		return nil, errors.New("httpapi: authenticator required")
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	h := &handlers{
		svc:       cfg.Service,
		auth:      cfg.Authenticator,
		logger:    cfg.Logger,
		clock:     cfg.Clock,
		maxUpload: cfg.MaxUploadBytes,
	}
	if h.logger == nil {
		h.logger = types.NopLogger{}
	}
	if h.clock == nil {
		h.clock = types.SystemClock{}
	}
	if h.maxUpload <= 0 {
		h.maxUpload = DefaultMaxUploadBytes
	}

	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))
	r.NoRoute(func(c *gin.Context) {
		h.fail(c, types.NotFound("route not found"))
	})

	r.GET("/healthz", h.health)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/profile", h.requireAuth(), h.profile)
	}

	contacts := r.Group("/contacts", h.requireAuth())
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/admin/all", h.listAllContacts)
		contacts.GET("/export/csv", h.exportContacts)
		contacts.GET("/:id", h.getContact)
		contacts.PATCH("/:id", h.updateContact)
		contacts.PUT("/:id/photo", h.uploadContactPhoto)
		contacts.DELETE("/:id", h.deleteContact)
	}

	users := r.Group("/users", h.requireAuth())
	{
		users.POST("", h.createAccount)
		users.GET("", h.listAccounts)
		users.GET("/:id", h.getAccount)
		users.DELETE("/:id", h.deleteAccount)
	}
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func (h *handlers) health(c *gin.Context) {
	if err := h.svc.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Error("go-contacts: health check failed", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorEnvelope{
			Success:    false,
			Message:    "Service unavailable",
			Error:      types.TextCodeUnexpected,
			StatusCode: http.StatusServiceUnavailable,
			Timestamp:  h.stamp(),
			Path:       c.Request.URL.Path,
		})
		return
	}
	h.ok(c, http.StatusOK, "OK", gin.H{"status": "ok"})
}
