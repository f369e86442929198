package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/heaths/gh-pinned/internal/models"
	"github.com/heaths/gh-pinned/internal/projects"
	"github.com/heaths/gh-pinned/internal/utils"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// Source returns the projects for username, or nil if none are available now.
type Source func(ctx context.Context, username string) ([]models.Project, error)

type Options struct {
	// Username is used when a request does not name a user.
	Username     string
	AllowOrigins []string
	Logger       logrus.FieldLogger
}

func New(source Source, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	if opts.Logger != nil {
		router.Use(accessLog(opts.Logger))
	}
	router.Use(cors.New(corsConfig(opts.AllowOrigins)))

	h := &projectsHandler{
		source:   source,
		username: opts.Username,
	}

	router.GET("/healthz", health)

	api := router.Group("/api")
	{
		api.GET("/projects", h.list)
	}

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

type projectsHandler struct {
	source   Source
	username string
}

// list handles GET /api/projects?user=<login>
func (h *projectsHandler) list(c *gin.Context) {
	username := c.DefaultQuery("user", h.username)

	results, err := h.source(c.Request.Context(), username)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, projects.ErrInvalidUsername) {
			status = http.StatusBadRequest
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}

	if results == nil {
		c.JSON(http.StatusBadGateway, errorResponse{Error: "projects unavailable"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog(l logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"request_id": c.GetString("requestID"),
		}).Info("request")
	}
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			RequestIDHeader,
		},
		MaxAge: 12 * time.Hour,
	}

	if len(origins) == 0 || utils.StringSliceContains("*", origins) {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}

	return config
}
