package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

func NewRouter(handler *Handler, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	log = logger.OrNop(log).Named("http")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(requestLogger(log))

	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/uploads", handler.Upload)
		v1.POST("/generate", handler.Generate)
		v1.GET("/jobs/:jobId", handler.GetJob)
		v1.GET("/status/:jobId", handler.Status)
		v1.GET("/download/:id", handler.Download)
		v1.GET("/themes", handler.Themes)
	}

	return r
}

// requestIDMiddleware reuses the caller's X-Request-ID or mints one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Debug("request started",
			"request_id", requestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Next()
		log.Info("request completed",
			"request_id", requestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
