package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const banner = "API de Produtos e Categorias com Minimal APIs!"

const requestIDHeader = "X-Request-ID"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterDeps struct {
	Categories *CategoryHandler
	Products   *ProductHandler
	DB         Pinger
	Log        *logrus.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	setupBinding()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Log))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	})
	router.GET("/docs", serveDocsPage)
	router.GET("/health", healthHandler(deps.DB, deps.Log))

	deps.Categories.RegisterRoutes(router)
	deps.Products.RegisterRoutes(router)
	return router
}

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request completed")
			return
		}
		entry.Info("Request completed")
	}
}

func healthHandler(db Pinger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger.Warnf("Health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
