package routes

import (
	"net/http"
	"yacht-tracker/internal/config"
	"yacht-tracker/internal/delivery/http/handler"
	"yacht-tracker/internal/logger"
	"yacht-tracker/internal/middleware"
	"yacht-tracker/internal/tracking"
	"yacht-tracker/internal/usecase/assignment"
	"yacht-tracker/internal/usecase/cabin"
	appErrors "yacht-tracker/pkg/errors"
	"yacht-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the wired services the HTTP surface exposes.
type Dependencies struct {
	Poller      *tracking.Poller
	Assignments *assignment.Service
	Cabins      *cabin.Service
	RateLimiter *middleware.RateLimiter
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	// StoreHealth pings the assignment store; nil means always healthy.
	StoreHealth func() error
}

func SetupRoutes(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order: recovery, request ID, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	if deps.RateLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(deps.RateLimiter))
	}

	router.GET("/health", func(c *gin.Context) {
		status := deps.Poller.Status()
		if deps.StoreHealth != nil {
			if err := deps.StoreHealth(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"message":  "Assignment store unreachable",
					"tracking": status,
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"message":  "Service is running",
			"tracking": status,
		})
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	trackingHandler := handler.NewTrackingHandler(deps.Poller)
	cabinHandler := handler.NewCabinHandler(deps.Cabins, deps.Assignments)

	v1 := router.Group("/api/v1")
	{
		trackingHandler.RegisterRoutes(v1)
		cabinHandler.RegisterRoutes(v1)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.ErrorResponseWithCode(c, http.StatusNotFound, appErrors.CodeNotFound, "Route not found")
	})

	logger.Info("All routes initialized")
	return router
}
