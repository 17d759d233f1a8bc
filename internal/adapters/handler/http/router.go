package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterDependencies struct {
	AuthHandler    *AuthHandler
	TrackerHandler *TrackerHandler
	HabitHandler   *HabitHandler
	StatsHandler   *StatsHandler
	Tokens         middleware.TokenValidator
	DB             Pinger
	Redis          *redis.Client
	Logger         *zap.Logger
	RateLimit      int
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, time.Minute, logger))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body := gin.H{
			"status": "ok",
			"uptime": time.Since(deps.StartTime).String(),
		}
		statusCode := http.StatusOK

		if deps.DB != nil {
			body["database"] = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				body["database"] = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}
		if deps.Redis != nil {
			body["redis"] = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				body["redis"] = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}
		if statusCode != http.StatusOK {
			body["status"] = "degraded"
		}

		c.JSON(statusCode, body)
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		deps.TrackerHandler.RegisterRoutes(protected)
		deps.HabitHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
	}

	return router
}
