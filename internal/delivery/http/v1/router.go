package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/redis"
)

type RouterDeps struct {
	InterviewUC domain.InterviewUsecase
	UserUC      domain.UserUsecase
	StatsUC     domain.StatsUsecase
	Cache       *goredis.Client // nil when caching is disabled
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		health := gin.H{"cache": "disabled"}
		if deps.Cache != nil {
			if err := redis.HealthCheck(c.Request.Context(), deps.Cache); err != nil {
				health["cache"] = "unavailable"
			} else {
				health["cache"] = "ok"
			}
		}
		response.Success(c, http.StatusOK, "System operational", health)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewInterviewHandler(protected, deps.InterviewUC)
		NewUserHandler(protected, deps.UserUC, deps.StatsUC)
	}

	return r
}
