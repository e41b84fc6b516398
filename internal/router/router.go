package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"runcoach/backend/internal/handler"
	"runcoach/backend/internal/middleware"
	"runcoach/backend/internal/service"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Plan    *handler.PlanHandler
	Athlete *handler.AthleteHandler
}

type Options struct {
	CORSOrigins    []string
	MetricsEnabled bool
}

func New(authService *service.AuthService, handlers Handlers, opts Options) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(opts.CORSOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", handlers.Auth.Register)
	auth.POST("/login", handlers.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))
	protected.GET("/auth/me", handlers.Auth.Me)

	plan := protected.Group("/plan")
	plan.POST("/week", handlers.Plan.Week)
	plan.POST("/twelve-week", handlers.Plan.TwelveWeek)

	protected.GET("/goal", handlers.Athlete.GetGoal)
	protected.PUT("/goal", handlers.Athlete.PutGoal)
	protected.GET("/fitness-assessment", handlers.Athlete.GetAssessment)
	protected.PUT("/fitness-assessment", handlers.Athlete.PutAssessment)
	protected.GET("/runs", handlers.Athlete.ListRuns)
	protected.POST("/runs", handlers.Athlete.CreateRun)
	protected.POST("/runs/import", handlers.Athlete.ImportRuns)
	protected.GET("/athlete/status", handlers.Athlete.Status)

	return engine
}
