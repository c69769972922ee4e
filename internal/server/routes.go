package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Init swagger doc
	_ "github.com/Mitrevichin/Job-Tracking-App/docs"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	jobcontroller "github.com/Mitrevichin/Job-Tracking-App/internal/controller/job"
	usercontroller "github.com/Mitrevichin/Job-Tracking-App/internal/controller/user"
	"github.com/Mitrevichin/Job-Tracking-App/internal/middleware"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// MaxJSONBody bounds the body of every JSON endpoint
const MaxJSONBody = 64 << 10

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(
		middleware.Recovery(s.Logger),
		middleware.RequestLogger(s.Logger),
		middleware.SafeHeader(s.Config.Auth.SecureCookie),
	)
	// cors refuses a config without origins, same origin clients need none.
	if len(s.Config.Server.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.Config.Server.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
			AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	lAuth := auth.NewHandler(s.Users, s.Tokens, s.Blacklist, s.Config.Auth.SecureCookie, s.Logger)
	jobController := jobcontroller.NewJobController(s.JobService)
	userController := usercontroller.NewUserController(s.Users, s.Jobs, s.Avatars, s.Logger)

	rateLimit := middleware.RateLimiterMiddleware(s.Config.Server.RateLimitPerSecond)
	authenticated := middleware.NewChain(middleware.RequireAuth(s.Tokens, s.Blacklist), rateLimit)
	jsonMutation := middleware.NewChain(middleware.RejectReadOnly(), middleware.SizeLimit(MaxJSONBody))

	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth", rateLimit, middleware.SizeLimit(MaxJSONBody))
		{
			authRoute.POST("register", lAuth.Register)
			authRoute.POST("login", lAuth.Login)
			authRoute.GET("logout", lAuth.Logout)
		}

		jobRoute := v1.Group("/jobs", authenticated...)
		jobController.RegisterRoutes(jobRoute, jsonMutation)

		userRoute := v1.Group("/users", authenticated...)
		userController.RegisterRoutes(userRoute,
			middleware.NewChain(middleware.CheckRole(model.RoleAdmin)),
			middleware.NewChain(middleware.RejectReadOnly(), middleware.SizeLimit(usercontroller.MaxAvatarSize)),
		)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(func(c *gin.Context) {
		utilities.AbortWithError(c, apperror.NotFound("Not found"))
	})

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	if s.Health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "up"})
		return
	}
	stats := s.Health.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
