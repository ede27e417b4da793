package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"careerhub/internal/api/middleware"
	"careerhub/internal/auth"
	"careerhub/internal/config"
	"careerhub/internal/saved"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	authCfg config.AuthConfig,
) {
	jobHandler := NewJobHandler(db)
	experienceHandler := NewExperienceHandler(db)
	savedHandler := NewSavedHandler(saved.NewService(db))
	authHandler := NewAuthHandler(
		db, authService, redisClient, logger,
		authCfg.LoginRateLimitPerHour,
		authCfg.LoginLockThreshold,
		authCfg.LoginLockTTL(),
		authCfg.CookieDomain,
	)

	requireAuth := middleware.RequireAuth(authService, db)
	optionalAuth := middleware.OptionalAuth(authService, db)
	passwordGate := middleware.RequirePasswordChangeCompleted()

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", requireAuth, authHandler.Logout)
			authGroup.POST("/change-password", requireAuth, authHandler.ChangePassword)
		}

		jobGroup := v1.Group("/jobs")
		{
			jobGroup.GET("", optionalAuth, jobHandler.ListJobs)
			jobGroup.GET("/mine", requireAuth, passwordGate, jobHandler.MyJobs)
			jobGroup.GET("/:id", jobHandler.GetJob)
			jobGroup.POST("", requireAuth, passwordGate, jobHandler.CreateJob)
			jobGroup.PUT("/:id", requireAuth, passwordGate, jobHandler.UpdateJob)
			jobGroup.DELETE("/:id", requireAuth, passwordGate, jobHandler.DeleteJob)
		}

		experienceGroup := v1.Group("/experiences")
		{
			experienceGroup.GET("", optionalAuth, experienceHandler.ListExperiences)
			experienceGroup.GET("/mine", requireAuth, passwordGate, experienceHandler.MyExperiences)
			experienceGroup.GET("/:id", experienceHandler.GetExperience)
			experienceGroup.POST("", requireAuth, passwordGate, experienceHandler.CreateExperience)
			experienceGroup.PUT("/:id", requireAuth, passwordGate, experienceHandler.UpdateExperience)
			experienceGroup.DELETE("/:id", requireAuth, passwordGate, experienceHandler.DeleteExperience)
		}

		savedGroup := v1.Group("/saved")
		savedGroup.Use(requireAuth, passwordGate)
		{
			savedGroup.GET("/:kind", savedHandler.ListSaved)
			savedGroup.POST("/:kind/:id", savedHandler.Save)
			savedGroup.DELETE("/:kind/:id", savedHandler.Unsave)
			savedGroup.GET("/:kind/:id/check", savedHandler.CheckSaved)
		}
	}
}
