package router

import (
	"fmt"
	"strings"

	"github.com/aqro/aqro/internal/cache"
	"github.com/aqro/aqro/internal/config"
	adminhandlers "github.com/aqro/aqro/internal/http/handlers/admin"
	publichandlers "github.com/aqro/aqro/internal/http/handlers/public"
	staffhandlers "github.com/aqro/aqro/internal/http/handlers/staff"
	"github.com/aqro/aqro/internal/logger"
	"github.com/aqro/aqro/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with the full route map.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	staffHandler := staffhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "aqro"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			// customer surface
			authorized.POST("/containers/register", publicHandler.RegisterContainer)
			authorized.GET("/containers/mine", publicHandler.MyContainers)
			authorized.PATCH("/containers/:id/status", publicHandler.UpdateContainerStatus)
			authorized.GET("/me", publicHandler.Me)
			authorized.GET("/me/stats", publicHandler.MyStats)
			authorized.GET("/me/activities", publicHandler.MyActivities)
			authorized.GET("/me/rebates", publicHandler.MyRebates)

			// staff surface
			staff := authorized.Group("/staff")
			{
				staff.GET("/containers/scan", staffHandler.ScanContainer)
				staff.POST("/containers/:id/rebate", staffHandler.ProcessRebate)
				staff.POST("/containers/:id/return", staffHandler.ProcessReturn)
				staff.GET("/rebates/totals", staffHandler.MyRebateTotals)
				staff.GET("/restaurants/:id/stats", staffHandler.RestaurantStats)
				staff.GET("/restaurants/:id/containers", staffHandler.RestaurantContainers)
				staff.GET("/restaurants/:id/activities", staffHandler.RestaurantActivities)
				staff.GET("/restaurants/:id/rebates/totals", staffHandler.RestaurantRebateTotals)
			}

			// admin surface
			admin := authorized.Group("/admin")
			{
				admin.POST("/containers", adminHandler.GenerateContainer)
				admin.GET("/containers", adminHandler.ListContainers)
				admin.GET("/containers/:id", adminHandler.GetContainer)
				admin.GET("/containers/:id/qr.png", adminHandler.ContainerQRPNG)
				admin.GET("/containers/:id/activities", adminHandler.ContainerActivities)

				admin.GET("/container-types", adminHandler.ListContainerTypes)
				admin.POST("/container-types", adminHandler.CreateContainerType)
				admin.GET("/container-types/:id", adminHandler.GetContainerType)
				admin.PUT("/container-types/:id", adminHandler.UpdateContainerType)
				admin.DELETE("/container-types/:id", adminHandler.DeleteContainerType)
				admin.GET("/container-types/:id/rebate-mappings", adminHandler.ContainerTypeRebateMappings)

				admin.GET("/restaurants", adminHandler.ListRestaurants)
				admin.POST("/restaurants", adminHandler.CreateRestaurant)
				admin.GET("/restaurants/:id", adminHandler.GetRestaurant)
				admin.PUT("/restaurants/:id", adminHandler.UpdateRestaurant)
				admin.DELETE("/restaurants/:id", adminHandler.DeleteRestaurant)
				admin.PUT("/restaurants/:id/rebate-mappings", adminHandler.UpsertRebateMappings)
				admin.GET("/restaurants/:id/rebate-mappings", adminHandler.RestaurantRebateMappings)
				admin.DELETE("/restaurants/:id/rebate-mappings/:typeId", adminHandler.DeleteRebateMapping)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
