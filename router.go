package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/pytechtest/people-api/docs"
	"github.com/pytechtest/people-api/internal/middleware"
	"github.com/pytechtest/people-api/internal/person"
	"github.com/pytechtest/people-api/internal/utils"
)

// NewRouter wires every route and middleware onto a new Gin engine.
func NewRouter(cfg *utils.Config, db *gorm.DB, logger *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(logger),
		cors.New(corsConfig(cfg.Server)),
		middleware.RateLimit(cfg.Server.RateLimit, logger),
	)

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//
	// SWAGGER (protected by Basic Auth when admin credentials are set)
	//
	swaggerGroup := api.Group("/docs")
	if cfg.Admin.Enabled() {
		swaggerGroup.Use(gin.BasicAuth(gin.Accounts{
			cfg.Admin.Username: cfg.Admin.Password,
		}))
	}
	swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	//
	// WIRE UP SERVICES
	//
	personRepo := person.NewPersonRepository(db)
	personService := person.NewPersonService(personRepo, logger)
	person.NewPersonHandler(api, personService, logger)

	return router, nil
}

func corsConfig(cfg *utils.ServerConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Location", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}
