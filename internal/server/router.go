package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"account-portal/internal/cache"
	"account-portal/internal/config"
	"account-portal/internal/controllers"
	"account-portal/internal/middleware"
	"account-portal/internal/repository"
	"account-portal/internal/service"
	"account-portal/internal/session"
	"account-portal/internal/views"
)

// NewRouter wires repositories, services and controllers into a gin engine.
// ctx bounds the background janitors of the rate limiter.
func NewRouter(ctx context.Context, cfg *config.Config, log *zap.Logger, db *sqlx.DB, cacheClient cache.Cache) (*gin.Engine, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		log.Warn("SESSION_SECRET not set, using a random key; sessions end on restart")
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, service.NewPasswordHasher(cfg.BcryptCost))
	throttle := service.NewLoginThrottle(cacheClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, throttle, cfg.LoginView, cfg.DashboardView)
	dashboardController := controllers.NewDashboardController(cfg.LoginView)

	authRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	if cfg.CORSAllowedOrigins != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
		corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
		router.Use(cors.New(corsConfig))
	}

	router.Use(session.Middleware(session.Options{
		Secret: secret,
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.GinMode == gin.ReleaseMode,
	}))
	router.SetHTMLTemplate(views.Templates())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	static := views.Static()
	router.StaticFileFS("/login.html", "login.html", static)
	router.StaticFileFS("/create_account.html", "create_account.html", static)

	auth := router.Group("")
	auth.Use(authRateLimiter.LimitMiddleware())
	{
		// Every method reaches the handlers; non-POST is answered with no body.
		auth.Any("/create_account", authController.CreateAccount)
		auth.Any("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	router.GET("/dashboard.html", dashboardController.RequireLogin(), dashboardController.Show)

	return router, nil
}
