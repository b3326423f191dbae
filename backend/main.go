package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"housing-manager/backend/internal/cache"
	"housing-manager/backend/internal/config"
	"housing-manager/backend/internal/database"
	"housing-manager/backend/internal/handlers"
	"housing-manager/backend/internal/middleware"
	"housing-manager/backend/internal/models"
	"housing-manager/backend/internal/monitoring"
	"housing-manager/backend/internal/repositories"
	"housing-manager/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Application holds all application dependencies and state
type Application struct {
	Config *config.Config
	Pool   *database.DatabasePool
	DB     *gorm.DB
	Cache  cache.Cache
	Redis  *redis.Client
	Router *gin.Engine
	Server *http.Server

	// Services
	IssueService     services.IssueService
	TaskService      services.TaskService
	DashboardService services.DashboardService
	AuthService      services.AuthService
	RegisterService  services.RegisterService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	log.Println("🚀 Initializing Housing Manager Backend...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	poolConfig := &database.PoolConfig{
		DSN:             cfg.GetDatabaseDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	pool, err := database.NewDatabasePool(poolConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.Pool = pool
	app.DB = pool.DB

	log.Println("✅ Database connected and configured")

	migrationConfig := &repositories.MigrationConfig{
		MigrationsPath: "file://migrations",
		DBName:         cfg.Database.Name,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}

	if err := repositories.RunMigrations(app.DB, migrationConfig); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	if !cfg.IsProduction() {
		if err := repositories.SeedData(app.DB); err != nil {
			log.Printf("⚠️  Seeding failed: %v", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unavailable: %v (continuing with memory cache only)", err)
		redisClient = nil
	} else {
		app.Redis = redisClient
		log.Println("✅ Redis connected")
	}

	if redisClient != nil {
		app.Cache = cache.NewRedisCacheFromClient(redisClient)
		log.Println("✅ Redis cache initialized")
	} else {
		app.Cache = cache.NewMemoryCache()
		log.Println("✅ Memory cache initialized (fallback mode)")
	}

	app.IssueService = services.NewIssueService()
	app.TaskService = services.NewTaskService()
	app.AuthService = services.NewAuthService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	app.RegisterService = services.NewRegisterService()
	app.DashboardService = services.NewCachedDashboardService(
		services.NewDashboardService(), app.Cache, cfg.Redis.SummaryTTL)

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return app.Pool.Health()
	})
	monitoring.RegisterHealthCheck("cache", func(ctx context.Context) error {
		return app.Cache.Health()
	})

	log.Println("✅ All services initialized")

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	// Global middleware stack (order matters!)
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.RecoveryWithLog())
	r.Use(middleware.SecureHeader())

	rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
	r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://host.docker.internal"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health and monitoring endpoints (no auth required)
	r.GET("/health", monitoring.HealthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	v1 := r.Group("/api/v1")

	// Public authentication routes (no auth required)
	authRoutes := v1.Group("/auth")
	{
		authHandler := handlers.NewAuthHandler(app.DB, app.AuthService)
		registrationHandler := handlers.NewRegisterHandler(app.DB, app.RegisterService)

		loginHandlers := []gin.HandlerFunc{authHandler.Login}
		if app.Redis != nil {
			// Brute-force protection on login, shared across instances.
			loginLimiter := middleware.NewDistributedRateLimiter(app.Redis)
			limited := loginLimiter.CreateMiddleware("login", &middleware.RateLimit{
				Rate:    10,
				Window:  time.Minute,
				KeyFunc: middleware.IPKeyFunc,
			})
			loginHandlers = []gin.HandlerFunc{limited, authHandler.Login}
		}

		authRoutes.POST("/login", loginHandlers...)
		authRoutes.POST("/register", registrationHandler.Registration)
		authRoutes.POST("/refresh", authHandler.Refresh)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Protected routes (require authentication)
	protected := v1.Group("")
	protected.Use(middleware.AuthzMiddleware(middleware.AuthzConfig{Secret: app.Config.JWT.Secret}))
	{
		issueHandler := handlers.NewIssueHandler(app.DB, app.IssueService, app.DashboardService)
		issueRoutes := protected.Group("/issues")
		{
			issueRoutes.GET("", issueHandler.GetIssues)
			issueRoutes.GET("/:id", issueHandler.GetIssue)
			issueRoutes.POST("", middleware.RequireRole(models.RoleStudent), issueHandler.CreateIssue)
			issueRoutes.PATCH("/:id", middleware.RequireRole(models.RoleStaff), issueHandler.UpdateIssue)
		}

		taskHandler := handlers.NewTaskHandler(app.DB, app.TaskService, app.DashboardService)
		taskRoutes := protected.Group("/tasks/:kind")
		{
			taskRoutes.GET("", taskHandler.GetTasks)
			taskRoutes.POST("", middleware.RequireRole(models.RoleStaff), taskHandler.CreateTask)
			taskRoutes.POST("/:id/complete", middleware.RequireRole(models.RoleStudent), taskHandler.CompleteTask)
			taskRoutes.POST("/:id/verify", middleware.RequireRole(models.RoleStaff), taskHandler.VerifyTask)
		}

		dashboardHandler := handlers.NewDashboardHandler(app.DB, app.DashboardService)
		protected.GET("/dashboard", middleware.RequireRole(models.RoleStaff), dashboardHandler.GetDashboard)
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("📊 Metrics available at http://%s/metrics", addr)
	log.Printf("💚 Health check at http://%s/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			log.Printf("⚠️  Error closing cache: %v", err)
		}
	}

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			log.Printf("⚠️  Error closing Redis: %v", err)
		}
	}

	if app.Pool != nil {
		if err := app.Pool.Close(); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}
