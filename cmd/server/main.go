package main

import (
	"context"                               // context package is needed for Redis operations
	"log"                                   // log package is needed for logging
	"staking_dashboard/internal/api"        // Custom package for API handlers
	"staking_dashboard/internal/config"     // Custom package for configuration
	"staking_dashboard/internal/db"         // Custom package for database access
	"staking_dashboard/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database; the handle is pooled and shared by all handlers
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Optional non-blocking startup probe (always on outside production)
	if cfg.StartupHealthCheck || !cfg.IsProd {
		go func() {
			status := db.CheckHealth(gdb)
			if !status.Healthy {
				logrus.Warn("Database health check failed on startup. The application may not function correctly.")
			}
		}()
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// CORS applies to every route, including preflight short-circuits
	r.Use(middleware.CORSMiddleware(cfg.ExtraOrigins))

	// User routes
	r.POST("/user/signup", api.SignupHandler(gdb))    // Signup / wallet login endpoint
	r.PUT("/user/update", api.UpdateUserHandler(gdb)) // Profile update endpoint
	r.GET("/user", api.ListUsersHandler(gdb))         // Filterable user listing

	// Stake routes
	r.POST("/stake/create", api.CreateStakeHandler(gdb, redisClient)) // Stake creation endpoint
	r.PUT("/stake/update", api.UpdateStakeHandler(gdb, redisClient))  // Stake update endpoint
	r.GET("/stake/list", api.ListStakesHandler(gdb, redisClient))     // Stake listing endpoint

	// Standalone transaction creation routes
	r.POST("/swap/create", api.CreateSwapHandler(gdb, redisClient))         // Swap creation endpoint
	r.POST("/transfer/create", api.CreateTransferHandler(gdb, redisClient)) // Transfer creation endpoint

	// Transaction routes (JWT middleware matches the original deployment;
	// enforcement is off unless AUTH_ENABLED is set)
	txGroup := r.Group("/transaction")
	txGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, cfg.AuthEnabled))
	txGroup.POST("/external", api.CreateExternalTransactionHandler(gdb, redisClient)) // External transaction endpoint
	txGroup.GET("/list", api.ListTransactionsHandler(gdb, redisClient))               // Transaction listing endpoint
	txGroup.GET("", api.GetTransactionsHandler(gdb))                                  // Raw transaction query endpoint

	// Health probe
	r.GET("/health", api.HealthHandler(gdb))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
