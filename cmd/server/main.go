package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/triagedesk/backend/internal/db"
	"github.com/triagedesk/backend/internal/logger"
	"github.com/triagedesk/backend/internal/middleware"
	"github.com/triagedesk/backend/internal/routes"
	"github.com/triagedesk/backend/internal/services"
	"github.com/triagedesk/backend/internal/storage"
)

const staticDir = "client/dist"

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "http://localhost:5173"
		if corsOrigin := os.Getenv("CORS_ORIGIN"); corsOrigin != "" {
			origin = corsOrigin
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// buildStore selects the storage driver. Memory is the default: all state is
// volatile and lives for exactly one process.
func buildStore() (storage.Store, string) {
	if os.Getenv("STORAGE_DRIVER") != "postgres" {
		return storage.NewMemoryStore(), "memory"
	}

	gdb, err := db.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := db.AutoMigrate(gdb); err != nil {
		logger.Fatal("Failed to run migrations", map[string]interface{}{
			"error": err.Error(),
		})
	}

	store := storage.NewGormStore(gdb)
	if err := store.SeedIfEmpty(); err != nil {
		logger.Warn("Failed to seed demo tickets", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return store, "postgres"
}

func main() {
	logger.Initialize()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using environment variables", nil)
	}

	store, driver := buildStore()

	llmService := services.NewLLMService(
		os.Getenv("GEMINI_API_URL"),
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_MODEL"),
	)
	if !llmService.Configured() {
		logger.Warn("GEMINI_API_KEY is not set, analysis and chat requests will fail", nil)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.RequestLogger())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		storageStatus := "ok"
		statusCode := http.StatusOK
		overallStatus := "ok"

		var storageError string
		if err := store.Ping(); err != nil {
			storageStatus = "error"
			storageError = err.Error()
			overallStatus = "error"
			statusCode = http.StatusServiceUnavailable
		}

		llmStatus := "ok"
		if !llmService.Configured() {
			llmStatus = "unconfigured"
		}

		c.JSON(statusCode, gin.H{
			"status":    overallStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   "1.0.0",
			"services": gin.H{
				"storage": gin.H{
					"status": storageStatus,
					"driver": driver,
					"error":  storageError,
				},
				"llm": gin.H{
					"status": llmStatus,
				},
			},
		})
	})

	routes.SetupRoutes(r, store, llmService)

	// Bundled frontend: unknown paths fall through to the SPA entrypoint.
	r.NoRoute(func(c *gin.Context) {
		path := filepath.Join(staticDir, filepath.Clean(c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	logger.Info("Starting TriageDesk backend server", map[string]interface{}{
		"port":     port,
		"gin_mode": gin.Mode(),
		"storage":  driver,
	})

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.Info("Shutting down server gracefully...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		logger.Info("Server exited gracefully", nil)
	}
}
