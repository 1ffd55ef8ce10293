package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/application/validation"
	"github.com/sangkips/expedicao-api/internal/config"
	"github.com/sangkips/expedicao-api/internal/infrastructure/maglog"
	"github.com/sangkips/expedicao-api/internal/infrastructure/repository"
	"github.com/sangkips/expedicao-api/internal/presentation/http/handler"
	"github.com/sangkips/expedicao-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// WMS client: no timeout, a submission waits for the transport to resolve
	client := maglog.NewClient(maglog.Config{
		URL:    cfg.Maglog.URL,
		Tenant: cfg.Maglog.Tenant,
		Owner:  cfg.Maglog.Owner,
	}, nil)

	// Initialize repositories
	expedicaoRepo := repository.NewExpedicaoRepository(client)
	sessionRepo := repository.NewMemorySessionRepository[*service.FormController](cfg.Session.TTL, cfg.Session.CleanupInterval)
	defer sessionRepo.Close()

	// Initialize services
	formService := service.NewFormService(sessionRepo, expedicaoRepo, validation.New(), nil)

	// Initialize handlers
	handlers := &routes.Handlers{
		Form:      handler.NewFormHandler(),
		Expedicao: handler.NewExpedicaoHandler(),
	}

	// Setup routes
	router, err := routes.Setup(handlers, &routes.Deps{
		Cfg:   cfg,
		Forms: formService,
	})
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	wms := client.Config()
	log.Printf("WMS endpoint: %s (tenant %s, owner %s)", wms.URL, wms.Tenant, wms.Owner)

	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
