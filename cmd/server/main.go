package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stylemart/internal/api"
	"stylemart/internal/app/service"
	"stylemart/internal/app/worker"
	"stylemart/internal/common/security"
	"stylemart/internal/domain/repository"
	"stylemart/internal/platform/cache"
	"stylemart/internal/platform/config"
	"stylemart/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Token manager (refuses to start without a signing secret)
	tokens, err := security.NewTokenManager(cfg.JWTSecret, cfg.JWTExp)
	if err != nil {
		log.Fatalf("Could not initialize token manager: %v", err)
	}

	// 3. Database
	db := database.Connect(cfg.DBConnStr)
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}

	// 4. Redis
	rdb := cache.Connect(cfg)
	defer rdb.Close()

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(db)
	addressRepo := repository.NewPgAddressRepository(db)
	productRepo := repository.NewPgProductRepository(db)

	// 6. Services
	authService := service.NewAuthService(userRepo, tokens)
	adminService := service.NewAdminService(userRepo)
	addressService := service.NewAddressService(addressRepo)
	productService := service.NewProductService(productRepo, rdb, cfg.CatalogCacheTTL)

	// 7. Catalog warmer (as a goroutine)
	warmer := worker.NewCatalogWarmer(productService, cfg.CatalogWarmInterval)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go warmer.Start(workerCtx)

	// 8. Router & HTTP Server
	router := api.NewRouter(tokens, authService, adminService, addressService, productService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
