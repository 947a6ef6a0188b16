package worker

import (
	"context"
	"log"
	"time"

	"stylemart/internal/app/service"
)

// CatalogWarmer periodically pre-fills the redis cache with the first
// catalog page so the storefront landing view never pays the DB round trip.
type CatalogWarmer struct {
	productService *service.ProductService
	interval       time.Duration
}

const (
	warmPage     = 1
	warmPageSize = 20
)

func NewCatalogWarmer(productService *service.ProductService, interval time.Duration) *CatalogWarmer {
	return &CatalogWarmer{productService: productService, interval: interval}
}

// Start blocks until ctx is cancelled. It is meant to run as a goroutine
// next to the HTTP server.
func (w *CatalogWarmer) Start(ctx context.Context) {
	log.Printf("Catalog warmer started, interval %s", w.interval)
	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Catalog warmer stopping...")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CatalogWarmer) warm(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// List is read-through: a miss repopulates the cache entry.
	if _, err := w.productService.List(warmCtx, warmPage, warmPageSize, "", ""); err != nil {
		log.Printf("WARN: catalog warm failed: %v", err)
	}
}
