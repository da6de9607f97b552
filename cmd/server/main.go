package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"

	"syntra-pos/config"
	"syntra-pos/internal/gateway"
	pos "syntra-pos/internal/services/pos/handler"
)

func main() {
	cfg := config.LoadConfig()
	gin.SetMode(cfg.Server.Mode)

	pricing, err := pos.ParsePricingPolicy(cfg.POS.PricingPolicy)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := openStore(startCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	r, err := gateway.NewRouter(gateway.NewServices(st, pricing), gateway.Options{
		RateLimit:         cfg.RateLimit,
		MaxUploadBytes:    cfg.Server.MaxUploadBytes,
		LowStockThreshold: cfg.POS.LowStockThreshold,
	})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("POS server listening on http://%s (store: %s, pricing: %s)", srv.Addr, st.BackendName(), pricing)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Shutting down HTTP server...")
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
				return st.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}
