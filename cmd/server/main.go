package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"checkout-mini-demo/internal/config"
	"checkout-mini-demo/internal/database"
	"checkout-mini-demo/internal/handler"
	"checkout-mini-demo/internal/infrastructure/payment"
	"checkout-mini-demo/internal/logging"
	"checkout-mini-demo/internal/repo"
	"checkout-mini-demo/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.HMACKey == "" {
		logger.Warn("IZIPAY_HMAC_KEY is not set, session signing will fail until it is configured")
	}

	db, err := database.New(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	orderRepo := repo.NewOrderRepo(db.DB())
	signer := payment.NewSigner(cfg.HMACKey, cfg.DebugSignature, logger)
	scheme := payment.SchemeFor(cfg.WebhookMode, signer, cfg.Merchant)

	svc := service.NewCheckoutService(orderRepo, signer, cfg, logger)
	h := handler.NewCheckoutHandler(svc, scheme, db, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(cfg, h),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("checkout backend listening",
			"port", cfg.Port,
			"ctx_mode", cfg.CtxMode,
			"webhook_mode", cfg.WebhookMode,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
