package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balance_aggregator/internal/app/service"
	"balance_aggregator/internal/infrastructure/configloader"
	"balance_aggregator/internal/infrastructure/network/client"
	"balance_aggregator/internal/infrastructure/restapi"
	"balance_aggregator/internal/pkg/logger"
	"balance_aggregator/internal/pkg/metrics"
	"balance_aggregator/internal/pkg/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("CRITICAL: failed to initialize zap logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer zapLogger.Sync()

	// Back the package-level logging helpers with zap, then install a
	// zapslog handler as the slog default for code logging through slog
	// directly. Both paths write to the same zap core.
	logger.InitZap(zapLogger, utils.GetEnv("LOG_LEVEL", "INFO"))
	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := utils.GetEnv("CONFIG_PATH", "")
	var cfg *configloader.Config
	if cfgPath != "" {
		cfg, err = configloader.LoadFile(cfgPath)
	} else {
		cfg, err = configloader.Load()
	}
	if err != nil {
		zapLogger.Fatal("Failed to load chain configuration", zap.Error(err))
	}
	zapLogger.Info("Chain configuration loaded", zap.Int("chains", len(cfg.Chains)))

	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter()
	clientProvider := client.NewChainClientProvider(appLogger)
	balanceService := service.NewBalanceService(cfg, clientProvider, appLogger)
	balanceHandler := restapi.NewBalanceHandler(balanceService, appLogger)

	router := restapi.SetupRouter(balanceHandler)

	srv := &http.Server{
		Addr:         ":" + utils.GetEnv("PORT", "8080"),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
