package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	sheetclient "github.com/vttbridge/sheet-api/internal/clients/sheet"
	apiv1 "github.com/vttbridge/sheet-api/internal/handlers/api/v1"
	characterorch "github.com/vttbridge/sheet-api/internal/orchestrators/character"
	"github.com/vttbridge/sheet-api/internal/pkg/clock"
	"github.com/vttbridge/sheet-api/internal/redis"
	characterrepo "github.com/vttbridge/sheet-api/internal/repositories/character"
)

// serverConfig is loaded from the environment. Flags override the
// HTTP port only.
type serverConfig struct {
	Port          int           `env:"PORT" envDefault:"8080"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	RedisAddress  string        `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	SheetBaseURL  string        `env:"SHEET_BASE_URL,required"`
	SheetAPIKey   string        `env:"SHEET_API_KEY"`
	SheetTimeout  time.Duration `env:"SHEET_TIMEOUT" envDefault:"15s"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"30s"`
}

var httpPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the sheet-api HTTP server with the character routes.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 0, "HTTP server port (overrides PORT)")
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if httpPort != 0 {
		cfg.Port = httpPort
	}

	setupLogging(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	redisClient, err := redis.NewClient(cfg.RedisAddress, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			slog.Warn("failed to close redis client", "error", closeErr)
		}
	}()

	characterRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
		Client: redisClient,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}

	sheetClient, err := sheetclient.NewHTTP(&sheetclient.Config{
		BaseURL: cfg.SheetBaseURL,
		APIKey:  cfg.SheetAPIKey,
		HTTPClient: &http.Client{
			Timeout: cfg.SheetTimeout,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create sheet client: %w", err)
	}

	orchestrator, err := characterorch.New(&characterorch.Config{
		CharacterRepo: characterRepo,
		SheetClient:   sheetClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create character orchestrator: %w", err)
	}

	handler, err := apiv1.NewHandler(&apiv1.HandlerConfig{
		CharacterService: orchestrator,
	})
	if err != nil {
		return fmt.Errorf("failed to create character handler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "port", cfg.Port)
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", serveErr)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down http server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}

		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})))
}
