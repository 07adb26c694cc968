package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	httpadapter "github.com/takashim0101/car-insurance-recommendation-app---backend/internal/adapters/http"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/adapters/llm"
	memstore "github.com/takashim0101/car-insurance-recommendation-app---backend/internal/adapters/storage/memory"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/app/conversation"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/config"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/domain"
	"github.com/takashim0101/car-insurance-recommendation-app---backend/internal/observability"
)

const (
	version         = "0.1.0"
	shutdownTimeout = 10 * time.Second
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "tina-api",
		Short:         "Tina - car insurance recommendation chat relay",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("port", "", "listen port (env PORT)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env TINA_LOG_LEVEL)")
	flags.Bool("mock", false, "use the scripted mock provider (env TINA_USE_MOCK_LLM)")

	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("use_mock_llm", flags.Lookup("mock"))

	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observability.Setup(cfg.LogLevel, cfg.LogPretty)
	log := observability.Logger()

	var (
		provider domain.ChatProvider
		err      error
	)
	if cfg.UseMockLLM {
		log.Info().Msg("using MOCK provider")
		provider = llm.NewMockProvider()
	} else {
		log.Info().Str("model", cfg.ModelName).Msg("using Gemini provider")
		provider, err = llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("initializing Gemini provider: %w", err)
		}
	}

	metrics := observability.NewMetrics()
	store := memstore.NewSessionStore()

	svc := conversation.NewService(provider, store, conversation.Config{
		Model:             cfg.ModelName,
		SystemInstruction: llm.SystemInstruction,
		ProviderTimeout:   cfg.ProviderTimeout,
	}, metrics)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpadapter.NewServer(svc, metrics, httpadapter.Options{CORSOrigin: cfg.CORSOrigin}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Tina API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
