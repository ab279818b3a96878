package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/odeislands/mediacore/internal/factory"
	"github.com/odeislands/mediacore/internal/lifecycle"
	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/media/device"
	"github.com/odeislands/mediacore/internal/media/optimize"
	"github.com/odeislands/mediacore/internal/player/engine"
	"github.com/odeislands/mediacore/pkg/ctxlogger"
)

type AppConfig struct {
	LogLevel           string `json:"log_level"`
	MemoryBudgetMB     int    `json:"memory_budget_mb"`
	CleanupIntervalSec int    `json:"cleanup_interval_sec"`
	MaxRetries         int    `json:"max_retries"`
	RetryDelayMS       int    `json:"retry_delay_ms"`
	DefaultQuality     string `json:"default_quality"`
	DefaultMuted       bool   `json:"default_muted"`
	DefaultAutoplay    bool   `json:"default_autoplay"`
	Default3DMaxFPS    int    `json:"default_3d_max_fps"`
	MediaURL           string `json:"media_url"`
	Mobile             bool   `json:"mobile"`
	Connection         string `json:"connection"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.MemoryBudgetMB < 1 {
		return fmt.Errorf("memory budget must be greater than 0")
	}
	if cfg.CleanupIntervalSec < 1 {
		return fmt.Errorf("cleanup interval must be greater than 0")
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	if cfg.RetryDelayMS < 1 {
		return fmt.Errorf("retry delay must be greater than 0")
	}
	if cfg.DefaultQuality != "" && !media.QualityTier(cfg.DefaultQuality).Valid() {
		return fmt.Errorf("unknown default quality tier %q", cfg.DefaultQuality)
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}),
	}
	logger := slog.New(&h)

	defaults := media.Defaults{
		Quality:        media.QualityTier(cfg.DefaultQuality),
		Muted:          cfg.DefaultMuted,
		Autoplay:       cfg.DefaultAutoplay,
		Engine3DMaxFPS: cfg.Default3DMaxFPS,
	}

	f := factory.New(engine.NewSimProvider(), optimize.New(), defaults, logger)

	controller := lifecycle.New(f, lifecycle.Options{
		Config: media.PlayerConfig{
			Kind:   media.KindVideo,
			Active: true,
			Video:  &media.VideoConfig{URL: cfg.MediaURL},
		},
		Signals: device.Signals{
			IsMobile:   cfg.Mobile,
			Connection: media.ConnectionClass(cfg.Connection),
		},
		MaxRetries:      cfg.MaxRetries,
		RetryDelay:      time.Duration(cfg.RetryDelayMS) * time.Millisecond,
		CleanupInterval: time.Duration(cfg.CleanupIntervalSec) * time.Second,
		MemoryBudgetMB:  cfg.MemoryBudgetMB,
		Logger:          logger,
	})
	controller.OnError = func(err media.Error) {
		logger.Warn("player error", "kind", string(err.Kind), "retryable", err.Retryable, "message", err.Message)
	}
	controller.OnLoad = func() {
		logger.Info("player loaded", "stats", f.GetStats())
	}

	runCtx, stopCtx := context.WithCancel(ctx)
	defer stopCtx()

	controller.StartMemoryCleanup(runCtx)

	if cfg.MediaURL != "" {
		if err := controller.Initialize(runCtx); err != nil {
			logger.Warn("initial playback failed", "error", err)
		}
	}

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	logger.InfoContext(runCtx, "media core running",
		"memory_budget_mb", cfg.MemoryBudgetMB,
		"cleanup_interval_sec", cfg.CleanupIntervalSec)

	select {
	case <-sig:
	case <-runCtx.Done():
	}

	controller.StopMemoryCleanup()
	controller.Cleanup()
	for _, inst := range f.GetActiveInstances() {
		f.DestroyInstance(inst)
	}
	logger.Info("shutdown complete")

	return nil
}
