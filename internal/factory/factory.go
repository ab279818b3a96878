// Package factory constructs player instances, owns the registry of
// live instances and runs the memory eviction policy. The registry map
// is owned exclusively by the factory; nothing else mutates it.
package factory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/media/device"
	"github.com/odeislands/mediacore/internal/player"
	"github.com/odeislands/mediacore/internal/player/engine"
	"github.com/odeislands/mediacore/pkg/ctxlogger"
)

type iOptimizer interface {
	Optimize(cfg media.PlayerConfig, defaults media.Defaults, profile media.DeviceProfile) (media.PlayerConfig, error)
}

type entry struct {
	instance player.Instance
	seq      int64
}

type Factory struct {
	mu       sync.Mutex
	registry map[string]*entry
	seq      int64

	provider  engine.Provider
	optimizer iOptimizer
	defaults  media.Defaults
	logger    *slog.Logger
}

func New(provider engine.Provider, optimizer iOptimizer, defaults media.Defaults, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		registry:  make(map[string]*entry),
		provider:  provider,
		optimizer: optimizer,
		defaults:  defaults,
		logger:    logger,
	}
}

type CreatePlayerParams struct {
	Config    media.PlayerConfig
	Signals   device.Signals
	Callbacks player.Callbacks
}

// CreatePlayer resolves a fresh device profile, optimizes the config,
// instantiates the matching variant and initializes it. A validation
// failure never mutates the registry; an initialization failure still
// registers the Failed instance so the caller can inspect its error and
// retry or destroy it explicitly.
func (f *Factory) CreatePlayer(ctx context.Context, params *CreatePlayerParams) (player.Instance, error) {
	profile := device.Resolve(params.Signals)

	cfg, err := f.optimizer.Optimize(params.Config, f.defaults, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize config: %w", err)
	}

	id := uuid.NewString()
	inst, err := f.newInstance(id, cfg, profile)
	if err != nil {
		return nil, err
	}
	inst.SetCallbacks(params.Callbacks)

	ctx = ctxlogger.AppendCtx(ctx, slog.String("instance_id", id))
	if err := inst.Initialize(ctx); err != nil {
		f.logger.WarnContext(ctx, "player initialization failed, registering failed instance",
			"kind", cfg.Kind.String(), "error", err)
	}

	f.mu.Lock()
	f.seq++
	f.registry[id] = &entry{instance: inst, seq: f.seq}
	f.mu.Unlock()

	f.logger.InfoContext(ctx, "player registered",
		"kind", cfg.Kind.String(),
		"active", cfg.Active,
		"status", string(inst.Status()))

	return inst, nil
}

func (f *Factory) newInstance(id string, cfg media.PlayerConfig, profile media.DeviceProfile) (player.Instance, error) {
	switch cfg.Kind {
	case media.KindVideo:
		return player.NewVideo(id, cfg, f.provider.NewVideo(), f.logger), nil
	case media.KindEngine3D:
		return player.NewEngine3D(id, cfg, f.provider.NewScene(), f.logger), nil
	case media.KindAR:
		return player.NewAR(id, cfg, profile, f.provider.NewSession(), f.logger), nil
	default:
		return nil, media.NewUnsupportedError(fmt.Sprintf("unknown player kind %q", cfg.Kind))
	}
}

// DestroyInstance locates the instance by identity, cleans it up and
// removes it from the registry. Destroying an absent or already
// destroyed instance is a no-op.
func (f *Factory) DestroyInstance(inst player.Instance) {
	if inst == nil {
		return
	}

	f.mu.Lock()
	var id string
	for key, e := range f.registry {
		if e.instance == inst {
			id = key
			break
		}
	}
	if id != "" {
		delete(f.registry, id)
	}
	f.mu.Unlock()

	inst.Cleanup()

	if id != "" {
		f.logger.Info("player destroyed", "instance_id", id, "kind", inst.Kind().String())
	}
}
