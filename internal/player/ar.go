package player

import (
	"context"
	"log/slog"
	"sync"

	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/player/engine"
)

// AR wraps one AR session handle plus its loaded model references.
// Sessions are never attempted on devices whose profile has AR
// disabled: Initialize fails fast before the handle is started.
type AR struct {
	base
	handle  engine.SessionHandle
	profile media.DeviceProfile

	runMu       sync.Mutex
	running     bool
	sessionOpen bool
}

func NewAR(id string, cfg media.PlayerConfig, profile media.DeviceProfile, handle engine.SessionHandle, logger *slog.Logger) *AR {
	return &AR{
		base:        newBase(id, media.KindAR, cfg, logger),
		handle:      handle,
		profile:     profile,
		sessionOpen: cfg.AR.SessionOpen,
	}
}

func (a *AR) Initialize(ctx context.Context) error {
	if !a.beginInit() {
		return a.initOutcome()
	}

	if !a.profile.EnableAR {
		return a.failInit(media.NewDeviceError("ar sessions are not supported on this device"))
	}

	a.progress(0.2, "session", "requesting ar session")
	if err := a.handle.Start(ctx, a.cfg.AR.ModelURLs); err != nil {
		return a.failInit(media.AsError(err))
	}
	a.progress(1, "ready", "")
	a.finishReady()

	return nil
}

// Play is a no-op unless the session is marked open.
func (a *AR) Play() {
	if !a.ready() {
		return
	}
	a.runMu.Lock()
	defer a.runMu.Unlock()
	if !a.sessionOpen {
		return
	}
	a.running = true
}

func (a *AR) Pause() {
	if !a.ready() {
		return
	}
	a.runMu.Lock()
	a.running = false
	a.runMu.Unlock()
}

// Stop ends the AR session and releases all loaded model references.
func (a *AR) Stop() {
	if !a.ready() {
		return
	}
	a.runMu.Lock()
	a.running = false
	a.runMu.Unlock()
	a.handle.End()
}

func (a *AR) Reset(ctx context.Context) error {
	a.Cleanup()
	return a.Initialize(ctx)
}

func (a *AR) Cleanup() {
	if !a.markDestroyed() {
		return
	}
	a.runMu.Lock()
	a.running = false
	a.runMu.Unlock()
	a.handle.Release()
}

func (a *AR) GetState() map[string]any {
	if a.destroyed() {
		return map[string]any{}
	}
	a.runMu.Lock()
	running := a.running
	open := a.sessionOpen
	a.runMu.Unlock()
	return map[string]any{
		"sessionOpen":  open,
		"running":      running,
		"loadedModels": a.handle.LoadedModels(),
	}
}

// SetState toggles the session-open flag on the instance; the config
// snapshot handed out by Config stays as created.
func (a *AR) SetState(partial map[string]any) {
	if !a.ready() {
		return
	}
	if open, ok := partial["sessionOpen"].(bool); ok {
		a.runMu.Lock()
		a.sessionOpen = open
		a.runMu.Unlock()
	}
}
