// Package player implements the playback instance variants behind one
// uniform control contract. Each instance exclusively owns one native
// engine handle and runs a small state machine:
//
//	Uninitialized -> Initializing -> Ready | Failed -> Destroyed
//
// Destroyed is terminal: control calls on a destroyed instance are
// no-ops and the handle is never reused.
package player

import (
	"context"
	"log/slog"
	"sync"

	"github.com/odeislands/mediacore/internal/media"
)

type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusInitializing  Status = "initializing"
	StatusReady         Status = "ready"
	StatusFailed        Status = "failed"
	StatusDestroyed     Status = "destroyed"
)

// Callbacks are set before Initialize so no events are missed. All
// fields are optional.
type Callbacks struct {
	OnProgress    func(float64)
	OnStateChange func(map[string]any)
	OnEnded       func()
}

// Instance is the uniform control contract. Operations that a variant
// does not support (Seek outside video, for one) are no-ops, never
// errors.
type Instance interface {
	ID() string
	Kind() media.Kind
	Config() media.PlayerConfig
	Status() Status
	Err() *media.Error
	Loading() media.LoadingState
	SetCallbacks(Callbacks)

	Initialize(ctx context.Context) error
	Play()
	Pause()
	Stop()
	Seek(seconds float64)
	SetVolume(v float64)
	ToggleFullscreen()
	Reset(ctx context.Context) error
	Cleanup()
	GetState() map[string]any
	SetState(partial map[string]any)
}

type base struct {
	mu      sync.Mutex
	id      string
	kind    media.Kind
	cfg     media.PlayerConfig
	status  Status
	lastErr *media.Error
	loading media.LoadingState
	cb      Callbacks
	logger  *slog.Logger
}

func newBase(id string, kind media.Kind, cfg media.PlayerConfig, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{
		id:     id,
		kind:   kind,
		cfg:    cfg,
		status: StatusUninitialized,
		logger: logger.With("instance_id", id, "kind", kind.String()),
	}
}

func (b *base) ID() string                 { return b.id }
func (b *base) Kind() media.Kind           { return b.kind }
func (b *base) Config() media.PlayerConfig { return b.cfg }

func (b *base) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *base) Err() *media.Error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

func (b *base) Loading() media.LoadingState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

func (b *base) SetCallbacks(cb Callbacks) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cb = cb
}

// Default no-ops for variant-specific controls; video overrides them.
func (b *base) Seek(float64)      {}
func (b *base) SetVolume(float64) {}
func (b *base) ToggleFullscreen() {}

// beginInit moves Uninitialized to Initializing. Any other status means
// the attempt is a no-op.
func (b *base) beginInit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != StatusUninitialized {
		return false
	}
	b.status = StatusInitializing
	b.lastErr = nil
	b.loading = media.LoadingState{IsLoading: true}
	return true
}

// initOutcome is what a repeated Initialize call reports: the stored
// error when Failed, nil otherwise.
func (b *base) initOutcome() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == StatusFailed && b.lastErr != nil {
		return b.lastErr
	}
	return nil
}

// progress advances the loading state. Progress never regresses within
// one attempt.
func (b *base) progress(p float64, stage, message string) {
	b.mu.Lock()
	if b.status != StatusInitializing {
		b.mu.Unlock()
		return
	}
	if p < b.loading.Progress {
		p = b.loading.Progress
	}
	b.loading = media.LoadingState{IsLoading: true, Progress: p, Stage: stage, Message: message}
	onProgress := b.cb.OnProgress
	b.mu.Unlock()

	if onProgress != nil {
		onProgress(p)
	}
}

func (b *base) finishReady() {
	b.mu.Lock()
	b.status = StatusReady
	b.loading = media.LoadingState{}
	b.mu.Unlock()

	b.logger.Debug("instance ready")
	b.emitStatus()
}

func (b *base) failInit(err *media.Error) error {
	b.mu.Lock()
	b.status = StatusFailed
	b.lastErr = err
	b.loading = media.LoadingState{}
	b.mu.Unlock()

	b.logger.Warn("initialization failed",
		"error_kind", string(err.Kind),
		"retryable", err.Retryable,
		"error", err.Message)
	b.emitStatus()
	return err
}

// markDestroyed reports false when the instance is already destroyed,
// making Cleanup idempotent in every variant.
func (b *base) markDestroyed() bool {
	b.mu.Lock()
	if b.status == StatusDestroyed {
		b.mu.Unlock()
		return false
	}
	b.status = StatusDestroyed
	b.loading = media.LoadingState{}
	b.mu.Unlock()

	b.emitStatus()
	return true
}

func (b *base) ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status == StatusReady
}

func (b *base) destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status == StatusDestroyed
}

func (b *base) emitStatus() {
	b.mu.Lock()
	onStateChange := b.cb.OnStateChange
	status := b.status
	b.mu.Unlock()

	if onStateChange != nil {
		onStateChange(map[string]any{"status": string(status)})
	}
}

func (b *base) emitEnded() {
	b.mu.Lock()
	onEnded := b.cb.OnEnded
	b.mu.Unlock()

	if onEnded != nil {
		onEnded()
	}
}
