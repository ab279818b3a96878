// Package lifecycle drives one player instance on behalf of one caller:
// guarded initialization, capped retry with exponential backoff, reset,
// periodic memory cleanup ticks and visibility-driven pause.
package lifecycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/odeislands/mediacore/internal/factory"
	"github.com/odeislands/mediacore/internal/media"
	"github.com/odeislands/mediacore/internal/media/device"
	"github.com/odeislands/mediacore/internal/player"
)

const (
	DefaultMaxRetries      = 3
	DefaultRetryDelay      = 2 * time.Second
	DefaultCleanupInterval = 30 * time.Second
	DefaultMemoryBudgetMB  = 200
)

type iFactory interface {
	CreatePlayer(ctx context.Context, params *factory.CreatePlayerParams) (player.Instance, error)
	DestroyInstance(inst player.Instance)
	PerformMemoryCleanup(budgetMB int) factory.CleanupReport
}

type Options struct {
	Config          media.PlayerConfig
	Signals         device.Signals
	MaxRetries      int
	RetryDelay      time.Duration
	CleanupInterval time.Duration
	MemoryBudgetMB  int
	Logger          *slog.Logger
}

// Controller is the façade consumers hold. Callback fields are set
// before Initialize so no events are missed.
type Controller struct {
	OnLoad        func()
	OnError       func(media.Error)
	OnProgress    func(float64)
	OnEnd         func()
	OnStateChange func(map[string]any)

	mu           sync.Mutex
	factory      iFactory
	opts         Options
	instance     player.Instance
	initialized  bool
	retryCount   int
	lastErr      *media.Error
	outOfRetries bool
	// generation invalidates pending retry timers on cleanup/reset.
	generation  int
	retryTimer  *time.Timer
	cleanupStop chan struct{}
	logger      *slog.Logger
}

func New(f iFactory, opts Options) *Controller {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.CleanupInterval == 0 {
		opts.CleanupInterval = DefaultCleanupInterval
	}
	if opts.MemoryBudgetMB == 0 {
		opts.MemoryBudgetMB = DefaultMemoryBudgetMB
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		factory: f,
		opts:    opts,
		logger:  logger,
	}
}

// Initialize runs at most once per session; reinitializing requires an
// explicit Reset. Marks the controller initialized only on success. A
// session that already tracks a Failed instance reports its stored
// error without a new attempt: recovery goes through Retry or Reset,
// never through a second Initialize.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}
	if c.instance != nil {
		err := c.lastErr
		c.mu.Unlock()
		if err != nil {
			return err
		}
		return nil
	}
	c.mu.Unlock()

	return c.createAndTrack(ctx)
}

func (c *Controller) createAndTrack(ctx context.Context) error {
	inst, err := c.factory.CreatePlayer(ctx, &factory.CreatePlayerParams{
		Config:  c.opts.Config,
		Signals: c.opts.Signals,
		Callbacks: player.Callbacks{
			OnProgress:    c.emitProgress,
			OnStateChange: c.emitStateChange,
			OnEnded:       c.emitEnd,
		},
	})
	if err != nil {
		me := media.AsError(err)
		c.mu.Lock()
		c.lastErr = me
		c.mu.Unlock()
		c.emitError(*me)
		return me
	}

	c.mu.Lock()
	c.instance = inst
	c.mu.Unlock()

	// A Failed instance is still registered and tracked; the caller
	// decides between Retry and Cleanup.
	if ierr := inst.Err(); ierr != nil {
		c.mu.Lock()
		c.lastErr = ierr
		c.mu.Unlock()
		c.emitError(*ierr)
		return ierr
	}

	c.mu.Lock()
	c.initialized = true
	c.lastErr = nil
	onLoad := c.OnLoad
	c.mu.Unlock()

	if onLoad != nil {
		onLoad()
	}
	return nil
}

// Reset is an unconditional cleanup followed by initialize. It does not
// consume a retry attempt.
func (c *Controller) Reset(ctx context.Context) error {
	c.Cleanup()
	return c.Initialize(ctx)
}

// Cleanup cancels any pending retry timer, destroys the instance and
// clears local state to defaults. Safe to call multiple times.
func (c *Controller) Cleanup() {
	c.mu.Lock()
	c.generation++
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	inst := c.instance
	c.instance = nil
	c.initialized = false
	c.retryCount = 0
	c.lastErr = nil
	c.outOfRetries = false
	c.mu.Unlock()

	if inst != nil {
		c.factory.DestroyInstance(inst)
	}
}

func (c *Controller) GetState() map[string]any {
	c.mu.Lock()
	inst := c.instance
	c.mu.Unlock()

	if inst == nil {
		return map[string]any{}
	}
	return inst.GetState()
}

func (c *Controller) SetState(partial map[string]any) {
	c.mu.Lock()
	inst := c.instance
	c.mu.Unlock()

	if inst != nil {
		inst.SetState(partial)
	}
}

type Stats struct {
	Initialized  bool          `json:"initialized"`
	RetryCount   int           `json:"retry_count"`
	OutOfRetries bool          `json:"out_of_retries"`
	LastError    *media.Error  `json:"last_error,omitempty"`
	InstanceID   string        `json:"instance_id,omitempty"`
	Status       player.Status `json:"status,omitempty"`
}

func (c *Controller) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Initialized:  c.initialized,
		RetryCount:   c.retryCount,
		OutOfRetries: c.outOfRetries,
		LastError:    c.lastErr,
	}
	if c.instance != nil {
		stats.InstanceID = c.instance.ID()
		stats.Status = c.instance.Status()
	}
	return stats
}

func (c *Controller) emitError(err media.Error) {
	c.mu.Lock()
	onError := c.OnError
	c.mu.Unlock()

	if onError != nil {
		onError(err)
	}
}

func (c *Controller) emitProgress(p float64) {
	c.mu.Lock()
	onProgress := c.OnProgress
	c.mu.Unlock()

	if onProgress != nil {
		onProgress(p)
	}
}

func (c *Controller) emitStateChange(state map[string]any) {
	c.mu.Lock()
	onStateChange := c.OnStateChange
	c.mu.Unlock()

	if onStateChange != nil {
		onStateChange(state)
	}
}

func (c *Controller) emitEnd() {
	c.mu.Lock()
	onEnd := c.OnEnd
	c.mu.Unlock()

	if onEnd != nil {
		onEnd()
	}
}
