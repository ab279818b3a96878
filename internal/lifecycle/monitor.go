package lifecycle

import (
	"context"
	"time"

	"github.com/odeislands/mediacore/internal/media"
)

// StartMemoryCleanup runs the factory's eviction policy on a fixed
// interval until StopMemoryCleanup is called or ctx is canceled. The
// tick is independent of any single instance's lifecycle.
func (c *Controller) StartMemoryCleanup(ctx context.Context) {
	c.mu.Lock()
	if c.cleanupStop != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.cleanupStop = stop
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.opts.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				report := c.factory.PerformMemoryCleanup(c.opts.MemoryBudgetMB)
				if len(report.EvictedIDs) > 0 {
					c.logger.Info("memory cleanup tick",
						"evicted", len(report.EvictedIDs),
						"total_before_mb", report.TotalBeforeMB,
						"total_after_mb", report.TotalAfterMB)
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *Controller) StopMemoryCleanup() {
	c.mu.Lock()
	if c.cleanupStop != nil {
		close(c.cleanupStop)
		c.cleanupStop = nil
	}
	c.mu.Unlock()
}

// HandleVisibilityChange pauses an active video instance when the
// hosting environment goes hidden. Engine3D and AR instances keep their
// prior state, and nothing is destroyed: this is a pause, not an
// eviction.
func (c *Controller) HandleVisibilityChange(hidden bool) {
	if !hidden {
		return
	}

	c.mu.Lock()
	inst := c.instance
	c.mu.Unlock()

	if inst == nil || inst.Kind() != media.KindVideo || !inst.Config().Active {
		return
	}
	inst.Pause()
}
