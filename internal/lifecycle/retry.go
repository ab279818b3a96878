package lifecycle

import (
	"context"
	"time"

	"github.com/odeislands/mediacore/internal/media"
)

// Retry destroys the current instance, waits the backoff delay and
// initializes again. Permitted only while the retry count is under the
// cap and the last error is retryable; past either point it surfaces a
// terminal recoverable=false error and issues no further attempts.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()

	if c.lastErr != nil && !c.lastErr.Retryable {
		terminal := media.NewError(c.lastErr.Kind, "not retryable: "+c.lastErr.Message, false, false)
		c.lastErr = terminal
		c.outOfRetries = true
		c.mu.Unlock()
		c.emitError(*terminal)
		return terminal
	}

	if c.retryCount >= c.opts.MaxRetries {
		kind := media.ErrorUnknown
		msg := "retry limit reached"
		if c.lastErr != nil {
			kind = c.lastErr.Kind
			msg = "retry limit reached: " + c.lastErr.Message
		}
		terminal := media.NewError(kind, msg, false, false)
		c.lastErr = terminal
		c.outOfRetries = true
		c.mu.Unlock()
		c.emitError(*terminal)
		return terminal
	}

	// The count increments before the delay is computed: the n-th retry
	// waits base * 2^(n-1).
	c.retryCount++
	attempt := c.retryCount
	delay := backoffFor(c.opts.RetryDelay, attempt)
	gen := c.generation
	inst := c.instance
	c.instance = nil
	c.initialized = false
	c.mu.Unlock()

	if inst != nil {
		c.factory.DestroyInstance(inst)
	}

	c.logger.Info("retry scheduled", "attempt", attempt, "delay", delay.String())

	c.mu.Lock()
	if c.retryTimer != nil {
		c.retryTimer.Stop()
	}
	c.retryTimer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		stale := gen != c.generation
		c.retryTimer = nil
		c.mu.Unlock()
		if stale {
			return
		}
		_ = c.createAndTrack(ctx)
	})
	c.mu.Unlock()

	return nil
}

func backoffFor(base time.Duration, attempt int) time.Duration {
	return base << (attempt - 1)
}
