package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ExpiredTokenPurger deletes refresh tokens that expired before now
type ExpiredTokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenCleaner periodically removes expired refresh tokens. Refresh already
// deletes an expired token when it is presented; this catches the ones that
// are never presented again.
type TokenCleaner struct {
	store    ExpiredTokenPurger
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTokenCleaner(store ExpiredTokenPurger, interval time.Duration, logger *zap.Logger) *TokenCleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenCleaner{
		store:    store,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Sweep runs one cleanup pass
func (c *TokenCleaner) Sweep(ctx context.Context) (int64, error) {
	deleted, err := c.store.DeleteExpired(ctx, c.now())
	if err != nil {
		c.logger.Error("Failed to delete expired refresh tokens", zap.Error(err))
		return 0, err
	}

	if deleted > 0 {
		c.logger.Info("Expired refresh tokens deleted", zap.Int64("count", deleted))
	}
	return deleted, nil
}

// Start sweeps every interval until Stop is called or ctx is done. A
// non-positive interval disables the cleaner.
func (c *TokenCleaner) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interval <= 0 || c.cancel != nil {
		return
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	c.logger.Info("Refresh token cleaner started", zap.Duration("interval", c.interval))

	go func(done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = c.Sweep(ctx)
			}
		}
	}(c.done)
}

// Stop stops the loop and waits for an in-flight sweep to finish
func (c *TokenCleaner) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
