package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrMaxRetries indicates that all retry attempts have been exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryOptions configures WithRetry. Zero fields take the defaults below.
type RetryOptions struct {
	Logger       *slog.Logger
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// PermanentError marks a failure that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so WithRetry returns it immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 200 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 5 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	o.Logger = LoggerOrDefault(o.Logger)
	return o
}

// WithRetry runs operation until it succeeds, returns a PermanentError, the
// attempts run out, or ctx is done. Delays grow by Multiplier up to MaxDelay.
func WithRetry(ctx context.Context, opts RetryOptions, operation func(context.Context) error) error {
	opts = opts.withDefaults()
	delay := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation(ctx)
		if err == nil {
			return nil
		}

		var permanent *PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		opts.Logger.Debug("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", opts.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * opts.Multiplier)
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
}
