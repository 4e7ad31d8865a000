package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/smithy-lang/smithy-runtime-go/waiter"
)

// Strategy configures the retry orchestrator's backoff and attempt ceiling.
type Strategy struct {
	// MaxAttempts bounds the total number of attempts, including the
	// first; 0 uses DefaultMaxAttempts.
	MaxAttempts int

	// MinDelay and MaxDelay bound the exponential backoff with full
	// jitter computed between attempts, via waiter.ComputeDelay. 0 uses
	// DefaultMinDelay/DefaultMaxDelay.
	MinDelay, MaxDelay time.Duration

	// Quota bounds total retrying across concurrent calls. A nil Quota
	// disables the check (every classified-retryable attempt is retried
	// up to MaxAttempts).
	Quota *Quota
}

// DefaultMaxAttempts is the default attempt ceiling, first attempt
// included.
const DefaultMaxAttempts = 3

// DefaultMinDelay is the default minimum backoff delay.
const DefaultMinDelay = 20 * time.Millisecond

// DefaultMaxDelay is the default maximum backoff delay.
const DefaultMaxDelay = 20 * time.Second

func (s Strategy) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (s Strategy) minDelay() time.Duration {
	if s.MinDelay > 0 {
		return s.MinDelay
	}
	return DefaultMinDelay
}

func (s Strategy) maxDelay() time.Duration {
	if s.MaxDelay > 0 {
		return s.MaxDelay
	}
	return DefaultMaxDelay
}

// ErrMaxAttemptsExceeded is returned, wrapping the last attempt's error,
// when the attempt ceiling is reached without success.
type ErrMaxAttemptsExceeded struct {
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *ErrMaxAttemptsExceeded) Error() string {
	return fmt.Sprintf("exceeded maximum %d attempt(s): %v", e.Attempts, e.Err)
}

// Unwrap returns the last attempt's error.
func (e *ErrMaxAttemptsExceeded) Unwrap() error { return e.Err }

// Orchestrator drives attempts per spec §4.9, around phases 5-12 of the
// interceptor pipeline: for each attempt, run the caller-supplied
// doAttempt function, classify its result, and either stop (success or
// terminal failure) or sleep and loop (retryable failure with remaining
// budget and retry quota).
type Orchestrator struct {
	Strategy Strategy
}

// NewOrchestrator builds an Orchestrator with the given Strategy.
func NewOrchestrator(s Strategy) *Orchestrator {
	return &Orchestrator{Strategy: s}
}

// Run executes doAttempt up to Strategy's attempt ceiling, sleeping
// between attempts per the computed backoff. doAttempt returns the
// AttemptResult to classify; remainingTime bounds the last possible
// backoff sleep (as with the waiter engine, an exhausted remaining budget
// ends the loop without another attempt).
func (o *Orchestrator) Run(
	ctx context.Context,
	remainingTime time.Duration,
	doAttempt func(ctx context.Context, attempt int) AttemptResult,
) error {
	deadline := time.Now().Add(remainingTime)

	var lastErr error
	for attempt := 1; attempt <= o.Strategy.maxAttempts(); attempt++ {
		result := doAttempt(ctx, attempt)

		switch Classify(result) {
		case ClassificationSuccess:
			if o.Strategy.Quota != nil {
				o.Strategy.Quota.Release()
			}
			return nil
		case ClassificationTerminal:
			return result.Err
		case ClassificationThrottling, ClassificationRetryable:
			lastErr = result.Err
			if attempt == o.Strategy.maxAttempts() {
				return &ErrMaxAttemptsExceeded{Attempts: attempt, Err: lastErr}
			}

			if o.Strategy.Quota != nil && !o.Strategy.Quota.Acquire() {
				return lastErr
			}

			remaining := time.Until(deadline)
			delay, done, err := waiter.ComputeDelay(int64(attempt), o.Strategy.minDelay(), o.Strategy.maxDelay(), remaining)
			if err != nil {
				return lastErr
			}
			if done && delay <= 0 {
				return &ErrMaxAttemptsExceeded{Attempts: attempt, Err: lastErr}
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return &ErrMaxAttemptsExceeded{Attempts: o.Strategy.maxAttempts(), Err: lastErr}
}
