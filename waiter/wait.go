package waiter

import (
	"context"
	"fmt"
	"time"
)

// DefaultMinDelay is the default minimum sleep between poll attempts.
const DefaultMinDelay = 2 * time.Millisecond

// DefaultMaxDelay is the default maximum sleep between poll attempts.
const DefaultMaxDelay = 120 * time.Second

// ErrWaiterTerminalFailure is returned when an acceptor matches with
// FailureState.
type ErrWaiterTerminalFailure struct {
	State AcceptorState
	Err   error
}

// Error implements the error interface.
func (e *ErrWaiterTerminalFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("waiter transitioned to failure state: %v", e.Err)
	}
	return "waiter transitioned to failure state"
}

// Unwrap returns the wrapped matcher error, if any.
func (e *ErrWaiterTerminalFailure) Unwrap() error { return e.Err }

// Config configures a Waiter's acceptors and backoff.
type Config struct {
	Acceptors []Acceptor

	// MinDelay and MaxDelay bound the backoff between poll attempts. 0
	// uses DefaultMinDelay/DefaultMaxDelay.
	MinDelay, MaxDelay time.Duration
}

func (c Config) minDelay() time.Duration {
	if c.MinDelay > 0 {
		return c.MinDelay
	}
	return DefaultMinDelay
}

func (c Config) maxDelay() time.Duration {
	if c.MaxDelay > 0 {
		return c.MaxDelay
	}
	return DefaultMaxDelay
}

// Waiter polls an operation until an acceptor reports Success or Failure,
// or the wait's time budget is exhausted.
type Waiter struct {
	Config Config
}

// NewWaiter builds a Waiter from the given Config.
func NewWaiter(cfg Config) *Waiter {
	return &Waiter{Config: cfg}
}

// Wait polls by calling poll repeatedly, evaluating Config's acceptors
// against (input, the poll's output, the poll's error) after each attempt,
// until an acceptor reports SuccessState (return nil), FailureState (return
// ErrWaiterTerminalFailure), or maxWaitTime elapses (return an error).
func (w *Waiter) Wait(
	ctx context.Context,
	input interface{},
	maxWaitTime time.Duration,
	poll func(ctx context.Context, input interface{}) (output interface{}, err error),
) error {
	remaining := maxWaitTime

	for attempt := int64(1); ; attempt++ {
		output, pollErr := poll(ctx, input)

		state, err := Evaluate(w.Config.Acceptors, input, output, pollErr)
		switch state {
		case SuccessState:
			return nil
		case FailureState:
			return &ErrWaiterTerminalFailure{State: state, Err: err}
		}

		delay, done, derr := ComputeDelay(attempt, w.Config.minDelay(), w.Config.maxDelay(), remaining)
		if derr != nil {
			return derr
		}
		if done && delay <= 0 {
			return fmt.Errorf("exceeded wait time budget of %s without reaching a terminal state", maxWaitTime)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		remaining -= delay
		if done {
			return fmt.Errorf("exceeded wait time budget of %s without reaching a terminal state", maxWaitTime)
		}
	}
}
