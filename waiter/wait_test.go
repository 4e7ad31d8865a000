package waiter

import (
	"context"
	"testing"
	"time"
)

func TestWaiterSuccessAfterRetries(t *testing.T) {
	cfg := Config{
		Acceptors: []Acceptor{
			{State: SuccessState, Matcher: JMESPathMatcher{Path: "output.status", Expected: "RUNNING", Comparator: StringEquals}},
		},
		MinDelay: time.Millisecond,
		MaxDelay: 5 * time.Millisecond,
	}
	w := NewWaiter(cfg)

	attempts := 0
	err := w.Wait(context.Background(), nil, time.Second, func(ctx context.Context, input interface{}) (interface{}, error) {
		attempts++
		status := "PENDING"
		if attempts >= 3 {
			status = "RUNNING"
		}
		return map[string]interface{}{"status": status}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWaiterTerminalFailure(t *testing.T) {
	cfg := Config{
		Acceptors: []Acceptor{
			{State: FailureState, Matcher: JMESPathMatcher{Path: "output.status", Expected: "FAILED", Comparator: StringEquals}},
		},
		MinDelay: time.Millisecond,
		MaxDelay: 5 * time.Millisecond,
	}
	w := NewWaiter(cfg)

	err := w.Wait(context.Background(), nil, time.Second, func(ctx context.Context, input interface{}) (interface{}, error) {
		return map[string]interface{}{"status": "FAILED"}, nil
	})
	if err == nil {
		t.Fatal("expected terminal failure error")
	}
	if _, ok := err.(*ErrWaiterTerminalFailure); !ok {
		t.Fatalf("expected *ErrWaiterTerminalFailure, got %T: %v", err, err)
	}
}

func TestWaiterExhaustsBudget(t *testing.T) {
	cfg := Config{
		Acceptors: []Acceptor{
			{State: SuccessState, Matcher: JMESPathMatcher{Path: "output.status", Expected: "RUNNING", Comparator: StringEquals}},
		},
		MinDelay: time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
	}
	w := NewWaiter(cfg)

	err := w.Wait(context.Background(), nil, 20*time.Millisecond, func(ctx context.Context, input interface{}) (interface{}, error) {
		return map[string]interface{}{"status": "PENDING"}, nil
	})
	if err == nil {
		t.Fatal("expected budget-exhausted error")
	}
}

func TestWaiterCanceledContext(t *testing.T) {
	cfg := Config{
		Acceptors: []Acceptor{
			{State: SuccessState, Matcher: JMESPathMatcher{Path: "output.status", Expected: "RUNNING", Comparator: StringEquals}},
		},
		MinDelay: 50 * time.Millisecond,
		MaxDelay: time.Second,
	}
	w := NewWaiter(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Wait(ctx, nil, time.Minute, func(ctx context.Context, input interface{}) (interface{}, error) {
		return map[string]interface{}{"status": "PENDING"}, nil
	})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
