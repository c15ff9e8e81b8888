package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterAllowConsumesBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 3})
	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("Allow() = false within burst (call %d)", i+1)
		}
	}
	if rl.Allow() {
		t.Error("Allow() = true after burst exhausted")
	}
}

func TestRateLimiterExecute(t *testing.T) {
	limited := 0
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:    1,
		Burst:   1,
		OnLimit: func(name string) { limited++ },
	})
	if err := rl.Execute(func() error { return nil }); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	err := rl.Execute(func() error { return nil })
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Execute() error = %v, want ErrRateLimited", err)
	}
	if limited != 1 {
		t.Errorf("OnLimit calls = %d, want 1", limited)
	}
}

func TestRateLimiterWaitBlocksUntilRefill(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 100, Burst: 1})
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("second Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("second Wait() returned after %v, expected a refill delay", elapsed)
	}
}

func TestRateLimiterWaitHonorsContext(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.1, Burst: 1})
	_ = rl.Wait(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := rl.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRateLimiterTokensRefill(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 100, Burst: 2})
	rl.Allow()
	rl.Allow()
	time.Sleep(30 * time.Millisecond)
	if got := rl.Tokens(); got < 1 {
		t.Errorf("Tokens() = %v after refill window, want >= 1", got)
	}
}
