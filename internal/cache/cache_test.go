package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetComputesOnceWithinTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLWithClock[int](5*time.Minute, func() time.Time { return now })

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.Get(compute)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if got != 42 {
			t.Errorf("got %d, want 42", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestGetRecomputesAfterExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLWithClock[int](5*time.Minute, func() time.Time { return now })

	calls := 0
	compute := func() (int, error) {
		calls++
		return calls, nil
	}

	if got, _ := c.Get(compute); got != 1 {
		t.Errorf("got %d, want 1", got)
	}

	now = now.Add(5*time.Minute + time.Second)
	if got, _ := c.Get(compute); got != 2 {
		t.Errorf("got %d after expiry, want 2", got)
	}
}

func TestInvalidateForcesRecompute(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLWithClock[string](5*time.Minute, func() time.Time { return now })

	calls := 0
	compute := func() (string, error) {
		calls++
		return "data", nil
	}

	if _, err := c.Get(compute); err != nil {
		t.Fatalf("get: %v", err)
	}
	c.Invalidate()
	if _, err := c.Get(compute); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 2 {
		t.Errorf("compute called %d times, want 2", calls)
	}
}

func TestComputeErrorNotCached(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLWithClock[int](5*time.Minute, func() time.Time { return now })

	boom := errors.New("boom")
	if _, err := c.Get(func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	got, err := c.Get(func() (int, error) { return 7, nil })
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != 7 {
		t.Errorf("got %d, want 7 (error must not be cached)", got)
	}
}
