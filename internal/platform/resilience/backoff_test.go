// internal/platform/resilience/backoff_test.go
package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/testutil"
)

func fastBackoff(attempts int) Backoff {
	return Backoff{
		MaxAttempts: attempts,
		Base:        time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := fastBackoff(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	testutil.AssertNoError(t, err, "immediate success")
	testutil.AssertEqual(t, calls, 1, "no extra attempts after success")
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := fastBackoff(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	testutil.AssertNoError(t, err, "eventual success")
	testutil.AssertEqual(t, calls, 3, "retried until success")
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("persistent")
	err := fastBackoff(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	testutil.AssertError(t, err, "exhausted attempts")
	testutil.AssertTrue(t, errors.Is(err, wantErr), "last error returned")
	testutil.AssertEqual(t, calls, 3, "attempt budget respected")
}

func TestDoStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	b := Backoff{MaxAttempts: 5, Base: time.Hour, Multiplier: 2.0}
	errCh := make(chan error, 1)
	go func() {
		errCh <- b.Do(ctx, func(ctx context.Context) error {
			calls++
			return errors.New("fail")
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		testutil.AssertTrue(t, errors.Is(err, context.Canceled), "cancellation wins over retry wait")
		testutil.AssertEqual(t, calls, 1, "no attempt after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancel")
	}
}

func TestDoZeroValueDefaults(t *testing.T) {
	calls := 0
	err := Backoff{}.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	testutil.AssertNoError(t, err, "zero-value backoff still runs once")
	testutil.AssertEqual(t, calls, 1, "single attempt")
}
