package passive

import (
	"context"
	"time"

	"github.com/dnsweep/dnsweep/progress"
)

// backoffDelay is the delay before retry attempt n (first retry is 1):
// 2^n seconds.
func backoffDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// sleep is swapped out by tests that assert on backoff behavior.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DiscoverWithRetry re-invokes the source with exponential backoff
// until it succeeds or maxRetries is exceeded, then surfaces the last
// error. Works on any Source; the backoff policy is not the source's
// concern.
func DiscoverWithRetry(ctx context.Context, src Source, domain string, maxRetries int, reporter progress.Reporter) ([]string, error) {
	if reporter == nil {
		reporter = progress.Discard
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		names, err := src.Discover(ctx, domain)
		if err == nil {
			return names, nil
		}
		lastErr = err

		if attempt > maxRetries {
			return nil, lastErr
		}
		reporter.Error("%s request failed (attempt %d/%d): %v", src.Name(), attempt, maxRetries+1, err)
		if err := sleep(ctx, backoffDelay(attempt)); err != nil {
			return nil, lastErr
		}
	}
}
