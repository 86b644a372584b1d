package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedPauseWaitsEveryTurn(t *testing.T) {
	const pause = 40 * time.Millisecond
	l := NewFixedPause(pause)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		start := time.Now()
		require.NoError(t, l.WaitTurn(ctx))
		assert.GreaterOrEqual(t, time.Since(start), pause)
	}
}

func TestFixedPauseZeroDoesNotWait(t *testing.T) {
	l := NewFixedPause(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.WaitTurn(context.Background()))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFixedPauseCanceled(t *testing.T) {
	l := NewFixedPause(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := l.WaitTurn(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNopLimiter(t *testing.T) {
	var l RateLimiter = NopLimiter{}
	assert.NoError(t, l.WaitTurn(context.Background()))
}

// slowFetcher は fakeFetcher の応答を latency だけ遅らせ、各リクエストの開始・終了時刻を記録する
type slowFetcher struct {
	*fakeFetcher
	latency time.Duration

	mu     sync.Mutex
	starts []time.Time
	ends   []time.Time
}

func (f *slowFetcher) Fetch(ctx context.Context, u string) (DocumentQuery, error) {
	f.mu.Lock()
	f.starts = append(f.starts, time.Now())
	f.mu.Unlock()

	time.Sleep(f.latency)
	doc, err := f.fakeFetcher.Fetch(ctx, u)

	f.mu.Lock()
	f.ends = append(f.ends, time.Now())
	f.mu.Unlock()
	return doc, err
}

func TestRunPausesAfterSlowResponses(t *testing.T) {
	const (
		latency = 60 * time.Millisecond
		pause   = 40 * time.Millisecond
	)

	cfg := testConfig()
	cfg.Delay = pause

	base := newFakeFetcher()
	base.pages[cfg.ListingURL()] = listingHTML
	f := &slowFetcher{fakeFetcher: base, latency: latency}

	// 既定の RateLimiter（cfg.Delay の FixedPause）を使う
	p, err := New(cfg, WithFetcher(f))
	require.NoError(t, err)

	records, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// リスティング1回 + 詳細3回
	require.Len(t, f.starts, 4)
	for i := 1; i < len(f.starts); i++ {
		gap := f.starts[i].Sub(f.ends[i-1])
		assert.GreaterOrEqual(t, gap, pause, "gap before request %d", i)
	}
}
