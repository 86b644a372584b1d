package pipeline

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter は詳細ページ取得の前に順番を待つ
type RateLimiter interface {
	WaitTurn(ctx context.Context) error
}

// FixedPause は WaitTurn のたびに一定時間だけ待つ
//
// 待機は呼び出した時点から数えるので、直前のレスポンスが遅くても
// 次のリクエストの前には必ず pause 分の間が空く。
type FixedPause struct {
	pause time.Duration
}

// NewFixedPause は pause だけ待つ RateLimiter を生成する
//
// pause <= 0 の場合は待機しない。
func NewFixedPause(pause time.Duration) *FixedPause {
	return &FixedPause{pause: pause}
}

// WaitTurn は pause が経過するか ctx が終了するまでブロックする
func (p *FixedPause) WaitTurn(ctx context.Context) error {
	if p.pause <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.pause)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("pause interrupted: %w", ctx.Err())
	}
}

// NopLimiter は待機しない RateLimiter（テスト用）
type NopLimiter struct{}

// WaitTurn は常に即座に返る
func (NopLimiter) WaitTurn(context.Context) error { return nil }
