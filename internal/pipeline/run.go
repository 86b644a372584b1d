// =============================================================================
// run.go - パイプライン本体
// =============================================================================
//
// 【処理フロー】
//
//	┌─────────────┐    ┌─────────────┐    ┌─────────────┐
//	│ 1. リスト   │ -> │ 2. 詳細     │ -> │ 3. 組み立て │
//	│ 取得(1回)   │    │ 解決(行ごと)│    │ クリーンアップ│
//	└─────────────┘    └─────────────┘    └─────────────┘
//
//   - 1つのゴルーチンで順番に実行し、同時に飛ぶリクエストは常に1つ
//   - 詳細ページ取得の前に RateLimiter.WaitTurn で待機
//   - 詳細ページの失敗は sourceLink "" として記録し、次の行へ進む
//   - リスティングの失敗はそのままエラーとして返す
//
// =============================================================================
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Pipeline はリスティング取得・詳細解決・組み立てを順に実行する
type Pipeline struct {
	cfg      Config
	fetcher  PageFetcher
	limiter  RateLimiter
	log      *zap.Logger
	listing  *ListingFetcher
	resolver *DetailResolver
}

// Option は Pipeline の依存を差し替える
type Option func(*Pipeline)

// WithFetcher はページ取得の実装を差し替える（テスト用）
func WithFetcher(f PageFetcher) Option {
	return func(p *Pipeline) {
		p.fetcher = f
	}
}

// WithLimiter は RateLimiter を差し替える
func WithLimiter(l RateLimiter) Option {
	return func(p *Pipeline) {
		p.limiter = l
	}
}

// WithLogger はロガーを設定する
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// New は設定を検証して Pipeline を生成する
//
// デフォルトでは HTTPFetcher と cfg.Delay だけ待つ FixedPause を使う。
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.fetcher == nil {
		p.fetcher = NewHTTPFetcher(cfg)
	}
	if p.limiter == nil {
		p.limiter = NewFixedPause(cfg.Delay)
	}

	p.listing = NewListingFetcher(cfg, p.fetcher, p.log)
	p.resolver = NewDetailResolver(cfg, p.fetcher, p.limiter, p.log)
	return p, nil
}

// Run はパイプラインを1回実行してリスティング順のレコードを返す
//
// 戻り値の長さはリスティングの行数と常に一致する。
func (p *Pipeline) Run(ctx context.Context) ([]PublicationRecord, error) {
	summaries, err := p.listing.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]PublicationRecord, 0, len(summaries))
	for _, s := range summaries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted after %d of %d records: %w", len(records), len(summaries), err)
		}

		link := p.resolver.Resolve(ctx, s.DetailReference, s.Title)
		rec := p.cfg.Assemble(s, link)
		records = append(records, rec)

		p.log.Info("processed publication",
			zap.String("title", rec.Title),
			zap.String("source", rec.SourceLink),
		)
	}

	p.log.Info("fetched publications", zap.Int("count", len(records)))
	return records, nil
}
