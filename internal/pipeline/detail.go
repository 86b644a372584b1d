// =============================================================================
// detail.go - 詳細ページからの外部リンク解決
// =============================================================================
//
// 【リンク選択ルール】
//
//  1. 主ゾーン（タイトル横の外部リンク）を文書順に走査
//     - 最初に見つかったリンクを保持
//     - プレプリントホスト（arxiv.org）を含むリンクがあれば位置に関係なく優先
//  2. 主ゾーンで見つからなければ、値ゾーン（.gsc_oci_value a）から
//     リスティングホスト以外を指す最初のリンクを採用して走査終了
//  3. 相対URLは BaseURL で絶対URLに解決
//
// 取得・解析エラーはログに残して空文字列を返す（実行全体は止めない）。
//
// =============================================================================
package pipeline

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	selPrimaryLinks = "#gsc_oci_title_gg a, a.gsc_oci_title_link"
	selValueLinks   = ".gsc_oci_value a"
)

// DetailResolver は詳細ページごとに外部ソースリンクを解決する
type DetailResolver struct {
	cfg     Config
	fetcher PageFetcher
	limiter RateLimiter
	log     *zap.Logger
}

// NewDetailResolver は DetailResolver を生成する
//
// limiter が nil の場合は待機しない。
func NewDetailResolver(cfg Config, fetcher PageFetcher, limiter RateLimiter, log *zap.Logger) *DetailResolver {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DetailResolver{cfg: cfg, fetcher: fetcher, limiter: limiter, log: log}
}

// Resolve は詳細ページを取得して外部リンクを返す
//
// title はログ用。エラー時は ResolvedLink{Source: ""}。
func (r *DetailResolver) Resolve(ctx context.Context, ref, title string) ResolvedLink {
	if err := r.limiter.WaitTurn(ctx); err != nil {
		r.log.Warn("rate limiter wait failed",
			zap.String("title", title),
			zap.Error(err),
		)
		return ResolvedLink{}
	}

	u := r.cfg.DetailURL(ref)
	doc, err := r.fetcher.Fetch(ctx, u)
	if err != nil {
		r.log.Warn("failed to fetch detail page",
			zap.String("title", title),
			zap.String("url", u),
			zap.Error(err),
		)
		return ResolvedLink{}
	}

	return ResolvedLink{Source: SelectSourceLink(doc, r.cfg.BaseURL, r.cfg.PreprintMarker)}
}

// SelectSourceLink は詳細ページから外部リンクを1つ選ぶ
//
// baseURL が解析できない場合は空文字列。
func SelectSourceLink(doc DocumentQuery, baseURL, preprintMarker string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	var first, preprint string
	for _, a := range doc.FindAll(selPrimaryLinks) {
		u := absoluteLink(base, a)
		if u == nil {
			continue
		}
		abs := u.String()
		if first == "" {
			first = abs
		}
		if preprint == "" && preprintMarker != "" && strings.Contains(abs, preprintMarker) {
			preprint = abs
		}
	}
	if preprint != "" {
		return preprint
	}
	if first != "" {
		return first
	}

	listingHost := strings.ToLower(base.Hostname())
	for _, a := range doc.FindAll(selValueLinks) {
		u := absoluteLink(base, a)
		if u == nil || strings.ToLower(u.Hostname()) == listingHost {
			continue
		}
		return u.String()
	}
	return ""
}

// absoluteLink はアンカーの href を base で解決する（href が無い・解析不能なら nil）
func absoluteLink(base *url.URL, a Node) *url.URL {
	href, ok := a.Attribute("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return nil
	}
	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return base.ResolveReference(u)
}
