// =============================================================================
// listing.go - リスティング取得（プロフィールページ）
// =============================================================================
//
// プロフィールページを1回だけ取得し、論文一覧テーブルの各行から
// PublicationSummary を取り出します。
//
// 【HTML構造】
//
//	#gsc_a_b .gsc_a_tr           - 1論文 = 1行
//	  .gsc_a_t a                 - タイトルと詳細ページへの相対参照
//	  .gsc_a_t .gs_gray [0]      - 著者
//	  .gsc_a_t .gs_gray [1]      - 掲載誌 + 年
//	    .gs_oph                  - ", 2020" のような年（あればこちらを優先）
//	  .gsc_a_y                   - 年の列
//
// 取得・解析のエラーは呼び出し元にそのまま返す（致命的エラー、リトライなし）。
//
// =============================================================================
package pipeline

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

const (
	selListingRow   = "#gsc_a_b .gsc_a_tr"
	selListingTitle = ".gsc_a_t a"
	selListingGray  = ".gsc_a_t .gs_gray"
	selListingYear  = ".gsc_a_y"
	selVenueYear    = ".gs_oph"
)

// reLeadingComma は .gs_oph の先頭 ", " を取り除く（最初の1つだけ）
var reLeadingComma = regexp.MustCompile(`,\s*`)

// ListingFetcher はプロフィールページから論文一覧を取得する
type ListingFetcher struct {
	cfg     Config
	fetcher PageFetcher
	log     *zap.Logger
}

// NewListingFetcher は ListingFetcher を生成する
func NewListingFetcher(cfg Config, fetcher PageFetcher, log *zap.Logger) *ListingFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListingFetcher{cfg: cfg, fetcher: fetcher, log: log}
}

// Fetch はリスティングページを取得して行順に PublicationSummary を返す
func (l *ListingFetcher) Fetch(ctx context.Context) ([]PublicationSummary, error) {
	u := l.cfg.ListingURL()
	l.log.Debug("fetching listing page", zap.String("url", u))

	doc, err := l.fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}

	summaries := ParseListing(doc)
	l.log.Debug("parsed listing page", zap.Int("rows", len(summaries)))
	return summaries, nil
}

// ParseListing はリスティングページの全行を PublicationSummary に変換する
//
// 行が無ければ空スライスを返す。
func ParseListing(doc DocumentQuery) []PublicationSummary {
	rows := doc.FindAll(selListingRow)
	out := make([]PublicationSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, parseListingRow(row))
	}
	return out
}

// parseListingRow は1行分を取り出す
func parseListingRow(row Node) PublicationSummary {
	// タイトルは一致した全アンカーのテキストを連結、参照は先頭アンカーの href
	var ref string
	if links := row.FindAll(selListingTitle); len(links) > 0 {
		ref, _ = links[0].Attribute("href")
	}
	title := allText(row, selListingTitle)

	gray := row.FindAll(selListingGray)

	return PublicationSummary{
		Title:           title,
		DetailReference: ref,
		RawAuthorsText:  nthText(gray, 0),
		RawVenueBlock:   nthText(gray, 1),
		Year:            rowYear(row),
	}
}

// rowYear は年を決める
//
// 掲載誌ブロック内の .gs_oph（", 2020"）があれば列の値より優先する。
func rowYear(row Node) string {
	year := allText(row, selListingYear)
	if inVenue := allText(row, selVenueYear); inVenue != "" {
		year = replaceFirst(reLeadingComma, inVenue, "")
	}
	return year
}

// replaceFirst は最初の一致だけを置換する
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
