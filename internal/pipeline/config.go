// =============================================================================
// config.go - パイプライン設定
// =============================================================================
//
// このファイルはスクレイピングパイプラインの設定を定義します。
//
// 【設定の流れ】
//   - DefaultConfig() でデフォルト値を生成
//   - cmd/ 側（CLIフラグ、環境変数、Lambda）で上書き
//   - pipeline.New(cfg, ...) に明示的に渡す（パッケージ内で環境変数は読まない）
//
// =============================================================================
package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMissingScholarID はプロフィールIDが未設定の場合のエラー
var ErrMissingScholarID = errors.New("scholar ID is required (set SCHOLAR_ID or --scholar-id)")

// =============================================================================
// デフォルト値
// =============================================================================

const (
	// DefaultBaseURL はリスティング・詳細ページ共通のホスト
	DefaultBaseURL = "https://scholar.google.com"

	// DefaultLanguage はリスティングURLの hl パラメータ
	DefaultLanguage = "de"

	// DefaultAcceptLanguage は全リクエストに付与する Accept-Language
	DefaultAcceptLanguage = "de-DE,de;q=0.9"

	// DefaultUserAgent はブロッキング回避用のブラウザ風 User-Agent
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultDelay は詳細ページ取得前に挟む待機時間
	DefaultDelay = 2 * time.Second

	// DefaultTimeout はHTTPリクエストのタイムアウト
	DefaultTimeout = 30 * time.Second

	// DefaultPreprintMarker は優先するプレプリントリポジトリのホスト
	DefaultPreprintMarker = "arxiv.org"

	// DefaultVenueMarker は venue から除去する定型文字列
	DefaultVenueMarker = "[Google Scholar]"

	// DefaultOutputDir / DefaultOutputFile は出力先
	DefaultOutputDir  = "data"
	DefaultOutputFile = "publications.json"
)

// =============================================================================
// 設定構造体
// =============================================================================

// Config はパイプラインの全設定を保持する
type Config struct {
	// ScholarID はプロフィールID（リスティングURLの user パラメータ）
	ScholarID string

	// BaseURL は相対参照の解決と scholarLink 生成に使う
	BaseURL string

	// Language はリスティングURLの hl パラメータ
	Language string

	// AcceptLanguage / UserAgent は全リクエスト共通のヘッダー
	AcceptLanguage string
	UserAgent      string

	// Delay は詳細ページ取得ごとの最小間隔
	Delay time.Duration

	// Timeout はHTTPタイムアウト（Client未指定時に使用）
	Timeout time.Duration

	// Client は共有HTTPクライアント（nilならTimeoutから生成）
	Client *http.Client

	// PreprintMarker を含むURLは他の候補より優先される
	PreprintMarker string

	// VenueMarker は venue から取り除く文字列
	VenueMarker string

	// OutputDir / OutputFile は書き出し先
	OutputDir  string
	OutputFile string
}

// DefaultConfig はデフォルトの設定を返す
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Language:       DefaultLanguage,
		AcceptLanguage: DefaultAcceptLanguage,
		UserAgent:      DefaultUserAgent,
		Delay:          DefaultDelay,
		Timeout:        DefaultTimeout,
		PreprintMarker: DefaultPreprintMarker,
		VenueMarker:    DefaultVenueMarker,
		OutputDir:      DefaultOutputDir,
		OutputFile:     DefaultOutputFile,
	}
}

// Validate は必須項目とURLの形式をチェックする
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ScholarID) == "" {
		return ErrMissingScholarID
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q", c.BaseURL)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative: %s", c.Delay)
	}
	if c.OutputFile == "" {
		return errors.New("output file name is required")
	}
	return nil
}

// ListingURL はプロフィールIDからリスティングページのURLを組み立てる
func (c *Config) ListingURL() string {
	return fmt.Sprintf("%s/citations?user=%s&hl=%s",
		strings.TrimRight(c.BaseURL, "/"),
		url.QueryEscape(c.ScholarID),
		url.QueryEscape(c.Language),
	)
}

// DetailURL は相対参照に BaseURL を前置して絶対URLにする
func (c *Config) DetailURL(ref string) string {
	return strings.TrimRight(c.BaseURL, "/") + ref
}

// httpClient は共有クライアントを返す（未設定なら生成）
func (c *Config) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
