package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedStatus は全ての *StatusError がラップするセンチネル
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// StatusError は2xx以外のレスポンス
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %s", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// PageFetcher はURLを取得して DocumentQuery を返す
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (DocumentQuery, error)
}

// HTTPFetcher は固定ヘッダー付きでページを取得する PageFetcher
type HTTPFetcher struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
}

// NewHTTPFetcher は設定から HTTPFetcher を生成する
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	return &HTTPFetcher{
		client:         cfg.httpClient(),
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
	}
}

// Fetch は指定URLからHTMLドキュメントを取得してパースする
//
// 全リクエストに同じヘッダー（Accept-Charset, Accept-Language, User-Agent）を付ける。
// 200番台以外は *StatusError を返す。
func (f *HTTPFetcher) Fetch(ctx context.Context, u string) (DocumentQuery, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept-Charset", "UTF-8")
	if f.acceptLanguage != "" {
		req.Header.Set("Accept-Language", f.acceptLanguage)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return ParseDocument(resp.Body)
}
