// =============================================================================
// Lambda: fetch-publications
// =============================================================================
//
// プロフィールページから論文を取得し、Notion DBに保存するLambda関数
//
// 環境変数:
//   - SCHOLAR_ID:         Google Scholar プロフィールID (必須)
//   - NOTION_TOKEN:       Notion API Token (必須)
//   - NOTION_DATABASE_ID: NotionデータベースID (必須)
//   - HL:                 リスティングの言語 (デフォルト: de)
//   - DELAY_MS:           詳細ページ取得の間隔ミリ秒 (デフォルト: 2000)
//   - LOG_LEVEL:          ログレベル (デフォルト: info)
//
// =============================================================================
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"scholar-relay/internal/logger"
	"scholar-relay/internal/pipeline"
)

// LambdaConfig は環境変数から読み込む設定
type LambdaConfig struct {
	ScholarID        string
	Language         string
	Delay            time.Duration
	NotionToken      string
	NotionDatabaseID string
	LogLevel         string
}

// Response はLambdaレスポンス
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Fetched    int    `json:"fetched"`
	Clipped    int    `json:"clipped"`
}

// Handler はLambdaのメインハンドラー
func Handler(ctx context.Context, _ any) (Response, error) {
	cfg := loadConfig()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "json"})
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	if err := validateConfig(cfg); err != nil {
		return Response{StatusCode: 400, Message: err.Error()}, err
	}

	log.Info("starting fetch-publications",
		zap.String("scholarID", cfg.ScholarID),
		zap.Duration("delay", cfg.Delay),
	)

	pcfg := pipeline.DefaultConfig()
	pcfg.ScholarID = cfg.ScholarID
	pcfg.Language = cfg.Language
	pcfg.Delay = cfg.Delay

	p, err := pipeline.New(pcfg, pipeline.WithLogger(log))
	if err != nil {
		return Response{StatusCode: 400, Message: err.Error()}, err
	}

	records, err := p.Run(ctx)
	if err != nil {
		log.Error("fetching publications failed", zap.Error(err))
		return Response{StatusCode: 500, Message: err.Error()}, err
	}

	if len(records) == 0 {
		return Response{StatusCode: 200, Message: "No publications found"}, nil
	}

	clipper, err := pipeline.NewNotionClipper(cfg.NotionToken, cfg.NotionDatabaseID, log)
	if err != nil {
		return Response{StatusCode: 500, Message: err.Error(), Fetched: len(records)}, err
	}
	clipped := pipeline.ClipAll(ctx, clipper, records, log)

	return Response{
		StatusCode: 200,
		Message:    fmt.Sprintf("Successfully fetched %d publications, clipped %d to Notion", len(records), clipped),
		Fetched:    len(records),
		Clipped:    clipped,
	}, nil
}

// loadConfig は環境変数から設定を読み込む
func loadConfig() LambdaConfig {
	delay := pipeline.DefaultDelay
	if ms := os.Getenv("DELAY_MS"); ms != "" {
		if val, err := strconv.Atoi(ms); err == nil && val >= 0 {
			delay = time.Duration(val) * time.Millisecond
		}
	}

	lang := os.Getenv("HL")
	if lang == "" {
		lang = pipeline.DefaultLanguage
	}

	return LambdaConfig{
		ScholarID:        os.Getenv("SCHOLAR_ID"),
		Language:         lang,
		Delay:            delay,
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}
}

// validateConfig は必須の環境変数をチェックする
func validateConfig(cfg LambdaConfig) error {
	if cfg.ScholarID == "" {
		return pipeline.ErrMissingScholarID
	}
	if cfg.NotionToken == "" {
		return fmt.Errorf("NOTION_TOKEN is required")
	}
	if cfg.NotionDatabaseID == "" {
		return fmt.Errorf("NOTION_DATABASE_ID is required")
	}
	return nil
}

func main() {
	lambda.Start(Handler)
}
