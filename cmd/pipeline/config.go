// =============================================================================
// config.go - CLI設定
// =============================================================================
//
// このファイルはCLIフラグの解析と pipeline.Config への変換を行います。
//
// 【設定グループ】
//   - InputConfig:  プロフィールID・リクエスト設定
//   - OutputConfig: 出力先・Notion設定
//   - LogConfig:    ログ設定
//
// 環境変数はここでだけ読み、pipeline パッケージには値として渡す。
//
// =============================================================================
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"scholar-relay/internal/logger"
	"scholar-relay/internal/pipeline"
)

// CLIConfig はCLIの全設定を保持する
type CLIConfig struct {
	Input  InputConfig
	Output OutputConfig
	Log    logger.Config
}

// InputConfig はスクレイピング対象とリクエストに関する設定
type InputConfig struct {
	// ScholarID はプロフィールID（デフォルト: $SCHOLAR_ID）
	ScholarID string

	// BaseURL はスクレイピング対象のホスト
	BaseURL string

	// Language はリスティングURLの hl パラメータ
	Language string

	// Delay は詳細ページ取得の間隔
	Delay time.Duration

	// Timeout はHTTPタイムアウト
	Timeout time.Duration
}

// OutputConfig は出力に関する設定
type OutputConfig struct {
	// Dir / File は書き出し先（data/publications.json）
	Dir  string
	File string

	// Stdout がtrueの場合、ファイルではなく標準出力に書く
	Stdout bool

	// NotionClip がtrueの場合、Notionにも保存
	NotionClip bool

	// NotionPageID は新規データベース作成時の親ページID
	NotionPageID string

	// NotionDatabaseID は既存のデータベースID
	NotionDatabaseID string
}

// bindFlags はコマンドにフラグを登録する
func bindFlags(cmd *cobra.Command, cfg *CLIConfig) {
	f := cmd.Flags()

	// Input flags
	f.StringVar(&cfg.Input.ScholarID, "scholar-id", os.Getenv("SCHOLAR_ID"), "Google Scholar profile ID (default: $SCHOLAR_ID)")
	f.StringVar(&cfg.Input.BaseURL, "base-url", pipeline.DefaultBaseURL, "scheme and host of the profile site")
	f.StringVar(&cfg.Input.Language, "lang", pipeline.DefaultLanguage, "hl parameter for the listing page")
	f.DurationVar(&cfg.Input.Delay, "delay", pipeline.DefaultDelay, "pause before every detail page request")
	f.DurationVar(&cfg.Input.Timeout, "timeout", pipeline.DefaultTimeout, "HTTP request timeout")

	// Output flags
	f.StringVar(&cfg.Output.Dir, "out-dir", pipeline.DefaultOutputDir, "output directory (created if absent)")
	f.StringVar(&cfg.Output.File, "out-file", pipeline.DefaultOutputFile, "output file name inside --out-dir")
	f.BoolVar(&cfg.Output.Stdout, "stdout", false, "write JSON to stdout instead of the output file")
	f.BoolVar(&cfg.Output.NotionClip, "notion-clip", false, "clip publications to a Notion database")
	f.StringVar(&cfg.Output.NotionPageID, "notion-page-id", os.Getenv("NOTION_PAGE_ID"), "parent page ID for creating a new Notion database")
	f.StringVar(&cfg.Output.NotionDatabaseID, "notion-database-id", os.Getenv("NOTION_DATABASE_ID"), "existing Notion database ID")

	// Log flags
	f.StringVar(&cfg.Log.Level, "log-level", "info", "log level: debug|info|warn|error")
	f.StringVar(&cfg.Log.Format, "log-format", "console", "log format: console|json")
}

// PipelineConfig はCLI設定を pipeline.Config に変換する
func (c *CLIConfig) PipelineConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.ScholarID = c.Input.ScholarID
	if c.Input.BaseURL != "" {
		cfg.BaseURL = c.Input.BaseURL
	}
	cfg.Language = c.Input.Language
	cfg.Delay = c.Input.Delay
	cfg.Timeout = c.Input.Timeout
	cfg.OutputDir = c.Output.Dir
	cfg.OutputFile = c.Output.File
	return cfg
}
