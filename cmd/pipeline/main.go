// =============================================================================
// main.go - scholar-relay パイプラインのエントリーポイント
// =============================================================================
//
// Google Scholar のプロフィールページから論文一覧を取得し、
// 論文ごとに外部ソースリンクを解決して data/publications.json に書き出すCLIです。
//
// =============================================================================
// 【処理フロー】
// =============================================================================
//
//   ┌─────────────┐    ┌─────────────┐    ┌─────────────┐
//   │  1. 設定    │ -> │  2. 収集    │ -> │  3. 出力    │
//   │  読み込み   │    │  スクレイピ │    │  JSON/Notion│
//   └─────────────┘    └─────────────┘    └─────────────┘
//          │                  │                  │
//          v                  v                  v
//   .env読み込み        リスト1回 +         publications.json
//   CLIフラグ解析       詳細ページ(2秒間隔)  (任意) Notion保存
//
// =============================================================================
// 【使用例】
// =============================================================================
//
//	SCHOLAR_ID=abcdEFGAAAAJ ./pipeline
//	./pipeline --scholar-id abcdEFGAAAAJ --stdout
//	./pipeline --notion-clip --notion-database-id <id>
//
// エラー・進捗は標準エラー出力、--stdout 指定時の JSON のみ標準出力。
//
// =============================================================================
package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// .env が無くても環境変数だけで続行する
	if err := godotenv.Load(); err != nil {
		warnf(".env file not loaded: %v (using environment variables only)", err)
	}

	if err := newRootCommand().Execute(); err != nil {
		fatalf("%v", err)
	}
}
