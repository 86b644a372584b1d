package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scholar-relay/internal/logger"
	"scholar-relay/internal/pipeline"
)

// newRootCommand はルートコマンドを組み立てる
func newRootCommand() *cobra.Command {
	cfg := &CLIConfig{}

	cmd := &cobra.Command{
		Use:           "pipeline",
		Short:         "Fetch publications from a Google Scholar profile into data/publications.json",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogging(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	bindFlags(cmd, cfg)
	return cmd
}

// run はパイプラインを実行して結果を書き出す
//
// リスティング段階の失敗・書き込み失敗・Notion設定の不備はエラーとして返し、ファイルは書かない。
func run(ctx context.Context, cfg *CLIConfig) error {
	pcfg := cfg.PipelineConfig()

	p, err := pipeline.New(pcfg, pipeline.WithLogger(zapLogger))
	if err != nil {
		return err
	}

	// Notion の設定不備はスクレイピング前に検出する
	if cfg.Output.NotionClip {
		if err := checkNotionSettings(cfg.Output); err != nil {
			return err
		}
	}

	infof("fetching publications for %s", pcfg.ScholarID)
	records, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("fetching publications: %w", err)
	}

	if cfg.Output.Stdout {
		if err := pipeline.WriteRecordsTo(os.Stdout, records); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		path, err := pipeline.WriteRecords(pcfg.OutputDir, pcfg.OutputFile, records)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		infof("wrote %s", path)
	}
	infof("Successfully fetched %d publications", len(records))

	// 出力ファイルは書き込み済みなので、Notion 側の失敗は警告にとどめる
	if cfg.Output.NotionClip {
		if err := clipToNotion(ctx, cfg.Output, records); err != nil {
			warnf("Notion clipping failed: %v", err)
		}
	}
	return nil
}

// checkNotionSettings は --notion-clip に必要な設定が揃っているか確認する
func checkNotionSettings(out OutputConfig) error {
	if os.Getenv("NOTION_TOKEN") == "" {
		return fmt.Errorf("NOTION_TOKEN environment variable is required for Notion integration")
	}
	if out.NotionDatabaseID == "" && out.NotionPageID == "" {
		return fmt.Errorf("--notion-page-id or --notion-database-id is required with --notion-clip")
	}
	return nil
}

// clipToNotion はレコードを Notion データベースに保存する
func clipToNotion(ctx context.Context, out OutputConfig, records []pipeline.PublicationRecord) error {
	token := os.Getenv("NOTION_TOKEN")
	if token == "" {
		return fmt.Errorf("NOTION_TOKEN environment variable is required for Notion integration")
	}

	clipper, err := pipeline.NewNotionClipper(token, out.NotionDatabaseID, zapLogger)
	if err != nil {
		return fmt.Errorf("creating Notion clipper: %w", err)
	}

	if out.NotionDatabaseID == "" {
		if out.NotionPageID == "" {
			return fmt.Errorf("--notion-page-id is required when creating a new Notion database")
		}
		dbID, err := clipper.CreateDatabase(ctx, out.NotionPageID)
		if err != nil {
			return fmt.Errorf("creating Notion database: %w", err)
		}
		if err := appendToEnvFile(".env", "NOTION_DATABASE_ID", dbID); err != nil {
			warnf("failed to save database ID to .env: %v (add NOTION_DATABASE_ID=%s manually)", err, dbID)
		}
	}

	clipped := pipeline.ClipAll(ctx, clipper, records, zapLogger)
	infof("Clipped %d of %d publications to Notion", clipped, len(records))
	return nil
}

// setupLogging はフラグに従ってロガーを作り直す
func setupLogging(cfg logger.Config) error {
	z, err := logger.New(cfg)
	if err != nil {
		return err
	}
	setLogger(z)
	zapLogger.Debug("logger configured", zap.String("level", cfg.Level), zap.String("format", cfg.Format))
	return nil
}
