// =============================================================================
// logger.go - 構造化ログ
// =============================================================================
//
// zap ベースのロガーを生成します。
//
// 【フォーマット】
//   - console: 人間向け（CLI実行時のデフォルト）
//   - json:    ログ集約向け（Lambda実行時のデフォルト）
//
// 環境変数 DEBUG_SCRAPING=1 が設定されている場合、レベルは debug に上書きされる。
//
// =============================================================================
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config はロガーの設定
type Config struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// SetDefaults は空のフィールドにデフォルト値を設定する
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
}

// New は設定に従って *zap.Logger を生成する
//
// 出力先は常に標準エラー出力（stdoutはJSON出力専用）。
func New(cfg Config) (*zap.Logger, error) {
	cfg.SetDefaults()

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if os.Getenv("DEBUG_SCRAPING") != "" {
		level = zapcore.DebugLevel
	}

	var zapCfg zap.Config
	switch strings.ToLower(cfg.Format) {
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q (want console|json)", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	z, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return z, nil
}

// ParseLevel は文字列のログレベルを zapcore.Level に変換する
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
