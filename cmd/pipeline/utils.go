package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"scholar-relay/internal/logger"
)

var (
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
)

func init() {
	z, err := logger.New(logger.Config{})
	if err != nil {
		z = zap.NewNop()
	}
	setLogger(z)
}

func setLogger(z *zap.Logger) {
	zapLogger = z
	sugar = z.Sugar()
}

func warnf(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func infof(format string, args ...any) {
	sugar.Infof(format, args...)
}

func errorf(format string, args ...any) {
	sugar.Errorf(format, args...)
}

// fatalf はエラーを出力して終了コード1で終了する
func fatalf(format string, args ...any) {
	errorf(format, args...)
	_ = zapLogger.Sync()
	os.Exit(1)
}

// appendToEnvFile は key=value を .env に追記（既存キーは上書き）する
func appendToEnvFile(path, key, value string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		env = map[string]string{}
	}
	env[key] = value
	return godotenv.Write(env, path)
}
