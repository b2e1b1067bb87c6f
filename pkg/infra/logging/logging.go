// 指示: miu200521358
// Package logging は設定から zap ロガーを構築する。
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/miu200521358/mu_bodyscan/pkg/infra/config"
)

// New はログ設定に従って zap ロガーを生成する。
// Development が真なら開発用のコンソール出力、偽なら本番用のJSON出力を使う。
func New(cfg config.LogConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("ロガーの生成に失敗しました: %w", err)
	}
	return logger, nil
}

// ParseLevel はレベル名を zap のレベルへ変換する。未知の名前は info とする。
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
