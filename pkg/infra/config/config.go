// 指示: miu200521358
// Package config は既定値・YAMLファイル・環境変数の順に設定を重ねて読み込む。
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
)

// 環境変数名一覧。
const (
	EnvLogLevel  = "BODYSCAN_LOG_LEVEL"
	EnvHTTPAddr  = "BODYSCAN_HTTP_ADDR"
	EnvVariant   = "BODYSCAN_VARIANT"
	EnvFrameRate = "BODYSCAN_FRAME_RATE"
)

// ScanConfig はスキャン掃引の設定を表す。
type ScanConfig struct {
	Duration time.Duration `yaml:"duration" validate:"gt=0"`
	TopY     float64       `yaml:"top_y"`
	BottomY  float64       `yaml:"bottom_y" validate:"ltfield=TopY"`
}

// HighlightConfig はハイライトアンカーの設定を表す。
type HighlightConfig struct {
	DefaultRadius    float64 `yaml:"default_radius" validate:"gt=0"`
	HoverRadiusScale float64 `yaml:"hover_radius_scale" validate:"gt=0"`
	SentinelY        float64 `yaml:"sentinel_y" validate:"ltfield=ActiveThresholdY"`
	ActiveThresholdY float64 `yaml:"active_threshold_y"`
}

// HostConfig は状態ループの設定を表す。
type HostConfig struct {
	FrameRate      int    `yaml:"frame_rate" validate:"min=1,max=240"`
	DefaultVariant string `yaml:"default_variant" validate:"oneof=male female"`
}

// ServerConfig はHTTP境界の設定を表す。
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig はログ出力の設定を表す。
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Config はアプリケーション全体の設定を表す。
type Config struct {
	Scan      ScanConfig      `yaml:"scan"`
	Highlight HighlightConfig `yaml:"highlight"`
	Host      HostConfig      `yaml:"host"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	// Assets はバリアント名からスケルトン資産ファイル (.glb/.vrm/.gltf) への対応。
	Assets map[string]string `yaml:"assets" validate:"dive,keys,oneof=male female,endkeys,required"`
}

// Default は既定設定を返す。
func Default() *Config {
	settings := minteractor.DefaultSettings()
	return &Config{
		Scan: ScanConfig{
			Duration: settings.Scan.Duration,
			TopY:     settings.Scan.TopY,
			BottomY:  settings.Scan.BottomY,
		},
		Highlight: HighlightConfig{
			DefaultRadius:    region.DefaultHighlightRadius,
			HoverRadiusScale: settings.Highlight.HoverRadiusScale,
			SentinelY:        settings.Highlight.SentinelY,
			ActiveThresholdY: settings.Highlight.ActiveThresholdY,
		},
		Host: HostConfig{
			FrameRate:      60,
			DefaultVariant: string(model.VariantMale),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Assets: map[string]string{},
	}
}

// Load は path のYAMLを既定値に重ね、環境変数を適用して検証する。
// path が空、またはファイルが存在しない場合は既定値から始める。
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("設定ファイルを開けません: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		// 空ファイルは既定値のまま扱う。
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("設定ファイルの解析に失敗しました: %s: %w", path, err)
	}
	return nil
}

// ApplyEnv は環境変数で設定を上書きする。lookup は os.LookupEnv と同じ形。
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if cfg == nil || lookup == nil {
		return nil
	}
	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if value, ok := lookup(EnvHTTPAddr); ok && strings.TrimSpace(value) != "" {
		cfg.Server.Addr = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvVariant); ok && strings.TrimSpace(value) != "" {
		cfg.Host.DefaultVariant = strings.ToLower(strings.TrimSpace(value))
	}
	if value, ok := lookup(EnvFrameRate); ok && strings.TrimSpace(value) != "" {
		rate, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s が整数ではありません: %w", EnvFrameRate, err)
		}
		cfg.Host.FrameRate = rate
	}
	return nil
}

// Validate は構造体タグに従って設定を検証する。
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("設定の検証に失敗しました: %w", err)
	}
	return nil
}

// UsecaseSettings はユースケース用の設定へ変換する。
func (c *Config) UsecaseSettings() minteractor.Settings {
	return minteractor.Settings{
		Scan: minteractor.ScanSettings{
			Duration: c.Scan.Duration,
			TopY:     c.Scan.TopY,
			BottomY:  c.Scan.BottomY,
		},
		Highlight: minteractor.HighlightSettings{
			DefaultRadius:    c.Highlight.DefaultRadius,
			HoverRadiusScale: c.Highlight.HoverRadiusScale,
			SentinelY:        c.Highlight.SentinelY,
			ActiveThresholdY: c.Highlight.ActiveThresholdY,
		},
	}
}

// DefaultVariant は既定バリアントを返す。
func (c *Config) DefaultVariant() model.Variant {
	variant, ok := model.ParseVariant(c.Host.DefaultVariant)
	if !ok {
		return model.VariantMale
	}
	return variant
}

// FrameInterval はフレーム間隔を返す。
func (c *Config) FrameInterval() time.Duration {
	if c.Host.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Host.FrameRate)
}
