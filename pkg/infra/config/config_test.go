// 指示: miu200521358
package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/shader"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/config"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvLogLevel, config.EnvHTTPAddr, config.EnvVariant, config.EnvFrameRate} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bodyscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultMatchesUsecaseDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, minteractor.DefaultSettings(), cfg.UsecaseSettings())
	assert.Equal(t, model.VariantMale, cfg.DefaultVariant())
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
scan:
  duration: 2s
  top_y: 2.0
host:
  frame_rate: 30
  default_variant: female
log:
  level: debug
  development: true
assets:
  female: models/female.vrm
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Scan.Duration)
	assert.Equal(t, 2.0, cfg.Scan.TopY)
	assert.Equal(t, -0.5, cfg.Scan.BottomY)
	assert.Equal(t, 30, cfg.Host.FrameRate)
	assert.Equal(t, model.VariantFemale, cfg.DefaultVariant())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, "models/female.vrm", cfg.Assets["female"])
	assert.Equal(t, 50.0, cfg.UsecaseSettings().Scan.ScanRate())
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(writeConfig(t, "scan:\n  speed: 3\n"))
	require.Error(t, err)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvLogLevel, "WARN")
	t.Setenv(config.EnvHTTPAddr, "127.0.0.1:9090")
	t.Setenv(config.EnvVariant, " Female ")
	t.Setenv(config.EnvFrameRate, "120")

	cfg, err := config.Load(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, model.VariantFemale, cfg.DefaultVariant())
	assert.Equal(t, 120, cfg.Host.FrameRate)
}

func TestApplyEnvRejectsNonNumericFrameRate(t *testing.T) {
	cfg := config.Default()
	lookup := func(key string) (string, bool) {
		if key == config.EnvFrameRate {
			return "fast", true
		}
		return "", false
	}
	require.Error(t, config.ApplyEnv(cfg, lookup))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{name: "zero duration", mutate: func(cfg *config.Config) { cfg.Scan.Duration = 0 }},
		{name: "bottom above top", mutate: func(cfg *config.Config) { cfg.Scan.BottomY = 3 }},
		{name: "sentinel above threshold", mutate: func(cfg *config.Config) { cfg.Highlight.SentinelY = 0 }},
		{name: "non-positive radius", mutate: func(cfg *config.Config) { cfg.Highlight.DefaultRadius = 0 }},
		{name: "frame rate too high", mutate: func(cfg *config.Config) { cfg.Host.FrameRate = 1000 }},
		{name: "unknown variant", mutate: func(cfg *config.Config) { cfg.Host.DefaultVariant = "child" }},
		{name: "empty addr", mutate: func(cfg *config.Config) { cfg.Server.Addr = "" }},
		{name: "unknown level", mutate: func(cfg *config.Config) { cfg.Log.Level = "trace" }},
		{name: "unknown asset variant", mutate: func(cfg *config.Config) { cfg.Assets["child"] = "child.vrm" }},
		{name: "empty asset path", mutate: func(cfg *config.Config) { cfg.Assets["male"] = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHighlightThresholdReachesShader(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
highlight:
  sentinel_y: -20
  active_threshold_y: -10
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	state := minteractor.NewScannerState(nil, nil, cfg.UsecaseSettings(), cfg.DefaultVariant(), nil)
	block := shader.NewUniformBlock()
	renderer := minteractor.NewHighlightRenderer(nil)
	require.Equal(t, 1, renderer.BindSurfaces([]moutput.IParameterSink{block}))
	renderer.Push(state, 0)

	assert.Equal(t, float32(-10), block.ActiveThresholdY)
	assert.Equal(t, mgl32.Vec3{0, -20, 0}, block.HighlightCenter)
	fragment := shader.Fragment{
		WorldPosition: mgl32.Vec3{0, -20, 0},
		Normal:        mgl32.Vec3{0, 0, 1},
		ViewPosition:  mgl32.Vec3{0, 0, 3},
	}
	shaded := shader.HologramShader{}.Shade(block, fragment)
	assert.False(t, shaded.Selected)
	assert.False(t, shaded.Hovered)
}
