// 指示: miu200521358
package minteractor

import (
	"time"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
)

const (
	defaultScanDuration     = 4 * time.Second
	defaultScanTopY         = 2.2
	defaultScanBottomY      = -0.5
	defaultHoverRadiusScale = 0.8
	defaultSentinelY        = -100.0
	defaultActiveThresholdY = -50.0
	scanProgressMax         = 100.0
)

// ScanSettings はスキャン掃引の設定を表す。
type ScanSettings struct {
	// Duration は上端から下端までの掃引時間。
	Duration time.Duration
	TopY     float64
	BottomY  float64
}

// HighlightSettings はハイライトアンカーの設定を表す。
type HighlightSettings struct {
	DefaultRadius    float64
	HoverRadiusScale float64
	// SentinelY は無効アンカーを置くY座標。モデルの外側に置くことで距離ベースの効果が消える。
	SentinelY float64
	// ActiveThresholdY はアンカーを有効とみなすY座標の下限。
	ActiveThresholdY float64
}

// Settings はユースケース全体の設定を表す。
type Settings struct {
	Scan      ScanSettings
	Highlight HighlightSettings
}

// DefaultSettings は既定設定を返す。
func DefaultSettings() Settings {
	return Settings{
		Scan: ScanSettings{
			Duration: defaultScanDuration,
			TopY:     defaultScanTopY,
			BottomY:  defaultScanBottomY,
		},
		Highlight: HighlightSettings{
			DefaultRadius:    region.DefaultHighlightRadius,
			HoverRadiusScale: defaultHoverRadiusScale,
			SentinelY:        defaultSentinelY,
			ActiveThresholdY: defaultActiveThresholdY,
		},
	}
}

// normalized は不正値を既定値で補完した設定を返す。
func (s Settings) normalized() Settings {
	defaults := DefaultSettings()
	if s.Scan.Duration <= 0 {
		s.Scan.Duration = defaults.Scan.Duration
	}
	if s.Scan.TopY == s.Scan.BottomY {
		s.Scan.TopY = defaults.Scan.TopY
		s.Scan.BottomY = defaults.Scan.BottomY
	}
	if s.Highlight.DefaultRadius <= 0 {
		s.Highlight.DefaultRadius = defaults.Highlight.DefaultRadius
	}
	if s.Highlight.HoverRadiusScale <= 0 {
		s.Highlight.HoverRadiusScale = defaults.Highlight.HoverRadiusScale
	}
	if s.Highlight.SentinelY >= s.Highlight.ActiveThresholdY {
		s.Highlight.SentinelY = defaults.Highlight.SentinelY
		s.Highlight.ActiveThresholdY = defaults.Highlight.ActiveThresholdY
	}
	return s
}

// ScanRate は1秒あたりの進捗増分を返す。
func (s ScanSettings) ScanRate() float64 {
	return scanProgressMax / s.Duration.Seconds()
}

// ScanY は進捗 (0-100) に対応するスキャン帯のY座標を返す。
func (s ScanSettings) ScanY(progress float64) float64 {
	return s.TopY - (progress/scanProgressMax)*(s.TopY-s.BottomY)
}

// Anchor はハイライト効果の中心点と半径を表す。
type Anchor struct {
	Position model.Vec3 `json:"position"`
	Radius   float64    `json:"radius"`
}

// InactiveAnchor は番兵位置に置いた無効アンカーを返す。
func (s HighlightSettings) InactiveAnchor() Anchor {
	return Anchor{Position: model.NewVec3(0, s.SentinelY, 0), Radius: s.DefaultRadius}
}

// IsActive はアンカーが番兵位置でないか判定する。
func (s HighlightSettings) IsActive(anchor Anchor) bool {
	return anchor.Position.Y > s.ActiveThresholdY
}
