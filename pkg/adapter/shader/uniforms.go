// 指示: miu200521358
// Package shader はハイライト用シェーダーのパラメータ受け口と参照評価器を提供する。
package shader

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

// シェーダーの uniform 名一覧。
const (
	UniformTime             = "uTime"
	UniformScanY            = "uScanY"
	UniformScanActive       = "uScanActive"
	UniformHighlightCenter  = "uHighlightCenter"
	UniformHighlightRadius  = "uHighlightRadius"
	UniformHoveredCenter    = "uHoveredCenter"
	UniformHoveredRadius    = "uHoveredRadius"
	UniformActiveThresholdY = "uActiveThresholdY"
)

// defaultActiveThresholdY は閾値が書き込まれる前の既定値。
const defaultActiveThresholdY = -50

// HighlightUniformNames はハイライトに必要な uniform 名を返す。
func HighlightUniformNames() []string {
	return []string{
		UniformTime,
		UniformScanY,
		UniformScanActive,
		UniformHighlightCenter,
		UniformHighlightRadius,
		UniformHoveredCenter,
		UniformHoveredRadius,
		UniformActiveThresholdY,
	}
}

// FragmentSource はホログラム表現のフラグメントシェーダーソース。
//
//go:embed glsl/hologram.frag
var FragmentSource string

// UniformBlock は1材質分の uniform 値を GPU 転送用の float32 で保持する。
type UniformBlock struct {
	Time            float32
	ScanY           float32
	ScanActive      bool
	HighlightCenter mgl32.Vec3
	HighlightRadius float32
	HoveredCenter   mgl32.Vec3
	HoveredRadius   float32

	// ActiveThresholdY 以下の中心を持つアンカーは描画しない。
	ActiveThresholdY float32

	declared map[string]struct{}
}

// NewUniformBlock は全ての uniform を宣言済みの UniformBlock を生成する。
func NewUniformBlock() *UniformBlock {
	return NewUniformBlockWithNames(HighlightUniformNames()...)
}

// NewUniformBlockWithNames は材質が宣言する uniform 名を指定して生成する。
func NewUniformBlockWithNames(names ...string) *UniformBlock {
	declared := make(map[string]struct{}, len(names))
	for _, name := range names {
		declared[name] = struct{}{}
	}
	return &UniformBlock{
		ScanY:            -10,
		HighlightCenter:  mgl32.Vec3{0, -100, 0},
		HighlightRadius:  0.3,
		HoveredCenter:    mgl32.Vec3{0, -100, 0},
		HoveredRadius:    0.24,
		ActiveThresholdY: defaultActiveThresholdY,
		declared:         declared,
	}
}

// HasHighlightParameters はハイライトに必要な uniform を全て宣言しているか判定する。
func (u *UniformBlock) HasHighlightParameters() bool {
	if u == nil {
		return false
	}
	for _, name := range HighlightUniformNames() {
		if _, ok := u.declared[name]; !ok {
			return false
		}
	}
	return true
}

// SetTime は経過秒を設定する。
func (u *UniformBlock) SetTime(elapsed float64) {
	u.Time = float32(elapsed)
}

// SetScanBand はスキャン帯を設定する。
func (u *UniformBlock) SetScanBand(y float64, active bool) {
	u.ScanY = float32(y)
	u.ScanActive = active
}

// SetSelection は選択アンカーを設定する。
func (u *UniformBlock) SetSelection(center model.Vec3, radius float64) {
	u.HighlightCenter = toVec3(center)
	u.HighlightRadius = float32(radius)
}

// SetHover はホバーアンカーを設定する。
func (u *UniformBlock) SetHover(center model.Vec3, radius float64) {
	u.HoveredCenter = toVec3(center)
	u.HoveredRadius = float32(radius)
}

// SetActiveThreshold はアンカー有効判定の閾値を設定する。
func (u *UniformBlock) SetActiveThreshold(y float64) {
	u.ActiveThresholdY = float32(y)
}

// Values は uniform 名から値への対応を返す。ホストの材質への転送用。
func (u *UniformBlock) Values() map[string]any {
	scanActive := float32(0)
	if u.ScanActive {
		scanActive = 1
	}
	return map[string]any{
		UniformTime:             u.Time,
		UniformScanY:            u.ScanY,
		UniformScanActive:       scanActive,
		UniformHighlightCenter:  u.HighlightCenter,
		UniformHighlightRadius:  u.HighlightRadius,
		UniformHoveredCenter:    u.HoveredCenter,
		UniformHoveredRadius:    u.HoveredRadius,
		UniformActiveThresholdY: u.ActiveThresholdY,
	}
}

func toVec3(v model.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
