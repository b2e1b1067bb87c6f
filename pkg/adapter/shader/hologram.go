// 指示: miu200521358
package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	intensityThreshold = 0.01
	fresnelPower       = 2.5
	scanWidth          = 0.15
)

var (
	baseColor         = mgl32.Vec3{0.1, 0.3, 0.8}
	selectColor       = mgl32.Vec3{1.0, 0.15, 0.05}
	hoverColor        = mgl32.Vec3{0.2, 0.9, 1.0}
	selectedFresnel   = mgl32.Vec3{1.0, 0.5, 0.2}
	defaultFresnel    = mgl32.Vec3{0.0, 1.0, 1.0}
	selectedGlowColor = mgl32.Vec3{1.0, 0.3, 0.1}
	hoveredGlowColor  = mgl32.Vec3{0.0, 0.6, 0.7}
	scanColor         = mgl32.Vec3{0.0, 1.0, 1.0}
	hologramLineColor = mgl32.Vec3{0.0, 0.3, 0.4}
)

// Fragment は1フラグメントの入力を表す。
type Fragment struct {
	WorldPosition mgl32.Vec3
	// Normal は正規化済みの法線。
	Normal mgl32.Vec3
	// ViewPosition はカメラ空間での頂点位置の符号反転。
	ViewPosition mgl32.Vec3
}

// Shaded は1フラグメントの評価結果を表す。
type Shaded struct {
	Color             mgl32.Vec3
	Opacity           float32
	Fresnel           float32
	Selected          bool
	Hovered           bool
	SelectedIntensity float32
	HoveredIntensity  float32
	ScanIntensity     float32
}

// HologramShader は FragmentSource と同じ計算をCPU上で行う参照評価器。
type HologramShader struct{}

// Shade は uniform とフラグメント入力から色と不透明度を求める。
func (HologramShader) Shade(u *UniformBlock, f Fragment) Shaded {
	viewDir := safeNormalize(f.ViewPosition)
	fresnel := pow32(mgl32.Clamp(1-abs32(viewDir.Dot(f.Normal)), 0, 1), fresnelPower)

	selectedIntensity := 1 - smoothstep(0, u.HighlightRadius, f.WorldPosition.Sub(u.HighlightCenter).Len())
	isSelected := u.HighlightCenter.Y() > u.ActiveThresholdY && selectedIntensity > intensityThreshold

	hoveredIntensity := 1 - smoothstep(0, u.HoveredRadius, f.WorldPosition.Sub(u.HoveredCenter).Len())
	isHovered := u.HoveredCenter.Y() > u.ActiveThresholdY && hoveredIntensity > intensityThreshold && !isSelected

	color := baseColor
	switch {
	case isSelected:
		pulse := 0.7 + sin32(u.Time*6)*0.3
		color = mix(color, selectColor, selectedIntensity*pulse)
	case isHovered:
		color = mix(color, hoverColor, hoveredIntensity*0.85)
	}

	glow := defaultFresnel
	if isSelected {
		glow = selectedFresnel
	}
	color = color.Add(glow.Mul(fresnel * 0.7))

	if isSelected {
		glowPulse := 0.5 + sin32(u.Time*4)*0.3
		color = color.Add(selectedGlowColor.Mul(selectedIntensity * glowPulse))
	}
	if isHovered {
		hoverGlow := 0.3 + sin32(u.Time*3)*0.15
		color = color.Add(hoveredGlowColor.Mul(hoveredIntensity * hoverGlow))
	}

	scanIntensity := float32(0)
	if u.ScanActive {
		scanIntensity = smoothstep(scanWidth, 0, abs32(f.WorldPosition.Y()-u.ScanY)) * 1.5
	}
	color = color.Add(scanColor.Mul(scanIntensity))

	linePattern := smoothstep(0.4, 0.6, sin32(f.WorldPosition.Y()*100+u.Time*2)*0.5+0.5)
	color = color.Add(hologramLineColor.Mul(linePattern * 0.08))

	opacity := 0.7 + fresnel*0.25
	if isSelected {
		opacity += selectedIntensity * 0.3
	}
	if isHovered {
		opacity += hoveredIntensity * 0.2
	}
	opacity += scanIntensity * 0.3

	return Shaded{
		Color:             color,
		Opacity:           opacity,
		Fresnel:           fresnel,
		Selected:          isSelected,
		Hovered:           isHovered,
		SelectedIntensity: selectedIntensity,
		HoveredIntensity:  hoveredIntensity,
		ScanIntensity:     scanIntensity,
	}
}

// smoothstep は GLSL の smoothstep と同じ補間を行う。edge0 > edge1 の場合は逆向きに補間する。
func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

func abs32(v float32) float32 { return float32(math.Abs(float64(v))) }

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }

func pow32(v float32, e float64) float32 { return float32(math.Pow(float64(v), e)) }
