// 指示: miu200521358
package shader

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

var (
	_ moutput.IParameterSink  = (*UniformBlock)(nil)
	_ moutput.IParameterProbe = (*UniformBlock)(nil)
)

func frontFragment(position mgl32.Vec3) Fragment {
	return Fragment{
		WorldPosition: position,
		Normal:        mgl32.Vec3{0, 0, 1},
		ViewPosition:  mgl32.Vec3{0, 0, 3},
	}
}

func TestFragmentSourceDeclaresEveryUniform(t *testing.T) {
	for _, name := range HighlightUniformNames() {
		if !strings.Contains(FragmentSource, "uniform") || !strings.Contains(FragmentSource, " "+name+";") {
			t.Fatalf("fragment source should declare %s", name)
		}
	}
}

func TestUniformBlockDeclaresHighlightParameters(t *testing.T) {
	if !NewUniformBlock().HasHighlightParameters() {
		t.Fatalf("full block should have parameters")
	}
	if NewUniformBlockWithNames(UniformTime, UniformScanY).HasHighlightParameters() {
		t.Fatalf("partial block should not have parameters")
	}
	var missing *UniformBlock
	if missing.HasHighlightParameters() {
		t.Fatalf("nil block should not have parameters")
	}
}

func TestIdleAnchorsProduceNoHighlight(t *testing.T) {
	u := NewUniformBlock()
	shaded := HologramShader{}.Shade(u, frontFragment(mgl32.Vec3{0, -100, 0}))
	if shaded.Selected || shaded.Hovered || shaded.ScanIntensity != 0 {
		t.Fatalf("sentinel anchors should not highlight: %+v", shaded)
	}
	if math.Abs(float64(shaded.Opacity-0.7)) > 1e-6 {
		t.Fatalf("head-on idle opacity should be base: %f", shaded.Opacity)
	}
}

func TestShadeHonorsActiveThreshold(t *testing.T) {
	u := NewUniformBlock()
	u.SetSelection(model.NewVec3(0, -20, 0), 0.3)
	fragment := frontFragment(mgl32.Vec3{0, -20, 0})
	if !(HologramShader{}).Shade(u, fragment).Selected {
		t.Fatalf("anchor above default threshold should highlight")
	}
	u.SetActiveThreshold(-10)
	if (HologramShader{}).Shade(u, fragment).Selected {
		t.Fatalf("anchor at or below threshold should not highlight")
	}
	if u.Values()[UniformActiveThresholdY] != float32(-10) {
		t.Fatalf("threshold value mismatch: %v", u.Values()[UniformActiveThresholdY])
	}
}

func TestSelectionDominatesHover(t *testing.T) {
	u := NewUniformBlock()
	u.SetSelection(model.NewVec3(0.45, 1.44, 0), 0.12)
	u.SetHover(model.NewVec3(0.45, 1.44, 0), 0.12*0.8)
	shaded := HologramShader{}.Shade(u, frontFragment(mgl32.Vec3{0.45, 1.44, 0}))
	if !shaded.Selected || shaded.Hovered {
		t.Fatalf("selection should suppress hover: %+v", shaded)
	}

	u.SetSelection(model.NewVec3(0, -100, 0), 0.12)
	shaded = HologramShader{}.Shade(u, frontFragment(mgl32.Vec3{0.45, 1.44, 0}))
	if shaded.Selected || !shaded.Hovered {
		t.Fatalf("hover should apply without selection: %+v", shaded)
	}
	far := HologramShader{}.Shade(u, frontFragment(mgl32.Vec3{0.45, 1.0, 0}))
	if far.Hovered {
		t.Fatalf("fragment outside hover radius should not hover")
	}
}

func TestScanBandIntensity(t *testing.T) {
	u := NewUniformBlock()
	u.SetScanBand(1.0, true)
	onBand := HologramShader{}.Shade(u, frontFragment(mgl32.Vec3{0, 1.0, 0}))
	if math.Abs(float64(onBand.ScanIntensity-1.5)) > 1e-6 {
		t.Fatalf("fragment on band should have full intensity: %f", onBand.ScanIntensity)
	}
	offBand := HologramShader{}.Shade(u, frontFragment(mgl32.Vec3{0, 1.5, 0}))
	if offBand.ScanIntensity != 0 {
		t.Fatalf("fragment off band should have none: %f", offBand.ScanIntensity)
	}
	u.SetScanBand(1.0, false)
	inactive := HologramShader{}.Shade(u, frontFragment(mgl32.Vec3{0, 1.0, 0}))
	if inactive.ScanIntensity != 0 {
		t.Fatalf("inactive scan should have none: %f", inactive.ScanIntensity)
	}
}

func TestEffectsNeverReduceOpacity(t *testing.T) {
	normals := []mgl32.Vec3{{0, 0, 1}, {1, 0, 0}, mgl32.Vec3{1, 0, 1}.Normalize()}
	positions := []mgl32.Vec3{{0, 1, 0}, {0.05, 1.02, 0}, {0.2, 1.1, 0}, {0, 2, 0}}
	for _, normal := range normals {
		for _, position := range positions {
			fragment := Fragment{WorldPosition: position, Normal: normal, ViewPosition: mgl32.Vec3{0, 0, 3}}
			base := HologramShader{}.Shade(NewUniformBlock(), fragment)
			floor := 0.7 + base.Fresnel*0.25

			u := NewUniformBlock()
			u.SetTime(1.3)
			u.SetSelection(model.NewVec3(0, 1, 0), 0.15)
			u.SetHover(model.NewVec3(0.2, 1.1, 0), 0.12)
			u.SetScanBand(1.02, true)
			shaded := HologramShader{}.Shade(u, fragment)
			if shaded.Opacity < floor-1e-6 || base.Opacity < floor-1e-6 {
				t.Fatalf("opacity decreased at %v: got=%f floor=%f", position, shaded.Opacity, floor)
			}
		}
	}
}

func TestRendererPushesIntoUniformBlocks(t *testing.T) {
	state := minteractor.NewScannerState(nil, nil, minteractor.DefaultSettings(), model.VariantMale, nil)
	state.PublishSkeleton(model.VariantMale, &model.Skeleton{
		Variant: model.VariantMale,
		Joints:  []model.Joint{{Name: "mixamorigHead", ParentIndex: -1, Position: model.NewVec3(0, 1.6, 0)}},
	})
	state.SelectRegion(model.RegionHead)

	full := NewUniformBlock()
	partial := NewUniformBlockWithNames(UniformTime)
	renderer := minteractor.NewHighlightRenderer(nil)
	if bound := renderer.BindSurfaces([]moutput.IParameterSink{full, partial}); bound != 1 {
		t.Fatalf("partial block should be skipped: bound=%d", bound)
	}
	renderer.Push(state, 2)
	if full.Time != 2 || full.HighlightCenter != (mgl32.Vec3{0, 1.6, 0}) || full.HighlightRadius != 0.15 {
		t.Fatalf("uniform values mismatch: %+v", full)
	}
	if partial.Time != 0 {
		t.Fatalf("skipped block should not be written")
	}
	values := full.Values()
	if values[UniformScanActive] != float32(0) || values[UniformHoveredCenter] != (mgl32.Vec3{0, -100, 0}) {
		t.Fatalf("values mismatch: %+v", values)
	}
}
