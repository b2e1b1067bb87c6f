// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

// newTestSkeleton は最近傍判定用の小さなスケルトンを生成する。
func newTestSkeleton(variant model.Variant) *model.Skeleton {
	return &model.Skeleton{
		Variant: variant,
		Joints: []model.Joint{
			{Name: "mixamorigHips", ParentIndex: -1, Position: model.NewVec3(0, 1, 0)},
			{Name: "mixamorigHead", ParentIndex: 0, Position: model.NewVec3(0, 1.6, 0)},
			{Name: "mixamorigLeftArm", ParentIndex: 0, Position: model.NewVec3(0.2, 1.4, 0)},
			{Name: "mixamorigLeftForeArm", ParentIndex: 2, Position: model.NewVec3(0.45, 1.4, 0)},
			{Name: "mixamorigRightForeArm", ParentIndex: 0, Position: model.NewVec3(-0.45, 1.4, 0)},
			{Name: "tail_01", ParentIndex: 0, Position: model.NewVec3(0, 0.8, -0.4)},
		},
	}
}

// recordingSink はパラメータ書き込みを記録する。
type recordingSink struct {
	times      []float64
	scanYs     []float64
	scanActive []bool
	selection  model.Vec3
	selRadius  float64
	hover      model.Vec3
	hovRadius  float64
	thresholds []float64
}

func (s *recordingSink) SetTime(elapsed float64) { s.times = append(s.times, elapsed) }

func (s *recordingSink) SetScanBand(y float64, active bool) {
	s.scanYs = append(s.scanYs, y)
	s.scanActive = append(s.scanActive, active)
}

func (s *recordingSink) SetSelection(center model.Vec3, radius float64) {
	s.selection = center
	s.selRadius = radius
}

func (s *recordingSink) SetHover(center model.Vec3, radius float64) {
	s.hover = center
	s.hovRadius = radius
}

func (s *recordingSink) SetActiveThreshold(y float64) { s.thresholds = append(s.thresholds, y) }

// declaringSink はパラメータ有無を返す recordingSink。
type declaringSink struct {
	recordingSink
	hasParameters bool
}

func (s *declaringSink) HasHighlightParameters() bool { return s.hasParameters }

// recordingMetrics は計測呼び出しを記録する。
type recordingMetrics struct {
	frames         int
	picks          map[moutput.PickOutcome]int
	scansStarted   int
	scansCompleted int
	variants       []model.Variant
	symptomCount   int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{picks: map[moutput.PickOutcome]int{}}
}

func (m *recordingMetrics) ObserveFrame() { m.frames++ }
func (m *recordingMetrics) ObservePick(_ string, outcome moutput.PickOutcome) {
	m.picks[outcome]++
}
func (m *recordingMetrics) ObserveScanStarted() { m.scansStarted++ }
func (m *recordingMetrics) ObserveScanCompleted() { m.scansCompleted++ }
func (m *recordingMetrics) ObserveVariantSwitch(variant model.Variant) {
	m.variants = append(m.variants, variant)
}
func (m *recordingMetrics) SetSymptomCount(count int) { m.symptomCount = count }

// recordingReporter はスキャン進捗イベントを記録する。
type recordingReporter struct {
	events []ScanProgressEvent
}

func (r *recordingReporter) ReportScanProgress(event ScanProgressEvent) {
	r.events = append(r.events, event)
}

// staticSkeletonSource は固定スケルトンを返す。
type staticSkeletonSource struct {
	skeletons map[model.Variant]*model.Skeleton
	err       error
}

func (s staticSkeletonSource) LoadSkeleton(variant model.Variant) (*model.Skeleton, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.skeletons[variant], nil
}
