// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"

// FrameDriver は1フレーム分の更新順序を固定する。
// スキャン進捗を先に進め、その値をハイライトへ書き込む。
type FrameDriver struct {
	state    *ScannerState
	animator *ScanAnimator
	renderer *HighlightRenderer
	metrics  moutput.IScanMetrics
	elapsed  float64
}

// NewFrameDriver は FrameDriver を生成する。
func NewFrameDriver(
	state *ScannerState,
	animator *ScanAnimator,
	renderer *HighlightRenderer,
	metrics moutput.IScanMetrics,
) *FrameDriver {
	if metrics == nil {
		metrics = noopScanMetrics{}
	}
	return &FrameDriver{state: state, animator: animator, renderer: renderer, metrics: metrics}
}

// Frame は deltaSeconds 経過後のフレームを処理する。
func (d *FrameDriver) Frame(deltaSeconds float64) {
	if deltaSeconds > 0 {
		d.elapsed += deltaSeconds
	}
	d.animator.Tick(deltaSeconds)
	d.renderer.Push(d.state, d.elapsed)
	d.metrics.ObserveFrame()
}

// Elapsed は累積経過秒を返す。
func (d *FrameDriver) Elapsed() float64 {
	return d.elapsed
}
