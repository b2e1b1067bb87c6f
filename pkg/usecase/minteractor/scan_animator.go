// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

// ScanAnimator はフレーム毎にスキャン進捗を進める。
type ScanAnimator struct {
	state    *ScannerState
	reporter IScanProgressReporter
	metrics  moutput.IScanMetrics
}

// NewScanAnimator は ScanAnimator を生成する。
func NewScanAnimator(state *ScannerState, reporter IScanProgressReporter, metrics moutput.IScanMetrics) *ScanAnimator {
	if metrics == nil {
		metrics = noopScanMetrics{}
	}
	return &ScanAnimator{state: state, reporter: reporter, metrics: metrics}
}

// Start はスキャンを開始する。スキャン中は何もしない。
func (a *ScanAnimator) Start() bool {
	if !a.state.StartScan() {
		return false
	}
	a.metrics.ObserveScanStarted()
	reportScanProgress(a.reporter, ScanProgressEvent{
		Type:     ScanProgressEventTypeStarted,
		Progress: a.state.ScanProgress(),
		ScanY:    a.state.ScanY(),
	})
	return true
}

// Tick は経過秒だけ進捗を進める。完了したフレームで true を返す。
func (a *ScanAnimator) Tick(deltaSeconds float64) bool {
	if !a.state.IsScanning() {
		return false
	}
	before := a.state.ScanProgress()
	completed := a.state.AdvanceScan(deltaSeconds)
	if completed {
		a.metrics.ObserveScanCompleted()
		reportScanProgress(a.reporter, ScanProgressEvent{
			Type:     ScanProgressEventTypeCompleted,
			Progress: a.state.ScanProgress(),
			ScanY:    a.state.ScanY(),
		})
		return true
	}
	if a.state.ScanProgress() != before {
		reportScanProgress(a.reporter, ScanProgressEvent{
			Type:     ScanProgressEventTypeAdvanced,
			Progress: a.state.ScanProgress(),
			ScanY:    a.state.ScanY(),
		})
	}
	return false
}
