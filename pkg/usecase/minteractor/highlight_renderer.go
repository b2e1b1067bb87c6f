// 指示: miu200521358
package minteractor

import (
	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

// HighlightRenderer は状態をシェーダーパラメータへ毎フレーム反映する。
type HighlightRenderer struct {
	sinks  []moutput.IParameterSink
	logger *zap.Logger
}

// NewHighlightRenderer は HighlightRenderer を生成する。
func NewHighlightRenderer(logger *zap.Logger) *HighlightRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HighlightRenderer{logger: logger}
}

// BindSurfaces は書き込み先の材質を差し替える。ハイライト用パラメータを持たない材質は除外する。
// 戻り値は採用した材質数。
func (r *HighlightRenderer) BindSurfaces(sinks []moutput.IParameterSink) int {
	bound := make([]moutput.IParameterSink, 0, len(sinks))
	for index, sink := range sinks {
		if sink == nil {
			continue
		}
		if probe, ok := sink.(moutput.IParameterProbe); ok && !probe.HasHighlightParameters() {
			r.logger.Debug(messages.LogSurfaceSkipped,
				zap.String("anomaly", model.AnomalySinkMissingParameters),
				zap.Int("surface", index))
			continue
		}
		bound = append(bound, sink)
	}
	r.sinks = bound
	return len(bound)
}

// SurfaceCount は書き込み先の材質数を返す。
func (r *HighlightRenderer) SurfaceCount() int {
	return len(r.sinks)
}

// Push は経過秒と状態を全ての材質へ書き込む。材質が無ければ何もしない。
// 有効判定の閾値は設定値を毎回書き込み、閾値以下のアンカーは番兵位置に揃えて渡す。
func (r *HighlightRenderer) Push(state *ScannerState, elapsed float64) {
	if len(r.sinks) == 0 || state == nil {
		return
	}
	highlight := state.Settings().Highlight
	scanY := state.ScanY()
	scanning := state.IsScanning()
	selected := state.SelectedAnchor()
	if !highlight.IsActive(selected) {
		selected = highlight.InactiveAnchor()
	}
	hovered := state.HoveredAnchor()
	if !highlight.IsActive(hovered) {
		hovered = highlight.InactiveAnchor()
	}
	for _, sink := range r.sinks {
		sink.SetTime(elapsed)
		sink.SetActiveThreshold(highlight.ActiveThresholdY)
		sink.SetScanBand(scanY, scanning)
		sink.SetSelection(selected.Position, selected.Radius)
		sink.SetHover(hovered.Position, hovered.Radius)
	}
}
