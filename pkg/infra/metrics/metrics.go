// 指示: miu200521358
// Package metrics は Prometheus による観測値の記録を提供する。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

// Metrics は人体スキャナの観測値を保持する。
type Metrics struct {
	registry *prometheus.Registry

	FramesTotal         prometheus.Counter
	PicksTotal          *prometheus.CounterVec
	ScansStartedTotal   prometheus.Counter
	ScansCompletedTotal prometheus.Counter
	VariantSwitches     *prometheus.CounterVec
	SymptomCount        prometheus.Gauge
}

var _ moutput.IScanMetrics = (*Metrics)(nil)

// New は専用レジストリに登録済みの Metrics を生成する。
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		FramesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bodyscan_frames_total",
			Help: "Total number of rendered frames",
		}),
		PicksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bodyscan_picks_total",
			Help: "Total number of pointer picks by kind and outcome",
		}, []string{"kind", "outcome"}),
		ScansStartedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bodyscan_scans_started_total",
			Help: "Total number of started scans",
		}),
		ScansCompletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bodyscan_scans_completed_total",
			Help: "Total number of scans that reached 100 percent",
		}),
		VariantSwitches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bodyscan_variant_switches_total",
			Help: "Total number of model variant switches",
		}, []string{"variant"}),
		SymptomCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bodyscan_symptoms",
			Help: "Number of recorded symptoms",
		}),
	}
}

// Registry は登録先レジストリを返す。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler は /metrics 用のハンドラを返す。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFrame はフレーム数を加算する。
func (m *Metrics) ObserveFrame() {
	m.FramesTotal.Inc()
}

// ObservePick はピック結果を加算する。
func (m *Metrics) ObservePick(kind string, outcome moutput.PickOutcome) {
	m.PicksTotal.WithLabelValues(kind, string(outcome)).Inc()
}

// ObserveScanStarted はスキャン開始数を加算する。
func (m *Metrics) ObserveScanStarted() {
	m.ScansStartedTotal.Inc()
}

// ObserveScanCompleted はスキャン完了数を加算する。
func (m *Metrics) ObserveScanCompleted() {
	m.ScansCompletedTotal.Inc()
}

// ObserveVariantSwitch はバリアント切替数を加算する。
func (m *Metrics) ObserveVariantSwitch(variant model.Variant) {
	m.VariantSwitches.WithLabelValues(string(variant)).Inc()
}

// SetSymptomCount は記録済み症状数を設定する。
func (m *Metrics) SetSymptomCount(count int) {
	m.SymptomCount.Set(float64(count))
}
