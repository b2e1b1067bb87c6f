// 指示: miu200521358
package moutput

import "github.com/miu200521358/mu_bodyscan/pkg/domain/model"

// IParameterSink は1材質分のハイライト用シェーダーパラメータ書き込み契約を表す。
type IParameterSink interface {
	// SetTime は経過秒を設定する。
	SetTime(elapsed float64)
	// SetScanBand はスキャン帯のY座標と有効フラグを設定する。
	SetScanBand(y float64, active bool)
	// SetSelection は選択アンカーと半径を設定する。
	SetSelection(center model.Vec3, radius float64)
	// SetHover はホバーアンカーと半径を設定する。
	SetHover(center model.Vec3, radius float64)
	// SetActiveThreshold はアンカーを有効とみなすY座標の下限を設定する。
	SetActiveThreshold(y float64)
}

// IParameterProbe はパラメータを受け付けられるか問い合わせる契約を表す。
// 実装しない IParameterSink は常に受け付け可能とみなす。
type IParameterProbe interface {
	HasHighlightParameters() bool
}

// ISkeletonSource はバリアント別スケルトンの供給契約を表す。
type ISkeletonSource interface {
	// LoadSkeleton はバリアントのスケルトンを読み込む。
	LoadSkeleton(variant model.Variant) (*model.Skeleton, error)
}

// PickOutcome はピック結果の分類を表す。
type PickOutcome string

const (
	PickOutcomeResolved    PickOutcome = "resolved"
	PickOutcomeUnresolved  PickOutcome = "unresolved"
	PickOutcomeNoSkeleton  PickOutcome = "no_skeleton"
	PickOutcomeNoIntersect PickOutcome = "no_intersection"
)

// IScanMetrics は観測値の記録契約を表す。
type IScanMetrics interface {
	ObserveFrame()
	ObservePick(kind string, outcome PickOutcome)
	ObserveScanStarted()
	ObserveScanCompleted()
	ObserveVariantSwitch(variant model.Variant)
	SetSymptomCount(count int)
}
