// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

// BodyScanUsecaseDeps はユースケースの依存を表す。
type BodyScanUsecaseDeps struct {
	Catalog          *region.Catalog
	Settings         Settings
	DefaultVariant   model.Variant
	SkeletonSource   moutput.ISkeletonSource
	Metrics          moutput.IScanMetrics
	ProgressReporter IScanProgressReporter
	Logger           *zap.Logger
	Clock            func() time.Time
	NewID            func() uuid.UUID
}

// BodyScanUsecase は部位ピックとハイライトの一連の処理を束ねる。
// 全ての操作は単一ゴルーチンから呼び出す。LoadSkeleton のみ別ゴルーチンから呼び出せる。
type BodyScanUsecase struct {
	catalog  *region.Catalog
	resolver *BoneNameResolver
	state    *ScannerState
	animator *ScanAnimator
	renderer *HighlightRenderer
	frame    *FrameDriver
	source   moutput.ISkeletonSource
	metrics  moutput.IScanMetrics
	logger   *zap.Logger
	clock    func() time.Time
	newID    func() uuid.UUID
	validate *validator.Validate
}

// NewBodyScanUsecase はユースケースを生成する。
func NewBodyScanUsecase(deps BodyScanUsecaseDeps) *BodyScanUsecase {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = region.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = noopScanMetrics{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = uuid.New
	}
	resolver := NewBoneNameResolver(catalog)
	state := NewScannerState(catalog, NewNearestJointLocator(resolver), deps.Settings, deps.DefaultVariant, logger)
	animator := NewScanAnimator(state, deps.ProgressReporter, metrics)
	renderer := NewHighlightRenderer(logger)
	return &BodyScanUsecase{
		catalog:  catalog,
		resolver: resolver,
		state:    state,
		animator: animator,
		renderer: renderer,
		frame:    NewFrameDriver(state, animator, renderer, metrics),
		source:   deps.SkeletonSource,
		metrics:  metrics,
		logger:   logger,
		clock:    clock,
		newID:    newID,
		validate: newSymptomValidator(),
	}
}

// State は状態を返す。
func (uc *BodyScanUsecase) State() *ScannerState {
	return uc.state
}

// Resolver はジョイント名の解決器を返す。
func (uc *BodyScanUsecase) Resolver() *BoneNameResolver {
	return uc.resolver
}

// Catalog は部位カタログを返す。
func (uc *BodyScanUsecase) Catalog() *region.Catalog {
	return uc.catalog
}

// Snapshot は状態の複製を返す。
func (uc *BodyScanUsecase) Snapshot() StateSnapshot {
	return uc.state.Snapshot()
}

// BindSurfaces はハイライトの書き込み先材質を設定する。
func (uc *BodyScanUsecase) BindSurfaces(sinks []moutput.IParameterSink) int {
	return uc.renderer.BindSurfaces(sinks)
}

// Frame は1フレーム分の更新を行う。
func (uc *BodyScanUsecase) Frame(deltaSeconds float64) {
	uc.frame.Frame(deltaSeconds)
}

// SelectRegion は部位選択を切り替える。NoRegion は選択解除。
func (uc *BodyScanUsecase) SelectRegion(id model.RegionID) error {
	if !id.IsNone() && !uc.catalog.Contains(id) {
		uc.logger.Warn(messages.LogSelectUnknownRegion,
			zap.String("anomaly", model.AnomalyUnknownRegion),
			zap.String("region", id.String()))
		return fmt.Errorf("%w: %s", ErrUnknownRegion, id)
	}
	uc.state.SelectRegion(id)
	return nil
}

// StartScan はスキャンを開始する。スキャン中なら false。
func (uc *BodyScanUsecase) StartScan() bool {
	return uc.animator.Start()
}

// SwitchVariant はバリアント名を検証して切り替える。スケルトンは未読込になる。
func (uc *BodyScanUsecase) SwitchVariant(name string) (model.Variant, error) {
	variant, ok := model.ParseVariant(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVariant, name)
	}
	uc.state.SetVariant(variant)
	uc.metrics.ObserveVariantSwitch(variant)
	uc.logger.Info(messages.LogVariantSwitched, zap.String("variant", string(variant)))
	return variant, nil
}

// LoadSkeleton はバリアントのスケルトンを読み込む。状態は変更しない。
func (uc *BodyScanUsecase) LoadSkeleton(variant model.Variant) (*model.Skeleton, error) {
	if uc.source == nil {
		return nil, errors.New(messages.MessageSkeletonSourceMissing)
	}
	skeleton, err := uc.source.LoadSkeleton(variant)
	if err != nil {
		return nil, fmt.Errorf(messages.MessageSkeletonLoadFailed, variant, err)
	}
	return skeleton, nil
}

// PublishSkeleton は読み込んだスケルトンを公開する。バリアント不一致なら破棄する。
func (uc *BodyScanUsecase) PublishSkeleton(variant model.Variant, skeleton *model.Skeleton) bool {
	if !uc.state.PublishSkeleton(variant, skeleton) {
		uc.logger.Debug(messages.LogSkeletonDiscarded,
			zap.String("loaded", string(variant)),
			zap.String("active", string(uc.state.ActiveVariant())))
		return false
	}
	uc.logger.Info(messages.LogSkeletonPublished,
		zap.String("variant", string(variant)),
		zap.Int("joints", skeleton.Len()))
	return true
}

// LoadVariant はバリアント切替とスケルトン読み込みを同期的に行う。
func (uc *BodyScanUsecase) LoadVariant(name string) error {
	variant, err := uc.SwitchVariant(name)
	if err != nil {
		return err
	}
	skeleton, err := uc.LoadSkeleton(variant)
	if err != nil {
		return err
	}
	uc.PublishSkeleton(variant, skeleton)
	return nil
}

// RemoveSymptom は index の症状記録を削除する。範囲外は何もしない。
func (uc *BodyScanUsecase) RemoveSymptom(index int) bool {
	removed := uc.state.RemoveSymptom(index)
	uc.metrics.SetSymptomCount(len(uc.state.Symptoms()))
	return removed
}

// RemoveSymptomByID は ID 一致の症状記録を削除する。
func (uc *BodyScanUsecase) RemoveSymptomByID(id uuid.UUID) bool {
	removed := uc.state.RemoveSymptomByID(id)
	uc.metrics.SetSymptomCount(len(uc.state.Symptoms()))
	return removed
}

// ClearSymptoms は症状記録を全て削除する。
func (uc *BodyScanUsecase) ClearSymptoms() {
	uc.state.ClearSymptoms()
	uc.metrics.SetSymptomCount(0)
}

// SymptomsForRegion は部位に紐づく症状記録を追加順で返す。NoRegion なら全件を返す。
func (uc *BodyScanUsecase) SymptomsForRegion(id model.RegionID) ([]model.SymptomRecord, error) {
	if id.IsNone() {
		records := uc.state.Symptoms()
		if records == nil {
			records = []model.SymptomRecord{}
		}
		return records, nil
	}
	if !uc.catalog.Contains(id) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, id)
	}
	return uc.state.SymptomsForRegion(id), nil
}

// noopScanMetrics は計測を行わない IScanMetrics 実装。
type noopScanMetrics struct{}

func (noopScanMetrics) ObserveFrame() {}
func (noopScanMetrics) ObservePick(string, moutput.PickOutcome) {}
func (noopScanMetrics) ObserveScanStarted() {}
func (noopScanMetrics) ObserveScanCompleted() {}
func (noopScanMetrics) ObserveVariantSwitch(model.Variant) {}
func (noopScanMetrics) SetSymptomCount(int) {}
