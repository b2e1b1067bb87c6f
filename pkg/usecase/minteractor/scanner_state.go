// 指示: miu200521358
package minteractor

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
)

// StateSnapshot は描画層や外部APIへ渡す読み取り専用の状態を表す。
type StateSnapshot struct {
	SelectedRegion model.RegionID        `json:"selectedRegion"`
	HoveredRegion  model.RegionID        `json:"hoveredRegion"`
	SelectedAnchor Anchor                `json:"selectedAnchor"`
	HoveredAnchor  Anchor                `json:"hoveredAnchor"`
	IsScanning     bool                  `json:"isScanning"`
	ScanProgress   float64               `json:"scanProgress"`
	ScanY          float64               `json:"scanY"`
	ActiveVariant  model.Variant         `json:"activeVariant"`
	SkeletonLoaded bool                  `json:"skeletonLoaded"`
	Symptoms       []model.SymptomRecord `json:"symptoms"`
}

// ScannerState は選択・ホバー・スキャン・バリアント・症状記録の単一の状態源を表す。
// 同一ゴルーチンからのみ操作する前提で排他制御は持たない。
type ScannerState struct {
	catalog  *region.Catalog
	locator  *NearestJointLocator
	settings Settings
	logger   *zap.Logger

	selectedRegion model.RegionID
	hoveredRegion  model.RegionID
	selectedAnchor Anchor
	hoveredAnchor  Anchor

	isScanning   bool
	scanProgress float64

	activeVariant model.Variant
	skeleton      *model.Skeleton

	symptoms []model.SymptomRecord
}

// NewScannerState は ScannerState を生成する。
func NewScannerState(
	catalog *region.Catalog,
	locator *NearestJointLocator,
	settings Settings,
	variant model.Variant,
	logger *zap.Logger,
) *ScannerState {
	if catalog == nil {
		catalog = region.Default()
	}
	if locator == nil {
		locator = NewNearestJointLocator(NewBoneNameResolver(catalog))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, ok := model.ParseVariant(string(variant)); !ok {
		variant = model.VariantMale
	}
	settings = settings.normalized()
	return &ScannerState{
		catalog:        catalog,
		locator:        locator,
		settings:       settings,
		logger:         logger,
		selectedAnchor: settings.Highlight.InactiveAnchor(),
		hoveredAnchor:  settings.Highlight.InactiveAnchor(),
		activeVariant:  variant,
	}
}

// Settings は正規化済み設定を返す。
func (s *ScannerState) Settings() Settings {
	return s.settings
}

// SelectRegion は部位選択を切り替える。選択中の部位を再指定すると解除する。
// アンカーは走査順で最初に該当部位へ解決されるジョイントから求める。
func (s *ScannerState) SelectRegion(id model.RegionID) {
	if id.IsNone() || id == s.selectedRegion {
		s.clearSelection()
		return
	}
	if !s.catalog.Contains(id) {
		s.logger.Warn(messages.LogSelectUnknownRegion,
			zap.String("anomaly", model.AnomalyUnknownRegion),
			zap.String("region", id.String()))
		return
	}
	position, ok := s.locator.RegionAnchor(id, s.skeleton)
	if !ok {
		s.selectedRegion = id
		s.selectedAnchor = s.settings.Highlight.InactiveAnchor()
		return
	}
	s.selectedRegion = id
	s.selectedAnchor = Anchor{Position: position, Radius: s.regionRadius(id)}
}

// SelectPick はピック結果で部位選択を切り替える。アンカーにはピックしたジョイント位置を使う。
func (s *ScannerState) SelectPick(pick PickResult) {
	if pick.RegionID.IsNone() || pick.RegionID == s.selectedRegion {
		s.clearSelection()
		return
	}
	if !s.catalog.Contains(pick.RegionID) {
		s.logger.Warn(messages.LogSelectUnknownRegion,
			zap.String("anomaly", model.AnomalyUnknownRegion),
			zap.String("region", pick.RegionID.String()))
		return
	}
	s.selectedRegion = pick.RegionID
	s.selectedAnchor = Anchor{Position: pick.Anchor, Radius: s.regionRadius(pick.RegionID)}
}

// HoverRegion はホバー部位を設定する。NoRegion で解除する。
func (s *ScannerState) HoverRegion(id model.RegionID) {
	if id.IsNone() {
		s.ClearHover()
		return
	}
	if !s.catalog.Contains(id) {
		s.logger.Warn(messages.LogHoverUnknownRegion,
			zap.String("anomaly", model.AnomalyUnknownRegion),
			zap.String("region", id.String()))
		return
	}
	position, ok := s.locator.RegionAnchor(id, s.skeleton)
	s.hoveredRegion = id
	if !ok {
		s.hoveredAnchor = s.settings.Highlight.InactiveAnchor()
		return
	}
	s.hoveredAnchor = Anchor{Position: position, Radius: s.hoverRadius(id)}
}

// HoverPick はピック結果でホバー部位を設定する。
func (s *ScannerState) HoverPick(pick PickResult) {
	if pick.RegionID.IsNone() || !s.catalog.Contains(pick.RegionID) {
		s.ClearHover()
		return
	}
	s.hoveredRegion = pick.RegionID
	s.hoveredAnchor = Anchor{Position: pick.Anchor, Radius: s.hoverRadius(pick.RegionID)}
}

// ClearHover はホバーを解除しアンカーを番兵位置へ戻す。
func (s *ScannerState) ClearHover() {
	s.hoveredRegion = model.NoRegion
	s.hoveredAnchor = s.settings.Highlight.InactiveAnchor()
}

// SetVariant はバリアントを切り替える。選択とホバーを解除し、スケルトンは未読込に戻す。
// 症状記録とスキャン状態は維持する。
func (s *ScannerState) SetVariant(variant model.Variant) {
	s.activeVariant = variant
	s.clearSelection()
	s.ClearHover()
	s.skeleton = nil
}

// PublishSkeleton は読み込み済みスケルトンを公開する。
// 読み込み中にバリアントが切り替わっていた場合は破棄して false を返す。
// 公開前に選択・ホバーされていた部位のアンカーは新しいスケルトンから求め直す。
func (s *ScannerState) PublishSkeleton(variant model.Variant, skeleton *model.Skeleton) bool {
	if variant != s.activeVariant || skeleton == nil {
		return false
	}
	s.skeleton = skeleton
	s.refreshAnchors()
	return true
}

// refreshAnchors は選択中とホバー中の部位のアンカーを現在のスケルトンで再計算する。
func (s *ScannerState) refreshAnchors() {
	if !s.selectedRegion.IsNone() {
		s.selectedAnchor = s.settings.Highlight.InactiveAnchor()
		if position, ok := s.locator.RegionAnchor(s.selectedRegion, s.skeleton); ok {
			s.selectedAnchor = Anchor{Position: position, Radius: s.regionRadius(s.selectedRegion)}
		}
	}
	if !s.hoveredRegion.IsNone() {
		s.hoveredAnchor = s.settings.Highlight.InactiveAnchor()
		if position, ok := s.locator.RegionAnchor(s.hoveredRegion, s.skeleton); ok {
			s.hoveredAnchor = Anchor{Position: position, Radius: s.hoverRadius(s.hoveredRegion)}
		}
	}
}

// Skeleton は公開済みスケルトンを返す。未読込なら nil。
func (s *ScannerState) Skeleton() *model.Skeleton {
	return s.skeleton
}

// Locator は最近傍ジョイント探索器を返す。
func (s *ScannerState) Locator() *NearestJointLocator {
	return s.locator
}

// Catalog は部位カタログを返す。
func (s *ScannerState) Catalog() *region.Catalog {
	return s.catalog
}

// StartScan はスキャンを開始する。スキャン中なら何もせず false を返す。
func (s *ScannerState) StartScan() bool {
	if s.isScanning {
		return false
	}
	s.isScanning = true
	s.scanProgress = 0
	return true
}

// AdvanceScan は経過秒に応じて進捗を進める。100 に達したらスキャンを停止し true を返す。
func (s *ScannerState) AdvanceScan(deltaSeconds float64) bool {
	if !s.isScanning || !(deltaSeconds > 0) {
		return false
	}
	s.scanProgress += deltaSeconds * s.settings.Scan.ScanRate()
	if s.scanProgress >= scanProgressMax {
		s.scanProgress = scanProgressMax
		s.isScanning = false
		return true
	}
	return false
}

// ScanY は現在進捗のスキャン帯Y座標を返す。
func (s *ScannerState) ScanY() float64 {
	return s.settings.Scan.ScanY(s.scanProgress)
}

// AddSymptom は症状記録を追加する。カタログに無い部位は拒否する。
func (s *ScannerState) AddSymptom(record model.SymptomRecord) bool {
	if !s.catalog.Contains(record.RegionID) {
		s.logger.Warn(messages.LogSymptomUnknownRegion,
			zap.String("anomaly", model.AnomalyUnknownRegion),
			zap.String("region", record.RegionID.String()))
		return false
	}
	s.symptoms = append(s.symptoms, record)
	return true
}

// RemoveSymptom は index の症状記録を削除する。範囲外なら何もせず false を返す。
func (s *ScannerState) RemoveSymptom(index int) bool {
	if index < 0 || index >= len(s.symptoms) {
		s.logger.Debug(messages.LogSymptomIndexIgnored,
			zap.String("anomaly", model.AnomalySymptomIndexOutOfRange),
			zap.Int("index", index),
			zap.Int("count", len(s.symptoms)))
		return false
	}
	s.symptoms = slices.Delete(s.symptoms, index, index+1)
	return true
}

// RemoveSymptomByID は ID 一致の症状記録を削除する。
func (s *ScannerState) RemoveSymptomByID(id uuid.UUID) bool {
	index := slices.IndexFunc(s.symptoms, func(record model.SymptomRecord) bool {
		return record.ID == id
	})
	if index < 0 {
		return false
	}
	return s.RemoveSymptom(index)
}

// ClearSymptoms は症状記録を全て削除する。
func (s *ScannerState) ClearSymptoms() {
	s.symptoms = nil
}

// Symptoms は症状記録の複製を追加順で返す。
func (s *ScannerState) Symptoms() []model.SymptomRecord {
	return slices.Clone(s.symptoms)
}

// SymptomsForRegion は部位に紐づく症状記録を追加順で返す。
func (s *ScannerState) SymptomsForRegion(id model.RegionID) []model.SymptomRecord {
	records := make([]model.SymptomRecord, 0)
	for _, record := range s.symptoms {
		if record.RegionID == id {
			records = append(records, record)
		}
	}
	return records
}

// SelectedRegion は選択部位を返す。
func (s *ScannerState) SelectedRegion() model.RegionID { return s.selectedRegion }

// HoveredRegion はホバー部位を返す。
func (s *ScannerState) HoveredRegion() model.RegionID { return s.hoveredRegion }

// SelectedAnchor は選択アンカーを返す。
func (s *ScannerState) SelectedAnchor() Anchor { return s.selectedAnchor }

// HoveredAnchor はホバーアンカーを返す。
func (s *ScannerState) HoveredAnchor() Anchor { return s.hoveredAnchor }

// IsScanning はスキャン中か返す。
func (s *ScannerState) IsScanning() bool { return s.isScanning }

// ScanProgress はスキャン進捗 (0-100) を返す。
func (s *ScannerState) ScanProgress() float64 { return s.scanProgress }

// ActiveVariant は表示中のバリアントを返す。
func (s *ScannerState) ActiveVariant() model.Variant { return s.activeVariant }

// Snapshot は状態の複製を返す。
func (s *ScannerState) Snapshot() StateSnapshot {
	return StateSnapshot{
		SelectedRegion: s.selectedRegion,
		HoveredRegion:  s.hoveredRegion,
		SelectedAnchor: s.selectedAnchor,
		HoveredAnchor:  s.hoveredAnchor,
		IsScanning:     s.isScanning,
		ScanProgress:   s.scanProgress,
		ScanY:          s.ScanY(),
		ActiveVariant:  s.activeVariant,
		SkeletonLoaded: s.skeleton != nil,
		Symptoms:       s.Symptoms(),
	}
}

func (s *ScannerState) clearSelection() {
	s.selectedRegion = model.NoRegion
	s.selectedAnchor = s.settings.Highlight.InactiveAnchor()
}

// regionRadius は部位別半径を返す。未登録なら既定半径へフォールバックする。
func (s *ScannerState) regionRadius(id model.RegionID) float64 {
	radius, ok := region.HighlightRadius(id, s.settings.Highlight.DefaultRadius)
	if !ok {
		s.logger.Debug(messages.LogRegionRadiusFallback,
			zap.String("anomaly", model.AnomalyRadiusFallback),
			zap.String("region", id.String()))
	}
	return radius
}

func (s *ScannerState) hoverRadius(id model.RegionID) float64 {
	return s.regionRadius(id) * s.settings.Highlight.HoverRadiusScale
}
