// 指示: miu200521358
package minteractor

import (
	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

const (
	pickKindClick = "click"
	pickKindMove  = "move"
)

// Intersection はレイと表面の交点を表す。
type Intersection struct {
	Point    model.Vec3 `json:"point"`
	Distance float64    `json:"distance"`
}

// nearestIntersection はカメラに最も近い交点を返す。同距離は先の交点を採用する。
func nearestIntersection(intersections []Intersection) (Intersection, bool) {
	if len(intersections) == 0 {
		return Intersection{}, false
	}
	nearest := intersections[0]
	for _, intersection := range intersections[1:] {
		if intersection.Distance < nearest.Distance {
			nearest = intersection
		}
	}
	return nearest, true
}

// HandleClick はクリック交点から部位を解決して選択を切り替える。
// 交点が無い、スケルトン未読込、部位を解決できない場合は状態を変えない。
func (uc *BodyScanUsecase) HandleClick(intersections []Intersection) PointerOutcome {
	pick, outcome := uc.pick(pickKindClick, intersections)
	if outcome != moutput.PickOutcomeResolved {
		return PointerOutcome{Pick: pick}
	}
	uc.state.SelectPick(pick)
	regionEntry, _ := uc.catalog.Lookup(pick.RegionID)
	uc.logger.Debug(messages.LogRegionClicked,
		zap.String("region", pick.RegionID.String()),
		zap.String("joint", pick.JointName),
		zap.String("selected", uc.state.SelectedRegion().String()))
	return PointerOutcome{Pick: pick, Resolved: true, Region: regionEntry}
}

// HandleMove はポインタ移動の交点からホバー部位を更新する。解決できなければホバーを解除する。
func (uc *BodyScanUsecase) HandleMove(intersections []Intersection) PointerOutcome {
	pick, outcome := uc.pick(pickKindMove, intersections)
	if outcome != moutput.PickOutcomeResolved {
		uc.state.ClearHover()
		return PointerOutcome{Pick: pick}
	}
	uc.state.HoverPick(pick)
	regionEntry, _ := uc.catalog.Lookup(pick.RegionID)
	return PointerOutcome{Pick: pick, Resolved: true, Region: regionEntry}
}

// HandleLeave はポインタが表面から外れたときにホバーを解除する。
func (uc *BodyScanUsecase) HandleLeave() {
	uc.state.ClearHover()
}

// pick は最も近い交点から最近傍ジョイントを求め、結果分類と共に返す。
func (uc *BodyScanUsecase) pick(kind string, intersections []Intersection) (PickResult, moutput.PickOutcome) {
	intersection, ok := nearestIntersection(intersections)
	if !ok {
		uc.metrics.ObservePick(kind, moutput.PickOutcomeNoIntersect)
		return PickResult{}, moutput.PickOutcomeNoIntersect
	}
	skeleton := uc.state.Skeleton()
	if skeleton == nil {
		uc.logger.Debug(messages.LogPickWithoutSkeleton,
			zap.String("anomaly", model.AnomalySkeletonNotLoaded),
			zap.String("kind", kind),
			zap.String("variant", string(uc.state.ActiveVariant())))
		uc.metrics.ObservePick(kind, moutput.PickOutcomeNoSkeleton)
		return PickResult{}, moutput.PickOutcomeNoSkeleton
	}
	pick, resolved := uc.state.Locator().Locate(intersection.Point, skeleton)
	if !resolved {
		uc.logger.Debug(messages.LogPickUnresolved,
			zap.String("anomaly", model.AnomalyJointUnresolved),
			zap.String("kind", kind),
			zap.String("joint", pick.JointName))
		uc.metrics.ObservePick(kind, moutput.PickOutcomeUnresolved)
		return pick, moutput.PickOutcomeUnresolved
	}
	uc.metrics.ObservePick(kind, moutput.PickOutcomeResolved)
	return pick, moutput.PickOutcomeResolved
}
