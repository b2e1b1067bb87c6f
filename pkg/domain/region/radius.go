// 指示: miu200521358
package region

import "github.com/miu200521358/mu_bodyscan/pkg/domain/model"

// DefaultHighlightRadius は部位別半径が無い場合の既定ハイライト半径。
const DefaultHighlightRadius = 0.3

// highlightRadii は部位別のハイライト半径を保持する。
var highlightRadii = map[model.RegionID]float64{
	model.RegionHead:          0.15,
	model.RegionNeck:          0.1,
	model.RegionChest:         0.2,
	model.RegionUpperBack:     0.18,
	model.RegionLowerBack:     0.18,
	model.RegionAbdomen:       0.2,
	model.RegionLeftShoulder:  0.12,
	model.RegionRightShoulder: 0.12,
	model.RegionLeftArm:       0.15,
	model.RegionRightArm:      0.15,
	model.RegionLeftForeArm:   0.12,
	model.RegionRightForeArm:  0.12,
	model.RegionLeftHand:      0.08,
	model.RegionRightHand:     0.08,
	model.RegionLeftThigh:     0.18,
	model.RegionRightThigh:    0.18,
	model.RegionLeftKnee:      0.15,
	model.RegionRightKnee:     0.15,
	model.RegionLeftFoot:      0.1,
	model.RegionRightFoot:     0.1,
}

// HighlightRadius は部位別ハイライト半径を返す。未登録なら fallback と false を返す。
func HighlightRadius(id model.RegionID, fallback float64) (float64, bool) {
	if radius, exists := highlightRadii[id]; exists {
		return radius, true
	}
	return fallback, false
}
