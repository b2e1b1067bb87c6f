// 指示: miu200521358
package minteractor

import (
	"math"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

// PickResult は最近傍ジョイントから解決した部位とアンカー位置を表す。
type PickResult struct {
	RegionID  model.RegionID
	JointName string
	Anchor    model.Vec3
	Distance  float64
}

// NearestJointLocator は表面上の点から最も近いジョイントの部位を求める。
type NearestJointLocator struct {
	resolver *BoneNameResolver
}

// NewNearestJointLocator は NearestJointLocator を生成する。
func NewNearestJointLocator(resolver *BoneNameResolver) *NearestJointLocator {
	if resolver == nil {
		resolver = NewBoneNameResolver(nil)
	}
	return &NearestJointLocator{resolver: resolver}
}

// Locate は point に最も近いジョイントを線形走査し、部位とワールド位置を返す。
// 同距離は走査順で先のジョイントを採用する。最近傍ジョイントが部位を持たない場合は false。
func (l *NearestJointLocator) Locate(point model.Vec3, skeleton *model.Skeleton) (PickResult, bool) {
	nearestIndex, nearestDistance := findNearestJointIndex(point, skeleton)
	if nearestIndex < 0 {
		return PickResult{}, false
	}
	joint := skeleton.Joints[nearestIndex]
	regionID, ok := l.resolver.Resolve(joint.Name)
	if !ok {
		return PickResult{JointName: joint.Name, Distance: nearestDistance}, false
	}
	return PickResult{
		RegionID:  regionID,
		JointName: joint.Name,
		Anchor:    joint.Position,
		Distance:  nearestDistance,
	}, true
}

// RegionAnchor は走査順で最初に regionID へ解決されるジョイントの位置を返す。
func (l *NearestJointLocator) RegionAnchor(regionID model.RegionID, skeleton *model.Skeleton) (model.Vec3, bool) {
	if skeleton == nil || regionID.IsNone() {
		return model.Vec3{}, false
	}
	for _, joint := range skeleton.Joints {
		if resolved, ok := l.resolver.Resolve(joint.Name); ok && resolved == regionID {
			return joint.Position, true
		}
	}
	return model.Vec3{}, false
}

// findNearestJointIndex は最近傍ジョイントのindexと距離を返す。ジョイントが無ければ -1。
func findNearestJointIndex(point model.Vec3, skeleton *model.Skeleton) (int, float64) {
	if skeleton == nil || len(skeleton.Joints) == 0 {
		return -1, math.Inf(1)
	}
	nearestIndex := -1
	nearestDistance := math.Inf(1)
	for index, joint := range skeleton.Joints {
		distance := point.Distance(joint.Position)
		if distance < nearestDistance {
			nearestDistance = distance
			nearestIndex = index
		}
	}
	return nearestIndex, nearestDistance
}
