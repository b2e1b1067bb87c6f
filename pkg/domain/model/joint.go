// 指示: miu200521358
package model

// Joint はスケルトン上の1ジョイントを表す。
type Joint struct {
	Name        string
	ParentIndex int
	// Position は現在姿勢でのワールド座標を保持する。
	Position Vec3
}

// Skeleton はモデルバリアント1体分のジョイント階層を表す。
// Joints の並び順は走査順であり、最近傍判定の同距離時の優先順位になる。
type Skeleton struct {
	Variant Variant
	Joints  []Joint
}

// Len はジョイント数を返す。
func (s *Skeleton) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Joints)
}

// GetByName は名前一致のジョイントを返す。
func (s *Skeleton) GetByName(name string) (Joint, bool) {
	if s == nil {
		return Joint{}, false
	}
	for _, joint := range s.Joints {
		if joint.Name == name {
			return joint, true
		}
	}
	return Joint{}, false
}
