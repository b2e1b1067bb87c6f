// 指示: miu200521358
package model

// RegionID は解剖学的部位の正規IDを表す。空文字は「部位なし」を表す。
type RegionID string

// NoRegion は部位なしを表す。
const NoRegion RegionID = ""

// IsNone は部位なしか判定する。
func (id RegionID) IsNone() bool {
	return id == NoRegion
}

// String は文字列表現を返す。
func (id RegionID) String() string {
	return string(id)
}

// 正規部位ID一覧。
const (
	RegionHead          RegionID = "head"
	RegionNeck          RegionID = "neck"
	RegionChest         RegionID = "chest"
	RegionUpperBack     RegionID = "upperBack"
	RegionLowerBack     RegionID = "lowerBack"
	RegionAbdomen       RegionID = "abdomen"
	RegionLeftShoulder  RegionID = "leftShoulder"
	RegionRightShoulder RegionID = "rightShoulder"
	RegionLeftArm       RegionID = "leftArm"
	RegionRightArm      RegionID = "rightArm"
	RegionLeftForeArm   RegionID = "leftForeArm"
	RegionRightForeArm  RegionID = "rightForeArm"
	RegionLeftHand      RegionID = "leftHand"
	RegionRightHand     RegionID = "rightHand"
	RegionLeftThigh     RegionID = "leftThigh"
	RegionRightThigh    RegionID = "rightThigh"
	RegionLeftKnee      RegionID = "leftKnee"
	RegionRightKnee     RegionID = "rightKnee"
	RegionLeftFoot      RegionID = "leftFoot"
	RegionRightFoot     RegionID = "rightFoot"
)

// Category は部位の分類を表す。
type Category string

const (
	CategoryHead  Category = "head"
	CategoryTorso Category = "torso"
	CategoryArm   Category = "arm"
	CategoryLeg   Category = "leg"
	CategoryJoint Category = "joint"
)

// Valid は閉じた列挙に含まれるか判定する。
func (c Category) Valid() bool {
	switch c {
	case CategoryHead, CategoryTorso, CategoryArm, CategoryLeg, CategoryJoint:
		return true
	}
	return false
}

// Region は部位カタログの1件を表す。生成後は変更しない。
type Region struct {
	ID              RegionID `json:"id"`
	DisplayName     string   `json:"displayName"`
	Description     string   `json:"description"`
	Category        Category `json:"category"`
	RelatedSymptoms []string `json:"relatedSymptoms"`
	// JointHint は旧来の対応ジョイント名 (mixamorig 命名) を保持する。
	JointHint string `json:"jointHint"`
}
