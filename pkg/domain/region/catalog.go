// 指示: miu200521358
// Package region は部位カタログ (部位ID → 表示用メタデータ) を提供する。
package region

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

// jointHintPrefix は旧来ジョイント名の命名規約接頭辞。
const jointHintPrefix = "mixamorig"

// defaultRegions は既定カタログの定義順一覧を保持する。
var defaultRegions = []model.Region{
	{
		ID: model.RegionHead, JointHint: "mixamorigHead", DisplayName: "頭",
		Description: "頭痛、めまい、片頭痛、脳に関する症状", Category: model.CategoryHead,
		RelatedSymptoms: []string{"頭痛", "めまい", "片頭痛", "視力低下", "耳鳴り"},
	},
	{
		ID: model.RegionNeck, JointHint: "mixamorigNeck", DisplayName: "首",
		Description: "首の痛み、頸椎ヘルニア、ストレートネック", Category: model.CategoryHead,
		RelatedSymptoms: []string{"首の痛み", "頸椎ヘルニア", "ストレートネック", "肩こり", "手のしびれ"},
	},
	{
		ID: model.RegionChest, JointHint: "mixamorigSpine2", DisplayName: "胸",
		Description: "胸痛、呼吸困難、心臓に関する症状", Category: model.CategoryTorso,
		RelatedSymptoms: []string{"胸痛", "呼吸困難", "胸の圧迫感", "動悸"},
	},
	{
		ID: model.RegionUpperBack, JointHint: "mixamorigSpine1", DisplayName: "背中上部",
		Description: "背中の痛み、姿勢の問題、肩甲骨の痛み", Category: model.CategoryTorso,
		RelatedSymptoms: []string{"背中の痛み", "姿勢不良", "肩甲骨の痛み", "肩こり"},
	},
	{
		ID: model.RegionLowerBack, JointHint: "mixamorigSpine", DisplayName: "腰",
		Description: "腰痛、椎間板ヘルニア、脊柱側弯症", Category: model.CategoryTorso,
		RelatedSymptoms: []string{"腰痛", "椎間板ヘルニア", "側弯", "坐骨神経痛"},
	},
	{
		ID: model.RegionAbdomen, JointHint: "mixamorigHips", DisplayName: "腹部/骨盤",
		Description: "腹痛、消化不良、骨盤の痛み", Category: model.CategoryTorso,
		RelatedSymptoms: []string{"腹痛", "消化不良", "骨盤痛", "生理痛"},
	},
	{
		ID: model.RegionLeftShoulder, JointHint: "mixamorigLeftShoulder", DisplayName: "左肩",
		Description: "肩こり、五十肩、腱板損傷", Category: model.CategoryArm,
		RelatedSymptoms: []string{"肩こり", "五十肩", "腕のしびれ", "肩の痛み"},
	},
	{
		ID: model.RegionRightShoulder, JointHint: "mixamorigRightShoulder", DisplayName: "右肩",
		Description: "肩こり、五十肩、腱板損傷", Category: model.CategoryArm,
		RelatedSymptoms: []string{"肩こり", "五十肩", "腕のしびれ", "肩の痛み"},
	},
	{
		ID: model.RegionLeftArm, JointHint: "mixamorigLeftArm", DisplayName: "左上腕",
		Description: "腕の痛み、筋肉痛、肘の痛み", Category: model.CategoryArm,
		RelatedSymptoms: []string{"腕の痛み", "筋肉痛", "テニス肘", "腕のしびれ"},
	},
	{
		ID: model.RegionRightArm, JointHint: "mixamorigRightArm", DisplayName: "右上腕",
		Description: "腕の痛み、筋肉痛、肘の痛み", Category: model.CategoryArm,
		RelatedSymptoms: []string{"腕の痛み", "筋肉痛", "テニス肘", "腕のしびれ"},
	},
	{
		ID: model.RegionLeftForeArm, JointHint: "mixamorigLeftForeArm", DisplayName: "左前腕",
		Description: "前腕の痛み、手根管症候群", Category: model.CategoryArm,
		RelatedSymptoms: []string{"前腕の痛み", "手根管症候群", "手のしびれ"},
	},
	{
		ID: model.RegionRightForeArm, JointHint: "mixamorigRightForeArm", DisplayName: "右前腕",
		Description: "前腕の痛み、手根管症候群", Category: model.CategoryArm,
		RelatedSymptoms: []string{"前腕の痛み", "手根管症候群", "手のしびれ"},
	},
	{
		ID: model.RegionLeftHand, JointHint: "mixamorigLeftHand", DisplayName: "左手",
		Description: "手のしびれ、関節炎、指の痛み", Category: model.CategoryArm,
		RelatedSymptoms: []string{"手のしびれ", "関節炎", "指の痛み", "手首の痛み"},
	},
	{
		ID: model.RegionRightHand, JointHint: "mixamorigRightHand", DisplayName: "右手",
		Description: "手のしびれ、関節炎、指の痛み", Category: model.CategoryArm,
		RelatedSymptoms: []string{"手のしびれ", "関節炎", "指の痛み", "手首の痛み"},
	},
	{
		ID: model.RegionLeftThigh, JointHint: "mixamorigLeftUpLeg", DisplayName: "左太もも",
		Description: "大腿部の痛み、坐骨神経痛、筋肉痛", Category: model.CategoryLeg,
		RelatedSymptoms: []string{"大腿部の痛み", "坐骨神経痛", "筋肉痛", "股関節の痛み"},
	},
	{
		ID: model.RegionRightThigh, JointHint: "mixamorigRightUpLeg", DisplayName: "右太もも",
		Description: "大腿部の痛み、坐骨神経痛、筋肉痛", Category: model.CategoryLeg,
		RelatedSymptoms: []string{"大腿部の痛み", "坐骨神経痛", "筋肉痛", "股関節の痛み"},
	},
	{
		ID: model.RegionLeftKnee, JointHint: "mixamorigLeftLeg", DisplayName: "左膝/ふくらはぎ",
		Description: "膝の痛み、関節炎、こむら返り", Category: model.CategoryJoint,
		RelatedSymptoms: []string{"膝の痛み", "関節炎", "こむら返り", "静脈瘤"},
	},
	{
		ID: model.RegionRightKnee, JointHint: "mixamorigRightLeg", DisplayName: "右膝/ふくらはぎ",
		Description: "膝の痛み、関節炎、こむら返り", Category: model.CategoryJoint,
		RelatedSymptoms: []string{"膝の痛み", "関節炎", "こむら返り", "静脈瘤"},
	},
	{
		ID: model.RegionLeftFoot, JointHint: "mixamorigLeftFoot", DisplayName: "左足",
		Description: "足底筋膜炎、足首の捻挫、アキレス腱の痛み", Category: model.CategoryLeg,
		RelatedSymptoms: []string{"足底筋膜炎", "足首の捻挫", "アキレス腱の痛み", "足のしびれ"},
	},
	{
		ID: model.RegionRightFoot, JointHint: "mixamorigRightFoot", DisplayName: "右足",
		Description: "足底筋膜炎、足首の捻挫、アキレス腱の痛み", Category: model.CategoryLeg,
		RelatedSymptoms: []string{"足底筋膜炎", "足首の捻挫", "アキレス腱の痛み", "足のしびれ"},
	},
}

// Catalog は不変の部位カタログを表す。複数 goroutine から参照してよい。
type Catalog struct {
	regions []model.Region
	byID    map[model.RegionID]int
	// hints は接頭辞除去・大小文字畳み込み済みのジョイントヒントを定義順に保持する。
	hints []string
}

// NewCatalog は部位一覧からカタログを生成する。ID重複時は先勝ち。
func NewCatalog(regions []model.Region) *Catalog {
	c := &Catalog{
		regions: make([]model.Region, 0, len(regions)),
		byID:    make(map[model.RegionID]int, len(regions)),
		hints:   make([]string, 0, len(regions)),
	}
	for _, r := range regions {
		if r.ID.IsNone() {
			continue
		}
		if _, exists := c.byID[r.ID]; exists {
			continue
		}
		r.RelatedSymptoms = slices.Clone(r.RelatedSymptoms)
		c.byID[r.ID] = len(c.regions)
		c.regions = append(c.regions, r)
		c.hints = append(c.hints, normalizeJointHint(r.JointHint))
	}
	return c
}

// Default は既定の20部位カタログを返す。
func Default() *Catalog {
	return defaultCatalog
}

var defaultCatalog = NewCatalog(defaultRegions)

// Lookup はIDから部位を返す。見つからない場合は false。
func (c *Catalog) Lookup(id model.RegionID) (model.Region, bool) {
	if c == nil {
		return model.Region{}, false
	}
	index, exists := c.byID[id]
	if !exists {
		return model.Region{}, false
	}
	return cloneRegion(c.regions[index]), true
}

// Contains はIDがカタログに存在するか判定する。
func (c *Catalog) Contains(id model.RegionID) bool {
	if c == nil {
		return false
	}
	_, exists := c.byID[id]
	return exists
}

// ByMeshJointHint はジョイント名断片に旧来ジョイント名 (接頭辞除去済み) を含む最初の部位を返す。
func (c *Catalog) ByMeshJointHint(jointNameFragment string) (model.Region, bool) {
	if c == nil {
		return model.Region{}, false
	}
	fragment := cases.Fold().String(jointNameFragment)
	for index, hint := range c.hints {
		if hint == "" {
			continue
		}
		if strings.Contains(fragment, hint) {
			return cloneRegion(c.regions[index]), true
		}
	}
	return model.Region{}, false
}

// All は全部位を定義順に返す。
func (c *Catalog) All() []model.Region {
	if c == nil {
		return nil
	}
	out := make([]model.Region, 0, len(c.regions))
	for _, r := range c.regions {
		out = append(out, cloneRegion(r))
	}
	return out
}

// ByCategory は分類に属する部位を定義順に返す。
func (c *Catalog) ByCategory(category model.Category) []model.Region {
	out := []model.Region{}
	if c == nil {
		return out
	}
	for _, r := range c.regions {
		if r.Category == category {
			out = append(out, cloneRegion(r))
		}
	}
	return out
}

// IDs は全部位IDを定義順に返す。
func (c *Catalog) IDs() []model.RegionID {
	if c == nil {
		return nil
	}
	out := make([]model.RegionID, 0, len(c.regions))
	for _, r := range c.regions {
		out = append(out, r.ID)
	}
	return out
}

// normalizeJointHint はジョイントヒントの命名規約接頭辞を除去し、大小文字を畳み込む。
func normalizeJointHint(hint string) string {
	folded := cases.Fold().String(strings.TrimSpace(hint))
	return strings.TrimPrefix(folded, jointHintPrefix)
}

func cloneRegion(r model.Region) model.Region {
	r.RelatedSymptoms = slices.Clone(r.RelatedSymptoms)
	return r
}
