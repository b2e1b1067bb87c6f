// 指示: miu200521358
package minteractor

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
)

const (
	mixamoPrefix      = "mixamorig"
	mixamoColonPrefix = "mixamorig:"
)

// rigRootTokens は比較前に除去するリグ全体の接頭語。arm 等の部位キーワードと誤一致するため。
var rigRootTokens = []string{"armature"}

// JointResolveSource はジョイント名解決の根拠を表す。
type JointResolveSource string

const (
	// JointResolveSourceNone は解決できなかったことを表す。
	JointResolveSourceNone JointResolveSource = "none"
	// JointResolveSourceExact は完全一致表で解決したことを表す。
	JointResolveSourceExact JointResolveSource = "exact"
	// JointResolveSourceKeyword はキーワード規則で解決したことを表す。
	JointResolveSourceKeyword JointResolveSource = "keyword"
	// JointResolveSourceCatalogHint はカタログのジョイントヒントで解決したことを表す。
	JointResolveSourceCatalogHint JointResolveSource = "catalog_hint"
)

// JointResolution はジョイント名の解決結果を表す。
type JointResolution struct {
	RegionID model.RegionID
	Source   JointResolveSource
	// Rule はキーワード規則で解決した場合の規則名を保持する。
	Rule string
}

// Found は部位が解決できたか判定する。
func (r JointResolution) Found() bool {
	return !r.RegionID.IsNone()
}

// regionJointNames は部位1件分の命名規約別ジョイント名を表す。
type regionJointNames struct {
	RegionID model.RegionID
	// BareCamel は接頭辞なしキャメル (LeftForeArm)。mixamorig 接頭辞付きもここから生成する。
	BareCamel string
	// LimbSuffix はアンダースコア/左右接尾辞規約 (lowerarm_l)。
	LimbSuffix string
	// Engine はエンジン系規約 (Bip01 L Forearm)。
	Engine string
	// Humanoid は VRM humanoid 規約 (leftLowerArm)。
	Humanoid string
	// Vroid は VRoid 規約 (J_Bip_L_LowerArm)。
	Vroid string
}

// Names は全命名規約のジョイント名を返す。
func (n regionJointNames) Names() []string {
	names := make([]string, 0, 7)
	for _, name := range []string{
		mixamoPrefix + n.BareCamel,
		mixamoColonPrefix + n.BareCamel,
		n.BareCamel,
		n.LimbSuffix,
		n.Engine,
		n.Humanoid,
		n.Vroid,
	} {
		if strings.TrimSpace(name) == "" || name == mixamoPrefix || name == mixamoColonPrefix {
			continue
		}
		names = append(names, name)
	}
	return names
}

// regionJointNameTable は部位ごとの既知ジョイント名を保持する。
var regionJointNameTable = []regionJointNames{
	{RegionID: model.RegionHead, BareCamel: "Head", LimbSuffix: "head", Engine: "Bip01 Head", Humanoid: "head", Vroid: "J_Bip_C_Head"},
	{RegionID: model.RegionNeck, BareCamel: "Neck", LimbSuffix: "neck_01", Engine: "Bip01 Neck", Humanoid: "neck", Vroid: "J_Bip_C_Neck"},
	{RegionID: model.RegionChest, BareCamel: "Spine2", LimbSuffix: "spine_02", Engine: "Bip01 Spine2", Humanoid: "upperChest", Vroid: "J_Bip_C_UpperChest"},
	{RegionID: model.RegionUpperBack, BareCamel: "Spine1", LimbSuffix: "spine_01", Engine: "Bip01 Spine1", Humanoid: "chest", Vroid: "J_Bip_C_Chest"},
	{RegionID: model.RegionLowerBack, BareCamel: "Spine", LimbSuffix: "spine", Engine: "Bip01 Spine", Humanoid: "spine", Vroid: "J_Bip_C_Spine"},
	{RegionID: model.RegionAbdomen, BareCamel: "Hips", LimbSuffix: "pelvis", Engine: "Bip01 Pelvis", Humanoid: "hips", Vroid: "J_Bip_C_Hips"},
	{RegionID: model.RegionLeftShoulder, BareCamel: "LeftShoulder", LimbSuffix: "clavicle_l", Engine: "Bip01 L Clavicle", Humanoid: "leftShoulder", Vroid: "J_Bip_L_Shoulder"},
	{RegionID: model.RegionRightShoulder, BareCamel: "RightShoulder", LimbSuffix: "clavicle_r", Engine: "Bip01 R Clavicle", Humanoid: "rightShoulder", Vroid: "J_Bip_R_Shoulder"},
	{RegionID: model.RegionLeftArm, BareCamel: "LeftArm", LimbSuffix: "upperarm_l", Engine: "Bip01 L UpperArm", Humanoid: "leftUpperArm", Vroid: "J_Bip_L_UpperArm"},
	{RegionID: model.RegionRightArm, BareCamel: "RightArm", LimbSuffix: "upperarm_r", Engine: "Bip01 R UpperArm", Humanoid: "rightUpperArm", Vroid: "J_Bip_R_UpperArm"},
	{RegionID: model.RegionLeftForeArm, BareCamel: "LeftForeArm", LimbSuffix: "lowerarm_l", Engine: "Bip01 L Forearm", Humanoid: "leftLowerArm", Vroid: "J_Bip_L_LowerArm"},
	{RegionID: model.RegionRightForeArm, BareCamel: "RightForeArm", LimbSuffix: "lowerarm_r", Engine: "Bip01 R Forearm", Humanoid: "rightLowerArm", Vroid: "J_Bip_R_LowerArm"},
	{RegionID: model.RegionLeftHand, BareCamel: "LeftHand", LimbSuffix: "hand_l", Engine: "Bip01 L Hand", Humanoid: "leftHand", Vroid: "J_Bip_L_Hand"},
	{RegionID: model.RegionRightHand, BareCamel: "RightHand", LimbSuffix: "hand_r", Engine: "Bip01 R Hand", Humanoid: "rightHand", Vroid: "J_Bip_R_Hand"},
	{RegionID: model.RegionLeftThigh, BareCamel: "LeftUpLeg", LimbSuffix: "thigh_l", Engine: "Bip01 L Thigh", Humanoid: "leftUpperLeg", Vroid: "J_Bip_L_UpperLeg"},
	{RegionID: model.RegionRightThigh, BareCamel: "RightUpLeg", LimbSuffix: "thigh_r", Engine: "Bip01 R Thigh", Humanoid: "rightUpperLeg", Vroid: "J_Bip_R_UpperLeg"},
	{RegionID: model.RegionLeftKnee, BareCamel: "LeftLeg", LimbSuffix: "calf_l", Engine: "Bip01 L Calf", Humanoid: "leftLowerLeg", Vroid: "J_Bip_L_LowerLeg"},
	{RegionID: model.RegionRightKnee, BareCamel: "RightLeg", LimbSuffix: "calf_r", Engine: "Bip01 R Calf", Humanoid: "rightLowerLeg", Vroid: "J_Bip_R_LowerLeg"},
	{RegionID: model.RegionLeftFoot, BareCamel: "LeftFoot", LimbSuffix: "foot_l", Engine: "Bip01 L Foot", Humanoid: "leftFoot", Vroid: "J_Bip_L_Foot"},
	{RegionID: model.RegionRightFoot, BareCamel: "RightFoot", LimbSuffix: "foot_r", Engine: "Bip01 R Foot", Humanoid: "rightFoot", Vroid: "J_Bip_R_Foot"},
}

// jointSide はキーワード規則が要求する左右を表す。
type jointSide int

const (
	jointSideAny jointSide = iota
	jointSideLeft
	jointSideRight
)

// jointKeywordRule はキーワード推定の1規則を表す。左右判定と部位判定は1規則内で同時に評価する。
type jointKeywordRule struct {
	Name     string
	RegionID model.RegionID
	Side     jointSide
	// Keywords はいずれか1つを含めば一致とする。
	Keywords []string
	// Excludes はいずれか1つでも含めば不一致とする。
	Excludes []string
	// BareSpine は spine の直後に段数の数字が続かないことを要求する。
	BareSpine bool
}

// jointKeywordRules は優先順位順のキーワード推定規則を保持する。先勝ち。
var jointKeywordRules = []jointKeywordRule{
	{Name: "head", RegionID: model.RegionHead, Keywords: []string{"head"}},
	{Name: "neck", RegionID: model.RegionNeck, Keywords: []string{"neck"}},
	{Name: "chest", RegionID: model.RegionChest, Keywords: []string{"spine2", "spine02", "spine3", "spine03", "upperchest"}},
	{Name: "upper_back", RegionID: model.RegionUpperBack, Keywords: []string{"spine1", "spine01", "chest"}},
	{Name: "lower_back", RegionID: model.RegionLowerBack, Keywords: []string{"spine"}, BareSpine: true},
	{Name: "abdomen", RegionID: model.RegionAbdomen, Keywords: []string{"hip", "pelvis"}},
	{Name: "left_shoulder", RegionID: model.RegionLeftShoulder, Side: jointSideLeft, Keywords: []string{"shoulder", "clavicle"}},
	{Name: "left_arm", RegionID: model.RegionLeftArm, Side: jointSideLeft, Keywords: []string{"upperarm", "arm"}, Excludes: []string{"forearm", "lowerarm"}},
	{Name: "left_fore_arm", RegionID: model.RegionLeftForeArm, Side: jointSideLeft, Keywords: []string{"forearm", "lowerarm", "elbow"}},
	{Name: "left_hand", RegionID: model.RegionLeftHand, Side: jointSideLeft, Keywords: []string{"hand", "wrist", "thumb", "index", "pinky"}, Excludes: []string{"foot", "toe"}},
	{Name: "right_shoulder", RegionID: model.RegionRightShoulder, Side: jointSideRight, Keywords: []string{"shoulder", "clavicle"}},
	{Name: "right_arm", RegionID: model.RegionRightArm, Side: jointSideRight, Keywords: []string{"upperarm", "arm"}, Excludes: []string{"forearm", "lowerarm"}},
	{Name: "right_fore_arm", RegionID: model.RegionRightForeArm, Side: jointSideRight, Keywords: []string{"forearm", "lowerarm", "elbow"}},
	{Name: "right_hand", RegionID: model.RegionRightHand, Side: jointSideRight, Keywords: []string{"hand", "wrist", "thumb", "index", "pinky"}, Excludes: []string{"foot", "toe"}},
	{Name: "left_thigh", RegionID: model.RegionLeftThigh, Side: jointSideLeft, Keywords: []string{"upleg", "upperleg", "thigh"}},
	{Name: "left_knee", RegionID: model.RegionLeftKnee, Side: jointSideLeft, Keywords: []string{"knee", "calf", "shin", "lowerleg", "leg"}},
	{Name: "left_foot", RegionID: model.RegionLeftFoot, Side: jointSideLeft, Keywords: []string{"foot", "toe", "ankle"}},
	{Name: "right_thigh", RegionID: model.RegionRightThigh, Side: jointSideRight, Keywords: []string{"upleg", "upperleg", "thigh"}},
	{Name: "right_knee", RegionID: model.RegionRightKnee, Side: jointSideRight, Keywords: []string{"knee", "calf", "shin", "lowerleg", "leg"}},
	{Name: "right_foot", RegionID: model.RegionRightFoot, Side: jointSideRight, Keywords: []string{"foot", "toe", "ankle"}},
}

// BoneNameResolver は任意命名規約のジョイント名を正規部位IDへ解決する。
type BoneNameResolver struct {
	catalog *region.Catalog
	exact   map[string]model.RegionID
	rules   []jointKeywordRule
}

// NewBoneNameResolver は BoneNameResolver を生成する。catalog が nil なら既定カタログを使う。
func NewBoneNameResolver(catalog *region.Catalog) *BoneNameResolver {
	if catalog == nil {
		catalog = region.Default()
	}
	return &BoneNameResolver{
		catalog: catalog,
		exact:   buildExactJointTable(regionJointNameTable),
		rules:   jointKeywordRules,
	}
}

// Resolve はジョイント名から部位IDを返す。解決できない場合は false。
func (r *BoneNameResolver) Resolve(jointName string) (model.RegionID, bool) {
	resolution := r.ResolveWithSource(jointName)
	return resolution.RegionID, resolution.Found()
}

// ResolveWithSource は完全一致表、キーワード規則、カタログヒントの順に解決する。
func (r *BoneNameResolver) ResolveWithSource(jointName string) JointResolution {
	trimmed := strings.TrimSpace(jointName)
	if trimmed == "" {
		return JointResolution{Source: JointResolveSourceNone}
	}

	if regionID, exists := r.exact[trimmed]; exists && r.catalog.Contains(regionID) {
		return JointResolution{RegionID: regionID, Source: JointResolveSourceExact}
	}

	if rule, ok := r.matchKeywordRule(trimmed); ok {
		return JointResolution{RegionID: rule.RegionID, Source: JointResolveSourceKeyword, Rule: rule.Name}
	}

	if part, ok := r.catalog.ByMeshJointHint(trimmed); ok {
		return JointResolution{RegionID: part.ID, Source: JointResolveSourceCatalogHint}
	}
	return JointResolution{Source: JointResolveSourceNone}
}

// matchKeywordRule は優先順位順にキーワード規則を評価し、最初に一致した規則を返す。
func (r *BoneNameResolver) matchKeywordRule(jointName string) (jointKeywordRule, bool) {
	folded := cases.Fold().String(jointName)
	side := detectJointSide(folded)
	compact := compactJointName(folded)
	for _, rule := range r.rules {
		if !rule.matches(side, compact) {
			continue
		}
		if !r.catalog.Contains(rule.RegionID) {
			continue
		}
		return rule, true
	}
	return jointKeywordRule{}, false
}

// matches は左右と部位キーワードを同時に判定する。
func (rule jointKeywordRule) matches(side jointSide, compact string) bool {
	if rule.Side != jointSideAny && rule.Side != side {
		return false
	}
	for _, exclude := range rule.Excludes {
		if strings.Contains(compact, exclude) {
			return false
		}
	}
	for _, keyword := range rule.Keywords {
		if !strings.Contains(compact, keyword) {
			continue
		}
		if rule.BareSpine && !hasBareKeyword(compact, keyword) {
			continue
		}
		return true
	}
	return false
}

// detectJointSide は畳み込み済みジョイント名から左右を判定する。左の印を先に評価する。
func detectJointSide(folded string) jointSide {
	tokens := strings.FieldsFunc(folded, isJointNameSeparator)
	hasToken := func(target string) bool {
		for _, token := range tokens {
			if token == target {
				return true
			}
		}
		return false
	}
	switch {
	case strings.Contains(folded, "left"), strings.HasSuffix(folded, "_l"), hasToken("l"):
		return jointSideLeft
	case strings.Contains(folded, "right"), strings.HasSuffix(folded, "_r"), hasToken("r"):
		return jointSideRight
	}
	return jointSideAny
}

// compactJointName は区切り文字とリグ接頭語を除去した比較用文字列を返す。
func compactJointName(folded string) string {
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if isJointNameSeparator(r) {
			continue
		}
		b.WriteRune(r)
	}
	compact := b.String()
	for _, token := range rigRootTokens {
		compact = strings.ReplaceAll(compact, token, "")
	}
	return compact
}

// isJointNameSeparator はジョイント名の区切り文字か判定する。
func isJointNameSeparator(r rune) bool {
	switch r {
	case '_', '.', ':', '-', '|', '/':
		return true
	}
	return unicode.IsSpace(r)
}

// hasBareKeyword は keyword の出現のうち直後に数字が続かないものがあるか判定する。
func hasBareKeyword(compact string, keyword string) bool {
	rest := compact
	for {
		index := strings.Index(rest, keyword)
		if index < 0 {
			return false
		}
		after := rest[index+len(keyword):]
		if after == "" || !unicode.IsDigit(rune(after[0])) {
			return true
		}
		rest = after
	}
}

// buildExactJointTable は命名規約別ジョイント名から完全一致表を構築する。同名は先勝ち。
func buildExactJointTable(table []regionJointNames) map[string]model.RegionID {
	out := map[string]model.RegionID{}
	for _, entry := range table {
		for _, name := range entry.Names() {
			if _, exists := out[name]; exists {
				continue
			}
			out[name] = entry.RegionID
		}
	}
	return out
}
