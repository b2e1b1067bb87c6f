// 指示: miu200521358
package gltf

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

const (
	glbHeaderLength   = 12
	glbChunkHeadSize  = 8
	glbMagic          = 0x46546C67
	glbJSONChunkType  = 0x4E4F534A
	glbMinValidLength = glbHeaderLength + glbChunkHeadSize
)

var (
	// ErrExtInvalid は読み込めない拡張子を表す。
	ErrExtInvalid = errors.New("拡張子が未対応です")
	// ErrFileNotFound はファイルが存在しないことを表す。
	ErrFileNotFound = errors.New("ファイルが見つかりません")
	// ErrParseFailed は解析失敗を表す。
	ErrParseFailed = errors.New("解析に失敗しました")
	// ErrFormatNotSupported は未対応の形式を表す。
	ErrFormatNotSupported = errors.New("形式が未対応です")
)

// newIoError は分類エラーにメッセージと原因を付与する。
func newIoError(kind error, message string, cause error, params ...any) error {
	text := fmt.Sprintf(message, params...)
	if cause != nil {
		return fmt.Errorf("%w: %s: %w", kind, text, cause)
	}
	return fmt.Errorf("%w: %s", kind, text)
}

// SkeletonRepository は glTF/GLB/VRM ファイルのノード階層からスケルトンを読み込む。
type SkeletonRepository struct {
	logger *zap.Logger
}

// NewSkeletonRepository は SkeletonRepository を生成する。
func NewSkeletonRepository(logger *zap.Logger) *SkeletonRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkeletonRepository{logger: logger}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SkeletonRepository) CanLoad(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".vrm", ".gltf":
		return true
	default:
		return false
	}
}

// Load はファイルを読み込み、ジョイントのワールド座標を持つスケルトンを返す。
// Variant は呼び出し側で設定する。
func (r *SkeletonRepository) Load(path string) (*model.Skeleton, error) {
	if !r.CanLoad(path) {
		return nil, newIoError(ErrExtInvalid, "%s", nil, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newIoError(ErrFileNotFound, "%s", err, path)
		}
		return nil, newIoError(ErrParseFailed, "ファイルの読み取りに失敗しました", err)
	}
	jsonChunk := b
	if !strings.EqualFold(filepath.Ext(path), ".gltf") {
		jsonChunk, err = parseGLBJSONChunk(b)
		if err != nil {
			return nil, err
		}
	}
	skeleton, err := Parse(jsonChunk)
	if err != nil {
		return nil, err
	}
	r.logger.Info(messages.LogSkeletonAssetLoaded,
		zap.String("file", filepath.Base(path)),
		zap.Int("joints", skeleton.Len()))
	return skeleton, nil
}

// Parse は glTF JSON からスケルトンを構築する。
// skin がある場合は最初の skin のジョイント順、無い場合はメッシュを持たない全ノードを走査順とする。
// VRM humanoid に割り当てられたノードは humanoid ボーン名をジョイント名に使う。
func Parse(jsonChunk []byte) (*model.Skeleton, error) {
	doc := gltfDocument{}
	if err := json.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, newIoError(ErrParseFailed, "JSONチャンクの解析に失敗しました", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, newIoError(ErrFormatNotSupported, "ノードがありません", nil)
	}
	parents, err := buildNodeParentIndexes(doc.Nodes)
	if err != nil {
		return nil, err
	}
	worldPositions, err := buildNodeWorldPositions(doc.Nodes, parents)
	if err != nil {
		return nil, err
	}
	humanoidNames, err := parseHumanoidBoneNames(doc.Extensions)
	if err != nil {
		return nil, err
	}
	jointNodes, err := collectJointNodes(&doc)
	if err != nil {
		return nil, err
	}

	nodeToJoint := make(map[int]int, len(jointNodes))
	for jointIndex, nodeIndex := range jointNodes {
		nodeToJoint[nodeIndex] = jointIndex
	}
	skeleton := &model.Skeleton{Joints: make([]model.Joint, 0, len(jointNodes))}
	for _, nodeIndex := range jointNodes {
		name := resolveJointName(nodeIndex, doc.Nodes[nodeIndex].Name, humanoidNames)
		skeleton.Joints = append(skeleton.Joints, model.Joint{
			Name:        name,
			ParentIndex: findJointAncestor(nodeIndex, parents, nodeToJoint),
			Position:    worldPositions[nodeIndex],
		})
	}
	return skeleton, nil
}

// gltfDocument はスケルトン構築に必要な glTF トップレベル要素を表す。
type gltfDocument struct {
	Asset          gltfAsset                  `json:"asset"`
	Skins          []gltfSkin                 `json:"skins"`
	ExtensionsUsed []string                   `json:"extensionsUsed"`
	Nodes          []gltfNode                 `json:"nodes"`
	Extensions     map[string]json.RawMessage `json:"extensions"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

// gltfNode は glTF node 要素を表す。
type gltfNode struct {
	Name        string    `json:"name"`
	Mesh        *int      `json:"mesh"`
	Children    []int     `json:"children"`
	Matrix      []float64 `json:"matrix"`
	Translation []float64 `json:"translation"`
	Rotation    []float64 `json:"rotation"`
	Scale       []float64 `json:"scale"`
}

type gltfSkin struct {
	Joints []int `json:"joints"`
}

type vrm0Extension struct {
	Humanoid struct {
		HumanBones []struct {
			Bone string `json:"bone"`
			Node int    `json:"node"`
		} `json:"humanBones"`
	} `json:"humanoid"`
}

type vrm1Extension struct {
	Humanoid struct {
		HumanBones map[string]struct {
			Node *int `json:"node"`
		} `json:"humanBones"`
	} `json:"humanoid"`
}

// parseGLBJSONChunk は GLB バイナリから JSON チャンクを取り出す。
func parseGLBJSONChunk(b []byte) ([]byte, error) {
	if len(b) < glbMinValidLength {
		return nil, newIoError(ErrParseFailed, "GLBヘッダが不足しています", nil)
	}
	if magic := binary.LittleEndian.Uint32(b[0:4]); magic != glbMagic {
		return nil, newIoError(ErrParseFailed, "GLBマジックが不正です", nil)
	}
	if version := binary.LittleEndian.Uint32(b[4:8]); version != 2 {
		return nil, newIoError(ErrFormatNotSupported, "GLBバージョンが未対応です: %d", nil, version)
	}
	if totalLength := binary.LittleEndian.Uint32(b[8:12]); totalLength > uint32(len(b)) {
		return nil, newIoError(ErrParseFailed, "GLB全体長が不正です", nil)
	}

	offset := glbHeaderLength
	for offset+glbChunkHeadSize <= len(b) {
		chunkLength := int(binary.LittleEndian.Uint32(b[offset : offset+4]))
		chunkType := binary.LittleEndian.Uint32(b[offset+4 : offset+8])
		chunkStart := offset + glbChunkHeadSize
		chunkEnd := chunkStart + chunkLength
		if chunkLength < 0 || chunkEnd > len(b) {
			return nil, newIoError(ErrParseFailed, "GLBチャンク長が不正です", nil)
		}
		if chunkType == glbJSONChunkType {
			return b[chunkStart:chunkEnd], nil
		}
		offset = chunkEnd
	}
	return nil, newIoError(ErrParseFailed, "GLB JSONチャンクが見つかりません", nil)
}

// buildNodeParentIndexes は node 配列から親インデックス配列を生成する。
func buildNodeParentIndexes(nodes []gltfNode) ([]int, error) {
	parentIndexes := make([]int, len(nodes))
	for i := range parentIndexes {
		parentIndexes[i] = -1
	}
	for parentIndex, node := range nodes {
		for _, childIndex := range node.Children {
			if childIndex < 0 || childIndex >= len(nodes) {
				return nil, newIoError(ErrParseFailed, "node.children のindexが不正です: %d", nil, childIndex)
			}
			if parentIndexes[childIndex] == -1 {
				parentIndexes[childIndex] = parentIndex
			}
		}
	}
	return parentIndexes, nil
}

// buildNodeWorldPositions は node のローカル変換からワールド座標を算出する。
func buildNodeWorldPositions(nodes []gltfNode, parents []int) ([]model.Vec3, error) {
	worldMats := make([]mgl64.Mat4, len(nodes))
	state := make([]int, len(nodes))
	for i := range nodes {
		if err := resolveNodeWorldMatrix(nodes, parents, i, state, worldMats); err != nil {
			return nil, err
		}
	}
	positions := make([]model.Vec3, len(nodes))
	for i, mat := range worldMats {
		translation := mat.Col(3)
		positions[i] = model.NewVec3(translation.X(), translation.Y(), translation.Z())
	}
	return positions, nil
}

// resolveNodeWorldMatrix は node のワールド行列を再帰的に解決する。
func resolveNodeWorldMatrix(
	nodes []gltfNode,
	parents []int,
	nodeIndex int,
	state []int,
	worldMats []mgl64.Mat4,
) error {
	if state[nodeIndex] == 2 {
		return nil
	}
	if state[nodeIndex] == 1 {
		return newIoError(ErrParseFailed, "node親子関係に循環があります: %d", nil, nodeIndex)
	}
	state[nodeIndex] = 1
	local, err := nodeLocalMatrix(nodes[nodeIndex])
	if err != nil {
		return err
	}
	if parentIndex := parents[nodeIndex]; parentIndex >= 0 {
		if err := resolveNodeWorldMatrix(nodes, parents, parentIndex, state, worldMats); err != nil {
			return err
		}
		worldMats[nodeIndex] = worldMats[parentIndex].Mul4(local)
	} else {
		worldMats[nodeIndex] = local
	}
	state[nodeIndex] = 2
	return nil
}

// nodeLocalMatrix は node 要素からローカル行列を生成する。
func nodeLocalMatrix(node gltfNode) (mgl64.Mat4, error) {
	if len(node.Matrix) > 0 {
		if len(node.Matrix) != 16 {
			return mgl64.Ident4(), newIoError(ErrParseFailed, "node.matrix の要素数が不正です: %d", nil, len(node.Matrix))
		}
		mat := mgl64.Mat4{}
		copy(mat[:], node.Matrix)
		return mat, nil
	}
	translation, err := parseVec3(node.Translation, mgl64.Vec3{}, "node.translation")
	if err != nil {
		return mgl64.Ident4(), err
	}
	scale, err := parseVec3(node.Scale, mgl64.Vec3{1, 1, 1}, "node.scale")
	if err != nil {
		return mgl64.Ident4(), err
	}
	rotation, err := parseQuaternion(node.Rotation)
	if err != nil {
		return mgl64.Ident4(), err
	}
	return mgl64.Translate3D(translation.X(), translation.Y(), translation.Z()).
		Mul4(rotation.Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())), nil
}

func parseVec3(values []float64, defaultValue mgl64.Vec3, label string) (mgl64.Vec3, error) {
	if len(values) == 0 {
		return defaultValue, nil
	}
	if len(values) != 3 {
		return mgl64.Vec3{}, newIoError(ErrParseFailed, "%s の要素数が不正です: %d", nil, label, len(values))
	}
	return mgl64.Vec3{values[0], values[1], values[2]}, nil
}

// parseQuaternion は glTF の [x, y, z, w] を正規化済みクォータニオンへ変換する。
func parseQuaternion(values []float64) (mgl64.Quat, error) {
	if len(values) == 0 {
		return mgl64.QuatIdent(), nil
	}
	if len(values) != 4 {
		return mgl64.QuatIdent(), newIoError(ErrParseFailed, "node.rotation の要素数が不正です: %d", nil, len(values))
	}
	q := mgl64.Quat{W: values[3], V: mgl64.Vec3{values[0], values[1], values[2]}}
	if q.Len() == 0 {
		return mgl64.QuatIdent(), nil
	}
	return q.Normalize(), nil
}

// parseHumanoidBoneNames は VRM1 を優先して node index から humanoid ボーン名への対応を返す。
func parseHumanoidBoneNames(extensions map[string]json.RawMessage) (map[int]string, error) {
	names := map[int]string{}
	if extensions == nil {
		return names, nil
	}
	if raw, ok := extensions["VRMC_vrm"]; ok {
		ext := vrm1Extension{}
		if err := json.Unmarshal(raw, &ext); err != nil {
			return nil, newIoError(ErrParseFailed, "VRM1拡張のJSON解析に失敗しました", err)
		}
		for bone, humanBone := range ext.Humanoid.HumanBones {
			if humanBone.Node != nil {
				names[*humanBone.Node] = bone
			}
		}
		return names, nil
	}
	if raw, ok := extensions["VRM"]; ok {
		ext := vrm0Extension{}
		if err := json.Unmarshal(raw, &ext); err != nil {
			return nil, newIoError(ErrParseFailed, "VRM0拡張のJSON解析に失敗しました", err)
		}
		for _, humanBone := range ext.Humanoid.HumanBones {
			names[humanBone.Node] = humanBone.Bone
		}
	}
	return names, nil
}

// collectJointNodes はジョイントとして扱う node index を走査順で返す。
func collectJointNodes(doc *gltfDocument) ([]int, error) {
	if len(doc.Skins) > 0 && len(doc.Skins[0].Joints) > 0 {
		joints := make([]int, 0, len(doc.Skins[0].Joints))
		for _, nodeIndex := range doc.Skins[0].Joints {
			if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
				return nil, newIoError(ErrParseFailed, "skin.joints のindexが不正です: %d", nil, nodeIndex)
			}
			joints = append(joints, nodeIndex)
		}
		return joints, nil
	}
	joints := make([]int, 0, len(doc.Nodes))
	for nodeIndex, node := range doc.Nodes {
		if node.Mesh != nil {
			continue
		}
		joints = append(joints, nodeIndex)
	}
	return joints, nil
}

// findJointAncestor はジョイント集合に含まれる最も近い祖先のジョイントindexを返す。無ければ -1。
func findJointAncestor(nodeIndex int, parents []int, nodeToJoint map[int]int) int {
	for parent := parents[nodeIndex]; parent >= 0; parent = parents[parent] {
		if jointIndex, ok := nodeToJoint[parent]; ok {
			return jointIndex
		}
	}
	return -1
}

// resolveJointName は humanoid ボーン名、ノード名、連番の順でジョイント名を決める。
func resolveJointName(nodeIndex int, nodeName string, humanoidNames map[int]string) string {
	if humanoid := strings.TrimSpace(humanoidNames[nodeIndex]); humanoid != "" {
		return humanoid
	}
	if trimmed := strings.TrimSpace(nodeName); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("node_%03d", nodeIndex)
}
