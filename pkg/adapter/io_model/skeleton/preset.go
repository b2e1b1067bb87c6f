// 指示: miu200521358
package skeleton

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

const presetDir = "presets"

// presetFiles はバリアント別の静止姿勢スケルトンを保持する。
//
//go:embed presets/*.yaml
var presetFiles embed.FS

// presetDocument はプリセットYAMLの構造を表す。
type presetDocument struct {
	Variant string        `yaml:"variant"`
	Naming  string        `yaml:"naming"`
	Joints  []presetJoint `yaml:"joints"`
}

// presetJoint は親ジョイントからのローカルオフセットを持つ1ジョイントを表す。
type presetJoint struct {
	Name   string    `yaml:"name"`
	Parent string    `yaml:"parent"`
	Offset []float64 `yaml:"offset"`
}

// PresetRepository は組み込みプリセットからスケルトンを供給する。
type PresetRepository struct {
	once    sync.Once
	presets map[model.Variant]*model.Skeleton
	namings map[model.Variant]string
	err     error
}

// NewPresetRepository は PresetRepository を生成する。
func NewPresetRepository() *PresetRepository {
	return &PresetRepository{}
}

// LoadSkeleton はバリアントのプリセットを複製して返す。返却値を変更してもプリセットには影響しない。
func (r *PresetRepository) LoadSkeleton(variant model.Variant) (*model.Skeleton, error) {
	r.once.Do(r.loadAll)
	if r.err != nil {
		return nil, r.err
	}
	preset, ok := r.presets[variant]
	if !ok {
		return nil, fmt.Errorf("バリアントのプリセットがありません: %s", variant)
	}
	clone := model.Skeleton{}
	if err := deepcopy.Copy(&clone, *preset); err != nil {
		return nil, fmt.Errorf("スケルトンの複製に失敗しました: %w", err)
	}
	return &clone, nil
}

// Naming はバリアントのプリセットが使う命名規約名を返す。
func (r *PresetRepository) Naming(variant model.Variant) string {
	r.once.Do(r.loadAll)
	return r.namings[variant]
}

// loadAll は組み込みプリセットを全て解析する。
func (r *PresetRepository) loadAll() {
	entries, err := presetFiles.ReadDir(presetDir)
	if err != nil {
		r.err = fmt.Errorf("プリセット一覧の取得に失敗しました: %w", err)
		return
	}
	r.presets = make(map[model.Variant]*model.Skeleton, len(entries))
	r.namings = make(map[model.Variant]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := presetFiles.ReadFile(path.Join(presetDir, entry.Name()))
		if err != nil {
			r.err = fmt.Errorf("プリセットの読込に失敗しました: %s: %w", entry.Name(), err)
			return
		}
		skeleton, naming, err := parsePreset(data)
		if err != nil {
			r.err = fmt.Errorf("プリセットの解析に失敗しました: %s: %w", entry.Name(), err)
			return
		}
		r.presets[skeleton.Variant] = skeleton
		r.namings[skeleton.Variant] = naming
	}
}

// parsePreset はYAMLを解析し、親のワールド座標へオフセットを累積してスケルトンを構築する。
// 親は自身より前に定義されている必要がある。
func parsePreset(data []byte) (*model.Skeleton, string, error) {
	doc := presetDocument{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", err
	}
	variant, ok := model.ParseVariant(doc.Variant)
	if !ok {
		return nil, "", fmt.Errorf("未知のバリアントです: %s", doc.Variant)
	}
	skeleton := &model.Skeleton{Variant: variant, Joints: make([]model.Joint, 0, len(doc.Joints))}
	indexByName := make(map[string]int, len(doc.Joints))
	for _, joint := range doc.Joints {
		name := strings.TrimSpace(joint.Name)
		if name == "" {
			return nil, "", fmt.Errorf("ジョイント名が空です")
		}
		if _, exists := indexByName[name]; exists {
			return nil, "", fmt.Errorf("ジョイント名が重複しています: %s", name)
		}
		if len(joint.Offset) != 3 {
			return nil, "", fmt.Errorf("offset の要素数が不正です: %s: %d", name, len(joint.Offset))
		}
		offset := model.NewVec3(joint.Offset[0], joint.Offset[1], joint.Offset[2])
		parentIndex := -1
		position := offset
		if parent := strings.TrimSpace(joint.Parent); parent != "" {
			index, exists := indexByName[parent]
			if !exists {
				return nil, "", fmt.Errorf("親ジョイントが未定義です: %s -> %s", name, parent)
			}
			parentIndex = index
			position = skeleton.Joints[index].Position.Added(offset)
		}
		indexByName[name] = len(skeleton.Joints)
		skeleton.Joints = append(skeleton.Joints, model.Joint{
			Name:        name,
			ParentIndex: parentIndex,
			Position:    position,
		})
	}
	return skeleton, doc.Naming, nil
}
