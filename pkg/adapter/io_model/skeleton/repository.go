// 指示: miu200521358
package skeleton

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/io_model/gltf"
	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

// VariantRepository はバリアント別のスケルトン供給元を表す。
// アセットファイルが設定されたバリアントはファイルから、それ以外は組み込みプリセットから読み込む。
type VariantRepository struct {
	assets  map[model.Variant]string
	files   *gltf.SkeletonRepository
	presets *PresetRepository
	logger  *zap.Logger
}

// NewVariantRepository は VariantRepository を生成する。assets はバリアント名からアセットパスへの対応。
func NewVariantRepository(assets map[string]string, logger *zap.Logger) (*VariantRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	files := gltf.NewSkeletonRepository(logger)
	resolved := make(map[model.Variant]string, len(assets))
	for name, assetPath := range assets {
		variant, ok := model.ParseVariant(name)
		if !ok {
			return nil, fmt.Errorf("未知のバリアントのアセット指定です: %s", name)
		}
		trimmed := strings.TrimSpace(assetPath)
		if trimmed == "" {
			continue
		}
		if !files.CanLoad(trimmed) {
			return nil, fmt.Errorf("%w: %s", gltf.ErrExtInvalid, trimmed)
		}
		resolved[variant] = trimmed
	}
	return &VariantRepository{
		assets:  resolved,
		files:   files,
		presets: NewPresetRepository(),
		logger:  logger,
	}, nil
}

// LoadSkeleton はバリアントのスケルトンを読み込む。
func (r *VariantRepository) LoadSkeleton(variant model.Variant) (*model.Skeleton, error) {
	assetPath, ok := r.assets[variant]
	if !ok {
		r.logger.Debug(messages.LogSkeletonPresetLoad,
			zap.String("variant", string(variant)),
			zap.String("naming", r.presets.Naming(variant)))
		return r.presets.LoadSkeleton(variant)
	}
	skeleton, err := r.files.Load(assetPath)
	if err != nil {
		return nil, err
	}
	skeleton.Variant = variant
	return skeleton, nil
}
