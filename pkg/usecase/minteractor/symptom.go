// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

const symptomDescriptionSeparator = ", "

// SymptomInput は症状記録の入力を表す。
type SymptomInput struct {
	RegionID model.RegionID `json:"regionId" validate:"required"`
	Severity int            `json:"severity" validate:"min=1,max=5"`
	// Tags は選択された症状タグ。表示順に並べる。
	Tags []string `json:"tags" validate:"max=32,dive,max=64"`
	Note string   `json:"note" validate:"max=1000"`
}

// newSymptomValidator は症状入力用の validator を生成する。
func newSymptomValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// AddSymptom は入力を検証し、説明文を組み立てて症状記録を追加する。
func (uc *BodyScanUsecase) AddSymptom(input SymptomInput) (model.SymptomRecord, error) {
	input.RegionID = model.RegionID(strings.TrimSpace(input.RegionID.String()))
	if err := uc.validate.Struct(input); err != nil {
		return model.SymptomRecord{}, fmt.Errorf("%w: %v", ErrInvalidSymptom, err)
	}
	if !uc.catalog.Contains(input.RegionID) {
		return model.SymptomRecord{}, fmt.Errorf("%w: %s", ErrUnknownRegion, input.RegionID)
	}
	record := model.SymptomRecord{
		ID:          uc.newID(),
		RegionID:    input.RegionID,
		Severity:    model.Severity(input.Severity),
		Description: ComposeSymptomDescription(input.Tags, input.Note),
		Timestamp:   uc.clock(),
	}
	if !uc.state.AddSymptom(record) {
		return model.SymptomRecord{}, fmt.Errorf("%w: %s", ErrUnknownRegion, input.RegionID)
	}
	uc.metrics.SetSymptomCount(len(uc.state.Symptoms()))
	uc.logger.Info(messages.LogSymptomRecorded,
		zap.String("region", record.RegionID.String()),
		zap.Int("severity", int(record.Severity)),
		zap.String("id", record.ID.String()))
	return record, nil
}

// ComposeSymptomDescription はタグと自由記述を結合した説明文を返す。
// どちらも空なら既定文言を返す。
func ComposeSymptomDescription(tags []string, note string) string {
	parts := make([]string, 0, len(tags)+1)
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return model.SymptomPlaceholder
	}
	return strings.Join(parts, symptomDescriptionSeparator)
}
