// 指示: miu200521358
package model

import (
	"time"

	"github.com/google/uuid"
)

// SymptomPlaceholder はタグも自由記述も無い場合の説明文。
const SymptomPlaceholder = "症状記録済み"

const (
	SeverityMin = 1
	SeverityMax = 5
)

// Severity は症状の重症度 (1-5) を表す。
type Severity int

var severityLabels = []string{"軽微", "軽い", "普通", "重い", "非常に重い"}

// Valid は範囲内か判定する。
func (s Severity) Valid() bool {
	return s >= SeverityMin && s <= SeverityMax
}

// Label は表示ラベルを返す。範囲外は空文字。
func (s Severity) Label() string {
	if !s.Valid() {
		return ""
	}
	return severityLabels[s-SeverityMin]
}

// SymptomRecord は部位に紐づく症状記録を表す。生成後は変更しない。
type SymptomRecord struct {
	ID          uuid.UUID `json:"id"`
	RegionID    RegionID  `json:"regionId"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
