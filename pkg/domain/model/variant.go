// 指示: miu200521358
package model

import "strings"

// Variant は表示モデルのバリアントを表す。
type Variant string

const (
	VariantMale   Variant = "male"
	VariantFemale Variant = "female"
)

// Variants は既知バリアントを定義順に返す。
func Variants() []Variant {
	return []Variant{VariantMale, VariantFemale}
}

// ParseVariant は文字列からバリアントを解決する。
func ParseVariant(value string) (Variant, bool) {
	normalized := Variant(strings.ToLower(strings.TrimSpace(value)))
	for _, variant := range Variants() {
		if variant == normalized {
			return variant, true
		}
	}
	return "", false
}
