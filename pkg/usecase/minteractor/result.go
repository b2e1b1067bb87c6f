// 指示: miu200521358
package minteractor

import (
	"errors"

	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
)

var (
	// ErrUnknownVariant は未知のバリアント名を表す。
	ErrUnknownVariant = errors.New("未知のバリアントです")
	// ErrUnknownRegion はカタログに無い部位IDを表す。
	ErrUnknownRegion = errors.New("未知の部位です")
	// ErrInvalidSymptom は症状入力の検証失敗を表す。
	ErrInvalidSymptom = errors.New("症状入力が不正です")
)

// ScanProgressEventType はスキャン進捗イベント種別を表す。
type ScanProgressEventType string

const (
	// ScanProgressEventTypeStarted はスキャン開始イベントを表す。
	ScanProgressEventTypeStarted ScanProgressEventType = "started"
	// ScanProgressEventTypeAdvanced は進捗更新イベントを表す。
	ScanProgressEventTypeAdvanced ScanProgressEventType = "advanced"
	// ScanProgressEventTypeCompleted はスキャン完了イベントを表す。
	ScanProgressEventTypeCompleted ScanProgressEventType = "completed"
)

// ScanProgressEvent はスキャン進捗イベントを表す。
type ScanProgressEvent struct {
	Type     ScanProgressEventType
	Progress float64
	ScanY    float64
}

// IScanProgressReporter はスキャン進捗の通知契約を表す。
type IScanProgressReporter interface {
	// ReportScanProgress はスキャン進捗を通知する。
	ReportScanProgress(event ScanProgressEvent)
}

// reportScanProgress は reporter が nil でなければ通知する。
func reportScanProgress(reporter IScanProgressReporter, event ScanProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportScanProgress(event)
}

// PointerOutcome はポインタ操作の処理結果を表す。
type PointerOutcome struct {
	Pick     PickResult
	Resolved bool
	// Region は解決できた場合のカタログ項目。
	Region model.Region
}
