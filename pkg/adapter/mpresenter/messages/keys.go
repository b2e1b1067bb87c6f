// 指示: miu200521358
// Package messages はCLI表示とログに使うメッセージを提供する。
package messages

// メッセージキー一覧。
const (
	HelpRootShort     = "人体部位のピックとハイライトを行う"
	HelpResolveShort  = "ジョイント名から部位を解決する"
	HelpSimulateShort = "ヘッドレスでクリック・スキャン・症状記録を再生する"
	HelpServeShort    = "状態ループとHTTP境界を起動する"

	LabelJoint  = "ジョイント"
	LabelRegion = "部位"
	LabelSource = "解決根拠"
	LabelScan   = "スキャン"

	MessageRegionNone      = "(部位なし)"
	MessageJointRequired   = "ジョイント名を指定してください"
	MessageJointNotFound   = "スケルトンにジョイントがありません: %s"
	MessageVariantInvalid  = "未知のバリアントです: %s"
	MessageConfigLoadError = "設定の読み込みに失敗しました"

	MessageSkeletonSourceMissing = "スケルトン読み込み元が設定されていません"
	MessageSkeletonLoadFailed    = "スケルトン読み込みに失敗しました(%s): %w"

	OutputResolveLine  = "%s\t%s\t%s\n"
	OutputSelectedLine = "選択部位: %s (%s)\n"
	OutputScanLine     = "スキャン進捗: %.1f%% (Y=%.3f)\n"
	OutputSymptomLine  = "症状: %s %d/5(%s) %s\n"

	LogServeStarted     = "HTTPサーバーを起動しました"
	LogServeStopped     = "HTTPサーバーを停止しました"
	LogLoopStarted      = "状態ループを開始しました"
	LogLoopStopped      = "状態ループを停止しました"
	LogSkeletonLoadFail = "スケルトンの読み込みに失敗しました"
	LogRequestFailed    = "リクエストの処理に失敗しました"

	LogSelectUnknownRegion   = "カタログに無い部位IDのため選択を無視します"
	LogHoverUnknownRegion    = "カタログに無い部位IDのためホバーを無視します"
	LogSymptomUnknownRegion  = "カタログに無い部位IDのため症状を追加しません"
	LogSymptomIndexIgnored   = "範囲外の症状削除要求を無視します"
	LogSymptomNothingRemoved = "削除対象の症状がありません"
	LogSymptomRecorded       = "症状を記録しました"
	LogRegionRadiusFallback  = "部位別半径が無いため既定半径を使用します"
	LogVariantSwitched       = "バリアントを切り替えました"
	LogSkeletonDiscarded     = "現在のバリアントと異なるスケルトンを破棄します"
	LogSkeletonPublished     = "スケルトンを公開しました"
	LogSkeletonPresetLoad    = "組み込みプリセットからスケルトンを読み込みます"
	LogSkeletonAssetLoaded   = "スケルトン読込完了"
	LogSurfaceSkipped        = "ハイライト用パラメータが無い材質をスキップします"
	LogRegionClicked         = "部位をクリックしました"
	LogPickWithoutSkeleton   = "スケルトン未読込のためピックを無視します"
	LogPickUnresolved        = "最近傍ジョイントの部位を解決できません"
)
