// 指示: miu200521358
package model

// 非致命な異常のID。ログの anomaly フィールドに出力する。
const (
	// AnomalyJointUnresolved はジョイント名から部位を解決できなかったことを表す。
	AnomalyJointUnresolved = "AnomalyJointUnresolved"
	// AnomalySkeletonNotLoaded はスケルトン未読込のままピックされたことを表す。
	AnomalySkeletonNotLoaded = "AnomalySkeletonNotLoaded"
	// AnomalySymptomIndexOutOfRange は範囲外の症状削除要求を表す。
	AnomalySymptomIndexOutOfRange = "AnomalySymptomIndexOutOfRange"
	// AnomalyRadiusFallback は既定半径へのフォールバックを表す。
	AnomalyRadiusFallback = "AnomalyRadiusFallback"
	// AnomalySinkMissingParameters はパラメータ不足の材質をスキップしたことを表す。
	AnomalySinkMissingParameters = "AnomalySinkMissingParameters"
	// AnomalyUnknownRegion はカタログに無い部位IDが指定されたことを表す。
	AnomalyUnknownRegion = "AnomalyUnknownRegion"
)
