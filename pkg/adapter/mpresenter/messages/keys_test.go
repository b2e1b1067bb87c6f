// 指示: miu200521358
package messages

import (
	"strings"
	"testing"
)

func TestLogAndOutputKeysAreDefined(t *testing.T) {
	keys := []string{
		LogServeStarted,
		LogServeStopped,
		LogLoopStarted,
		LogLoopStopped,
		LogSkeletonLoadFail,
		LogRequestFailed,
		LogSelectUnknownRegion,
		LogHoverUnknownRegion,
		LogSymptomUnknownRegion,
		LogSymptomIndexIgnored,
		LogSymptomNothingRemoved,
		LogSymptomRecorded,
		LogRegionRadiusFallback,
		LogVariantSwitched,
		LogSkeletonDiscarded,
		LogSkeletonPublished,
		LogSkeletonPresetLoad,
		LogSkeletonAssetLoaded,
		LogSurfaceSkipped,
		LogRegionClicked,
		LogPickWithoutSkeleton,
		LogPickUnresolved,
		MessageSkeletonSourceMissing,
		MessageSkeletonLoadFailed,
		OutputResolveLine,
		OutputSelectedLine,
		OutputScanLine,
		OutputSymptomLine,
	}

	seen := map[string]struct{}{}
	for _, key := range keys {
		if key == "" {
			t.Fatalf("key should not be empty")
		}
		if _, exists := seen[key]; exists {
			t.Fatalf("key should be unique: %s", key)
		}
		seen[key] = struct{}{}
	}
}

func TestLogKeysAreSingleLine(t *testing.T) {
	for _, key := range []string{LogSelectUnknownRegion, LogSymptomNothingRemoved, LogSkeletonPublished, LogPickUnresolved} {
		if strings.ContainsAny(key, "\n%") {
			t.Fatalf("log message should be a plain single line: %q", key)
		}
	}
}

func TestOutputKeysEndWithNewline(t *testing.T) {
	for _, key := range []string{OutputResolveLine, OutputSelectedLine, OutputScanLine, OutputSymptomLine} {
		if !strings.HasSuffix(key, "\n") {
			t.Fatalf("output line should end with newline: %q", key)
		}
	}
}
