// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/io_model/gltf"
	"github.com/miu200521358/mu_bodyscan/pkg/adapter/io_model/skeleton"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
)

// batchConfig は一括検証の実行設定を表す。
type batchConfig struct {
	Strict   bool
	FailFast bool
	Paths    []string
}

// coverageEntry は1スケルトン分の検証入力を表す。
type coverageEntry struct {
	Index int
	Name  string
	// Path が空の場合は Variant の組み込みプリセットを使う。
	Path    string
	Variant model.Variant
}

// coverageResult は1スケルトン分の検証結果を表す。
type coverageResult struct {
	Entry      coverageEntry
	Status     string
	Duration   time.Duration
	Err        error
	JointTotal int
	Resolved   int
	BySource   map[minteractor.JointResolveSource]int
	Uncovered  []model.RegionID
}

// main はスケルトン資産の部位解決カバレッジを一括検証する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括検証を実行し、終了コードを返す。
func run() int {
	config := parseBatchConfig()
	entries := buildCoverageEntries(config.Paths)

	catalog := region.Default()
	resolver := minteractor.NewBoneNameResolver(catalog)
	presets := skeleton.NewPresetRepository()
	assets := gltf.NewSkeletonRepository(nil)

	results := make([]coverageResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 検証開始: %s\n", entry.Index, total, entry.Name)
		result := checkCoverage(catalog, resolver, presets, assets, entry)
		results = append(results, result)
		if result.Status == "failed" && config.FailFast {
			break
		}
	}
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
		if config.Strict && len(result.Uncovered) > 0 {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() batchConfig {
	strict := flag.Bool("strict", false, "ジョイントの無い部位があれば失敗とする")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()
	return batchConfig{Strict: *strict, FailFast: *failFast, Paths: flag.Args()}
}

// buildCoverageEntries は組み込みプリセットと指定資産から検証対象を生成する。
func buildCoverageEntries(paths []string) []coverageEntry {
	entries := make([]coverageEntry, 0, len(model.Variants())+len(paths))
	for _, variant := range model.Variants() {
		entries = append(entries, coverageEntry{
			Index:   len(entries) + 1,
			Name:    "preset:" + string(variant),
			Variant: variant,
		})
	}
	for _, rawPath := range paths {
		trimmed := strings.Trim(strings.TrimSpace(rawPath), "\"")
		if trimmed == "" {
			continue
		}
		entries = append(entries, coverageEntry{
			Index: len(entries) + 1,
			Name:  filepath.Base(trimmed),
			Path:  filepath.Clean(trimmed),
		})
	}
	return entries
}

// checkCoverage は全ジョイントを解決し、ジョイントの無い部位を集計する。
func checkCoverage(
	catalog *region.Catalog,
	resolver *minteractor.BoneNameResolver,
	presets *skeleton.PresetRepository,
	assets *gltf.SkeletonRepository,
	entry coverageEntry,
) coverageResult {
	startedAt := time.Now()
	result := coverageResult{Entry: entry, BySource: map[minteractor.JointResolveSource]int{}}

	var loaded *model.Skeleton
	var err error
	if entry.Path == "" {
		loaded, err = presets.LoadSkeleton(entry.Variant)
	} else {
		loaded, err = assets.Load(entry.Path)
	}
	if err != nil {
		result.Status = "failed"
		result.Err = err
		result.Duration = time.Since(startedAt)
		return result
	}

	covered := map[model.RegionID]struct{}{}
	for _, joint := range loaded.Joints {
		resolution := resolver.ResolveWithSource(joint.Name)
		result.BySource[resolution.Source]++
		if !resolution.Found() {
			continue
		}
		result.Resolved++
		covered[resolution.RegionID] = struct{}{}
	}
	for _, id := range catalog.IDs() {
		if _, ok := covered[id]; !ok {
			result.Uncovered = append(result.Uncovered, id)
		}
	}
	result.JointTotal = loaded.Len()
	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	return result
}

// printBatchSummary は検証結果の一覧を表示する。
func printBatchSummary(results []coverageResult) {
	fmt.Println("==== 検証結果 ====")
	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("%03d %-24s %s (%s) err=%v\n",
				result.Entry.Index, result.Entry.Name, result.Status, result.Duration.Round(time.Millisecond), result.Err)
			continue
		}
		fmt.Printf("%03d %-24s %s (%s) resolved=%d/%d exact=%d keyword=%d hint=%d\n",
			result.Entry.Index,
			result.Entry.Name,
			result.Status,
			result.Duration.Round(time.Millisecond),
			result.Resolved,
			result.JointTotal,
			result.BySource[minteractor.JointResolveSourceExact],
			result.BySource[minteractor.JointResolveSourceKeyword],
			result.BySource[minteractor.JointResolveSourceCatalogHint],
		)
		if len(result.Uncovered) > 0 {
			names := make([]string, 0, len(result.Uncovered))
			for _, id := range result.Uncovered {
				names = append(names, id.String())
			}
			fmt.Printf("    ジョイントの無い部位: %s\n", strings.Join(names, ", "))
		}
	}
}
