// 指示: miu200521358
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
)

func TestRunResolvePrintsRegionAndSource(t *testing.T) {
	out := bytes.NewBuffer(nil)
	errOut := bytes.NewBuffer(nil)
	if err := run([]string{"resolve", "mixamorigLeftForeArm", "lowerarm_l", "Armature"}, out, errOut); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count mismatch: %q", out.String())
	}
	if !strings.HasPrefix(lines[0], messages.LabelJoint) {
		t.Fatalf("header mismatch: %s", lines[0])
	}
	if lines[1] != "mixamorigLeftForeArm\tleftForeArm\texact" {
		t.Fatalf("prefixed joint mismatch: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "lowerarm_l\tleftForeArm\t") {
		t.Fatalf("underscore joint mismatch: %s", lines[2])
	}
	if lines[3] != "Armature\t"+messages.MessageRegionNone+"\tnone" {
		t.Fatalf("rig root should not resolve: %s", lines[3])
	}
}

func TestRunResolveRequiresJoint(t *testing.T) {
	if err := run([]string{"resolve"}, bytes.NewBuffer(nil), bytes.NewBuffer(nil)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunSimulateClickScanAndSymptom(t *testing.T) {
	out := bytes.NewBuffer(nil)
	args := []string{
		"simulate",
		"--variant", "male",
		"--click-joint", "mixamorigLeftForeArm",
		"--scan-seconds", "5",
		"--severity", "4",
	}
	if err := run(args, out, bytes.NewBuffer(nil)); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "選択部位: leftForeArm") {
		t.Fatalf("selected line missing: %s", text)
	}
	if !strings.Contains(text, "スキャン進捗: 100.0%") {
		t.Fatalf("scan should complete: %s", text)
	}
	if !strings.Contains(text, "症状: leftForeArm 4/5") || !strings.Contains(text, "症状記録済み") {
		t.Fatalf("symptom line mismatch: %s", text)
	}
}

func TestRunSimulateFemaleWithTags(t *testing.T) {
	out := bytes.NewBuffer(nil)
	args := []string{
		"simulate",
		"--variant", "female",
		"--click-joint", "lowerarm_r",
		"--severity", "2",
		"--tag", "しびれ",
		"--note", "朝に強い",
	}
	if err := run(args, out, bytes.NewBuffer(nil)); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "選択部位: rightForeArm") {
		t.Fatalf("selected line missing: %s", text)
	}
	if strings.Contains(text, "スキャン進捗") {
		t.Fatalf("scan should not run: %s", text)
	}
	if !strings.Contains(text, "しびれ, 朝に強い") {
		t.Fatalf("description mismatch: %s", text)
	}
}

func TestRunSimulateErrors(t *testing.T) {
	cases := [][]string{
		{"simulate"},
		{"simulate", "--variant", "child", "--click-joint", "mixamorigHead"},
		{"simulate", "--click-joint", "lowerarm_l"},
		{"simulate", "--click-joint", "mixamorigHead", "--severity", "9"},
	}
	for _, args := range cases {
		if err := run(args, bytes.NewBuffer(nil), bytes.NewBuffer(nil)); err == nil {
			t.Fatalf("expected error: %v", args)
		}
	}
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodyscan.yaml")
	if err := os.WriteFile(path, []byte("host:\n  frame_rate: 0\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	err := serve(context.Background(), path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), messages.MessageConfigLoadError) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServeStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodyscan.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: 127.0.0.1:0\nlog:\n  level: error\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	for _, key := range []string{"BODYSCAN_LOG_LEVEL", "BODYSCAN_HTTP_ADDR", "BODYSCAN_VARIANT", "BODYSCAN_FRAME_RATE"} {
		t.Setenv(key, "")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := serve(ctx, path); err != nil {
		t.Fatalf("serve should stop cleanly: %v", err)
	}
}
