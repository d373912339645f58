package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/minios-linux/rimloc/config"
	"github.com/minios-linux/rimloc/pipeline"
	"github.com/minios-linux/rimloc/settings"
)

func init() {
	color.NoColor = true
}

func TestPrintReportRun(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &pipeline.Report{
		Project:   "core",
		Output:    "/out/Core_Pack",
		Missing:   []string{"999"},
		Documents: 1200,
		Templates: 4,
		Units: []pipeline.UnitReport{
			{Name: "Alpha", New: 3, Reusable: 2, Translated: 2, Failed: 1, Files: 2},
		},
		Packed: 1,
	}, false)

	out := buf.String()
	for _, want := range []string{
		"Project core",
		"1,200 documents",
		"1 mod not found: 999",
		"Alpha  translated 2  reused 2  failed 1  files 2",
		"Pack written with 1 mod: /out/Core_Pack",
		"1 key failed and will be retried next run",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("printReport() missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintReportScan(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &pipeline.Report{
		Project: "core",
		Units: []pipeline.UnitReport{
			{Name: "Alpha", New: 1500, Stale: 2, Reusable: 10},
			{Name: "B", Reusable: 1},
		},
	}, true)

	out := buf.String()
	if !strings.Contains(out, "Alpha  new 1,500  stale 2  reusable 10") {
		t.Fatalf("scan line missing:\n%s", out)
	}
	if !strings.Contains(out, "B      new 0  stale 0  reusable 1") {
		t.Fatalf("names should be padded to the widest:\n%s", out)
	}
	if !strings.Contains(out, "1,502 keys to translate, 11 reusable") {
		t.Fatalf("scan totals missing:\n%s", out)
	}
	if strings.Contains(out, "Pack written") {
		t.Fatalf("scan must not report a pack:\n%s", out)
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)
	if !strings.Contains(buf.String(), "rimloc version dev") {
		t.Fatalf("version output = %q", buf.String())
	}
}

func TestForEachProjectSkipsDisabledAndCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	valid := `
[pack_info]
name = "P"
author = "A"
[versions]
targets = ["1.5"]
[mod_ids]
translate = "1"
[rules]
translatable_def_tags = ["label"]
`
	files := map[string]string{
		"a.toml": valid,
		"b.toml": "enabled = false\n" + valid,
		"c.yaml": "pack_info: {name: P}\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	var seen []string
	err := forEachProject(context.Background(), dir, func(_ context.Context, cfg *config.Config) error {
		seen = append(seen, cfg.Name())
		return nil
	})

	if len(seen) != 1 || seen[0] != "a" {
		t.Fatalf("processed projects = %v, want [a]", seen)
	}
	if err == nil || !strings.Contains(err.Error(), "c.yaml") {
		t.Fatalf("forEachProject() error = %v, want failure for c.yaml", err)
	}
}

func TestForEachProjectMissingPath(t *testing.T) {
	err := forEachProject(context.Background(), filepath.Join(t.TempDir(), "missing"), func(context.Context, *config.Config) error {
		t.Fatal("callback must not run")
		return nil
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestAuthListShowsStoredKeys(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(settings.EnvAPIKey, "")
	t.Setenv(settings.EnvGeminiKey, "")
	if err := settings.SetAPIKey("openai", "sk-1234567890", "http://localhost:8080/v1"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}

	var buf bytes.Buffer
	cmd := newAuthListCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	out := buf.String()
	if !strings.Contains(out, "google     not configured") {
		t.Fatalf("google line missing:\n%s", out)
	}
	if !strings.Contains(out, "openai     configured (sk-1...7890)") {
		t.Fatalf("openai line missing:\n%s", out)
	}
	if !strings.Contains(out, "http://localhost:8080/v1") {
		t.Fatalf("endpoint missing:\n%s", out)
	}
}

func TestKnownProvider(t *testing.T) {
	if !knownProvider("google") || !knownProvider("openai") {
		t.Fatal("google and openai must be known")
	}
	if knownProvider("copilot") {
		t.Fatal("copilot is not supported")
	}
}
