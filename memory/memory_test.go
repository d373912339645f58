package memory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadNonExistent(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load returned error for non-existent file: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Entries not empty: %v", m.Entries)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cont", "Mod", FileName)
	m := New(path)
	m.Set("Zeta.label", NewEntry("zeta", "泽塔", ""))
	m.Set("Alpha.label", NewEntry("alpha & <b>", "阿尔法", "a chair"))

	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved memory: %v", err)
	}
	want := `{
    "Alpha.label": {
        "en": "alpha & <b>",
        "cn": "阿尔法",
        "context": "a chair"
    },
    "Zeta.label": {
        "en": "zeta",
        "cn": "泽塔",
        "context": null
    }
}
`
	if string(data) != want {
		t.Fatalf("saved memory:\n%s\nwant:\n%s", data, want)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	e, ok := again.Get("Zeta.label")
	if !ok || e.Context != nil {
		t.Fatalf("Zeta.label = %+v, want null context", e)
	}
	if got := again.Entries["Alpha.label"].ContextText(); got != "a chair" {
		t.Fatalf("Alpha.label context = %q", got)
	}
}

func TestTrustworthy(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"椅子", true},
		{"", true},
		{ErrorPrefix + "Chair", false},
		{FallbackPrefix + "Chair", false},
		{"椅子" + ErrorPrefix, true},
	}
	for _, tc := range cases {
		if got := Trustworthy(tc.text); got != tc.want {
			t.Errorf("Trustworthy(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func writeMemory(t *testing.T, path string, entries map[string]Entry) {
	t.Helper()
	m := New(path)
	for k, e := range entries {
		m.Set(k, e)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save %s: %v", path, err)
	}
}

func TestLoadPreviousAndSeed(t *testing.T) {
	root := t.TempDir()
	prevA := filepath.Join(root, "111")
	prevB := filepath.Join(root, "222")

	writeMemory(t, filepath.Join(prevA, "Cont", "A", FileName), map[string]Entry{
		"Foo.label": NewEntry("foo", "旧", ""),
		"Bar.label": NewEntry("bar", "吧", ""),
	})
	writeMemory(t, filepath.Join(prevB, "Cont", "B", FileName), map[string]Entry{
		"Foo.label": NewEntry("foo", "新", ""),
	})
	if err := os.WriteFile(filepath.Join(prevB, "Cont", "broken_"+FileName), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(prevB, "Cont", "C"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(prevB, "Cont", "C", FileName), []byte("[1]"), 0o644); err != nil {
		t.Fatal(err)
	}

	prev, warnings := LoadPrevious([]string{prevA, prevB, filepath.Join(root, "missing")})
	if warnings == nil || len(warnings.Errors) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
	if got := prev.Entries["Foo.label"].Cn; got != "新" {
		t.Fatalf("Foo.label = %q, want later file to win", got)
	}
	if prev.Len() != 2 {
		t.Fatalf("previous len = %d, want 2", prev.Len())
	}

	own := filepath.Join(root, "out", FileName)
	writeMemory(t, own, map[string]Entry{"Bar.label": NewEntry("bar", "自己", "")})

	seed, err := Seed(own, prev)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if seed.Path() != own {
		t.Fatalf("seed path = %q", seed.Path())
	}
	if got := seed.Entries["Bar.label"].Cn; got != "自己" {
		t.Fatalf("Bar.label = %q, want unit's own output to win", got)
	}
	if got := seed.Entries["Foo.label"].Cn; got != "新" {
		t.Fatalf("Foo.label = %q", got)
	}
}

func TestSummary(t *testing.T) {
	m := New("")
	if m.Summary() != "empty" {
		t.Fatalf("Summary = %q", m.Summary())
	}
	m.Set("a", NewEntry("a", "甲", ""))
	m.Set("b", NewEntry("b", ErrorPrefix+"b", ""))
	if s := m.Summary(); !strings.Contains(s, "1 trusted") || !strings.Contains(s, "1 to retry") {
		t.Fatalf("Summary = %q", s)
	}
}
