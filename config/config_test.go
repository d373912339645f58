package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalTOML = `
[pack_info]
name = "Core Pack"
author = "Jane Doe"

[versions]
targets = ["1.5"]

[mod_ids]
translate = "111, 222"
previous = "333"

[rules]
translatable_def_tags = ["label", "description"]
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, dir, "core.toml", minimalTOML+`
[ai_settings]
chunk_size = 40

[system]
slow_mode = true
`))
	require.NoError(t, err)

	assert.Equal(t, "Core Pack", cfg.PackInfo.Name)
	assert.Equal(t, []string{"111", "222"}, cfg.TranslateIDs())
	assert.Equal(t, []string{"333"}, cfg.PreviousIDs())
	assert.Equal(t, 40, cfg.AI.ChunkSize)

	// Untouched keys of a partially given section keep their defaults.
	assert.Equal(t, 5, cfg.AI.MaxRetries)
	assert.Equal(t, "google", cfg.AI.Provider)
	assert.Equal(t, "anonymous", cfg.System.SteamUser)
	assert.Equal(t, []string{"ThingDef"}, cfg.Rules.DefTypes)
	assert.Equal(t, 2*time.Second, cfg.Pace())
	assert.Equal(t, 5*time.Second, cfg.RetryDelay())

	assert.Equal(t, "core", cfg.Name())
	assert.Equal(t, filepath.Join(dir, "translation_output", "Core_Pack"), cfg.OutputRoot())
	assert.Equal(t, filepath.Join(dir, "ProjectHelpers"), cfg.HelperRoot())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, dir, "core.yaml", `
pack_info:
  name: Core Pack
  author: Jane
versions:
  targets: ["1.4", "1.5"]
mod_ids:
  translate: "111"
rules:
  translatable_def_tags: [label]
  def_types: [ThingDef, PawnKindDef]
system:
  target_language: ru
generative_rules:
  custom_stuff:
    - category: Metallic
      defName: Bronze
      label_en: bronze
      label_cn: бронзовый
custom_glossary:
  Colonist: Колонист
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"ThingDef", "PawnKindDef"}, cfg.Rules.DefTypes)
	assert.Equal(t, "Bronze", cfg.Generative.CustomStuff[0].DefName)
	assert.Equal(t, 0*time.Second, cfg.Pace())

	snap := cfg.Snapshot()
	assert.Equal(t, "Russian", snap.Language.Name)
	assert.Equal(t, "Russian", snap.Language.Folder)
	assert.True(t, snap.Tags["label"])
	assert.False(t, snap.Tags["description"])
	term, ok := snap.Glossary.Lookup("Colonist")
	require.True(t, ok)
	assert.Equal(t, "Колонист", term)

	var found bool
	for _, m := range snap.Catalog.Materials("Metallic") {
		switch m.DefName {
		case "Bronze":
			found = true
			assert.Equal(t, "бронзовый", m.LabelTarget)
		default:
			assert.Empty(t, m.LabelTarget, "built-in labels are Chinese only: %s", m.DefName)
		}
	}
	assert.True(t, found, "custom stuff merged into catalog")
}

func TestLoadDisabled(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "off.toml", "enabled = false\n"+minimalTOML)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDisabled))
}

func TestLoadValidationReportsEveryKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", `
[pack_info]
name = "X"

[ai_settings]
provider = "bing"
max_retries = 0
`)
	_, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	for _, key := range []string{
		"pack_info.author",
		"versions.targets",
		"mod_ids.translate",
		"rules.translatable_def_tags",
		"ai_settings.provider",
		"ai_settings.max_retries",
	} {
		assert.Contains(t, msg, key)
	}
}

func TestLoadRejectsBadPatternAndStuff(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", minimalTOML+`
[generative_rules]
prediction_pattern = "{stuff_defName}"
custom_stuff = [{ category = "Metallic" }]
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generative_rules.prediction_pattern")
	assert.Contains(t, err.Error(), "defName")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, dir, "core.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")

	_, err = Load(writeConfig(t, dir, "broken.toml", "[pack_info\nname="))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoadDirAndExpand(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "b.yaml", "")
	writeConfig(t, dir, "a.toml", "")
	writeConfig(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.toml"), 0o755))

	paths, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.yaml")}, paths)

	expanded, err := Expand(dir)
	require.NoError(t, err)
	assert.Equal(t, paths, expanded)

	single, err := Expand(filepath.Join(dir, "a.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.toml")}, single)
}

func TestResolve(t *testing.T) {
	cfg := &Config{path: filepath.Join("/projects", "core.toml")}
	assert.Equal(t, filepath.Join("/projects", "out"), cfg.Resolve("out"))
	assert.Equal(t, "/abs/out", cfg.Resolve("/abs/out"))
	assert.Equal(t, "", cfg.Resolve(""))
}
