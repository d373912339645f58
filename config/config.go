// Package config loads rimloc project files.
//
// A project file describes one translation pack: which workshop mods to
// translate, which earlier packs to reuse, the definition rules and the
// translation service settings. TOML and YAML are both accepted; the format
// is chosen by file extension. Keys missing from the file keep the values
// of Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/rimloc/materials"
	"github.com/minios-linux/rimloc/modinfo"
)

// ErrDisabled is returned by Load for a project file with enabled = false.
var ErrDisabled = errors.New("project disabled")

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

// Config is a rimloc project file.
type Config struct {
	Enabled    bool            `toml:"enabled" yaml:"enabled"`
	PackInfo   PackInfo        `toml:"pack_info" yaml:"pack_info"`
	Versions   Versions        `toml:"versions" yaml:"versions"`
	ModIDs     ModIDs          `toml:"mod_ids" yaml:"mod_ids"`
	Rules      Rules           `toml:"rules" yaml:"rules"`
	System     System          `toml:"system" yaml:"system"`
	AI         AISettings      `toml:"ai_settings" yaml:"ai_settings"`
	Generative GenerativeRules `toml:"generative_rules" yaml:"generative_rules"`
	// Glossary adds to or overrides the built-in terminology.
	Glossary map[string]string `toml:"custom_glossary" yaml:"custom_glossary"`

	path string
}

// PackInfo names the translation pack being produced.
type PackInfo struct {
	Name        string `toml:"name" yaml:"name" validate:"required"`
	Author      string `toml:"author" yaml:"author" validate:"required"`
	Description string `toml:"description" yaml:"description"`
}

// Versions lists the supported game versions.
type Versions struct {
	Targets []string `toml:"targets" yaml:"targets" validate:"min=1,dive,required"`
}

// ModIDs holds comma-separated workshop id lists.
type ModIDs struct {
	Translate string `toml:"translate" yaml:"translate" validate:"required"`
	Previous  string `toml:"previous" yaml:"previous"`
}

// Rules select what is extracted from definitions.
type Rules struct {
	TranslatableDefTags []string `toml:"translatable_def_tags" yaml:"translatable_def_tags" validate:"min=1,dive,required"`
	DefTypes            []string `toml:"def_types" yaml:"def_types" validate:"dive,required"`
}

// System holds machine-specific paths and pacing.
type System struct {
	SteamCMDPath     string `toml:"steamcmd_path" yaml:"steamcmd_path"`
	SteamUser        string `toml:"steam_user" yaml:"steam_user"`
	SteamPassword    string `toml:"steam_password" yaml:"steam_password"`
	WindowsSteamPath string `toml:"windows_steam_path" yaml:"windows_steam_path"`
	WorkshopPath     string `toml:"workshop_path" yaml:"workshop_path"`
	AppID            string `toml:"rimworld_app_id" yaml:"rimworld_app_id" validate:"required,numeric"`
	// Model overrides the provider's default model.
	Model          string `toml:"gemini_model" yaml:"gemini_model"`
	TargetLanguage string `toml:"target_language" yaml:"target_language" validate:"required"`
	SlowMode       bool   `toml:"slow_mode" yaml:"slow_mode"`
	// SlowModeDelay is the pause between batches in seconds.
	SlowModeDelay int    `toml:"slow_mode_delay" yaml:"slow_mode_delay" validate:"min=0"`
	HelperRoot    string `toml:"helper_files_root" yaml:"helper_files_root"`
	OutputBaseDir string `toml:"output_base_dir" yaml:"output_base_dir" validate:"required"`
}

// AISettings configures the translation service.
type AISettings struct {
	Provider    string  `toml:"provider" yaml:"provider" validate:"oneof=google openai"`
	BaseURL     string  `toml:"base_url" yaml:"base_url" validate:"omitempty,url"`
	Temperature float64 `toml:"temperature" yaml:"temperature" validate:"min=0,max=2"`
	MaxRetries  int     `toml:"max_retries" yaml:"max_retries" validate:"min=1"`
	// RetryDelay is the base backoff in seconds.
	RetryDelay int `toml:"retry_delay" yaml:"retry_delay" validate:"min=0"`
	// ChunkSize limits entries per request; 0 sends a group at once.
	ChunkSize int `toml:"chunk_size" yaml:"chunk_size" validate:"min=0"`
	// HistoryLimit bounds the exchanges kept per session; 0 keeps all.
	HistoryLimit int `toml:"history_limit" yaml:"history_limit" validate:"min=0"`
	// BreakerFailures consecutive hard failures stop a unit; 0 disables.
	BreakerFailures int `toml:"breaker_failures" yaml:"breaker_failures" validate:"min=0"`
	// Timeout is the per-request timeout in seconds.
	Timeout      int    `toml:"timeout" yaml:"timeout" validate:"min=0"`
	SystemPrompt string `toml:"system_prompt" yaml:"system_prompt"`
}

// GenerativeRules configure material variant prediction.
type GenerativeRules struct {
	PredictionPattern string                `toml:"prediction_pattern" yaml:"prediction_pattern" validate:"required,contains={base_name}"`
	CustomStuff       []materials.Extension `toml:"custom_stuff" yaml:"custom_stuff" validate:"dive"`
}

// Default returns the configuration every project file is loaded over.
func Default() *Config {
	return &Config{
		Enabled: true,
		Rules: Rules{
			DefTypes: []string{"ThingDef"},
		},
		System: System{
			SteamCMDPath:     "steamcmd",
			SteamUser:        "anonymous",
			WindowsSteamPath: "C:/Program Files (x86)/Steam",
			AppID:            "294100",
			TargetLanguage:   "zh-CN",
			SlowModeDelay:    2,
			HelperRoot:       "ProjectHelpers",
			OutputBaseDir:    "translation_output",
		},
		AI: AISettings{
			Provider:    "google",
			Temperature: 0.2,
			MaxRetries:  5,
			RetryDelay:  5,
			Timeout:     300,
		},
		Generative: GenerativeRules{
			PredictionPattern: "{base_name}{stuff_defName}",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Extensions lists the accepted project file extensions.
var Extensions = []string{".toml", ".yaml", ".yml"}

// Load reads a project file over Default and validates it. A disabled
// project returns ErrDisabled.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%s: unsupported config format (want .toml or .yaml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.path = path

	if !cfg.Enabled {
		return nil, fmt.Errorf("%s: %w", path, ErrDisabled)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir returns the project files in dir, sorted by name.
func LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isConfigFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Expand turns a file or directory argument into project file paths.
func Expand(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	if info.IsDir() {
		return LoadDir(arg)
	}
	return []string{arg}, nil
}

func isConfigFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration, reporting every invalid key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var result *multierror.Error
	for _, fe := range fieldErrs {
		result = multierror.Append(result, fmt.Errorf("%s: failed %q check", keyPath(fe.Namespace()), fe.Tag()))
	}
	return result.ErrorOrNil()
}

// keyPath drops the root type name from a validator namespace.
func keyPath(ns string) string {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return rest
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// File returns the absolute path the configuration was loaded from.
func (c *Config) File() string { return c.path }

// Name returns the project file's base name without extension.
func (c *Config) Name() string {
	base := filepath.Base(c.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Resolve interprets a configured path relative to the project file.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// TranslateIDs returns the workshop ids to translate.
func (c *Config) TranslateIDs() []string { return modinfo.ParseIDs(c.ModIDs.Translate) }

// PreviousIDs returns the workshop ids of earlier packs.
func (c *Config) PreviousIDs() []string { return modinfo.ParseIDs(c.ModIDs.Previous) }

// OutputRoot returns the directory the pack is written to.
func (c *Config) OutputRoot() string {
	return filepath.Join(c.Resolve(c.System.OutputBaseDir), strings.ReplaceAll(c.PackInfo.Name, " ", "_"))
}

// HelperRoot returns the helper definition root.
func (c *Config) HelperRoot() string { return c.Resolve(c.System.HelperRoot) }

// Pace returns the slow-mode delay between batches, or zero.
func (c *Config) Pace() time.Duration {
	if !c.System.SlowMode {
		return 0
	}
	return time.Duration(c.System.SlowModeDelay) * time.Second
}

// RetryDelay returns the base rate-limit backoff.
func (c *Config) RetryDelay() time.Duration { return time.Duration(c.AI.RetryDelay) * time.Second }

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration { return time.Duration(c.AI.Timeout) * time.Second }
