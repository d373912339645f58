// Package settings stores rimloc user credentials.
//
// Credentials live in the XDG data directory:
//
//	$XDG_DATA_HOME/rimloc/auth.json  (default: ~/.local/share/rimloc/auth.json)
//
// The file is a JSON object keyed by provider ID ("google", "openai").
// Permissions are 0600.
//
// Lookup order for API keys:
//  1. --api-key flag
//  2. RIMLOC_API_KEY environment variable
//  3. GEMINI_API_KEY environment variable (google provider only)
//  4. This credential store
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	dataDirName = "rimloc"
	fileName    = "auth.json"

	// EnvAPIKey overrides the stored key for every provider.
	EnvAPIKey = "RIMLOC_API_KEY"
	// EnvGeminiKey is honoured for the google provider.
	EnvGeminiKey = "GEMINI_API_KEY"
)

// Info is the credential stored per provider.
type Info struct {
	Key string `json:"key"`
	// BaseURL overrides the provider endpoint, for self-hosted
	// OpenAI-compatible servers.
	BaseURL string `json:"baseUrl,omitempty"`
}

// Store holds all provider credentials, keyed by provider ID.
type Store map[string]*Info

// Providers returns the stored provider IDs, sorted.
func (s Store) Providers() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ---------------------------------------------------------------------------
// File path
// ---------------------------------------------------------------------------

// DataDir returns the rimloc data directory.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the auth.json path for display.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

// Load reads the credential store. A missing or unreadable file yields an
// empty store.
func Load() Store {
	path, err := filePath()
	if err != nil {
		return make(Store)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return make(Store)
	}
	var store Store
	if err := json.Unmarshal(data, &store); err != nil || store == nil {
		return make(Store)
	}
	return store
}

// Save writes the credential store with 0600 permissions.
func Save(store Store) error {
	path, err := filePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing auth file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Get / Set / Remove
// ---------------------------------------------------------------------------

// Get returns the entry for a provider, or nil.
func Get(providerID string) *Info {
	return Load()[providerID]
}

// SetAPIKey stores an API key, and optionally a base URL, for a provider.
func SetAPIKey(providerID, key, baseURL string) error {
	store := Load()
	store[providerID] = &Info{Key: key, BaseURL: baseURL}
	return Save(store)
}

// Remove deletes the credentials for a provider. Removing an unknown
// provider is a no-op.
func Remove(providerID string) error {
	store := Load()
	if _, ok := store[providerID]; !ok {
		return nil
	}
	delete(store, providerID)
	return Save(store)
}

// RemoveAll deletes the credential file.
func RemoveAll() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing auth file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

// Source names where an API key came from.
type Source string

const (
	SourceNone  Source = ""
	SourceFlag  Source = "flag"
	SourceEnv   Source = "environment"
	SourceStore Source = "auth.json"
)

// Credential is a resolved API key. BaseURL is set only when the key came
// from the store and was saved together with an endpoint.
type Credential struct {
	Key     string
	BaseURL string
	Source  Source
}

// Lookup resolves the credential for a provider following the documented
// lookup order: flag, RIMLOC_API_KEY, GEMINI_API_KEY (google only), store.
func Lookup(flagValue, providerID string) Credential {
	if flagValue != "" {
		return Credential{Key: flagValue, Source: SourceFlag}
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		return Credential{Key: v, Source: SourceEnv}
	}
	if providerID == "google" {
		if v := os.Getenv(EnvGeminiKey); v != "" {
			return Credential{Key: v, Source: SourceEnv}
		}
	}
	if info := Get(providerID); info != nil && info.Key != "" {
		return Credential{Key: info.Key, BaseURL: info.BaseURL, Source: SourceStore}
	}
	return Credential{}
}

// MaskKey returns a masked version of a key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
