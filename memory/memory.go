// Package memory implements translation_cache.json, the per-unit
// translation memory. Each entry records the source text and context a
// translation was produced for, so a later run can reuse it only while both
// are unchanged.
//
// The file is read fully when a unit starts and rewritten fully when it
// finishes.
package memory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// FileName is the memory file name inside a unit's output directory.
const FileName = "translation_cache.json"

// Sentinel prefixes marking translations that must never be trusted.
const (
	// ErrorPrefix marks a translation produced by a failed batch.
	ErrorPrefix = "【API错误】"
	// FallbackPrefix marks a source text kept because the service returned
	// no result.
	FallbackPrefix = "【原文】"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Entry is one remembered translation.
type Entry struct {
	En      string  `json:"en"`
	Cn      string  `json:"cn"`
	Context *string `json:"context"`
}

// NewEntry builds an entry; an empty context is stored as null.
func NewEntry(source, translation, context string) Entry {
	e := Entry{En: source, Cn: translation}
	if context != "" {
		e.Context = &context
	}
	return e
}

// ContextText returns the context, "" when absent.
func (e Entry) ContextText() string {
	if e.Context == nil {
		return ""
	}
	return *e.Context
}

// Trustworthy reports whether the translation carries no sentinel prefix.
func (e Entry) Trustworthy() bool {
	return Trustworthy(e.Cn)
}

// Trustworthy reports whether text carries no sentinel prefix.
func Trustworthy(text string) bool {
	return !strings.HasPrefix(text, ErrorPrefix) && !strings.HasPrefix(text, FallbackPrefix)
}

// Memory is a key → Entry store bound to a file.
type Memory struct {
	Entries map[string]Entry

	mu   sync.Mutex
	path string
}

// New returns an empty memory bound to path.
func New(path string) *Memory {
	return &Memory{Entries: make(map[string]Entry), path: path}
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a memory file. Returns an empty memory if the file doesn't
// exist.
func Load(path string) (*Memory, error) {
	m := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m.Entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Entries == nil {
		m.Entries = make(map[string]Entry)
	}
	return m, nil
}

// Save writes the memory to its file: keys sorted, 4-space indent,
// non-ASCII text unescaped.
func (m *Memory) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.path == "" {
		return fmt.Errorf("memory path not set")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m.Entries); err != nil {
		return fmt.Errorf("marshaling memory: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(m.path), err)
	}
	if err := os.WriteFile(m.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", m.path, err)
	}
	return nil
}

// Path returns the memory file path.
func (m *Memory) Path() string {
	return m.path
}

// ---------------------------------------------------------------------------
// Entry operations
// ---------------------------------------------------------------------------

// Get returns the entry stored under key.
func (m *Memory) Get(key string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Entries[key]
	return e, ok
}

// Set stores e under key.
func (m *Memory) Set(key string, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries[key] = e
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries)
}

// Keys returns the sorted keys.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copies every entry of other into m, replacing existing keys.
func (m *Memory) Merge(other *Memory) {
	if other == nil || other == m {
		return
	}
	other.mu.Lock()
	entries := make(map[string]Entry, len(other.Entries))
	for k, e := range other.Entries {
		entries[k] = e
	}
	other.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range entries {
		m.Entries[k] = e
	}
}

// Stats returns the number of trustworthy and untrusted entries.
func (m *Memory) Stats() (trusted, untrusted int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Trustworthy() {
			trusted++
		} else {
			untrusted++
		}
	}
	return
}

// ---------------------------------------------------------------------------
// Previous packs
// ---------------------------------------------------------------------------

// LoadPrevious collects every memory file found under roots (earlier
// translation packs) into one unbound memory. Roots are visited in order and
// files in lexical order; later files override earlier ones. Missing roots
// are skipped; unreadable files are reported as warnings.
func LoadPrevious(roots []string) (*Memory, *multierror.Error) {
	acc := New("")
	var warnings *multierror.Error

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				warnings = multierror.Append(warnings, fmt.Errorf("walking %s: %w", path, err))
				return nil
			}
			if d.IsDir() || d.Name() != FileName {
				return nil
			}
			m, err := Load(path)
			if err != nil {
				warnings = multierror.Append(warnings, err)
				return nil
			}
			acc.Merge(m)
			return nil
		})
		if err != nil {
			warnings = multierror.Append(warnings, fmt.Errorf("walking %s: %w", root, err))
		}
	}
	return acc, warnings
}

// Seed builds the starting memory of a unit: previous-pack entries
// overridden by the unit's own earlier output, bound to the unit's path.
func Seed(path string, previous *Memory) (*Memory, error) {
	own, err := Load(path)
	if err != nil {
		return nil, err
	}
	seed := New(path)
	seed.Merge(previous)
	seed.Merge(own)
	return seed, nil
}

// Summary returns a human-readable summary string.
func (m *Memory) Summary() string {
	trusted, untrusted := m.Stats()
	if trusted+untrusted == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d entries (%d trusted, %d to retry)", trusted+untrusted, trusted, untrusted)
}
