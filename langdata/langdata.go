// Package langdata implements reading and writing of RimWorld
// <LanguageData> documents: Keyed language files and DefInjected output.
//
// Every child of the root is one entry; the element tag is the key and its
// text the value. RimWorld writes line breaks inside values as the two
// characters \n.
package langdata

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minios-linux/rimloc/defs"
)

// RootElement is the document element of a language file.
const RootElement = "LanguageData"

// ---------------------------------------------------------------------------
// Data model
// ---------------------------------------------------------------------------

// Entry is one key/text pair.
type Entry struct {
	Key  string
	Text string
}

// File is a parsed language file.
type File struct {
	// Entries in document order.
	Entries []Entry
	byKey   map[string]int
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a language file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses language file data. Entries with empty text are skipped;
// a repeated key keeps its first value.
func Parse(data []byte) (*File, error) {
	f := &File{byKey: make(map[string]int)}
	dec := defs.NewDecoder(data)
	depth := 0

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				continue
			}
			var b strings.Builder
			if err := readElementContent(dec, &b); err != nil {
				return nil, err
			}
			depth--
			text := strings.TrimSpace(b.String())
			if text == "" {
				continue
			}
			f.add(Entry{Key: t.Name.Local, Text: text})
		case xml.EndElement:
			depth--
		}
	}

	return f, nil
}

func (f *File) add(e Entry) {
	if _, dup := f.byKey[e.Key]; dup {
		return
	}
	f.byKey[e.Key] = len(f.Entries)
	f.Entries = append(f.Entries, e)
}

// readElementContent collects the inner text of the current element,
// reproducing nested markup verbatim.
func readElementContent(dec *xml.Decoder, b *strings.Builder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.WriteString(string(t))
		case xml.StartElement:
			depth++
			b.WriteString("<" + t.Name.Local)
			for _, attr := range t.Attr {
				b.WriteString(fmt.Sprintf(` %s="%s"`, attr.Name.Local, attr.Value))
			}
			b.WriteString(">")
		case xml.EndElement:
			depth--
			if depth > 0 {
				b.WriteString("</" + t.Name.Local + ">")
			}
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Access
// ---------------------------------------------------------------------------

// Get returns the text stored under key.
func (f *File) Get(key string) (string, bool) {
	i, ok := f.byKey[key]
	if !ok {
		return "", false
	}
	return f.Entries[i].Text, true
}

// Keys returns keys in document order.
func (f *File) Keys() []string {
	keys := make([]string, len(f.Entries))
	for i, e := range f.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries.
func (f *File) Len() int { return len(f.Entries) }

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal renders entries as a <LanguageData> document. With sorted set the
// entries are ordered by key; otherwise the given order is kept.
func Marshal(entries []Entry, sorted bool) []byte {
	if sorted {
		entries = append([]Entry(nil), entries...)
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<" + RootElement + ">\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("  <%s>%s</%s>\n", e.Key, escapeText(e.Text), e.Key))
	}
	b.WriteString("</" + RootElement + ">\n")
	return []byte(b.String())
}

// WriteFile writes entries to path, creating parent directories. An empty
// mapping writes nothing and reports false.
func WriteFile(path string, entries []Entry, sorted bool) (bool, error) {
	if len(entries) == 0 {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, Marshal(entries, sorted), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", "",
)

// escapeText escapes XML special characters and writes line breaks as the
// RimWorld \n escape.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}
