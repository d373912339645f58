// Package glossary provides the terminology table injected into translation
// prompts so that recurring game terms are translated consistently.
package glossary

import (
	"fmt"
	"sort"
	"strings"
)

// Glossary is an immutable term table (source term -> translation).
type Glossary struct {
	terms map[string]string
}

// Builtin returns the built-in RimWorld terminology for the given target
// language. Only Simplified Chinese ships a built-in table; other languages
// start empty and rely on the configured custom glossary.
func Builtin(lang string) *Glossary {
	switch strings.ReplaceAll(strings.ToLower(lang), "_", "-") {
	case "zh", "zh-cn", "zh-hans":
		return New(builtin)
	}
	return New(nil)
}

// New builds a glossary from a term map.
func New(terms map[string]string) *Glossary {
	g := &Glossary{terms: make(map[string]string, len(terms))}
	for k, v := range terms {
		g.terms[k] = v
	}
	return g
}

// Merge returns a new glossary in which custom terms add to or override
// the receiver's terms.
func (g *Glossary) Merge(custom map[string]string) *Glossary {
	merged := New(g.terms)
	for k, v := range custom {
		merged.terms[k] = v
	}
	return merged
}

// Lookup returns the translation recorded for a term.
func (g *Glossary) Lookup(term string) (string, bool) {
	v, ok := g.terms[term]
	return v, ok
}

// Len returns the number of terms.
func (g *Glossary) Len() int { return len(g.terms) }

// Lines renders the glossary as prompt lines ("- 'term': 'translation'"),
// sorted by term so the prompt is stable between runs.
func (g *Glossary) Lines() []string {
	keys := make([]string, 0, len(g.terms))
	for k := range g.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- '%s': '%s'", strings.ToLower(k), g.terms[k]))
	}
	return lines
}
