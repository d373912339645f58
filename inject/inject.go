// Package inject turns parsed definition documents into DefInjected
// translation targets: concrete definitions with their inherited fields, and
// the material variants RimWorld generates from stuff-aware abstract bases.
package inject

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/minios-linux/rimloc/defs"
	"github.com/minios-linux/rimloc/materials"
	"github.com/minios-linux/rimloc/target"
)

// DefaultPattern names a generated variant from its base and material.
const DefaultPattern = "{base_name}{stuff_defName}"

// DefaultDefTypes are the definition types collected when none are
// configured.
var DefaultDefTypes = []string{"ThingDef"}

// Options configures target collection.
type Options struct {
	// DefTypes restricts collection to these element tags.
	DefTypes []string
	// Pattern names generated variants; see DefaultPattern.
	Pattern string
	// Catalog supplies materials per stuff category.
	Catalog *materials.Catalog
	// Language is the English name of the target language, used in
	// variant context ("Simplified Chinese").
	Language string
	// LanguageCode selects the built-in catalog labels when Catalog is nil.
	LanguageCode string
	Logger   *slog.Logger
}

func (o Options) effectiveDefTypes() []string {
	if len(o.DefTypes) == 0 {
		return DefaultDefTypes
	}
	return o.DefTypes
}

func (o Options) effectivePattern() string {
	if strings.TrimSpace(o.Pattern) == "" {
		return DefaultPattern
	}
	return o.Pattern
}

func (o Options) effectiveCatalog() *materials.Catalog {
	if o.Catalog == nil {
		return materials.Builtin(o.LanguageCode)
	}
	return o.Catalog
}

func (o Options) effectiveLanguage() string {
	if o.Language == "" {
		return "target language"
	}
	return o.Language
}

func (o Options) effectiveLogger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// ---------------------------------------------------------------------------
// Variant expansion
// ---------------------------------------------------------------------------

// Expander predicts the concrete definitions generated from an abstract,
// stuff-aware base and emits one target per generated name and field.
type Expander struct {
	pattern  string
	catalog  *materials.Catalog
	language string
}

// NewExpander returns an Expander for the given options.
func NewExpander(opts Options) *Expander {
	return &Expander{
		pattern:  opts.effectivePattern(),
		catalog:  opts.effectiveCatalog(),
		language: opts.effectiveLanguage(),
	}
}

// GeneratedName substitutes base and material into the naming pattern.
func (e *Expander) GeneratedName(base string, m materials.Material) string {
	return strings.NewReplacer(
		"{base_name}", base,
		"{stuff_defName}", m.DefName,
	).Replace(e.pattern)
}

// Expand returns the variant targets of an abstract node whose effective
// fields are given. Categories unknown to the catalog are skipped.
func (e *Expander) Expand(n *defs.Node, fields []defs.Field, document string) []target.Target {
	if !n.Abstract || n.TemplateName == "" || len(n.StuffCategories) == 0 || len(fields) == 0 {
		return nil
	}

	var out []target.Target
	for _, cat := range n.StuffCategories {
		for _, m := range e.catalog.Materials(cat) {
			name := e.GeneratedName(n.TemplateName, m)
			ctx := e.variantContext(n.TemplateName, m)
			for _, f := range fields {
				out = append(out, target.Target{
					Key:      name + "." + f.Tag,
					Source:   f.Text,
					Context:  ctx,
					DefType:  n.Type,
					Document: document,
				})
			}
		}
	}
	return out
}

func (e *Expander) variantContext(base string, m materials.Material) string {
	ctx := fmt.Sprintf("An item generated from the abstract base '%s', made from material '%s'.", base, m.LabelSource)
	if m.LabelTarget != "" {
		ctx += fmt.Sprintf(" The %s name for the material is '%s'.", materialLanguage(e.language), m.LabelTarget)
	}
	return ctx
}

// materialLanguage names the label language in variant context. Chinese
// variants read "Chinese" so contexts match packs built before the language
// was configurable.
func materialLanguage(language string) string {
	if strings.HasSuffix(language, "Chinese") {
		return "Chinese"
	}
	return language
}

// ---------------------------------------------------------------------------
// Collection
// ---------------------------------------------------------------------------

// Collector walks documents and gathers the targets of one content unit.
type Collector struct {
	index    *defs.Index
	expander *Expander
	types    map[string]bool
	logger   *slog.Logger
}

// NewCollector returns a Collector resolving inheritance through ix.
func NewCollector(ix *defs.Index, opts Options) *Collector {
	types := make(map[string]bool)
	for _, t := range opts.effectiveDefTypes() {
		types[t] = true
	}
	return &Collector{
		index:    ix,
		expander: NewExpander(opts),
		types:    types,
		logger:   opts.effectiveLogger(),
	}
}

// Collect gathers targets from docs in order. A key seen twice keeps its
// first target.
func (c *Collector) Collect(docs []*defs.Document) *target.Set {
	set := target.NewSet()
	for _, doc := range docs {
		for _, n := range doc.Nodes {
			for _, t := range c.targets(n, doc.Name) {
				if !set.Add(t) {
					c.logger.Warn("duplicate injection key", "key", t.Key, "document", doc.Path)
				}
			}
		}
	}
	return set
}

func (c *Collector) targets(n *defs.Node, document string) []target.Target {
	if !c.types[n.Type] {
		return nil
	}
	fields := c.index.Resolve(n)
	if len(fields) == 0 {
		return nil
	}

	if n.Abstract {
		return c.expander.Expand(n, fields, document)
	}
	if !n.HasDefName {
		return nil
	}

	var ctx string
	if len(n.StuffCategories) > 0 {
		ctx = fmt.Sprintf("This is a blueprint for an item that can be made from various materials in categories like %s. Provide a generic translation for the base item.",
			strings.Join(n.StuffCategories, ", "))
	}

	out := make([]target.Target, 0, len(fields))
	for _, f := range fields {
		out = append(out, target.Target{
			Key:      n.Name + "." + f.Tag,
			Source:   f.Text,
			Context:  ctx,
			DefType:  n.Type,
			Document: document,
		})
	}
	return out
}
