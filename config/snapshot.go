package config

import (
	"github.com/minios-linux/rimloc/defs"
	"github.com/minios-linux/rimloc/glossary"
	"github.com/minios-linux/rimloc/langmeta"
	"github.com/minios-linux/rimloc/materials"
)

// Snapshot is the immutable view of a configuration the engine runs on.
type Snapshot struct {
	Catalog  *materials.Catalog
	Glossary *glossary.Glossary
	Tags     defs.TagSet
	DefTypes []string
	Pattern  string
	// LanguageCode is the configured target language ("zh-CN").
	LanguageCode string
	Language     langmeta.Meta
}

// Snapshot merges the built-in catalog and glossary with the configured
// extensions.
func (c *Config) Snapshot() *Snapshot {
	lang := c.System.TargetLanguage
	return &Snapshot{
		Catalog:      materials.Builtin(lang).Merge(c.Generative.CustomStuff),
		Glossary:     glossary.Builtin(lang).Merge(c.Glossary),
		Tags:         defs.NewTagSet(c.Rules.TranslatableDefTags),
		DefTypes:     append([]string(nil), c.Rules.DefTypes...),
		Pattern:      c.Generative.PredictionPattern,
		LanguageCode: lang,
		Language:     langmeta.Resolve(lang),
	}
}
