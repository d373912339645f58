// Package materials holds the stuff (material) catalog used to predict the
// concrete definitions RimWorld generates from abstract, stuff-aware
// templates at runtime.
//
// A Catalog is immutable once built: Merge returns a new catalog and the
// accessors return copies.
package materials

import (
	"sort"
	"strings"
)

// Material is one substitutable stuff definition.
type Material struct {
	// DefName is the stuff defName appended to generated definition names.
	DefName string `toml:"defName" yaml:"defName" validate:"required"`
	// LabelSource is the material label in the source language ("wooden").
	LabelSource string `toml:"label_en" yaml:"label_en"`
	// LabelTarget is the material label in the target language ("木制").
	LabelTarget string `toml:"label_cn" yaml:"label_cn"`
}

// Extension is a configured material appended to a category.
type Extension struct {
	Category string `toml:"category" yaml:"category" validate:"required"`
	Material `yaml:",inline"`
}

// Catalog maps a stuff category to its materials in declaration order.
type Catalog struct {
	byCategory map[string][]Material
}

// Builtin returns the vanilla RimWorld stuff catalog for a target language.
// The built-in target labels are Simplified Chinese; any other language gets
// the same materials with empty target labels.
func Builtin(lang string) *Catalog {
	c := New(builtin)
	switch strings.ReplaceAll(strings.ToLower(lang), "_", "-") {
	case "zh", "zh-cn", "zh-hans":
		return c
	}
	for _, list := range c.byCategory {
		for i := range list {
			list[i].LabelTarget = ""
		}
	}
	return c
}

var builtin = map[string][]Material{
	"Woody": {
		{DefName: "WoodLog", LabelSource: "wooden", LabelTarget: "木制"},
	},
	"Stony": {
		{DefName: "BlocksSandstone", LabelSource: "sandstone", LabelTarget: "砂岩"},
		{DefName: "BlocksGranite", LabelSource: "granite", LabelTarget: "花岗岩"},
		{DefName: "BlocksLimestone", LabelSource: "limestone", LabelTarget: "石灰岩"},
		{DefName: "BlocksSlate", LabelSource: "slate", LabelTarget: "板岩"},
		{DefName: "BlocksMarble", LabelSource: "marble", LabelTarget: "大理石"},
	},
	"Metallic": {
		{DefName: "Steel", LabelSource: "steel", LabelTarget: "钢铁"},
		{DefName: "Plasteel", LabelSource: "plasteel", LabelTarget: "玻璃钢"},
		{DefName: "Gold", LabelSource: "gold", LabelTarget: "黄金"},
		{DefName: "Silver", LabelSource: "silver", LabelTarget: "白银"},
		{DefName: "Uranium", LabelSource: "uranium", LabelTarget: "铀"},
	},
}

// New builds a catalog from an explicit category map.
func New(byCategory map[string][]Material) *Catalog {
	c := &Catalog{byCategory: make(map[string][]Material, len(byCategory))}
	for cat, list := range byCategory {
		c.byCategory[cat] = append([]Material(nil), list...)
	}
	return c
}

// Merge returns a new catalog with the extensions appended to their
// categories. Unknown categories are created. Extensions without a category
// are ignored.
func (c *Catalog) Merge(exts []Extension) *Catalog {
	merged := New(c.byCategory)
	for _, ext := range exts {
		if ext.Category == "" {
			continue
		}
		merged.byCategory[ext.Category] = append(merged.byCategory[ext.Category], ext.Material)
	}
	return merged
}

// Materials returns the materials of a category, or nil when the category
// is unknown.
func (c *Catalog) Materials(category string) []Material {
	list, ok := c.byCategory[category]
	if !ok {
		return nil
	}
	return append([]Material(nil), list...)
}

// Categories returns the sorted category names.
func (c *Catalog) Categories() []string {
	cats := make([]string, 0, len(c.byCategory))
	for cat := range c.byCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Len returns the total number of materials across categories.
func (c *Catalog) Len() int {
	n := 0
	for _, list := range c.byCategory {
		n += len(list)
	}
	return n
}
