// Package langmeta provides a shared language metadata registry
// (English and native names plus the RimWorld language folder) used for
// output paths and translation prompts.
package langmeta

import "strings"

// Meta describes a target language.
type Meta struct {
	// Name is the English display name used in prompts.
	Name string
	// Native is the name of the language in the language itself.
	Native string
	// Folder is the directory name RimWorld expects under Languages/.
	Folder string
}

// SourceFolder is the language folder holding the untranslated English text.
const SourceFolder = "English"

// Registry contains canonical language metadata.
// Locale variants are resolved in Resolve() via normalization and base fallback.
var Registry = map[string]Meta{
	"cs":    {Name: "Czech", Native: "Čeština", Folder: "Czech"},
	"da":    {Name: "Danish", Native: "Dansk", Folder: "Danish"},
	"de":    {Name: "German", Native: "Deutsch", Folder: "German"},
	"en":    {Name: "English", Native: "English", Folder: "English"},
	"es":    {Name: "Spanish", Native: "Español", Folder: "Spanish"},
	"es-MX": {Name: "Spanish (Latin America)", Native: "Español (Latinoamérica)", Folder: "SpanishLatin"},
	"et":    {Name: "Estonian", Native: "Eesti", Folder: "Estonian"},
	"fi":    {Name: "Finnish", Native: "Suomi", Folder: "Finnish"},
	"fr":    {Name: "French", Native: "Français", Folder: "French"},
	"hu":    {Name: "Hungarian", Native: "Magyar", Folder: "Hungarian"},
	"it":    {Name: "Italian", Native: "Italiano", Folder: "Italian"},
	"ja":    {Name: "Japanese", Native: "日本語", Folder: "Japanese"},
	"ko":    {Name: "Korean", Native: "한국어", Folder: "Korean"},
	"nl":    {Name: "Dutch", Native: "Nederlands", Folder: "Dutch"},
	"no":    {Name: "Norwegian", Native: "Norsk", Folder: "Norwegian"},
	"pl":    {Name: "Polish", Native: "Polski", Folder: "Polish"},
	"pt":    {Name: "Portuguese", Native: "Português", Folder: "Portuguese"},
	"pt-BR": {Name: "Portuguese (Brazil)", Native: "Português (Brasil)", Folder: "PortugueseBrazilian"},
	"ro":    {Name: "Romanian", Native: "Română", Folder: "Romanian"},
	"ru":    {Name: "Russian", Native: "Русский", Folder: "Russian"},
	"sk":    {Name: "Slovak", Native: "Slovenčina", Folder: "Slovak"},
	"sv":    {Name: "Swedish", Native: "Svenska", Folder: "Swedish"},
	"tr":    {Name: "Turkish", Native: "Türkçe", Folder: "Turkish"},
	"uk":    {Name: "Ukrainian", Native: "Українська", Folder: "Ukrainian"},
	"zh":    {Name: "Simplified Chinese", Native: "简体中文", Folder: "ChineseSimplified"},
	"zh-CN": {Name: "Simplified Chinese", Native: "简体中文", Folder: "ChineseSimplified"},
	"zh-TW": {Name: "Traditional Chinese", Native: "繁體中文", Folder: "ChineseTraditional"},
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort language metadata for language codes,
// supporting variants like zh_CN, zh-cn, and locale fallbacks.
// Unknown languages pass through with the code as name and folder.
func Resolve(lang string) Meta {
	if m, ok := lookup(lang); ok {
		return m
	}
	return Meta{Name: lang, Native: lang, Folder: lang}
}

// Known reports whether lang resolves to a registry entry.
func Known(lang string) bool {
	_, ok := lookup(lang)
	return ok
}

func lookup(lang string) (Meta, bool) {
	if m, ok := Registry[lang]; ok {
		return m, true
	}
	normalized := canonicalize(lang)
	if m, ok := Registry[normalized]; ok {
		return m, true
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if m, ok := Registry[parts[0]]; ok {
			return m, true
		}
	}
	return Meta{}, false
}
