package translate

import (
	"strings"

	"github.com/minios-linux/rimloc/glossary"
)

// LineBreakPlaceholder carries line breaks through the service.
const LineBreakPlaceholder = "[BR]"

// DefaultSystemPrompt holds the translation rules. {{targetLang}} is
// replaced with the target language name.
const DefaultSystemPrompt = `You are a professional translation engine for the game RimWorld. Translate the ` + "`source_text`" + ` field of every object in the JSON array the user sends into {{targetLang}} and put the result in ` + "`translated_text`" + `.

Follow these rules strictly:
1. **Keep keys unchanged**: never modify the ` + "`key`" + `, ` + "`source_text`" + ` or ` + "`context_info`" + ` fields.
2. **Accurate translation**: the translation must fit the setting and tone of RimWorld.
3. **Use context**: when ` + "`context_info`" + ` is present you must take it into account. For example, if ` + "`source_text`" + ` is "Bundle A" and ` + "`context_info`" + ` mentions "Leathery", translate it as a leather bundle rather than a plain bundle.
4. **Return complete JSON**: reply with an object {"translations": [...]} containing every entry you received, each with the same key.
5. **Line break markers**: ` + "`[BR]`" + ` marks a line break and must be kept as-is in the translation.
6. **Keep markup**: keep placeholders such as {0}, {PAWN_labelShort} and tags like <color=...> unchanged.`

const glossaryHeading = "7. **Consistent terminology**: this is the most important rule. Follow this glossary strictly:"

// BuildSystemPrompt assembles the conversation-opening prompt. override
// replaces the default rules when non-empty; the glossary is appended as
// sorted "- 'term': 'translation'" lines.
func BuildSystemPrompt(langName string, g *glossary.Glossary, override string) string {
	rules := override
	if strings.TrimSpace(rules) == "" {
		rules = DefaultSystemPrompt
	}
	rules = strings.ReplaceAll(rules, "{{targetLang}}", langName)

	var b strings.Builder
	b.WriteString(rules)
	if g != nil && g.Len() > 0 {
		b.WriteString("\n\n")
		b.WriteString(glossaryHeading)
		b.WriteString("\n")
		b.WriteString(strings.Join(g.Lines(), "\n"))
	}
	b.WriteString("\n\nConfirm that you understand these rules, then wait for the JSON entries.")
	return b.String()
}

var (
	encodeBreaks = strings.NewReplacer(`\n`, LineBreakPlaceholder, "\r\n", LineBreakPlaceholder, "\n", LineBreakPlaceholder)
	decodeBreaks = strings.NewReplacer(LineBreakPlaceholder, "\n", `\n`, "\n", "\r\n", "\n")
)

// EncodeLineBreaks replaces real line breaks and the RimWorld \n escape
// with the placeholder.
func EncodeLineBreaks(s string) string {
	return encodeBreaks.Replace(s)
}

// DecodeLineBreaks turns placeholders (and stray \n escapes) back into real
// line breaks.
func DecodeLineBreaks(s string) string {
	return decodeBreaks.Replace(s)
}
