// Package i18n translates rimloc's own command-line messages.
//
// Catalogs are embedded .po files loaded by Init; T and N pass strings
// through unchanged until then.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Directory structure: locales/{lang}/LC_MESSAGES/rimloc.po
//
//go:embed all:locales
var locales embed.FS

const domain = "rimloc"

var po *gotext.Locale

// Init loads the catalog for lang, or for the language named by
// LANGUAGE, LC_ALL, LC_MESSAGES or LANG when lang is empty.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid, returning it unchanged when no translation exists.
func T(msgid string) string {
	if po == nil || !po.IsTranslated(msgid) {
		return msgid
	}
	// Locale.Get formats msgid; callers format the result themselves.
	return po.GetTranslations()[msgid].Get()
}

// N translates a message with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// "zh_CN.UTF-8" -> "zh_CN"
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}
