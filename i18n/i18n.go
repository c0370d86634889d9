// Package i18n provides the small localized-string table mdcore's engine
// consults for the handful of writer-facing labels the spec names (§6/§7):
// footnote/citation back-references and the "return to body" link text.
// Grounded in the original `i18n.h`'s hash-keyed Translate lookup, reduced
// to a plain map since mdcore has no hot-path need for a perfect hash.
package i18n

// Language selects which translation table Lookup consults.
type Language int

const (
	English Language = iota
	Spanish
	German
)

// LanguageFromString maps a language tag to a Language, defaulting to
// English for anything unrecognized (mirrors i18n_language_from_string's
// fallback behavior).
func LanguageFromString(s string) Language {
	switch s {
	case "es", "ES", "es-ES":
		return Spanish
	case "de", "DE", "de-DE":
		return German
	default:
		return English
	}
}

// QuoteLanguage selects which pair of smart-quote glyphs a downstream writer
// should render (spec §3/§6): German gets its own convention, every other
// language tag renders with the English convention. Rendering itself is out
// of scope (spec §1 Non-goals: "smart-quote rendering"); mdcore only derives
// and exposes the tag for a writer to consult.
type QuoteLanguage int

const (
	QuoteEnglish QuoteLanguage = iota
	QuoteGerman
)

// DeriveQuoteLanguage implements spec §6's "de -> GERMAN, others -> ENGLISH"
// rule.
func DeriveQuoteLanguage(lang Language) QuoteLanguage {
	if lang == German {
		return QuoteGerman
	}
	return QuoteEnglish
}

const fallback = "localization error"

var tables = map[Language]map[string]string{
	English: {
		"return to body": "return to body",
		"see footnote":   "see footnote",
		"see citation":   "see citation",
	},
	Spanish: {
		"return to body": "volver al cuerpo",
		"see footnote":   "ver nota al pie",
		"see citation":   "ver cita",
	},
	German: {
		"return to body": "zurück zum Text",
		"see footnote":   "siehe Fußnote",
		"see citation":   "siehe Zitat",
	},
}

// Lookup returns the localized string for key in lang, or the literal
// "localization error" if key is not present in that language's table
// (spec §7's parse-time-error-absorption stance applies here too: a
// missing translation never panics or returns an error value).
func Lookup(key string, lang Language) string {
	table, ok := tables[lang]
	if !ok {
		return fallback
	}
	s, ok := table[key]
	if !ok {
		return fallback
	}
	return s
}
