package domain

import "strings"

// LanguageNone is the sentinel for guests whose country we can't map.
const LanguageNone = "None"

// Closed country-code -> display-language table. Country != language: the
// code tells us where the guest lives, the label is what we address them in.
var languageByCountry = map[string]string{
	"nl": "Dutch",
	"be": "Flemish",
	"de": "German",
	"at": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"pt": "Portuguese",
	"dk": "Danish",
	"se": "Swedish",
	"gb": "English",
	"ie": "English",
	"us": "English",
}

// ResolveLanguage maps a country code to a display language. Matching is
// case-insensitive; empty or unrecognized codes resolve to LanguageNone.
// Never fails.
func ResolveLanguage(countryCode string) string {
	if countryCode == "" {
		return LanguageNone
	}
	if lang, ok := languageByCountry[strings.ToLower(strings.TrimSpace(countryCode))]; ok {
		return lang
	}
	return LanguageNone
}
