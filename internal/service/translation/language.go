package translation

import (
	"strings"

	"golang.org/x/text/language"
)

// LanguageCode returns the short language code used as a slug suffix: the
// ISO 639-1 code when the provider id ("eng", "spa") has one, otherwise the
// ISO 639 code itself, otherwise the first two letters of the language name.
func LanguageCode(languageID, languageName string) string {
	if id := strings.TrimSpace(languageID); id != "" {
		if base, err := language.ParseBase(id); err == nil {
			return base.String()
		}
	}

	var b strings.Builder
	for _, r := range strings.ToLower(languageName) {
		if r < 'a' || r > 'z' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}
