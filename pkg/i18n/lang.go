package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the locale every lookup falls back to.
const DefaultLanguage = "en"

// maxPreferenceLength bounds the preference list we are willing to parse.
const maxPreferenceLength = 4096

// Negotiate picks the supported locale that best matches a preference list in
// Accept-Language form ("uk-UA,uk;q=0.9,en;q=0.5"). A single tag such as "de-AT" works too.
// Returns defaultLang when nothing matches or the input is unusable.
func Negotiate(preferences string, supported []string, defaultLang string) string {
	preferences = strings.TrimSpace(preferences)
	if preferences == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(preferences) > maxPreferenceLength {
		preferences = preferences[:maxPreferenceLength]
	}

	desired, _, err := language.ParseAcceptLanguage(preferences)
	if err != nil || len(desired) == 0 {
		return defaultLang
	}

	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, s)
	}
	if len(tags) == 0 {
		return defaultLang
	}

	_, idx, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return defaultLang
	}
	return names[idx]
}
