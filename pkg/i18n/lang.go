package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no requested language can be matched.
const DefaultLanguage = "en"

// NormalizeTag turns POSIX locale names such as "es_ES.UTF-8" into BCP 47
// tags ("es-ES"). "C" and "POSIX" normalize to the empty string.
// Accept-Language lists are returned unchanged.
func NormalizeTag(locale string) string {
	locale = strings.TrimSpace(locale)
	if strings.ContainsAny(locale, ",;") {
		return locale
	}
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	switch strings.ToUpper(locale) {
	case "C", "POSIX":
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// MatchLanguage picks the best supported language for requested, which
// may be a single tag, a POSIX locale or an Accept-Language style list
// ("es-MX,en;q=0.5"). It returns fallback when nothing matches.
func MatchLanguage(requested string, supported []string, fallback string) string {
	requested = NormalizeTag(requested)
	if requested == "" || len(supported) == 0 {
		return fallback
	}

	desired, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(desired) == 0 {
		return fallback
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
		return fallback
	}

	_, idx, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No {
		return fallback
	}
	return names[idx]
}
