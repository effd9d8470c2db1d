// Package i18n translates messages, most notably validation errors, into
// the user's language.
//
// Translations are nested maps keyed by language code. They are loaded
// through a TranslationAdapter: MapAdapter for in-memory data,
// FileAdapter for a single JSON or YAML file and FSAdapter for a
// directory of them on any fs.FS. The package embeds English and Spanish
// validation messages, available through NewBuiltinTranslator.
//
//	tr, err := i18n.NewBuiltinTranslator(ctx)
//	if err != nil {
//		return err
//	}
//	lang := tr.Match(os.Getenv("LANG")) // "es_ES.UTF-8" -> "es"
//	if _, err := s.Validate(input); err != nil {
//		err = tr.TranslateError(lang, err)
//	}
//
// Messages use "%{name}" placeholders filled from name/value argument
// pairs. Lookups fall back to the default language and then, unless
// disabled with WithFallbackToKey, to the key itself.
//
// Language matching is delegated to golang.org/x/text/language and
// accepts single tags, POSIX locale names and Accept-Language lists.
package i18n
