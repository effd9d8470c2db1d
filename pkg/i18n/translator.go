package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Translator resolves dotted message keys into localized strings with
// "%{name}" placeholders.
type Translator struct {
	mu             sync.RWMutex
	translations   Translations
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator loads translations through adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, messages := range translations {
		if lang == "" {
			return nil, errorf(ErrInvalidTranslations, "empty language code")
		}
		if messages == nil {
			return nil, errorf(ErrInvalidTranslations, "nil messages for language %q", lang)
		}
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.supportedLanguages()))
	return t, nil
}

// SupportedLanguages returns the loaded language codes in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match returns the best loaded language for requested; see MatchLanguage.
// The default language is preferred among equally good candidates.
func (t *Translator) Match(requested string) string {
	langs := t.SupportedLanguages()
	if i := slices.Index(langs, t.defaultLang); i > 0 {
		langs = append([]string{t.defaultLang}, slices.Delete(langs, i, i+1)...)
	}
	return MatchLanguage(requested, langs, t.defaultLang)
}

// HasTranslation reports whether lang defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := lookup(t.translations[lang], key)
	return ok
}

// T translates key into lang. args are name/value pairs substituted into
// "%{name}" placeholders:
//
//	translator.T("en", "validation.max_length", "field", "name", "max", "30")
//
// A missing translation renders as the key when fallback to key is
// enabled and as an empty string otherwise.
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if msg, ok := t.message(lang, key); ok {
		return substitute(msg, pairs(args))
	}
	if t.fallbackToKey {
		return substitute(key, pairs(args))
	}
	return ""
}

// Td is like T but renders defaultValue for missing translations.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if msg, ok := t.message(lang, key); ok {
		return substitute(msg, pairs(args))
	}
	return substitute(defaultValue, pairs(args))
}

// N translates a plural key. It looks up key+".zero" for n == 0,
// key+".one" for n == 1 and key+".other" otherwise, falling back to
// ".other" and then to key itself. A "count" argument is added when
// missing.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	params := pairs(args)
	if _, ok := params["count"]; !ok {
		params["count"] = strconv.Itoa(n)
	}

	var forms []string
	switch n {
	case 0:
		forms = []string{key + ".zero", key + ".other"}
	case 1:
		forms = []string{key + ".one", key + ".other"}
	default:
		forms = []string{key + ".other"}
	}
	forms = append(forms, key)

	for _, form := range forms {
		if msg, ok := t.message(lang, form); ok {
			return substitute(msg, params)
		}
	}
	if t.fallbackToKey {
		return substitute(key, params)
	}
	return ""
}

// Tc translates using the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc translates a plural key using the language stored in ctx.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

// message resolves key in lang and then in the default language.
func (t *Translator) message(lang, key string) (string, bool) {
	if msg, ok := t.resolve(lang, key); ok {
		return msg, true
	}
	if lang != t.defaultLang {
		if msg, ok := t.resolve(t.defaultLang, key); ok {
			return msg, true
		}
	}
	if t.missingLogMode {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	return "", false
}

func (t *Translator) resolve(lang, key string) (string, bool) {
	val, ok := lookup(t.translations[lang], key)
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

// lookup walks a nested message tree with a dotted key.
func lookup(messages map[string]any, key string) (any, bool) {
	if messages == nil {
		return nil, false
	}
	current := messages
	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2+1)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces "%{name}" placeholders. Unknown names are kept.
func substitute(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
