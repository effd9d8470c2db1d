package i18n

import (
	"context"
	"embed"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

//go:embed locales/*.yaml
var locales embed.FS

// NewBuiltinAdapter serves the validation messages shipped with the package.
func NewBuiltinAdapter() *FSAdapter {
	return NewFSAdapter(locales, "locales")
}

// NewBuiltinTranslator returns a translator for the built-in messages.
func NewBuiltinTranslator(ctx context.Context, options ...Option) (*Translator, error) {
	return NewTranslator(ctx, NewBuiltinAdapter(), options...)
}

// TranslateErrors returns a copy of errs with every Message rendered in
// lang from its TranslationKey and TranslationValues. Errors without a
// key, or whose key is unknown, keep their original message.
func (t *Translator) TranslateErrors(lang string, errs validator.ValidationErrors) validator.ValidationErrors {
	if errs == nil {
		return nil
	}
	out := make(validator.ValidationErrors, len(errs))
	for i, e := range errs {
		if e.TranslationKey != "" {
			e.Message = t.Td(lang, e.TranslationKey, e.Message, translationArgs(e.TranslationValues)...)
		}
		out[i] = e
	}
	return out
}

// TranslateError translates err when it carries validation errors and
// returns it unchanged otherwise.
func (t *Translator) TranslateError(lang string, err error) error {
	verrs := validator.ExtractValidationErrors(err)
	if verrs == nil {
		return err
	}
	return t.TranslateErrors(lang, verrs)
}

func translationArgs(values map[string]any) []string {
	args := make([]string, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, formatValue(v))
	}
	return args
}

// formatValue renders a placeholder value. Slices are joined with commas.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
