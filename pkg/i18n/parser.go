package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Translations maps a language code to its nested message tree.
type Translations = map[string]map[string]any

// Parser decodes a translation document. The top level of every
// document is keyed by language code.
type Parser interface {
	Parse(ctx context.Context, content []byte) (Translations, error)

	// SupportsFileExtension reports whether the parser handles files with
	// the given extension. A leading dot is optional.
	SupportsFileExtension(ext string) bool
}

// ParserForFile picks a parser by file extension. It returns nil for
// unknown extensions.
func ParserForFile(filename string) Parser {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")); ext {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// splitLanguages converts a decoded document into Translations. Every
// top level value has to be a mapping.
func splitLanguages(data map[string]any, parseErr error) (Translations, error) {
	result := make(Translations, len(data))
	for lang, val := range data {
		messages, ok := val.(map[string]any)
		if !ok {
			return nil, errorf(parseErr, "language %q: expected mapping, got %T", lang, val)
		}
		result[lang] = messages
	}
	if len(result) == 0 {
		return nil, errorf(parseErr, "document has no languages")
	}
	return result, nil
}
