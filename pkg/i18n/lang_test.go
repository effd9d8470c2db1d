package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/i18n"
)

func TestNormalizeTag(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"es_ES.UTF-8":    "es-ES",
		"en_US":          "en-US",
		"de_DE@euro":     "de-DE",
		"fr":             "fr",
		" C ":            "",
		"POSIX":          "",
		"en-GB,en;q=0.8": "en-GB,en;q=0.8",
	}
	for in, want := range tests {
		assert.Equal(t, want, i18n.NormalizeTag(in), in)
	}
}

func TestMatchLanguage(t *testing.T) {
	t.Parallel()
	supported := []string{"en", "es"}

	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{"exact", "es", "es"},
		{"region falls back to base", "es-MX", "es"},
		{"posix locale", "es_AR.UTF-8", "es"},
		{"quality ordering", "fr-FR,es;q=0.9,en;q=0.8", "es"},
		{"unsupported", "de", "en"},
		{"empty", "", "en"},
		{"garbage", "%%%", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.MatchLanguage(tt.requested, supported, "en"))
		})
	}

	t.Run("no supported languages", func(t *testing.T) {
		assert.Equal(t, "xx", i18n.MatchLanguage("en", nil, "xx"))
	})

	t.Run("invalid supported tags are skipped", func(t *testing.T) {
		assert.Equal(t, "es", i18n.MatchLanguage("es", []string{"!!", "es"}, "en"))
	})
}
