package patient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// ErrUnknownModel is returned by Lookup for names missing from the catalog.
var ErrUnknownModel = errors.New("unknown model")

// Model is a catalog entry.
type Model struct {
	Name    string
	Summary string
	Schema  *schema.Schema
}

var catalog = []Model{
	{"basic", "plain patient record with coercion", Basic},
	{"registration", "intake form with strict bounded age", Registration},
	{"domain-restricted", "only piaic.com and smiu.edu e-mails", DomainRestricted},
	{"eligibility", "emergency contact required from age 60", Eligibility},
	{"vitals", "height and weight with computed bmi", Vitals},
	{"address", "postal address", Address},
	{"resident", "patient with nested address", Resident},
}

// Catalog returns every model in display order.
func Catalog() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the catalog names in display order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, m := range catalog {
		names[i] = m.Name
	}
	return names
}

// Lookup finds a model by catalog name or schema name, ignoring case.
func Lookup(name string) (*schema.Schema, error) {
	name = strings.TrimSpace(name)
	for _, m := range catalog {
		if strings.EqualFold(m.Name, name) || strings.EqualFold(m.Schema.Name(), name) {
			return m.Schema, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownModel, name, strings.Join(Names(), ", "))
}
