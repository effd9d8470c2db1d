package schema_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

type decodedAddress struct {
	City  string `json:"city"`
	State string `json:"state"`
	Zip   int    `json:"zip"`
}

type decodedResident struct {
	Name    string         `json:"name"`
	Age     int            `json:"age"`
	Gender  *string        `json:"gender,omitempty"`
	Address decodedAddress `json:"address"`
	Adult   bool           `json:"adult"`
}

func TestDecode(t *testing.T) {
	t.Run("decodes nested and computed fields", func(t *testing.T) {
		rec := residentRecord(t)

		var out decodedResident
		require.NoError(t, rec.Decode(&out))
		assert.Equal(t, decodedResident{
			Name:    "Ada",
			Age:     30,
			Address: decodedAddress{City: "Karachi", State: "Sindh", Zip: 74000},
			Adult:   true,
		}, out)
	})

	t.Run("uuid into uuid and string targets", func(t *testing.T) {
		id := uuid.New()
		s := schema.MustNew("Visit", []schema.Field{
			schema.UUID("id"),
			schema.UUID("ref"),
			schema.List("tags", schema.TypeString),
		})
		rec := s.MustValidate(map[string]any{"id": id.String(), "ref": id, "tags": []any{"a", "b"}})

		var out struct {
			ID   uuid.UUID `json:"id"`
			Ref  string    `json:"ref"`
			Tags []string  `json:"tags"`
		}
		require.NoError(t, rec.Decode(&out))
		assert.Equal(t, id, out.ID)
		assert.Equal(t, id.String(), out.Ref)
		assert.Equal(t, []string{"a", "b"}, out.Tags)
	})

	t.Run("incompatible target", func(t *testing.T) {
		rec := residentRecord(t)
		var out struct {
			Name int `json:"name"`
		}
		assert.ErrorIs(t, rec.Decode(&out), schema.ErrDecode)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		rec := residentRecord(t)
		var out decodedResident
		assert.ErrorIs(t, rec.Decode(out), schema.ErrDecode)
	})
}
