package schema

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// Decode copies the record, computed fields included, into out, which must be
// a pointer to a struct or map. Struct fields are matched by their json tags.
func (r *Record) Decode(out any) error {
	data, err := r.Dump()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			uuidToStringHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func uuidToStringHook(from, to reflect.Type, data any) (any, error) {
	if from == uuidType && to.Kind() == reflect.String {
		return data.(uuid.UUID).String(), nil
	}
	return data, nil
}
