package schema

// Type is a semantic field type. Each type has a fixed coercion rule.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeURL     Type = "url"
	TypeEmail   Type = "email"
	TypeUUID    Type = "uuid"
	TypeMapping Type = "mapping"
	TypeList    Type = "sequence"
	TypeRecord  Type = "record"
	TypeAny     Type = "any"
)

func (t Type) valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeURL, TypeEmail, TypeUUID,
		TypeMapping, TypeList, TypeRecord, TypeAny:
		return true
	}
	return false
}

func (t Type) numeric() bool {
	return t == TypeInteger || t == TypeNumber
}

func (t Type) textual() bool {
	return t == TypeString || t == TypeURL || t == TypeEmail
}

// sized reports whether length bounds apply.
func (t Type) sized() bool {
	return t.textual() || t == TypeMapping || t == TypeList
}

// label is the human readable name used in type mismatch messages.
func (t Type) label() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeURL:
		return "URL string"
	case TypeEmail:
		return "email string"
	case TypeUUID:
		return "UUID"
	case TypeMapping:
		return "mapping"
	case TypeList:
		return "list"
	case TypeRecord:
		return "object"
	default:
		return string(t)
	}
}
