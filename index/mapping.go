package index

import (
	"fmt"

	"github.com/docdex/docdex/document"
)

// FieldType is the declared type of a mapped field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumeric FieldType = "numeric"
	FieldTypeVector  FieldType = "vector"
)

// Valid reports whether t is a recognized field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumeric, FieldTypeVector:
		return true
	default:
		return false
	}
}

// Field declares the type of one mapped field.
type Field struct {
	Type FieldType `json:"type"`
}

// Mapping is advisory schema metadata: a set of field name to field type
// declarations. The engine stores and returns it but does not validate
// inserted documents against it, and vector-field selection at query time
// is driven by the per-query field parameter, never by the mapping.
type Mapping struct {
	Fields map[string]Field `json:"fields"`
}

// Validate checks declared fields against a document. It is offered to
// callers who want opt-in checking; the insert path never invokes it.
func (m Mapping) Validate(data document.Value) error {
	for name, field := range m.Fields {
		v, ok := data.Field(name)
		if !ok {
			continue
		}
		if !checkKind(v, field.Type) {
			return fmt.Errorf("field %q has type %s, mapping declares %s", name, v.Kind, field.Type)
		}
	}
	return nil
}

func checkKind(v document.Value, t FieldType) bool {
	switch t {
	case FieldTypeString:
		return v.Kind == document.KindString
	case FieldTypeNumeric:
		return v.IsNumber()
	case FieldTypeVector:
		_, ok := v.AsArray()
		return ok
	default:
		return false
	}
}
