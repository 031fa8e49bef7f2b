package document

// VectorField is the field name whose numeric array is cached on the
// document at insertion time. Queries against any other field re-extract
// the vector on the fly.
const VectorField = "vector"

// Document is one stored record: a unique id plus an arbitrary structured
// payload. Data is immutable once inserted.
type Document struct {
	// ID is unique within the owning index, assigned at insertion time.
	ID uint64
	// Data is the document's field content, unconstrained by any schema.
	Data Value
	// Vector caches the extraction of the "vector" field from Data at
	// insertion time. It is a memoization and is never recomputed.
	Vector []float32
}

// New builds a Document with the given id, populating the vector cache.
func New(id uint64, data Value) Document {
	vec, _ := ExtractVector(data, VectorField)
	return Document{ID: id, Data: data, Vector: vec}
}

// ExtractVector pulls a float32 vector out of the named field of data.
// The field must exist and be an array; non-numeric elements are skipped.
// ok is false when the field is missing or not an array.
func ExtractVector(data Value, field string) (vec []float32, ok bool) {
	f, ok := data.Field(field)
	if !ok {
		return nil, false
	}
	arr, ok := f.AsArray()
	if !ok {
		return nil, false
	}
	vec = make([]float32, 0, len(arr))
	for _, e := range arr {
		if n, isNum := e.AsFloat64(); isNum {
			vec = append(vec, float32(n))
		}
	}
	return vec, true
}
