package codec

import (
	"github.com/docdex/docdex/document"
)

// JSON is the standard-library JSON codec. It is the most portable option
// and the default for new envelopes.
type JSON struct{}

// Marshal encodes the value to its canonical JSON rendering.
func (JSON) Marshal(v document.Value) ([]byte, error) {
	return []byte(v.Render()), nil
}

// Unmarshal decodes JSON data into a Value.
func (JSON) Unmarshal(data []byte) (document.Value, error) {
	return document.Decode(data)
}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
