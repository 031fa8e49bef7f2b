package codec

import (
	"bytes"

	gojson "github.com/goccy/go-json"

	"github.com/docdex/docdex/document"
)

// GoJSON is a JSON codec backed by github.com/goccy/go-json. Its output is
// wire-compatible with the stdlib codec; only decode throughput differs.
type GoJSON struct{}

// Marshal encodes the value to its canonical JSON rendering.
func (GoJSON) Marshal(v document.Value) ([]byte, error) {
	return []byte(v.Render()), nil
}

// Unmarshal decodes JSON data into a Value.
func (GoJSON) Unmarshal(data []byte) (document.Value, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return document.Value{}, err
	}
	return document.FromAny(raw)
}

// Name returns the unique name of the codec ("go-json").
func (GoJSON) Name() string { return "go-json" }
