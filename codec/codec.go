// Package codec centralizes document payload encoding.
//
// Codec selection is a compatibility boundary: persisted envelopes record
// the codec name in their header, and files written by an unknown codec do
// not decode.
package codec

import (
	"github.com/docdex/docdex/document"
)

// Codec encodes/decodes document payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v document.Value) ([]byte, error)
	Unmarshal(data []byte) (document.Value, error)
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// This is used by the self-describing envelope format, which stores the
// codec name in its header.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used for newly written envelopes. Existing files are
// self-describing and are opened by selecting the codec by name.
var Default Codec = JSON{}
