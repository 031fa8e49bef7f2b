package snapshot

import (
	"encoding/json"

	"github.com/docdex/docdex/index"
)

// EncodeMapping serializes a mapping to its JSON sidecar form.
func EncodeMapping(m index.Mapping) ([]byte, error) {
	return json.Marshal(m)
}

// DecodeMapping parses a JSON sidecar.
func DecodeMapping(data []byte) (index.Mapping, error) {
	var m index.Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return index.Mapping{}, err
	}
	return m, nil
}
