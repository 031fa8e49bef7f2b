package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/docdex/docdex/codec"
	"github.com/docdex/docdex/document"
)

// Envelope format:
//
//	[magic:4]["DDXE"]
//	[version:1]
//	[codec name: uvarint len + bytes]
//	[compression name: uvarint len + bytes]
//	body (compressed):
//	    [doc count: uvarint]
//	    per document: [id: uvarint][payload len: uvarint][payload]
//
// The header is self-describing so an envelope written with any built-in
// codec/compression pair decodes on any store configuration.
var magic = [4]byte{'D', 'D', 'X', 'E'}

const formatVersion = 1

// Suffixes of the two per-collection files in a storage root.
const (
	DocFileSuffix     = ".bin"
	MappingFileSuffix = ".mapping.json"
)

// DocFile returns the envelope blob name for a collection.
func DocFile(name string) string { return name + DocFileSuffix }

// MappingFile returns the mapping sidecar blob name for a collection.
func MappingFile(name string) string { return name + MappingFileSuffix }

// ErrBadEnvelope reports a structurally invalid envelope.
var ErrBadEnvelope = errors.New("snapshot: bad envelope")

// Encode serializes the full document list of one collection into a binary
// envelope. This is a full rewrite, O(total documents), accepted for the
// modest per-collection volumes this engine targets.
func Encode(docs []document.Document, c codec.Codec, comp Compression) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	if comp == nil {
		comp = DefaultCompression
	}

	body := binary.AppendUvarint(nil, uint64(len(docs)))
	for i := range docs {
		payload, err := c.Marshal(docs[i].Data)
		if err != nil {
			return nil, fmt.Errorf("snapshot: encode document %d: %w", docs[i].ID, err)
		}
		body = binary.AppendUvarint(body, docs[i].ID)
		body = binary.AppendUvarint(body, uint64(len(payload)))
		body = append(body, payload...)
	}

	body, err := comp.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("snapshot: compress: %w", err)
	}

	buf := make([]byte, 0, len(body)+32)
	buf = append(buf, magic[:]...)
	buf = append(buf, formatVersion)
	buf = appendString(buf, c.Name())
	buf = appendString(buf, comp.Name())
	return append(buf, body...), nil
}

// Decode parses an envelope back into documents, re-deriving each cached
// vector the same way the insert path does.
func Decode(data []byte) ([]document.Document, error) {
	if len(data) < len(magic)+1 || [4]byte(data[:4]) != magic {
		return nil, ErrBadEnvelope
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadEnvelope, data[4])
	}
	data = data[5:]

	codecName, data, err := readString(data)
	if err != nil {
		return nil, err
	}
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrBadEnvelope, codecName)
	}

	compName, data, err := readString(data)
	if err != nil {
		return nil, err
	}
	comp, ok := CompressionByName(compName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown compression %q", ErrBadEnvelope, compName)
	}

	body, err := comp.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress: %w", err)
	}

	count, n := binary.Uvarint(body)
	if n <= 0 {
		return nil, ErrBadEnvelope
	}
	body = body[n:]

	// The count is untrusted input; every record costs at least two bytes
	// of body, so anything above that bound cannot decode.
	if count > uint64(len(body))/2 {
		return nil, fmt.Errorf("%w: document count %d exceeds body size", ErrBadEnvelope, count)
	}

	docs := make([]document.Document, 0, count)
	for i := uint64(0); i < count; i++ {
		id, n := binary.Uvarint(body)
		if n <= 0 {
			return nil, ErrBadEnvelope
		}
		body = body[n:]

		size, n := binary.Uvarint(body)
		if n <= 0 || uint64(len(body[n:])) < size {
			return nil, ErrBadEnvelope
		}
		payload := body[n : n+int(size)]
		body = body[n+int(size):]

		value, err := c.Unmarshal(payload)
		if err != nil {
			return nil, fmt.Errorf("snapshot: decode document %d: %w", id, err)
		}
		docs = append(docs, document.New(id, value))
	}
	return docs, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func readString(data []byte) (string, []byte, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 || uint64(len(data[n:])) < size {
		return "", nil, ErrBadEnvelope
	}
	return string(data[n : n+int(size)]), data[n+int(size):], nil
}
