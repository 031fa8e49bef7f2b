package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction over the durable root holding one envelope
// blob (and optional mapping sidecar) per collection. Envelopes are small
// and rewritten whole, so the interface is whole-blob oriented.
//
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Put writes a blob, replacing any previous content. The write must be
	// atomic from a reader's point of view.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads an entire blob. Missing blobs yield ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all blobs in the store.
	List(ctx context.Context) ([]string, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
