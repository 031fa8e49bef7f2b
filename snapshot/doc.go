// Package snapshot implements the persistence codec: a compact binary
// envelope holding one collection's full document list, a JSON mapping
// sidecar, and the startup scan that reconstructs the registry from a
// storage root.
//
// Persistence is write-through: every document mutation rewrites its
// collection's envelope in full. The envelope header records the payload
// codec and body compression by name, so stores with different
// configurations read each other's files.
package snapshot
