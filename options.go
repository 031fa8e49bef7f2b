package docdex

import (
	"github.com/docdex/docdex/blobstore"
	"github.com/docdex/docdex/codec"
	"github.com/docdex/docdex/snapshot"
)

type options struct {
	blobStore   blobstore.BlobStore
	codec       codec.Codec
	compression snapshot.Compression
	logger      *Logger
	observer    Observer
}

func defaultOptions() *options {
	return &options{
		blobStore:   blobstore.NewLocalStore("data"),
		codec:       codec.Default,
		compression: snapshot.DefaultCompression,
		logger:      NewLogger(nil),
		observer:    NoopObserver{},
	}
}

// Option configures Open behavior.
type Option func(*options)

// WithBlobStore sets the durable root holding the persisted envelopes.
// The default is a LocalStore at "./data".
func WithBlobStore(bs blobstore.BlobStore) Option {
	return func(o *options) {
		if bs != nil {
			o.blobStore = bs
		}
	}
}

// WithDataDir is shorthand for a local file system root at dir.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.blobStore = blobstore.NewLocalStore(dir)
	}
}

// WithCodec configures the payload codec for newly written envelopes.
// Existing envelopes are self-describing and decode with the codec named
// in their header. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures envelope body compression for new writes.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		if c == nil {
			c = snapshot.DefaultCompression
		}
		o.compression = c
	}
}

// WithLogger sets the structured logger. Defaults to text logs on stderr.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
