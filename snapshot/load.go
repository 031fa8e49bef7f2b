package snapshot

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/docdex/docdex/blobstore"
	"github.com/docdex/docdex/index"
)

// Load scans a storage root and reconstructs every persisted collection.
// Envelopes decode in parallel; a file that fails to decode is logged and
// skipped, never aborting the whole scan. Mapping sidecars attach to their
// collection afterwards, creating the collection when the envelope was
// missing or corrupt.
func Load(ctx context.Context, store blobstore.BlobStore, logger *slog.Logger) (map[string]*index.Index, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	names, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		indexes = make(map[string]*index.Index)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var mappingFiles []string
	for _, name := range names {
		if strings.HasSuffix(name, MappingFileSuffix) {
			mappingFiles = append(mappingFiles, name)
			continue
		}
		if !strings.HasSuffix(name, DocFileSuffix) {
			continue
		}

		collection := strings.TrimSuffix(name, DocFileSuffix)
		blob := name
		g.Go(func() error {
			data, err := store.Get(gctx, blob)
			if err != nil {
				logger.Warn("skipping unreadable envelope", "file", blob, "error", err)
				return nil
			}
			docs, err := Decode(data)
			if err != nil {
				logger.Warn("skipping corrupt envelope", "file", blob, "error", err)
				return nil
			}
			mu.Lock()
			indexes[collection] = &index.Index{Docs: docs}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, blob := range mappingFiles {
		collection := strings.TrimSuffix(blob, MappingFileSuffix)

		data, err := store.Get(ctx, blob)
		if err != nil {
			logger.Warn("skipping unreadable mapping", "file", blob, "error", err)
			continue
		}
		m, err := DecodeMapping(data)
		if err != nil {
			logger.Warn("skipping corrupt mapping", "file", blob, "error", err)
			continue
		}

		idx, ok := indexes[collection]
		if !ok {
			idx = &index.Index{}
			indexes[collection] = idx
		}
		idx.Mapping = &m
	}

	return indexes, nil
}
