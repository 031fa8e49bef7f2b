package docdex

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/docdex/docdex/document"
	"github.com/docdex/docdex/index"
	"github.com/docdex/docdex/query"
	"github.com/docdex/docdex/snapshot"
)

// Store is the registry of named collections: the single shared mutable
// state of a deployment. It is built once by Open from the durable root and
// every mutation is persisted synchronously before the call returns.
//
// Locking is per collection: a short store-level mutex guards only entry
// creation, so traffic on one collection never stalls another. Within a
// collection, readers proceed concurrently and a writer holds the write
// lock across its durable write.
type Store struct {
	mu          sync.Mutex
	collections map[string]*collection

	opts *options
}

type collection struct {
	mu  sync.RWMutex
	idx *index.Index
}

// Open reconstructs the registry from the configured blob store. Corrupt
// or unreadable files are skipped; partial recovery is preferred over a
// failed start.
func Open(ctx context.Context, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	start := time.Now()
	indexes, err := snapshot.Load(ctx, o.blobStore, o.logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("docdex: load storage: %w", err)
	}

	collections := make(map[string]*collection, len(indexes))
	documents := 0
	for name, idx := range indexes {
		collections[name] = &collection{idx: idx}
		documents += idx.Len()
	}

	o.observer.OnLoad(time.Since(start), len(collections), documents)
	o.logger.InfoContext(ctx, "storage loaded",
		"collections", len(collections),
		"documents", documents,
	)

	return &Store{collections: collections, opts: o}, nil
}

// Close releases the store. Writes are synchronous, so there is nothing to
// flush; Close exists so lifecycle management stays explicit.
func (s *Store) Close() error {
	s.opts.logger.Debug("store closed")
	return nil
}

// getOrCreate returns the collection for name, creating an empty one if
// absent.
func (s *Store) getOrCreate(name string) *collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = &collection{idx: &index.Index{}}
		s.collections[name] = c
	}
	return c
}

// lookup returns the collection for name, or nil when it has never been
// written to. Absence is a normal outcome, not a failure.
func (s *Store) lookup(name string) *collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collections[name]
}

// Insert appends one document and persists the collection before
// returning. On a persistence failure the in-memory insertion is NOT
// rolled back: the id is still returned alongside the error, and memory
// and disk diverge until the next successful write. Single-document
// inserts keep this historical contract; InsertMany is transactional.
func (s *Store) Insert(ctx context.Context, name string, data document.Value) (uint64, error) {
	c := s.getOrCreate(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	doc := c.idx.Append(data)
	err := s.persist(ctx, name, c.idx)
	s.opts.observer.OnInsert(time.Since(start), 1, err)
	s.opts.logger.LogInsert(ctx, name, doc.ID, err)
	if err != nil {
		return doc.ID, fmt.Errorf("docdex: persist %q: %w", name, err)
	}
	return doc.ID, nil
}

// InsertMany appends a batch of documents under one lock acquisition and
// one durable write. On failure the in-memory append is rolled back and no
// ids are returned: the batch is all-or-nothing.
func (s *Store) InsertMany(ctx context.Context, name string, docs []document.Value) ([]uint64, error) {
	c := s.getOrCreate(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	base := c.idx.Len()
	ids := make([]uint64, 0, len(docs))
	for _, data := range docs {
		ids = append(ids, c.idx.Append(data).ID)
	}

	err := s.persist(ctx, name, c.idx)
	s.opts.observer.OnInsert(time.Since(start), len(docs), err)
	s.opts.logger.LogBulkInsert(ctx, name, len(docs), err)
	if err != nil {
		c.idx.Truncate(base)
		return nil, fmt.Errorf("docdex: persist %q: %w", name, err)
	}
	return ids, nil
}

// SetMapping replaces the collection's advisory mapping. The in-memory
// update always succeeds; mapping durability is best-effort and a
// persistence failure is only logged.
func (s *Store) SetMapping(ctx context.Context, name string, m index.Mapping) error {
	c := s.getOrCreate(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.idx.Mapping = &m

	data, err := snapshot.EncodeMapping(m)
	if err == nil {
		err = s.opts.blobStore.Put(ctx, snapshot.MappingFile(name), data)
	}
	if err != nil {
		s.opts.logger.WarnContext(ctx, "mapping persistence failed",
			"collection", name,
			"error", err,
		)
	}
	return nil
}

// Mapping returns the collection's mapping, if any.
func (s *Store) Mapping(name string) (index.Mapping, bool) {
	c := s.lookup(name)
	if c == nil {
		return index.Mapping{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.idx.Mapping == nil {
		return index.Mapping{}, false
	}
	return *c.idx.Mapping, true
}

// Search runs a keyword query.
func (s *Store) Search(ctx context.Context, name string, req query.KeywordRequest) (*query.Result, error) {
	return s.runQuery(ctx, name, "keyword", func(idx *index.Index) *query.Result {
		return query.Keyword(idx, req)
	})
}

// Query runs a structured filter/sort/aggregate query.
func (s *Store) Query(ctx context.Context, name string, req query.Request) (*query.Result, error) {
	return s.runQuery(ctx, name, "dsl", func(idx *index.Index) *query.Result {
		return query.Run(idx, req)
	})
}

// VectorSearch runs an exhaustive nearest-neighbor query.
func (s *Store) VectorSearch(ctx context.Context, name string, req query.VectorRequest) (*query.Result, error) {
	return s.runQuery(ctx, name, "vector", func(idx *index.Index) *query.Result {
		return query.Vector(idx, req)
	})
}

func (s *Store) runQuery(ctx context.Context, name, mode string, fn func(*index.Index) *query.Result) (*query.Result, error) {
	start := time.Now()

	c := s.lookup(name)
	if c == nil {
		s.opts.observer.OnSearch(mode, time.Since(start), 0, ErrIndexNotFound)
		s.opts.logger.LogSearch(ctx, name, mode, 0, ErrIndexNotFound)
		return nil, ErrIndexNotFound
	}

	c.mu.RLock()
	res := fn(c.idx)
	c.mu.RUnlock()

	s.opts.observer.OnSearch(mode, time.Since(start), len(res.Hits), nil)
	s.opts.logger.LogSearch(ctx, name, mode, len(res.Hits), nil)
	return res, nil
}

// Names returns all collection names in sorted order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of documents in a collection.
func (s *Store) Count(name string) (int, bool) {
	c := s.lookup(name)
	if c == nil {
		return 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.idx.Len(), true
}

// persist rewrites the collection's envelope in full. Called with the
// collection write lock held so readers never observe a half-applied
// batch.
func (s *Store) persist(ctx context.Context, name string, idx *index.Index) error {
	start := time.Now()
	data, err := snapshot.Encode(idx.Docs, s.opts.codec, s.opts.compression)
	if err == nil {
		err = s.opts.blobStore.Put(ctx, snapshot.DocFile(name), data)
	}
	s.opts.observer.OnPersist(time.Since(start), len(data), err)
	return err
}
