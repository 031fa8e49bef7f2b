// Package index owns the ordered document collection for one named index
// plus its optional advisory mapping.
package index

import (
	"github.com/docdex/docdex/document"
)

// Index is one named collection: an append-only sequence of documents in
// insertion order and an optional mapping. The zero value is ready to use;
// indexes are created implicitly on first write.
//
// Index itself is not goroutine safe; the registry layer serializes access.
type Index struct {
	Docs    []document.Document
	Mapping *Mapping
}

// Append inserts data as a new document, assigning the next id and caching
// the derived vector. Ids start at 1 and are dense while deletes are
// unsupported.
func (idx *Index) Append(data document.Value) document.Document {
	doc := document.New(uint64(len(idx.Docs))+1, data)
	idx.Docs = append(idx.Docs, doc)
	return doc
}

// Truncate drops all documents past length n. Used to roll back a failed
// bulk append before the write is acknowledged.
func (idx *Index) Truncate(n int) {
	if n < 0 || n >= len(idx.Docs) {
		return
	}
	idx.Docs = idx.Docs[:n]
}

// Len returns the number of documents.
func (idx *Index) Len() int { return len(idx.Docs) }
