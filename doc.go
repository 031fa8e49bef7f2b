// Package docdex provides an embeddable document index and query engine:
// named collections of schema-light JSON-like documents with keyword
// search, fuzzy matching, a structured filter/sort/aggregate query mode,
// exhaustive k-nearest-neighbor vector search, and write-through
// persistence to a local or remote storage root.
//
// It targets small-to-medium single-node deployments where operational
// simplicity matters more than horizontal scale: every query is a full
// scan, every insert rewrites its collection's envelope, and there is no
// update or delete.
//
// # Quick start
//
//	ctx := context.Background()
//	store, err := docdex.Open(ctx, docdex.WithDataDir("./data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	doc, _ := document.Decode([]byte(`{"title":"hello world","vector":[0.1,0.9]}`))
//	id, err := store.Insert(ctx, "articles", doc)
//
//	res, err := store.Search(ctx, "articles", query.KeywordRequest{Query: "hello"})
//	res, err = store.VectorSearch(ctx, "articles", query.VectorRequest{Vector: []float32{0, 1}})
//
// # Persistence
//
// Each collection lives in two blobs under the storage root: a binary
// envelope of all documents and an optional JSON mapping sidecar. The two
// files are written independently; crash atomicity spans one file, not
// both. Remote roots (S3, MinIO) plug in through the blobstore interface.
package docdex
