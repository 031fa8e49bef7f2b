package docdex

import "time"

// Observer defines the interface for observing store events. Implement it
// to export metrics; the transport layer ships a Prometheus adapter.
type Observer interface {
	// OnInsert is called after a write completes. count is the number of
	// documents the call carried.
	OnInsert(duration time.Duration, count int, err error)

	// OnSearch is called after a query completes. mode is one of
	// "keyword", "dsl" or "vector".
	OnSearch(mode string, duration time.Duration, hits int, err error)

	// OnPersist is called after an envelope write. bytes is the encoded
	// envelope size.
	OnPersist(duration time.Duration, bytes int, err error)

	// OnLoad is called once after startup reconstruction.
	OnLoad(duration time.Duration, collections, documents int)
}

// NoopObserver is a no-op implementation of Observer.
type NoopObserver struct{}

func (NoopObserver) OnInsert(duration time.Duration, count int, err error)              {}
func (NoopObserver) OnSearch(mode string, duration time.Duration, hits int, err error)  {}
func (NoopObserver) OnPersist(duration time.Duration, bytes int, err error)             {}
func (NoopObserver) OnLoad(duration time.Duration, collections, documents int)          {}
