// Package query implements the three query modes over one index: keyword
// search (exact or fuzzy), the structured filter/sort/aggregate query, and
// exhaustive k-nearest-neighbor vector search.
//
// Every mode is a linear scan over the live document sequence; there are no
// secondary index structures. Callers hold at least a read lock on the
// owning collection for the duration of a call.
package query
