// Package document defines the schema-light data model: a tagged-union
// Value covering the JSON type system, and the Document record stored by an
// index.
//
// Values are decoded once at the edge (Decode/FromAny) and traversed
// recursively by the query engine; no reflection is used on the hot path.
// The canonical textual form of a Value (Render) is stable and is what
// keyword search matches against and aggregations bucket on.
package document
