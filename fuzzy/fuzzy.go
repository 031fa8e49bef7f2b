// Package fuzzy computes the minimum edit distance between a query token
// and any scalar reachable inside a document value.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/docdex/docdex/document"
)

// Match returns the minimum Levenshtein distance between query and any
// scalar in v, recursing through objects and arrays. Strings are folded to
// lower case and matched per whitespace-separated token; other scalars are
// matched against their textual rendering. ok is false when no scalar is
// within maxDist edits — callers must treat that as absent, not as a worse
// score.
func Match(v document.Value, query string, maxDist int) (dist int, ok bool) {
	best := maxDist + 1

	switch v.Kind {
	case document.KindString:
		for _, token := range strings.Fields(strings.ToLower(v.S)) {
			if d := levenshtein.ComputeDistance(query, token); d < best {
				best = d
			}
		}
	case document.KindObject:
		for _, member := range v.O {
			if d, found := Match(member, query, maxDist); found && d < best {
				best = d
			}
		}
	case document.KindArray:
		for _, elem := range v.A {
			if d, found := Match(elem, query, maxDist); found && d < best {
				best = d
			}
		}
	default:
		if d := levenshtein.ComputeDistance(query, v.Render()); d < best {
			best = d
		}
	}

	if best > maxDist {
		return 0, false
	}
	return best, true
}
