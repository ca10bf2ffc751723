package seating

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Edge joins two seats by their 1-based rank. Ranks are positions in the
// ascending order of live seat IDs, see [NormalizeEdges].
type Edge [2]int

// PairID returns the canonical "min-max" key for an adjacency between two
// seat IDs. The key is the same regardless of argument order.
func PairID(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

// SplitPairID parses a "a-b" key produced by [PairID].
func SplitPairID(s string) (a, b int, err error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidEdge, "connection %q is not of the form a-b", s)
	}
	if a, err = strconv.Atoi(left); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidEdge, err, "connection %q", s)
	}
	if b, err = strconv.Atoi(right); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidEdge, err, "connection %q", s)
	}
	return a, b, nil
}

// NormalizeEdges rewrites raw "a-b" seat ID pairs into rank pairs.
//
// Seat IDs are sorted ascending and ranked 1..N. Each edge is mapped through
// that ranking. Edges that are malformed, loop back to the same seat, or
// reference a seat that no longer exists are skipped. Output order follows
// rawEdges.
func NormalizeEdges(rawEdges []string, seatIDs []int) []Edge {
	sorted := slices.Clone(seatIDs)
	slices.Sort(sorted)

	rank := make(map[int]int, len(sorted))
	for i, id := range sorted {
		rank[id] = i + 1
	}

	out := make([]Edge, 0, len(rawEdges))
	for _, raw := range rawEdges {
		a, b, err := SplitPairID(raw)
		if err != nil || a == b {
			continue
		}
		ra, okA := rank[a]
		rb, okB := rank[b]
		if !okA || !okB {
			continue
		}
		out = append(out, Edge{ra, rb})
	}
	return out
}
