// Package elimination implements the cascading filter chain: a mutable
// candidate list is progressively narrowed by stronger equivalence keys.
// Each pass is monotone — it only removes records, never adds them — and
// correctness rests on weaker-key equality being implied by stronger-key
// equality, so discarding unique-under-a-weak-key records can never drop a
// true duplicate.
package elimination

import (
	"bytes"
	"sort"
	"strings"

	"github.com/ab22375/dupfind/internal/record"
)

// CompareFunc orders two records for a given equivalence key: negative if a
// sorts before b, zero if equal under the key, positive otherwise.
type CompareFunc func(a, b *record.FileRecord) int

// BySize compares file size.
func BySize(a, b *record.FileRecord) int {
	switch {
	case a.Size() < b.Size():
		return -1
	case a.Size() > b.Size():
		return 1
	default:
		return 0
	}
}

// ByHeadBytes compares the 4096-byte head buffer lexicographically.
func ByHeadBytes(a, b *record.FileRecord) int {
	ha, hb := a.HeadBytes(), b.HeadBytes()
	return bytes.Compare(ha[:], hb[:])
}

// ByDigest compares the hex-encoded content digest lexicographically.
func ByDigest(a, b *record.FileRecord) int {
	return strings.Compare(a.Digest(), b.Digest())
}

// ByDuration compares video duration in seconds.
func ByDuration(a, b *record.FileRecord) int {
	switch {
	case a.DurationSeconds() < b.DurationSeconds():
		return -1
	case a.DurationSeconds() > b.DurationSeconds():
		return 1
	default:
		return 0
	}
}

// Engine holds a mutable reference to the orchestrator's candidate list.
// RemoveUniqueBy and Cleanup return the number of records they physically
// removed; FlagWhere only flags and SortBySize only reorders, and neither
// returns a count.
type Engine struct {
	list *[]*record.FileRecord
}

// New wraps list, which the engine will sort and prune in place.
func New(list *[]*record.FileRecord) *Engine {
	return &Engine{list: list}
}

// RemoveUniqueBy sorts the list by key, flags every maximal run of equal
// keys that has length 1, and cleans up.
func (e *Engine) RemoveUniqueBy(key CompareFunc) int {
	list := *e.list
	sort.SliceStable(list, func(i, j int) bool { return key(list[i], list[j]) < 0 })

	i := 0
	for i < len(list) {
		j := i + 1
		for j < len(list) && key(list[i], list[j]) == 0 {
			j++
		}
		if j-i == 1 {
			list[i].Flag()
		}
		i = j
	}
	return e.Cleanup()
}

// FlagWhere marks every record matching pred for removal, without cleaning
// up. Used where a pass flags failures under a different condition than
// "unique under a key", e.g. empty video-hash results.
func (e *Engine) FlagWhere(pred func(*record.FileRecord) bool) {
	for _, r := range *e.list {
		if pred(r) {
			r.Flag()
		}
	}
}

// Cleanup removes every flagged record via a stable partition, preserving
// relative order among kept records, and returns the count removed.
func (e *Engine) Cleanup() int {
	list := *e.list
	oldSize := len(list)

	kept := list[:0]
	for _, r := range list {
		if !r.RemoveFlag() {
			kept = append(kept, r)
		}
	}
	*e.list = kept
	return oldSize - len(kept)
}

// SortBySize sorts the final surviving list by size, exposed for the
// dedup pipeline's grouping stage.
func (e *Engine) SortBySize() {
	list := *e.list
	sort.SliceStable(list, func(i, j int) bool { return BySize(list[i], list[j]) < 0 })
}
