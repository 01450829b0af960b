package pipeline

import (
	"math/bits"
	"testing"

	"github.com/ab22375/dupfind/internal/bktree"
)

func hamming64(a, b uint64) int { return bits.OnesCount64(a ^ b) }

func TestScanGroupsFormsNonOverlappingGroups(t *testing.T) {
	tree := bktree.New(hamming64)
	items := []bktree.Item[uint64]{
		{Value: 0b0000, Path: "a"},
		{Value: 0b0001, Path: "b"}, // close to a
		{Value: 0b1111, Path: "c"},
		{Value: 0b1110, Path: "d"}, // close to c
		{Value: 0b0101, Path: "e"}, // one bit from b, but b is already grouped when e is scanned
	}
	for _, it := range items {
		tree.Insert(it.Value, it.Path)
	}

	groups, next := scanGroups(items, tree, 1, 0)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if next != 2 {
		t.Fatalf("next = %d, want 2", next)
	}

	seen := make(map[string]bool)
	for _, g := range groups {
		for _, p := range g.Paths {
			if seen[p] {
				t.Fatalf("path %s appeared in more than one group", p)
			}
			seen[p] = true
		}
	}
}

func TestScanGroupsThreadsStartGroup(t *testing.T) {
	tree := bktree.New(hamming64)
	items := []bktree.Item[uint64]{
		{Value: 0, Path: "a"},
		{Value: 0, Path: "b"},
	}
	for _, it := range items {
		tree.Insert(it.Value, it.Path)
	}
	groups, next := scanGroups(items, tree, 0, 5)
	if len(groups) != 1 || groups[0].Number != 6 {
		t.Fatalf("groups = %v, want a single group numbered 6", groups)
	}
	if next != 6 {
		t.Fatalf("next = %d, want 6", next)
	}
}

func TestScanGroupsNoMatchesEmitsNothing(t *testing.T) {
	tree := bktree.New(hamming64)
	items := []bktree.Item[uint64]{
		{Value: 0b0000, Path: "a"},
		{Value: 0b1111, Path: "b"},
	}
	for _, it := range items {
		tree.Insert(it.Value, it.Path)
	}
	groups, next := scanGroups(items, tree, 0, 0)
	if len(groups) != 0 {
		t.Fatalf("groups = %v, want none", groups)
	}
	if next != 0 {
		t.Fatalf("next = %d, want 0", next)
	}
}
