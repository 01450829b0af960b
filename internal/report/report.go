// Package report renders pipeline results as the plain-text stanzas the CLI
// contract specifies: one group per stanza, human-readable sizes, no other
// structured output format.
package report

import (
	"fmt"
	"io"
)

const (
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// HumanSize renders size using base-1024 suffixes with two decimal places,
// except the plain-byte case which has no fractional part to show.
func HumanSize(size uint64) string {
	switch {
	case size >= gb:
		return fmt.Sprintf("%.2f GB", float64(size)/gb)
	case size >= mb:
		return fmt.Sprintf("%.2f MB", float64(size)/mb)
	case size >= kb:
		return fmt.Sprintf("%.2f KB", float64(size)/kb)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// DuplicateGroup writes one exact-duplicate stanza: "Found <n> files of
// size <human-size>" followed by one path per line.
func DuplicateGroup(w io.Writer, size uint64, paths []string) {
	fmt.Fprintf(w, "Found %d files of size %s\n", len(paths), HumanSize(size))
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	fmt.Fprintln(w)
}

// SimilarGroup writes one near-duplicate stanza: "Group <k>" followed by
// " - <path>" lines.
func SimilarGroup(w io.Writer, number int, paths []string) {
	fmt.Fprintf(w, "Group %d\n", number)
	for _, p := range paths {
		fmt.Fprintf(w, " - %s\n", p)
	}
	fmt.Fprintln(w)
}

// EmptyFileList writes the boundary message for an empty candidate list.
func EmptyFileList(w io.Writer) {
	fmt.Fprintln(w, "File List is empty.")
}

// NoDuplicateSearch writes the message for a root argument that is a file,
// not a directory.
func NoDuplicateSearch(w io.Writer) {
	fmt.Fprintln(w, "You passed a file as the argument. No duplicates to check.")
}
