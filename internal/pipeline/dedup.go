package pipeline

import (
	"fmt"

	"github.com/ab22375/dupfind/internal/elimination"
	"github.com/ab22375/dupfind/internal/logging"
	"github.com/ab22375/dupfind/internal/record"
)

// minDedupSize is the smallest file size eligible for exact-duplicate
// scanning; smaller files aren't worth the cascade.
const minDedupSize = 1024

// RunDedup finds exact-duplicate files under root: same size, same first
// 4096 bytes, same BLAKE3-256 digest.
func RunDedup(root string, opts Options) ([]DuplicateGroup, error) {
	candidates, err := walkCollect(root, opts, acceptDedupFile)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyFileList
	}
	diag := opts.diagnostics()

	engine := elimination.New(&candidates)

	fmt.Fprintf(diag, "Removed %d files with unique sizes.\n", engine.RemoveUniqueBy(elimination.BySize))
	if len(candidates) == 0 {
		return nil, nil
	}

	populate(candidates, opts.workers(), func(r *record.FileRecord) {
		if err := r.PopulateHeadBytes(); err != nil {
			logging.Debug(logging.DecodeFailure{Stage: "head bytes", Path: r.Path(), Err: err})
			r.Flag()
		}
	})
	engine.Cleanup()
	fmt.Fprintf(diag, "Removed %d files with unique head bytes.\n", engine.RemoveUniqueBy(elimination.ByHeadBytes))
	if len(candidates) == 0 {
		return nil, nil
	}

	populate(candidates, opts.workers(), func(r *record.FileRecord) {
		if err := r.PopulateDigest(); err != nil {
			logging.Debug(logging.DecodeFailure{Stage: "digest", Path: r.Path(), Err: err})
			r.Flag()
		}
	})
	engine.Cleanup()
	fmt.Fprintf(diag, "Removed %d files with unique digests.\n", engine.RemoveUniqueBy(elimination.ByDigest))
	if len(candidates) == 0 {
		return nil, nil
	}

	engine.SortBySize()
	return groupBySize(candidates), nil
}

// acceptDedupFile stats path through PopulateSize rather than SetSize: the
// walker already guarantees a regular file, so the only thing left to learn
// here is the size, and an unreadable size (race with deletion, permission
// change between walk and accept) should reject the candidate the same way
// as any other populate failure.
func acceptDedupFile(path string) *record.FileRecord {
	r := record.New(path)
	if err := r.PopulateSize(); err != nil {
		return nil
	}
	if r.Size() < minDedupSize {
		return nil
	}
	return r
}

// groupBySize emits every maximal run of equal-size records as a duplicate
// group. By construction (every earlier stage has already removed
// unique-under-digest records), every surviving run has length >= 2.
func groupBySize(candidates []*record.FileRecord) []DuplicateGroup {
	var groups []DuplicateGroup
	i := 0
	for i < len(candidates) {
		j := i + 1
		for j < len(candidates) && candidates[j].Size() == candidates[i].Size() {
			j++
		}
		paths := make([]string, 0, j-i)
		for k := i; k < j; k++ {
			paths = append(paths, candidates[k].Path())
		}
		groups = append(groups, DuplicateGroup{Size: candidates[i].Size(), Paths: paths})
		i = j
	}
	return groups
}
