// Package pipeline implements the three fixed orchestrators: exact-duplicate,
// similar-image, and similar-video. Each drives the walker, runs a
// mode-specific sequence of elimination passes and/or BK-tree builds, and
// returns groups of equivalent or similar files. Per-file I/O and decode
// failures are converted into removals here; the pipeline itself never
// aborts on a single bad file.
package pipeline

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ab22375/dupfind/internal/logging"
	"github.com/ab22375/dupfind/internal/record"
	"github.com/ab22375/dupfind/internal/signalhandler"
	"github.com/ab22375/dupfind/internal/walker"
)

// ErrNoDuplicateSearch is returned when root names a regular file rather
// than a directory: the CLI contract says this is not an error, just
// nothing to search.
var ErrNoDuplicateSearch = errors.New("pipeline: root is a file, no duplicate search applies")

// ErrEmptyFileList is returned when the walk collected zero candidate files,
// as distinct from a mid-pipeline elimination pass pruning a non-empty
// candidate list down to zero. Only the former is "File List is empty."
var ErrEmptyFileList = errors.New("pipeline: no candidate files found")

// Options configures every pipeline.
type Options struct {
	FollowSymlinks bool
	// Workers bounds the population worker pool; <= 0 picks a default
	// scaled to the host's CPU count.
	Workers int
	// Diagnostics receives the elimination engine's per-stage removal
	// counts, mirroring the original's unconditional "Removed N files
	// with unique ..." messages. Defaults to os.Stderr when nil.
	Diagnostics io.Writer
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return signalhandler.OptimalProcs()
}

func (o Options) diagnostics() io.Writer {
	if o.Diagnostics != nil {
		return o.Diagnostics
	}
	return os.Stderr
}

// DuplicateGroup is one exact-duplicate stanza: a maximal run of equal-size
// records that all survived the digest stage, so every path here shares its
// BLAKE3 digest with at least one other surviving file. Runs are split by
// size only: two sets of identical files that share a size land in the
// same group.
type DuplicateGroup struct {
	Size  uint64
	Paths []string
}

// SimilarGroup is one near-duplicate stanza, numbered for display.
type SimilarGroup struct {
	Number int
	Paths  []string
}

// walkCollect walks root with a walker built from opts and collects every
// accepted path via accept. It translates walker.ErrNotDirectory into
// ErrNoDuplicateSearch.
func walkCollect(root string, opts Options, accept func(path string) *record.FileRecord) ([]*record.FileRecord, error) {
	w := walker.New(opts.FollowSymlinks)
	w.OnError = func(path string, err error) {
		logging.Warn(logging.WalkIssue{Path: path, Err: err})
	}

	var candidates []*record.FileRecord
	err := w.Walk(root, func(path string, depth int) error {
		if r := accept(path); r != nil {
			candidates = append(candidates, r)
		}
		return nil
	})
	if errors.Is(err, walker.ErrNotDirectory) {
		return nil, ErrNoDuplicateSearch
	}
	if err != nil {
		logging.Error(logging.WalkIssue{Path: root, Err: err})
		return nil, err
	}
	return candidates, nil
}

// populate runs fn over every record with bounded concurrency, then
// barriers until the whole batch completes. This is the only place the
// ambient stack parallelizes: the elimination/BK-tree stages themselves
// always run single-threaded over the now-settled slice.
func populate(records []*record.FileRecord, workers int, fn func(*record.FileRecord)) {
	if len(records) == 0 {
		return
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, r := range records {
		r := r
		g.Go(func() error {
			fn(r)
			return nil
		})
	}
	_ = g.Wait() // fn never returns an error; failures are recorded on r itself
}
