// Package walker is the directory-tree traversal collaborator: a recursive
// walk with symlink policy, a max-depth cap, and cycle detection. It knows
// nothing about duplicates or hashing — it only emits regular-file paths to
// a callback, skipping a hard-coded set of directory names and logging
// (but not aborting on) permission and cycle errors.
package walker

import (
	"errors"
	"os"
	"path/filepath"
)

// MaxDepth bounds recursion to guard against runaway or adversarial trees.
const MaxDepth = 50

// skippedDirs is matched against every path component, not just the leaf.
var skippedDirs = map[string]struct{}{
	".git":         {},
	".config":      {},
	".cache":       {},
	".vscode":      {},
	".local":       {},
	".venv":        {},
	".mozilla":     {},
	".thunderbird": {},
}

// Callback is invoked once per accepted regular file. depth is advisory —
// the core pipelines never consume it.
type Callback func(path string, depth int) error

// Walker walks a root directory, honoring a symlink-following policy.
type Walker struct {
	FollowSymlinks bool

	// OnError is called for non-fatal problems (permission denied, cycle
	// detected, depth exceeded) instead of aborting the walk. If nil,
	// errors are silently swallowed.
	OnError func(path string, err error)
}

// New returns a Walker with the given symlink policy.
func New(followSymlinks bool) *Walker {
	return &Walker{FollowSymlinks: followSymlinks}
}

// ErrNotDirectory is returned by Walk when root is a regular file: per the
// CLI contract, a single file means "no duplicate search applies".
var ErrNotDirectory = errors.New("walker: root is not a directory")

// Walk invokes cb for every regular file reachable from root, subject to
// the skip list, the symlink policy, and MaxDepth. If root is itself a
// regular file, Walk returns ErrNotDirectory without calling cb.
func (w *Walker) Walk(root string, cb Callback) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}

	visited := make(map[string]struct{})
	return w.walk(root, 0, visited, cb)
}

func (w *Walker) walk(dir string, depth int, visited map[string]struct{}, cb Callback) error {
	if depth >= MaxDepth {
		w.reportError(dir, errors.New("maximum recursion depth exceeded"))
		return nil
	}

	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		canonical = dir
	}
	if _, seen := visited[canonical]; seen {
		w.reportError(dir, errors.New("cycle detected"))
		return nil
	}
	visited[canonical] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			w.reportError(dir, err)
			return nil
		}
		w.reportError(dir, err)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if isSkipped(name) {
			continue
		}
		path := filepath.Join(dir, name)

		fi, err := entry.Info()
		if err != nil {
			w.reportError(path, err)
			continue
		}

		if fi.Mode()&os.ModeSymlink != 0 {
			if !w.FollowSymlinks {
				continue
			}
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				w.reportError(path, err)
				continue
			}
			targetInfo, err := os.Stat(target)
			if err != nil {
				w.reportError(path, err)
				continue
			}
			if targetInfo.IsDir() {
				if err := w.walk(path, depth+1, visited, cb); err != nil {
					return err
				}
			} else if targetInfo.Mode().IsRegular() {
				if err := cb(path, depth); err != nil {
					return err
				}
			}
			continue
		}

		if fi.IsDir() {
			if err := w.walk(path, depth+1, visited, cb); err != nil {
				return err
			}
		} else if fi.Mode().IsRegular() {
			if err := cb(path, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) reportError(path string, err error) {
	if w.OnError != nil {
		w.OnError(path, err)
	}
}

// isSkipped reports whether name matches the hard-coded skip-directory set.
// Matched against any path component, per the accept filter's contract.
func isSkipped(name string) bool {
	_, skip := skippedDirs[name]
	return skip
}
