package pipeline

import (
	"github.com/ab22375/dupfind/internal/bktree"
	"github.com/ab22375/dupfind/internal/elimination"
	"github.com/ab22375/dupfind/internal/logging"
	"github.com/ab22375/dupfind/internal/media"
	"github.com/ab22375/dupfind/internal/phash"
	"github.com/ab22375/dupfind/internal/record"
)

// DefaultImageRadius is the default BK-tree query radius for grouping
// near-duplicate images.
const DefaultImageRadius = 10

// RunSimilarImages groups images under root whose perceptual hashes are
// within DefaultImageRadius of each other.
func RunSimilarImages(root string, opts Options) ([]SimilarGroup, error) {
	return RunSimilarImagesRadius(root, opts, DefaultImageRadius)
}

// RunSimilarImagesRadius is RunSimilarImages with an explicit BK-tree
// query radius, exported for callers that need a non-default threshold.
// The CLI always uses DefaultImageRadius.
func RunSimilarImagesRadius(root string, opts Options, radius int) ([]SimilarGroup, error) {
	candidates, err := walkCollect(root, opts, acceptImageFile)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyFileList
	}

	// Decoding and hashing happen in the same pass: a file that doesn't
	// decode never gets a usable hash, so "accepted but undecodable" and
	// "hash computation failed" collapse to the same removal condition.
	populate(candidates, opts.workers(), func(r *record.FileRecord) {
		img, err := media.DecodeImageGray(r.Path())
		if err != nil {
			logging.Debug(logging.DecodeFailure{Stage: "image decode", Path: r.Path(), Err: err})
			r.SetImagePHash(0)
			return
		}
		r.SetImagePHash(phash.ComputeImage(img))
	})

	engine := elimination.New(&candidates)
	engine.FlagWhere(func(r *record.FileRecord) bool { return r.FailedImagePHash() })
	engine.Cleanup()
	if len(candidates) == 0 {
		return nil, nil
	}

	tree := bktree.New(phash.HammingDistance)
	order := make([]bktree.Item[uint64], 0, len(candidates))
	for _, r := range candidates {
		tree.Insert(r.ImagePHash(), r.Path())
		order = append(order, bktree.Item[uint64]{Value: r.ImagePHash(), Path: r.Path()})
	}

	groups, _ := scanGroups(order, tree, radius, 0)
	return groups, nil
}

func acceptImageFile(path string) *record.FileRecord {
	if !media.IsImageExtension(path) {
		return nil
	}
	return record.New(path)
}
