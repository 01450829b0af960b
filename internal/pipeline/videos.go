package pipeline

import (
	"github.com/ab22375/dupfind/internal/bktree"
	"github.com/ab22375/dupfind/internal/elimination"
	"github.com/ab22375/dupfind/internal/logging"
	"github.com/ab22375/dupfind/internal/media"
	"github.com/ab22375/dupfind/internal/phash"
	"github.com/ab22375/dupfind/internal/record"
)

// DefaultVideoRadius is the default BK-tree query radius for grouping
// near-duplicate videos, expressed in mean per-frame Hamming distance.
const DefaultVideoRadius = 10

// RunSimilarVideos groups videos under root with matching duration and
// near-identical sampled-frame hash sequences.
func RunSimilarVideos(root string, opts Options) ([]SimilarGroup, error) {
	return RunSimilarVideosRadius(root, opts, DefaultVideoRadius)
}

// RunSimilarVideosRadius is RunSimilarVideos with an explicit radius.
func RunSimilarVideosRadius(root string, opts Options, radius int) ([]SimilarGroup, error) {
	candidates, err := walkCollect(root, opts, acceptVideoFile)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyFileList
	}

	populate(candidates, opts.workers(), func(r *record.FileRecord) {
		v, err := media.OpenVideo(r.Path())
		if err != nil {
			logging.Debug(logging.DecodeFailure{Stage: "video open", Path: r.Path(), Err: err})
			r.SetVideoPHashes(nil)
			return
		}
		defer v.Close()
		r.SetVideoPHashes(phash.ComputeVideo(v))
	})

	engine := elimination.New(&candidates)
	engine.FlagWhere(func(r *record.FileRecord) bool { return r.FailedVideoPHashes() })
	engine.Cleanup()
	if len(candidates) == 0 {
		return nil, nil
	}

	// Also leaves the list sorted by duration, which the bucket scan below
	// relies on.
	engine.RemoveUniqueBy(elimination.ByDuration)
	if len(candidates) == 0 {
		return nil, nil
	}

	return groupByDurationBuckets(candidates, radius), nil
}

// groupByDurationBuckets partitions the duration-sorted list into maximal
// equal-duration runs, builds a fresh BK-tree per run, and runs the shared
// grouping scan over it. Group numbering is threaded across buckets so it
// is global, not per-bucket.
func groupByDurationBuckets(candidates []*record.FileRecord, radius int) []SimilarGroup {
	var allGroups []SimilarGroup
	nextGroup := 0

	i := 0
	for i < len(candidates) {
		j := i + 1
		for j < len(candidates) && candidates[j].DurationSeconds() == candidates[i].DurationSeconds() {
			j++
		}
		bucket := candidates[i:j]

		tree := bktree.New(phash.VideoDistance)
		order := make([]bktree.Item[[]uint64], 0, len(bucket))
		for _, r := range bucket {
			tree.Insert(r.VideoPHashes(), r.Path())
			order = append(order, bktree.Item[[]uint64]{Value: r.VideoPHashes(), Path: r.Path()})
		}

		var groups []SimilarGroup
		groups, nextGroup = scanGroups(order, tree, radius, nextGroup)
		allGroups = append(allGroups, groups...)
		i = j
	}
	return allGroups
}

func acceptVideoFile(path string) *record.FileRecord {
	if !media.IsVideoExtension(path) {
		return nil
	}
	v, err := media.OpenVideo(path)
	if err != nil {
		return nil
	}
	defer v.Close()

	frameCount := v.FrameCount()
	fps := v.FPS()
	if frameCount <= 0 || fps <= 0 {
		return nil
	}

	r := record.New(path)
	r.SetDurationSeconds(int(float64(frameCount) / fps))
	return r
}
