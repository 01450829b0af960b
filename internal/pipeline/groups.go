package pipeline

import "github.com/ab22375/dupfind/internal/bktree"

// scanGroups performs the shared near-duplicate grouping scan used by both
// the image and video pipelines: walk items in order, and for every path
// not yet visited, query the tree at radius; a result of >= 2 members
// becomes a numbered group and all its paths are marked visited, otherwise
// just the current path is. group numbering continues from startGroup so
// the video pipeline can thread a single counter across duration buckets.
func scanGroups[V any](order []bktree.Item[V], tree *bktree.Tree[V], radius int, startGroup int) ([]SimilarGroup, int) {
	visited := make(map[string]struct{})
	var groups []SimilarGroup
	group := startGroup

	for _, item := range order {
		if _, seen := visited[item.Path]; seen {
			continue
		}
		similar := tree.Query(item.Value, radius, visited)
		if len(similar) >= 2 {
			group++
			paths := make([]string, 0, len(similar))
			for _, m := range similar {
				paths = append(paths, m.Path)
				visited[m.Path] = struct{}{}
			}
			groups = append(groups, SimilarGroup{Number: group, Paths: paths})
		} else {
			visited[item.Path] = struct{}{}
		}
	}
	return groups, group
}
