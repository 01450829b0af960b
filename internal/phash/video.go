package phash

import "image"

// SampleFrames is the fixed number of evenly spaced frames sampled from a
// video for its hash sequence.
const SampleFrames = 10

// sentinelDistance is returned by VideoDistance when either sequence is
// empty — strictly greater than any threshold a caller would configure.
const sentinelDistance = 1 << 20

// FrameSource abstracts a decoded, seekable video: frame count, frame rate,
// and per-index frame access. internal/media provides the concrete
// implementation backed by the video decoder.
type FrameSource interface {
	FrameCount() int
	FPS() float64
	FrameAt(index int) (image.Image, error)
}

// ComputeVideo samples SampleFrames evenly spaced frames from src and
// returns their perceptual hashes in order. If the video reports a
// non-positive frame count or fps, or the first frame can't be decoded, it
// returns nil (the caller treats this as a failed signature). If a later
// frame fails, the hashes collected so far are returned, possibly shorter
// than SampleFrames.
func ComputeVideo(src FrameSource) []uint64 {
	frameCount := src.FrameCount()
	fps := src.FPS()
	if frameCount <= 0 || fps <= 0 {
		return nil
	}

	hashes := make([]uint64, 0, SampleFrames)
	for k := 0; k < SampleFrames; k++ {
		index := k * frameCount / SampleFrames
		img, err := src.FrameAt(index)
		if err != nil {
			if k == 0 {
				return nil
			}
			break
		}
		hashes = append(hashes, ComputeImage(img))
	}
	return hashes
}

// VideoDistance returns the mean per-frame Hamming distance over
// min(len(a), len(b)) frames, truncated to an integer so it composes with
// the same integer-keyed BK-tree used for images. If either sequence is
// empty, returns a sentinel distance larger than any realistic threshold.
func VideoDistance(a, b []uint64) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return sentinelDistance
	}
	var sum int
	for i := 0; i < n; i++ {
		sum += HammingDistance(a[i], b[i])
	}
	return sum / n
}
