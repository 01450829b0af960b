package phash

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestHammingDistanceProperties(t *testing.T) {
	x := uint64(0x0123456789abcdef)
	y := uint64(0xfedcba9876543210)
	z := uint64(0xdeadbeefcafebabe)

	if d := HammingDistance(x, x); d != 0 {
		t.Fatalf("d(x,x) = %d, want 0", d)
	}
	if HammingDistance(x, y) != HammingDistance(y, x) {
		t.Fatal("Hamming distance is not symmetric")
	}
	if HammingDistance(x, z) > HammingDistance(x, y)+HammingDistance(y, z) {
		t.Fatal("triangle inequality violated")
	}
}

func checkerboard(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(0)
			if (x/8+y/8)%2 == 0 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestComputeImageTopBitAlwaysZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		size := 16 + rng.Intn(200)
		img := image.NewGray(image.Rect(0, 0, size, size))
		for p := range img.Pix {
			img.Pix[p] = uint8(rng.Intn(256))
		}
		h := ComputeImage(img)
		if h&(1<<63) != 0 {
			t.Fatalf("bit 63 set for random image %d: %064b", i, h)
		}
	}
}

func TestComputeImageDeterministic(t *testing.T) {
	img := checkerboard(32)
	h1 := ComputeImage(img)
	h2 := ComputeImage(img)
	if h1 != h2 {
		t.Fatalf("ComputeImage not deterministic: %d vs %d", h1, h2)
	}
}

func TestComputeImageDistinguishesDifferentImages(t *testing.T) {
	a := checkerboard(32)
	b := image.NewGray(image.Rect(0, 0, 32, 32))
	for p := range b.Pix {
		b.Pix[p] = 128
	}
	ha := ComputeImage(a)
	hb := ComputeImage(b)
	if HammingDistance(ha, hb) == 0 {
		t.Fatal("a checkerboard and a flat-gray image should not hash identically")
	}
}

func TestMedianOf63MatchesSortedMiddle(t *testing.T) {
	var vals [63]float64
	rng := rand.New(rand.NewSource(2))
	for i := range vals {
		vals[i] = rng.Float64() * 1000
	}
	got := medianOf63(vals)

	sorted := append([]float64(nil), vals[:]...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] < sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	want := sorted[31]
	if got != want {
		t.Fatalf("medianOf63() = %v, want %v", got, want)
	}
}

func TestVideoDistanceEmptyIsSentinel(t *testing.T) {
	if d := VideoDistance(nil, []uint64{1, 2}); d != sentinelDistance {
		t.Fatalf("VideoDistance(nil, _) = %d, want sentinel", d)
	}
	if d := VideoDistance(nil, nil); d != sentinelDistance {
		t.Fatalf("VideoDistance(nil, nil) = %d, want sentinel", d)
	}
}

func TestVideoDistanceIdenticalIsZero(t *testing.T) {
	a := []uint64{1, 2, 3, 4}
	if d := VideoDistance(a, a); d != 0 {
		t.Fatalf("VideoDistance(a, a) = %d, want 0", d)
	}
}

func TestVideoDistanceUsesShorterLength(t *testing.T) {
	a := []uint64{0, 0, 0}
	b := []uint64{0, 0, 0, 0xffffffffffffffff}
	if d := VideoDistance(a, b); d != 0 {
		t.Fatalf("VideoDistance should ignore the unmatched tail, got %d", d)
	}
}

type fakeFrames struct {
	frameCount int
	fps        float64
	failAt     int // index that fails to decode, -1 for never
}

func (f fakeFrames) FrameCount() int { return f.frameCount }
func (f fakeFrames) FPS() float64    { return f.fps }
func (f fakeFrames) FrameAt(index int) (image.Image, error) {
	if index == f.failAt {
		return nil, errFrame
	}
	return checkerboard(32), nil
}

var errFrame = &frameErr{}

type frameErr struct{}

func (*frameErr) Error() string { return "frame decode failed" }

func TestComputeVideoRejectsNonPositiveMetadata(t *testing.T) {
	if got := ComputeVideo(fakeFrames{frameCount: 0, fps: 30, failAt: -1}); got != nil {
		t.Fatalf("expected nil for zero frame count, got %v", got)
	}
	if got := ComputeVideo(fakeFrames{frameCount: 100, fps: 0, failAt: -1}); got != nil {
		t.Fatalf("expected nil for zero fps, got %v", got)
	}
}

func TestComputeVideoFirstFrameFailureIsTotal(t *testing.T) {
	got := ComputeVideo(fakeFrames{frameCount: 100, fps: 30, failAt: 0})
	if got != nil {
		t.Fatalf("expected nil when the first frame fails, got %v", got)
	}
}

func TestComputeVideoLaterFrameFailureReturnsPrefix(t *testing.T) {
	// With 100 frames the sampled indices are 0, 10, ..., 90; index 50 is the
	// sixth sample, so five hashes are collected before it fails.
	got := ComputeVideo(fakeFrames{frameCount: 100, fps: 30, failAt: 50})
	if len(got) != 5 {
		t.Fatalf("expected a 5-hash prefix, got %d hashes", len(got))
	}
}

func TestComputeVideoFullSequence(t *testing.T) {
	got := ComputeVideo(fakeFrames{frameCount: 100, fps: 30, failAt: -1})
	if len(got) != SampleFrames {
		t.Fatalf("expected %d hashes, got %d", SampleFrames, len(got))
	}
}
