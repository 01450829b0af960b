// Package phash computes perceptual hashes for images and video frame
// sequences, and the Hamming-based distance metrics used to compare them.
// Decoding is someone else's job (see internal/media) — this package only
// ever sees an already-decoded image.Image.
package phash

import (
	"image"
	"image/color"
	"math/bits"
)

const (
	transformSize = 32
	lowFreqSize   = 8
	coefficients  = lowFreqSize*lowFreqSize - 1 // 63, DC coefficient dropped
)

// ComputeImage produces a 63-bit perceptual hash of img: resize to 32x32
// grayscale, 2-D DCT-II, take the top-left 8x8 block minus the DC term,
// threshold each of the 63 remaining coefficients against their median.
// Bit 63 (the top bit) is always 0.
func ComputeImage(img image.Image) uint64 {
	gray := toGrayMatrix(img, transformSize, transformSize)
	freq := dct2D(gray)
	return hashLowFrequencies(freq)
}

// HammingDistance returns the number of differing bits between two 64-bit
// hashes.
func HammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

func hashLowFrequencies(freq [][]float64) uint64 {
	var vals [coefficients]float64
	idx := 0
	for y := 0; y < lowFreqSize; y++ {
		for x := 0; x < lowFreqSize; x++ {
			if x == 0 && y == 0 {
				continue // drop the DC coefficient
			}
			vals[idx] = freq[y][x]
			idx++
		}
	}

	median := medianOf63(vals)

	var hash uint64
	for i, v := range vals {
		if v > median {
			hash |= 1 << uint(len(vals)-1-i) // MSB-first, bit 62 is vals[0]
		}
	}
	return hash
}

// toGrayMatrix converts img to grayscale and resizes it to w x h using an
// area-averaging (box) filter, which is area-preserving by construction.
func toGrayMatrix(img image.Image, w, h int) [][]float64 {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
	}
	if srcW <= 0 || srcH <= 0 {
		return out
	}

	for oy := 0; oy < h; oy++ {
		y0 := bounds.Min.Y + oy*srcH/h
		y1 := bounds.Min.Y + (oy+1)*srcH/h
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for ox := 0; ox < w; ox++ {
			x0 := bounds.Min.X + ox*srcW/w
			x1 := bounds.Min.X + (ox+1)*srcW/w
			if x1 <= x0 {
				x1 = x0 + 1
			}
			out[oy][ox] = averageGray(img, x0, y0, x1, y1, bounds)
		}
	}
	return out
}

func averageGray(img image.Image, x0, y0, x1, y1 int, bounds image.Rectangle) float64 {
	var sum float64
	var count int
	for y := y0; y < y1 && y < bounds.Max.Y; y++ {
		for x := x0; x < x1 && x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			sum += float64(g.Y)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
