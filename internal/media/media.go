// Package media is the image/video decode collaborator. It wraps gocv (the
// teacher's OpenCV binding) for grayscale image decode and video
// frame-sampling, with a golang.org/x/image/tiff fallback for TIFF variants
// gocv's codec can't handle. None of this is core algorithm — it only turns
// a path on disk into the image.Image / phash.FrameSource the core consumes.
package media

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"gocv.io/x/gocv"
)

// ImageExtensions are the accepted lowercase extensions for the
// similar-image pipeline.
var ImageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".bmp": {},
	".tiff": {}, ".tif": {}, ".gif": {}, ".webp": {},
}

// VideoExtensions are the accepted lowercase extensions for the
// similar-video pipeline.
var VideoExtensions = map[string]struct{}{
	".mp4": {}, ".mkv": {}, ".avi": {}, ".mov": {},
	".flv": {}, ".wmv": {}, ".webm": {},
}

// IsImageExtension reports whether path's lowercased extension is accepted
// by the similar-image pipeline.
func IsImageExtension(path string) bool {
	_, ok := ImageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsVideoExtension reports whether path's lowercased extension is accepted
// by the similar-video pipeline.
func IsVideoExtension(path string) bool {
	_, ok := VideoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// DecodeImageGray decodes path as a single-channel grayscale image. TIFF
// files that gocv's codec rejects fall back to the standard library's TIFF
// decoder, matching the teacher's tiered-loader pattern.
func DecodeImageGray(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if !mat.Empty() {
		img, err := mat.ToImage()
		if err == nil {
			return img, nil
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".tif" || ext == ".tiff" {
		return decodeTiffGray(path)
	}
	return nil, fmt.Errorf("decode %s: unsupported or corrupt image", path)
}

func decodeTiffGray(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tiff.Decode(f)
}

// Video wraps an open gocv.VideoCapture and implements phash.FrameSource.
type Video struct {
	cap *gocv.VideoCapture
}

// OpenVideo opens path as a video. The caller must Close it.
func OpenVideo(path string) (*Video, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, err
	}
	return &Video{cap: cap}, nil
}

// FrameCount returns the reported total frame count.
func (v *Video) FrameCount() int {
	return int(v.cap.Get(gocv.VideoCaptureFrameCount))
}

// FPS returns the reported frames-per-second.
func (v *Video) FPS() float64 {
	return v.cap.Get(gocv.VideoCaptureFPS)
}

// FrameAt seeks to index and decodes that single frame as grayscale.
func (v *Video) FrameAt(index int) (image.Image, error) {
	v.cap.Set(gocv.VideoCapturePosFrames, float64(index))

	frame := gocv.NewMat()
	defer frame.Close()
	if ok := v.cap.Read(&frame); !ok || frame.Empty() {
		return nil, fmt.Errorf("read frame %d", index)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	return gray.ToImage()
}

// Close releases the underlying capture handle.
func (v *Video) Close() error {
	return v.cap.Close()
}
