// Package record defines FileRecord, the per-file candidate unit that flows
// through the elimination pipelines. Signatures are populated lazily and are
// monotone: once set to a non-sentinel value they are never overwritten.
package record

import (
	"fmt"
	"io"
	"os"

	"github.com/ab22375/dupfind/internal/digest"
)

const headBytesSize = 4096

// sigState tracks whether a lazily-computed signature has been attempted yet,
// and if so whether it succeeded. Mirrors the "Unset | Ok | Failed" shape
// called out for signature fields.
type sigState uint8

const (
	stateUnset sigState = iota
	stateOK
	stateFailed
)

// FileRecord holds per-file metadata and lazily computed signatures for one
// candidate. The path is its identity and never changes after construction.
type FileRecord struct {
	path string

	size      uint64
	sizeState sigState

	headBytes  [headBytesSize]byte
	headState  sigState

	digestHex   string
	digestState sigState

	imagePHash   uint64
	imageState   sigState

	videoPHashes []uint64
	videoState   sigState

	durationSeconds int

	removeFlag bool
}

// New constructs a FileRecord for path with every signature unset.
func New(path string) *FileRecord {
	return &FileRecord{path: path}
}

// Path returns the record's identity. Immutable after construction.
func (f *FileRecord) Path() string { return f.path }

// Size returns the last populated size, or 0 if never populated or failed.
func (f *FileRecord) Size() uint64 { return f.size }

// SetSize installs a known size directly, skipping PopulateSize, for
// callers that already have the size in hand (the elimination tests).
func (f *FileRecord) SetSize(size uint64) {
	f.size = size
	f.sizeState = stateOK
}

// PopulateSize stats the file and records its size. On failure size stays 0
// and the caller should treat the record as unusable.
func (f *FileRecord) PopulateSize() error {
	info, err := os.Stat(f.path)
	if err != nil {
		f.sizeState = stateFailed
		return err
	}
	f.size = uint64(info.Size())
	f.sizeState = stateOK
	return nil
}

// HeadBytes returns the fixed-length, zero-padded head buffer. Only
// meaningful once PopulateHeadBytes has succeeded.
func (f *FileRecord) HeadBytes() [headBytesSize]byte { return f.headBytes }

// PopulateHeadBytes reads up to 4096 bytes from the start of the file,
// zero-padding short reads. Returns an error (and leaves the buffer zeroed)
// if the file cannot be opened.
func (f *FileRecord) PopulateHeadBytes() error {
	file, err := os.Open(f.path)
	if err != nil {
		f.headState = stateFailed
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	var buf [headBytesSize]byte
	n, err := io.ReadFull(file, buf[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.headState = stateFailed
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	_ = n // short reads leave the remainder zero, which buf already is
	f.headBytes = buf
	f.headState = stateOK
	return nil
}

// Digest returns the lowercase-hex BLAKE3-256 digest, or the empty sentinel
// if the digest has not been populated or population failed.
func (f *FileRecord) Digest() string { return f.digestHex }

// PopulateDigest streams the file through BLAKE3 in 64 KiB chunks. On open
// failure the digest remains the empty sentinel.
func (f *FileRecord) PopulateDigest() error {
	file, err := os.Open(f.path)
	if err != nil {
		f.digestState = stateFailed
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	sum, err := digest.SumReader(file)
	if err != nil {
		f.digestState = stateFailed
		return fmt.Errorf("digest %s: %w", f.path, err)
	}
	f.digestHex = sum
	f.digestState = stateOK
	return nil
}

// ImagePHash returns the 63-bit perceptual hash, or 0 if unset/failed.
func (f *FileRecord) ImagePHash() uint64 { return f.imagePHash }

// SetImagePHash installs a computed image pHash. A zero value marks failure.
func (f *FileRecord) SetImagePHash(hash uint64) {
	f.imagePHash = hash
	if hash == 0 {
		f.imageState = stateFailed
		return
	}
	f.imageState = stateOK
}

// VideoPHashes returns the ordered sampled-frame hashes, or nil if unset/failed.
func (f *FileRecord) VideoPHashes() []uint64 { return f.videoPHashes }

// SetVideoPHashes installs the sampled per-frame hashes. An empty slice marks
// failure per spec.
func (f *FileRecord) SetVideoPHashes(hashes []uint64) {
	f.videoPHashes = hashes
	if len(hashes) == 0 {
		f.videoState = stateFailed
		return
	}
	f.videoState = stateOK
}

// DurationSeconds returns the video duration, floor(frame_count/fps).
func (f *FileRecord) DurationSeconds() int { return f.durationSeconds }

// SetDurationSeconds installs the video's duration.
func (f *FileRecord) SetDurationSeconds(d int) { f.durationSeconds = d }

// RemoveFlag reports whether this record is scheduled for removal at the
// next cleanup pass.
func (f *FileRecord) RemoveFlag() bool { return f.removeFlag }

// Flag marks the record for removal. Cleared only by the engine's cleanup.
func (f *FileRecord) Flag() { f.removeFlag = true }

// FailedSize reports whether size population was attempted and failed.
func (f *FileRecord) FailedSize() bool { return f.sizeState == stateFailed }

// FailedHeadBytes reports whether head-byte population was attempted and failed.
func (f *FileRecord) FailedHeadBytes() bool { return f.headState == stateFailed }

// FailedDigest reports whether digest population was attempted and failed,
// or produced the empty sentinel.
func (f *FileRecord) FailedDigest() bool {
	return f.digestState == stateFailed || f.digestHex == ""
}

// FailedImagePHash reports whether image hashing was attempted and failed.
func (f *FileRecord) FailedImagePHash() bool { return f.imageState == stateFailed }

// FailedVideoPHashes reports whether video hashing was attempted and failed.
func (f *FileRecord) FailedVideoPHashes() bool { return f.videoState == stateFailed }
