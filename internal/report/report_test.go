package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestHumanSizeBoundaries(t *testing.T) {
	cases := []struct {
		size uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{2 * 1024, "2.00 KB"},
	}
	for _, c := range cases {
		if got := HumanSize(c.size); got != c.want {
			t.Errorf("HumanSize(%d) = %q, want %q", c.size, got, c.want)
		}
	}
}

func TestDuplicateGroupFormat(t *testing.T) {
	var buf bytes.Buffer
	DuplicateGroup(&buf, 2048, []string{"/r/a.bin", "/r/b.bin"})
	out := buf.String()
	if !strings.Contains(out, "Found 2 files of size 2.00 KB") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "/r/a.bin") || !strings.Contains(out, "/r/b.bin") {
		t.Fatalf("missing paths: %q", out)
	}
}

func TestSimilarGroupFormat(t *testing.T) {
	var buf bytes.Buffer
	SimilarGroup(&buf, 3, []string{"/r/pic.png", "/r/pic.jpg"})
	out := buf.String()
	if !strings.Contains(out, "Group 3") {
		t.Fatalf("missing group header: %q", out)
	}
	if !strings.Contains(out, " - /r/pic.png") {
		t.Fatalf("missing indented path: %q", out)
	}
}

func TestEmptyFileList(t *testing.T) {
	var buf bytes.Buffer
	EmptyFileList(&buf)
	if !strings.Contains(buf.String(), "File List is empty") {
		t.Fatalf("unexpected message: %q", buf.String())
	}
}

func TestNoDuplicateSearch(t *testing.T) {
	var buf bytes.Buffer
	NoDuplicateSearch(&buf)
	if !strings.Contains(buf.String(), "No duplicates to check") {
		t.Fatalf("unexpected message: %q", buf.String())
	}
}
