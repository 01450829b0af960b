package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSilentBeforeSetup(t *testing.T) {
	Warn(WalkIssue{Path: "/tmp/x", Err: errors.New("boom")})
	Debug(DecodeFailure{Stage: "digest", Path: "/tmp/x", Err: errors.New("boom")})
	Info(RunSummary{Command: "dedup", Directory: "/tmp", Elapsed: time.Second})
	Error(WalkIssue{Path: "/tmp", Err: errors.New("boom")})
}

func TestSetupLoggerRoutesEachEventShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dupfind.log")
	if err := SetupLogger(path); err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}
	defer Close()

	Warn(WalkIssue{Path: "/tmp/skip", Err: errors.New("permission denied")})
	Debug(DecodeFailure{Stage: "image decode", Path: "/tmp/bad.png", Err: errors.New("corrupt header")})
	Info(RunSummary{Command: "img", Directory: "/tmp", Elapsed: 2 * time.Second})
	Error(WalkIssue{Path: "/tmp", Err: errors.New("permission denied")})

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	log := string(contents)

	for _, want := range []string{
		"WARNING: walk /tmp/skip: permission denied",
		"image decode: /tmp/bad.png: corrupt header",
		"INFO: img /tmp completed in 2s",
		"ERROR: walk /tmp: permission denied",
	} {
		if !strings.Contains(log, want) {
			t.Fatalf("log file missing %q, got:\n%s", want, log)
		}
	}
}

func TestSetupLoggerIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dupfind.log")
	if err := SetupLogger(path); err != nil {
		t.Fatal(err)
	}
	defer Close()

	if err := SetupLogger(path); err != nil {
		t.Fatalf("second SetupLogger() call should be a no-op, got error = %v", err)
	}
}
