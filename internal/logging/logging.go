// Package logging provides the optional debug logger used across the
// pipelines. It is silent until SetupLogger is called (normally from the
// CLI's --debug flag). Unlike a bare Printf-style logger, each diagnostic
// call here takes a typed event describing the actual shape of the thing
// that went wrong — a walker issue, a decode/signature failure, or a run
// summary — so the log line format lives next to the data it formats
// instead of being re-derived at every call site.
package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

var (
	debugLogger *log.Logger
	logFile     *os.File
	mu          sync.Mutex
	isSetup     bool
)

// SetupLogger opens logFilePath and starts routing Debug/Info/Warn/Error
// calls to it. Safe to call more than once; later calls are no-ops.
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	debugLogger = log.New(logFile, "", log.LstdFlags)
	debugLogger.Printf("--- dupfind debug log started at %s ---", time.Now().Format(time.RFC3339))
	isSetup = true
	return nil
}

// Close closes the log file, if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		debugLogger.Printf("--- dupfind debug log closed at %s ---", time.Now().Format(time.RFC3339))
		logFile.Close()
		logFile = nil
		isSetup = false
	}
}

// WalkIssue is a non-fatal problem the directory walker hit while visiting
// path: permission denial, a symlink cycle, or an exceeded recursion depth.
// The walk itself continues; this is a record of what got skipped.
type WalkIssue struct {
	Path string
	Err  error
}

func (w WalkIssue) String() string {
	return fmt.Sprintf("walk %s: %v", w.Path, w.Err)
}

// DecodeFailure is a per-file signature-population or media-decode failure:
// which stage rejected the file ("head bytes", "digest", "image decode",
// "video open", ...) and why. The record itself is flagged for removal; this
// is only the diagnostic trail explaining the flag.
type DecodeFailure struct {
	Stage string
	Path  string
	Err   error
}

func (d DecodeFailure) String() string {
	return fmt.Sprintf("%s: %s: %v", d.Stage, d.Path, d.Err)
}

// RunSummary reports one pipeline invocation's command, root directory, and
// wall-clock duration, logged once the command completes.
type RunSummary struct {
	Command   string
	Directory string
	Elapsed   time.Duration
}

func (r RunSummary) String() string {
	return fmt.Sprintf("%s %s completed in %v", r.Command, r.Directory, r.Elapsed)
}

// Warn logs a walker issue, only when a log file is active.
func Warn(issue WalkIssue) {
	mu.Lock()
	defer mu.Unlock()
	if debugLogger != nil {
		debugLogger.Printf("WARNING: %s", issue)
	}
}

// Debug logs a decode or signature-population failure, only when a log
// file is active.
func Debug(failure DecodeFailure) {
	mu.Lock()
	defer mu.Unlock()
	if debugLogger != nil {
		debugLogger.Printf("%s", failure)
	}
}

// Info logs a completed run summary, only when a log file is active.
func Info(summary RunSummary) {
	mu.Lock()
	defer mu.Unlock()
	if debugLogger != nil {
		debugLogger.Printf("INFO: %s", summary)
	}
}

// Error logs a walk failure that ended the walk (for example a root that
// cannot be stat'ed), only when a log file is active. Errors met during
// traversal are non-fatal and go through Warn.
func Error(issue WalkIssue) {
	mu.Lock()
	defer mu.Unlock()
	if debugLogger != nil {
		debugLogger.Printf("ERROR: %s", issue)
	}
}
