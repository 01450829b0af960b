// Package signalhandler configures graceful shutdown on SIGINT/SIGTERM and
// picks a worker count that plays well with CGo-backed decode calls.
package signalhandler

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

// SetupHandler installs a SIGINT/SIGTERM handler that exits cleanly. Gocv's
// underlying OpenCV handles are C resources; letting the default Go signal
// behavior interrupt mid-decode can leave them in a bad state, so we take
// the exit ourselves.
func SetupHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		os.Exit(0)
	}()
}

// OptimalProcs returns the worker count used to bound population
// concurrency: 3/4 of the CPU count, since oversubscribing CGo decode calls
// causes more contention than throughput.
func OptimalProcs() int {
	n := (runtime.NumCPU() * 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}
