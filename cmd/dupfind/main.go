// Command dupfind finds exact and near-duplicate files under a directory.
//
//	dupfind dedup <directory> [follow_symlinks] [--debug]
//	dupfind img   <directory> [follow_symlinks] [--debug]
//	dupfind vid   <directory> [follow_symlinks] [--debug]
//
// follow_symlinks, if given, must be literally "true" or "false" and
// defaults to "false". --debug (or -v) enables verbose file logging to
// dupfind.log; it may appear anywhere among the arguments.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/ab22375/dupfind/internal/logging"
	"github.com/ab22375/dupfind/internal/pipeline"
	"github.com/ab22375/dupfind/internal/report"
	"github.com/ab22375/dupfind/internal/signalhandler"
)

type cliArgs struct {
	command        string
	directory      string
	followSymlinks bool
	debug          bool
}

func main() {
	signalhandler.SetupHandler()
	runtime.GOMAXPROCS(signalhandler.OptimalProcs())

	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if args.debug {
		if err := logging.SetupLogger("dupfind.log"); err != nil {
			fmt.Printf("Warning: failed to set up logging: %v\n", err)
		} else {
			defer logging.Close()
		}
	}

	opts := pipeline.Options{FollowSymlinks: args.followSymlinks}
	start := time.Now()

	switch args.command {
	case "dedup":
		groups, err := pipeline.RunDedup(args.directory, opts)
		if handleRunError(err) {
			return
		}
		printDuplicateGroups(groups)
	case "img":
		groups, err := pipeline.RunSimilarImages(args.directory, opts)
		if handleRunError(err) {
			return
		}
		printSimilarGroups(groups)
	case "vid":
		groups, err := pipeline.RunSimilarVideos(args.directory, opts)
		if handleRunError(err) {
			return
		}
		printSimilarGroups(groups)
	default:
		fmt.Printf("Unknown command: %s\n", args.command)
		printUsage()
		os.Exit(1)
	}

	logging.Info(logging.RunSummary{Command: args.command, Directory: args.directory, Elapsed: time.Since(start)})
}

// parseArgs pulls --debug/-v out of argv (it may appear anywhere) and reads
// the remaining tokens as the fixed positional contract: command,
// directory, and an optional follow_symlinks literal.
func parseArgs(argv []string) (cliArgs, error) {
	var positional []string
	var args cliArgs

	for _, a := range argv {
		switch a {
		case "--debug", "-v":
			args.debug = true
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) < 2 {
		return cliArgs{}, fmt.Errorf("expected <dedup|img|vid> <directory>")
	}
	args.command = positional[0]
	args.directory = positional[1]

	if len(positional) >= 3 {
		switch positional[2] {
		case "true":
			args.followSymlinks = true
		case "false":
			args.followSymlinks = false
		default:
			return cliArgs{}, fmt.Errorf("follow_symlinks must be \"true\" or \"false\", got %q", positional[2])
		}
	}
	return args, nil
}

// handleRunError reports err (if any) and, for the two non-fatal sentinels
// the pipeline returns, prints the matching boundary message and reports
// that the caller should stop. For those sentinels it does not exit the
// process, so deferred cleanup (e.g. logging.Close) still runs; any other
// error goes to log.Fatalf, which exits without running deferred calls.
func handleRunError(err error) (stop bool) {
	switch err {
	case nil:
		return false
	case pipeline.ErrNoDuplicateSearch:
		report.NoDuplicateSearch(os.Stdout)
		return true
	case pipeline.ErrEmptyFileList:
		report.EmptyFileList(os.Stdout)
		return true
	default:
		log.Fatalf("Error: %v", err)
		return true
	}
}

func printDuplicateGroups(groups []pipeline.DuplicateGroup) {
	for _, g := range groups {
		report.DuplicateGroup(os.Stdout, g.Size, g.Paths)
	}
}

func printSimilarGroups(groups []pipeline.SimilarGroup) {
	for _, g := range groups {
		report.SimilarGroup(os.Stdout, g.Number, g.Paths)
	}
}

func printUsage() {
	fmt.Println("Usage: dupfind <dedup|img|vid> <directory> [follow_symlinks] [--debug]")
	fmt.Println("  dedup  find exact-duplicate files by size, head bytes, and BLAKE3 digest")
	fmt.Println("  img    find near-duplicate images by perceptual hash")
	fmt.Println("  vid    find near-duplicate videos by sampled-frame perceptual hash")
	fmt.Println("  follow_symlinks is \"true\" or \"false\" (default false)")
	fmt.Println("  --debug (or -v) enables verbose logging to dupfind.log")
}
