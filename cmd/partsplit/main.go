// Command partsplit splits a file into fixed-size part files and verifies them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/vnykmshr/partsplit/internal/logging"
	"github.com/vnykmshr/partsplit/pkg/partsplit"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "split":
		return handleSplit(args[1:], stdout, stderr)
	case "list":
		return handleList(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "partsplit version %s\n", partsplit.Version)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "partsplit - split files into verified fixed-size parts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  partsplit <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  split -file <path> [options]   Split a file into parts next to it")
	fmt.Fprintln(w, "  list <dir> <base-name>         List and checksum existing parts")
	fmt.Fprintln(w, "  version                        Show version information")
	fmt.Fprintln(w, "  help                           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split options:")
	fmt.Fprintln(w, "  -file, -f <path>       Source file (or first positional argument)")
	fmt.Fprintln(w, "  -chunk-size <bytes>    Part size in bytes (default 2048)")
	fmt.Fprintln(w, "  -compare-dir <dir>     Compare every part against the same name in <dir>")
	fmt.Fprintln(w, "  -verify                Checksum each part after writing (default true)")
	fmt.Fprintln(w, "  -engine <name>         CRC-32 engine: bitwise or table (default bitwise)")
	fmt.Fprintln(w, "  -sync                  Fsync each part before closing it")
	fmt.Fprintln(w, "  -min-free <bytes>      Required free space before starting (default 0)")
	fmt.Fprintln(w, "  -log-level <level>     debug, info, warn or error (default warn)")
	fmt.Fprintln(w, "  -stats                 Print run statistics at the end")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  partsplit split -f disk.img -chunk-size 1048576")
	fmt.Fprintln(w, "  partsplit split -f disk.img -compare-dir /mnt/previous")
	fmt.Fprintln(w, "  partsplit list /data disk.img")
}

func handleSplit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		file       string
		chunkSize  int
		compareDir string
		verify     bool
		engineName string
		syncParts  bool
		minFree    int64
		logLevel   string
		showStats  bool
	)
	fs.StringVar(&file, "file", "", "source file")
	fs.StringVar(&file, "f", "", "source file (shorthand)")
	fs.IntVar(&chunkSize, "chunk-size", partsplit.DefaultChunkSize, "part size in bytes")
	fs.StringVar(&compareDir, "compare-dir", "", "reference directory of previously produced parts")
	fs.BoolVar(&verify, "verify", true, "checksum each part after writing")
	fs.StringVar(&engineName, "engine", "bitwise", "CRC-32 engine: bitwise or table")
	fs.BoolVar(&syncParts, "sync", false, "fsync each part before closing it")
	fs.Int64Var(&minFree, "min-free", 0, "required free disk space in bytes")
	fs.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.BoolVar(&showStats, "stats", false, "print run statistics")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if file == "" && fs.NArg() > 0 {
		file = fs.Arg(0)
	}
	if file == "" {
		fmt.Fprintln(stderr, "Error: source file required")
		fmt.Fprintln(stderr, "Usage: partsplit split -file <path> [options]")
		return 1
	}

	engine, err := partsplit.ParseEngine(engineName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	collector := partsplit.NewMetricsCollector(file)

	opts := partsplit.DefaultOptions()
	opts.ChunkSize = chunkSize
	opts.Verify = verify
	opts.ReferenceDir = compareDir
	opts.Engine = engine
	opts.SyncParts = syncParts
	opts.MinFreeDiskSpace = minFree
	opts.Logger = newCLILogger(logging.NewWriterLogger(stderr, level))
	opts.MetricsCollector = collector
	opts.OnPart = func(pr partsplit.PartResult) {
		if pr.Verified {
			fmt.Fprintf(stdout, "Processing chunk #: %q\t-- size: %d (bytes) -- crc32 = %s\n",
				pr.Path, pr.Size, partsplit.FormatChecksum(pr.CRC32))
			return
		}
		fmt.Fprintf(stdout, "Processing chunk #: %q\t-- size: %d (bytes)\n", pr.Path, pr.Size)
	}

	fmt.Fprintf(stdout, "filename: %q\t chunk_size: %d\n", file, chunkSize)

	result, err := partsplit.Split(file, opts)
	if err != nil {
		var mismatch *partsplit.MismatchError
		if errors.As(err, &mismatch) {
			fmt.Fprintf(stderr, "CRC Comparison failed at part %d:\n", mismatch.Index)
			fmt.Fprintf(stderr, "  %s crc = %s\n", mismatch.PartPath, partsplit.FormatChecksum(mismatch.PartCRC))
			fmt.Fprintf(stderr, "  %s crc = %s\n", mismatch.ReferencePath, partsplit.FormatChecksum(mismatch.ReferenceCRC))
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if showStats {
		printStats(stdout, result, partsplit.GetMetricsSnapshot(collector))
	}

	return 0
}

func printStats(w io.Writer, result *partsplit.Result, snap *partsplit.MetricsSnapshot) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSplit Statistics")
	fmt.Fprintln(tw, "================")
	fmt.Fprintf(tw, "Run ID:\t%s\n", result.RunID)
	fmt.Fprintf(tw, "Source:\t%s\n", result.Source)
	fmt.Fprintf(tw, "Source Size:\t%d bytes\n", result.SourceSize)
	fmt.Fprintf(tw, "Chunk Size:\t%d bytes\n", result.ChunkSize)
	fmt.Fprintf(tw, "Parts Written:\t%d\n", result.Parts)
	fmt.Fprintf(tw, "Bytes Written:\t%d\n", result.BytesWritten)
	fmt.Fprintf(tw, "Verified:\t%v\n", result.Verified)
	fmt.Fprintf(tw, "Compared:\t%v\n", result.Compared)
	fmt.Fprintf(tw, "Duration:\t%s\n", result.Duration.Round(time.Millisecond))
	if snap != nil {
		fmt.Fprintf(tw, "Chunk Time P50:\t%s\n", snap.ChunkDurationP50)
		fmt.Fprintf(tw, "Chunk Time P99:\t%s\n", snap.ChunkDurationP99)
	}
	_ = tw.Flush()
}

func handleList(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(stderr, "Error: directory and base name required")
		fmt.Fprintln(stderr, "Usage: partsplit list <dir> <base-name>")
		return 1
	}

	dir, base := args[0], args[1]

	parts, err := partsplit.ListParts(dir, base)
	if err != nil {
		fmt.Fprintf(stderr, "Error listing parts: %v\n", err)
		return 1
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tSIZE\tCRC32")

	var total int64
	for _, p := range parts {
		crc, err := partsplit.ChecksumFile(p.Path)
		if err != nil {
			_ = tw.Flush()
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		total += p.Size
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.Index, p.Name, p.Size, partsplit.FormatChecksum(crc))
	}
	_ = tw.Flush()

	fmt.Fprintf(stdout, "\n%d part(s), %d bytes\n", len(parts), total)

	if err := partsplit.ValidateParts(base, parts); err != nil {
		fmt.Fprintf(stdout, "Sequence: INVALID (%v)\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "Sequence: OK")

	return 0
}
