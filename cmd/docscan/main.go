package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/docscan-engine/internal/detection"
	"github.com/ironsheep/docscan-engine/internal/geometry"
	"github.com/ironsheep/docscan-engine/internal/imaging"
	"github.com/ironsheep/docscan-engine/internal/scan"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// report is the per-input JSON record written to stdout.
type report struct {
	Input      string                  `json:"input"`
	Info       *imaging.StillInfo      `json:"info,omitempty"`
	Found      bool                    `json:"found"`
	Method     detection.Method        `json:"method,omitempty"`
	Confidence float64                 `json:"confidence"`
	TimingMs   float64                 `json:"timing_ms"`
	Corners    []geometry.Point        `json:"corners,omitempty"`
	Rectified  string                  `json:"rectified,omitempty"`
	Width      int                     `json:"width,omitempty"`
	Height     int                     `json:"height,omitempty"`
	Projective bool                    `json:"projective,omitempty"`
	Type       string                  `json:"type,omitempty"`
	Quality    *imaging.QualityMetrics `json:"quality,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("docscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	// Configure logging to stderr (stdout is for the JSON report)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("DOCSCAN_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("docscan v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	typeHint := ""
	var inputs []string
	for _, arg := range os.Args[1:] {
		switch {
		case strings.HasPrefix(arg, "--type="):
			typeHint = strings.TrimPrefix(arg, "--type=")
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "unknown option: %s\n\n", arg)
			usage()
			os.Exit(2)
		default:
			inputs = append(inputs, arg)
		}
	}
	if len(inputs) == 0 {
		usage()
		os.Exit(2)
	}

	loader := imaging.NewStillLoader()
	reports := make([]report, 0, len(inputs))
	failed := false

	for _, path := range inputs {
		rep := scanOne(loader, path, typeHint, debug)
		if rep.Error != "" {
			failed = true
		}
		reports = append(reports, rep)
		loader.Evict(path)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		log.Fatalf("report encoding error: %v", err)
	}
	if failed {
		os.Exit(1)
	}
}

// scanOne runs the still pipeline on one input and writes the rectified
// document next to it as <name>.rectified.png when a document was found.
func scanOne(loader *imaging.StillLoader, path, typeHint string, debug bool) report {
	rep := report{Input: path}

	info, err := imaging.Inspect(loader, path)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Info = info

	img, err := loader.Load(path)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}

	result, err := scan.Image(context.Background(), img, scan.Options{TypeHint: typeHint})
	if err != nil {
		rep.Error = err.Error()
		return rep
	}

	rep.Found = result.Detection.Found()
	rep.Method = result.Detection.Method
	rep.Confidence = result.Detection.Confidence
	rep.TimingMs = result.Detection.TimingMs
	rep.Corners = result.Detection.Corners
	rep.Type = result.Type
	rep.Quality = result.Quality

	if debug {
		log.Printf("%s: method=%s confidence=%.2f type=%s", path, rep.Method, rep.Confidence, rep.Type)
	}

	if result.Rectified == nil {
		return rep
	}

	out := rectifiedPath(path)
	if err := imaging.SaveStill(result.Rectified, out); err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Rectified = out
	rep.Width = result.Width
	rep.Height = result.Height
	rep.Projective = result.Projective
	return rep
}

func rectifiedPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".rectified.png"
}

func usage() {
	fmt.Println("docscan - document detection and rectification for still photos")
	fmt.Println()
	fmt.Println("Usage: docscan [options] <image> [<image> ...]")
	fmt.Println()
	fmt.Println("For each input image, detects the document boundary, writes the")
	fmt.Println("rectified document to <name>.rectified.png, and prints a JSON")
	fmt.Println("report to stdout.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --type=<hint>    Pin the document type (a4, card, receipt)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  DOCSCAN_LOG_LEVEL=debug    Enable debug logging (stderr)")
}
