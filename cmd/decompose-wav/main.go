// Command decompose-wav runs a multilevel wavelet analysis over an audio
// file and writes the packed coefficients (D1 | D2 | ... | DL | AL) as a
// single-column CSV.
//
// Usage:
//
//	decompose-wav -filter lagrange -order 3 -levels 2 input.wav output.csv
//	decompose-wav -filter db4 -levels 2 -ref Db4_out.csv delta_1024.csv out.csv
//	decompose-wav -filter db8 -levels 4 -approx approx.wav input.wav out.csv
//
// Input may be a WAV file or a single-column CSV. Multichannel WAV input is
// analyzed one session per channel; channels other than the first are
// written next to the output with a _chN suffix.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	wavelet "github.com/tphakala/go-wavelet"
	"github.com/tphakala/go-wavelet/internal/csvref"
)

const (
	// Number of frames read from the input per chunk.
	bufferSize = 65536

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%

	// CLI defaults
	defaultCSVRate  = 1000
	defaultEpsilon  = 1e-4
	minRequiredArgs = 2
	percentScale    = 100

	// WAV encoder format tag for integer PCM.
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	filterName := flag.String("filter", "lagrange", "Filter: lagrange, db4, db8")
	order := flag.Int("order", wavelet.DefaultConfig().Order, "Lagrange order m (1-16)")
	levels := flag.Int("levels", wavelet.DefaultConfig().Levels, "Decomposition levels (1-8)")
	refPath := flag.String("ref", "", "Reference CSV to compare the first channel against")
	epsilon := flag.Float64("eps", defaultEpsilon, "Comparison tolerance")
	approxPath := flag.String("approx", "", "Write the final approximation band to this WAV file")
	csvRate := flag.Int("csv-rate", defaultCSVRate, "Sample rate assumed for CSV input (Hz)")
	parallel := flag.Bool("parallel", true, "Analyze channels concurrently")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.(wav|csv) output.csv\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -filter lagrange -order 3 -levels 2 in.wav out.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -filter db4 -ref Db4_out.csv delta_1024.csv out.csv\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	filterType, err := wavelet.ParseFilterType(*filterName)
	if err != nil {
		return err
	}
	cfg := wavelet.Config{Filter: filterType, Order: *order, Levels: *levels}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Filter: %s (order %d), %d levels", cfg.Filter, cfg.Order, cfg.Levels)
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	var result *analysisResult
	if strings.EqualFold(filepath.Ext(inputPath), ".csv") {
		result, err = analyzeCSV(inputPath, *csvRate, cfg)
	} else {
		result, err = analyzeWAV(inputPath, cfg, *verbose, *parallel)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for ch, d := range result.channels {
		path := channelPath(outputPath, ch)
		if err := csvref.WriteFile(path, d.Flatten()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if *verbose {
			log.Printf("Wrote %d coefficients to %s", d.Len(), path)
		}
	}

	if *approxPath != "" {
		rate := result.rate >> cfg.Levels
		if err := writeApproximationWAV(*approxPath, rate, result.bitDepth, result.channels[0].Approximation); err != nil {
			return err
		}
		if *verbose {
			log.Printf("Wrote approximation band (%d Hz) to %s", rate, *approxPath)
		}
	}

	fmt.Printf("Decomposed %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %s, %d levels, %d channels, %d Hz\n", describeFilter(cfg), cfg.Levels, len(result.channels), result.rate)
	fmt.Printf("  %d samples -> %d coefficients per channel\n", result.samples, result.channels[0].Len())
	fmt.Printf("  Duration: %.2fs\n", elapsed.Seconds())

	if *refPath == "" {
		return nil
	}
	return compareWithReference(result.channels[0].Flatten(), *refPath, float32(*epsilon))
}

// describeFilter formats the filter for the summary line.
func describeFilter(cfg wavelet.Config) string {
	if cfg.Filter == wavelet.FilterLagrange {
		return fmt.Sprintf("lagrange m=%d", cfg.Order)
	}
	return cfg.Filter.String()
}

// channelPath returns the output path for a channel: the path itself for
// channel 0, name_chN.ext otherwise.
func channelPath(path string, ch int) string {
	if ch == 0 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_ch%d%s", strings.TrimSuffix(path, ext), ch, ext)
}

// compareWithReference prints a comparison report and fails on mismatch.
func compareWithReference(packed []float32, refPath string, eps float32) error {
	ref, err := csvref.ReadFile(refPath)
	if err != nil {
		return fmt.Errorf("failed to read reference: %w", err)
	}
	rep, err := csvref.Compare(packed, ref, eps)
	if err != nil {
		return err
	}

	if rep.OK() {
		fmt.Printf("Reference %s: all %d samples match (eps=%g, max error %g)\n",
			filepath.Base(refPath), rep.Samples, eps, rep.MaxError)
		return nil
	}

	for _, m := range rep.Mismatches {
		fmt.Printf("  sample %d: output=%.6f reference=%.6f error=%.6f\n", m.Index, m.Output, m.Reference, m.Error)
	}
	return fmt.Errorf("%d of %d samples differ (%.2f%%), max error %g",
		rep.Mismatched, rep.Samples, rep.MismatchPercent(), rep.MaxError)
}
