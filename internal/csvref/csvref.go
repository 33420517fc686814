// Package csvref reads and writes single-column CSV sample files and
// compares an output signal against a reference with a tolerance.
package csvref

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Formatting and reporting limits
const (
	// writePrecision is the number of decimals written per sample.
	writePrecision = 6

	// maxReportedMismatches caps Report.Mismatches.
	maxReportedMismatches = 10

	percentScale = 100
)

var (
	// ErrLengthMismatch indicates signals of different lengths.
	ErrLengthMismatch = errors.New("csvref: length mismatch")

	// ErrMalformed indicates a row that is not a single number.
	ErrMalformed = errors.New("csvref: malformed sample")
)

// Mismatch is one sample outside tolerance.
type Mismatch struct {
	Index     int
	Output    float32
	Reference float32
	Error     float32
}

// Report summarizes a comparison.
type Report struct {
	Samples    int
	MaxError   float32
	Mismatched int

	// Mismatches holds at most the first 10 samples outside tolerance.
	Mismatches []Mismatch
}

// OK reports whether every sample was within tolerance.
func (r Report) OK() bool {
	return r.Mismatched == 0
}

// MismatchPercent returns the share of samples outside tolerance.
func (r Report) MismatchPercent() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Mismatched) * percentScale / float64(r.Samples)
}

// Read parses one sample per row from the first column. Blank rows are
// skipped.
func Read(r io.Reader) ([]float32, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var samples []float32
	for record := 1; ; record++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csvref: record %d: %w", record, err)
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 32)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %q", ErrMalformed, record, rec[0])
		}
		samples = append(samples, float32(v))
	}
}

// Write emits one sample per row with six decimals.
func Write(w io.Writer, samples []float32) error {
	cw := csv.NewWriter(w)
	row := make([]string, 1)
	for _, v := range samples {
		row[0] = strconv.FormatFloat(float64(v), 'f', writePrecision, 32)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFile reads a sample file.
func ReadFile(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// WriteFile writes a sample file, replacing any existing one.
func WriteFile(path string, samples []float32) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Write(f, samples)
}

// Compare checks out against ref sample by sample. A sample matches when
// |out - ref| <= eps.
func Compare(out, ref []float32, eps float32) (Report, error) {
	if len(out) != len(ref) {
		return Report{}, fmt.Errorf("%w: output has %d samples, reference %d", ErrLengthMismatch, len(out), len(ref))
	}

	rep := Report{Samples: len(out)}
	for i := range out {
		e := float32(math.Abs(float64(out[i] - ref[i])))
		rep.MaxError = max(rep.MaxError, e)
		if e <= eps {
			continue
		}
		rep.Mismatched++
		if len(rep.Mismatches) < maxReportedMismatches {
			rep.Mismatches = append(rep.Mismatches, Mismatch{
				Index:     i,
				Output:    out[i],
				Reference: ref[i],
				Error:     e,
			})
		}
	}
	return rep, nil
}

// CompareFiles reads both files and compares them.
func CompareFiles(outPath, refPath string, eps float32) (Report, error) {
	out, err := ReadFile(outPath)
	if err != nil {
		return Report{}, err
	}
	ref, err := ReadFile(refPath)
	if err != nil {
		return Report{}, err
	}
	return Compare(out, ref, eps)
}
