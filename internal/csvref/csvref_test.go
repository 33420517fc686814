package csvref

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	in := "1.5\n-0.25\n\n# comment\n3,ignored\n  4e-3\n"
	got, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, -0.25, 3, 0.004}, got)

	_, err = Read(strings.NewReader("1\nabc\n"))
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "record 2")

	got, err = Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []float32{0.5, -1, 0.1234567}))
	assert.Equal(t, "0.500000\n-1.000000\n0.123457\n", buf.String())
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	samples := []float32{0.25, -0.125, 0.5, 0}
	require.NoError(t, WriteFile(path, samples))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, samples, got)

	rep, err := CompareFiles(path, path, 0)
	require.NoError(t, err)
	assert.True(t, rep.OK())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	ref := make([]float32, 20)
	out := make([]float32, 20)
	for i := range out {
		out[i] = 0.01 * float32(i%2)
	}

	rep, err := Compare(out, ref, 0.001)
	require.NoError(t, err)
	assert.False(t, rep.OK())
	assert.Equal(t, 20, rep.Samples)
	assert.Equal(t, 10, rep.Mismatched)
	assert.Len(t, rep.Mismatches, 10)
	assert.Equal(t, 1, rep.Mismatches[0].Index)
	assert.InDelta(t, 0.01, rep.MaxError, 1e-7)
	assert.InDelta(t, 50.0, rep.MismatchPercent(), 1e-9)

	rep, err = Compare(out, ref, 0.02)
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Empty(t, rep.Mismatches)
}

func TestCompare_MismatchCap(t *testing.T) {
	out := make([]float32, 30)
	for i := range out {
		out[i] = 1
	}
	rep, err := Compare(out, make([]float32, 30), 0.5)
	require.NoError(t, err)
	assert.Equal(t, 30, rep.Mismatched)
	assert.Len(t, rep.Mismatches, maxReportedMismatches)
}

func TestCompare_LengthMismatch(t *testing.T) {
	_, err := Compare([]float32{1}, []float32{1, 2}, 0)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Zero(t, Report{}.MismatchPercent())
}
