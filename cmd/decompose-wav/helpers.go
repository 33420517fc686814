package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	wavelet "github.com/tphakala/go-wavelet"
	"github.com/tphakala/go-wavelet/internal/csvref"
	"github.com/tphakala/go-wavelet/internal/simdops"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	inputRate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)
	if !supportedBitDepth(bitDepth) {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d in %s (16, 24 or 32-bit PCM)", bitDepth, path)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", inputRate, channels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(inputRate))

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         inputRate,
		channels:     channels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// analysisResult is the decomposition of every input channel.
type analysisResult struct {
	channels []*wavelet.Decomposition
	rate     int
	bitDepth int
	samples  int
}

// channelAnalyzer streams channels through one wavelet session each.
type channelAnalyzer struct {
	svc     *wavelet.Service
	handles []wavelet.Handle
	outputs [][]wavelet.Output
	results []*wavelet.Decomposition
}

// newChannelAnalyzer subscribes one session per channel. Chunks passed to
// process must not exceed chunkSize frames.
func newChannelAnalyzer(channels, chunkSize int, cfg wavelet.Config) (*channelAnalyzer, error) {
	svc := wavelet.NewService()
	if channels < 1 || channels > svc.Capacity() {
		return nil, fmt.Errorf("unsupported channel count %d (1-%d)", channels, svc.Capacity())
	}

	a := &channelAnalyzer{
		svc:     svc,
		handles: make([]wavelet.Handle, 0, channels),
		outputs: make([][]wavelet.Output, channels),
		results: make([]*wavelet.Decomposition, channels),
	}
	for ch := range channels {
		h, err := svc.Subscribe(cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to subscribe channel %d: %w", ch, err)
		}
		a.handles = append(a.handles, h)
		a.outputs[ch] = make([]wavelet.Output, chunkSize)
		a.results[ch] = &wavelet.Decomposition{
			Config:  cfg,
			Details: make([][]float32, cfg.Levels),
		}
	}
	return a, nil
}

// Close releases every session.
func (a *channelAnalyzer) Close() {
	for _, h := range a.handles {
		_ = a.svc.Unsubscribe(h)
	}
	a.handles = nil
}

// process analyzes one chunk of planar channel data. Handles both parallel
// and sequential modes.
func (a *channelAnalyzer) process(channelBufs [][]float32, numSamples int, parallel bool) error {
	channels := len(a.handles)
	if parallel && channels > 1 {
		return a.processParallel(channelBufs, numSamples, channels)
	}
	return a.processSequential(channelBufs, numSamples, channels)
}

// processParallel processes channels concurrently.
func (a *channelAnalyzer) processParallel(channelBufs [][]float32, numSamples, channels int) error {
	var wg sync.WaitGroup
	var processErr error
	var errMu sync.Mutex

	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			if err := a.processChannel(channel, channelBufs[channel][:numSamples]); err != nil {
				errMu.Lock()
				if processErr == nil {
					processErr = err
				}
				errMu.Unlock()
			}
		}(ch)
	}
	wg.Wait()

	return processErr
}

// processSequential processes channels one by one.
func (a *channelAnalyzer) processSequential(channelBufs [][]float32, numSamples, channels int) error {
	for ch := range channels {
		if err := a.processChannel(ch, channelBufs[ch][:numSamples]); err != nil {
			return err
		}
	}
	return nil
}

func (a *channelAnalyzer) processChannel(ch int, in []float32) error {
	out := a.outputs[ch][:len(in)]
	if err := a.svc.ProcessBlock(a.handles[ch], in, out); err != nil {
		return fmt.Errorf("analysis failed on channel %d: %w", ch, err)
	}
	collect(a.results[ch], out)
	return nil
}

// collect appends every ready band value of out to d.
func collect(d *wavelet.Decomposition, out []wavelet.Output) {
	for i := range out {
		o := &out[i]
		for lvl := range o.Levels {
			if o.DetailReady[lvl] {
				d.Details[lvl] = append(d.Details[lvl], o.Detail[lvl])
			}
		}
		if o.Ready {
			d.Approximation = append(d.Approximation, o.Approximation)
		}
	}
}

// analyzeWAV streams a WAV file through one session per channel.
func analyzeWAV(path string, cfg wavelet.Config, verbose, parallel bool) (*analysisResult, error) {
	input, err := openWAVInput(path, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	analyzer, err := newChannelAnalyzer(input.channels, bufferSize, cfg)
	if err != nil {
		return nil, err
	}
	defer analyzer.Close()

	intBuffer := &audio.IntBuffer{
		Data:   make([]int, bufferSize*input.channels),
		Format: input.format,
	}
	channelBufs := make([][]float32, input.channels)
	for ch := range channelBufs {
		channelBufs[ch] = make([]float32, bufferSize)
	}
	invMaxVal := 1.0 / getMaxValue(input.bitDepth)
	progress := newProgressTracker(input.totalSamples, verbose)

	var totalFrames int64
	for {
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading input: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / input.channels
		deinterleaveInto(intBuffer.Data[:frames*input.channels], channelBufs, input.channels, invMaxVal)

		if err := analyzer.process(channelBufs, frames, parallel); err != nil {
			return nil, err
		}

		totalFrames += int64(frames)
		progress.reportIfNeeded(totalFrames)
	}

	if totalFrames == 0 {
		return nil, fmt.Errorf("no samples in %s", path)
	}

	return &analysisResult{
		channels: analyzer.results,
		rate:     input.rate,
		bitDepth: input.bitDepth,
		samples:  int(totalFrames),
	}, nil
}

// analyzeCSV decomposes a single-column CSV file as one channel.
func analyzeCSV(path string, rate int, cfg wavelet.Config) (*analysisResult, error) {
	samples, err := csvref.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples in %s", path)
	}

	d, err := wavelet.Decompose(samples, cfg)
	if err != nil {
		return nil, err
	}
	return &analysisResult{
		channels: []*wavelet.Decomposition{d},
		rate:     rate,
		bitDepth: bitsPerSample16,
		samples:  len(samples),
	}, nil
}

// deinterleaveInto splits interleaved integer PCM into normalized planar
// float32 buffers.
func deinterleaveInto(data []int, channelBufs [][]float32, channels int, invMaxVal float64) {
	ops := simdops.Float32Ops()
	frames := len(data) / channels
	for ch := range channels {
		buf := channelBufs[ch][:frames]
		for i := range buf {
			buf[i] = float32(data[i*channels+ch])
		}
		ops.Scale(buf, buf, float32(invMaxVal))
	}
}

// supportedBitDepth reports whether samples of this depth are signed PCM
// that getMaxValue can normalize. 8-bit WAV is unsigned.
func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return true
	default:
		return false
	}
}

// getMaxValue returns the full-scale integer value for a bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// quantize converts normalized samples to clamped integer PCM.
func quantize(samples []float32, bitDepth int) []int {
	maxVal := getMaxValue(bitDepth)
	out := make([]int, len(samples))
	for i, s := range samples {
		v := math.Round(float64(s) * maxVal)
		out[i] = int(max(-maxVal-1, min(maxVal, v)))
	}
	return out
}

// writeApproximationWAV writes a mono band at its decimated rate.
func writeApproximationWAV(path string, rate, bitDepth int, samples []float32) error {
	if rate <= 0 {
		return fmt.Errorf("approximation rate %d Hz is not representable", rate)
	}
	if bitDepth != bitsPerSample24 && bitDepth != bitsPerSample32 {
		bitDepth = bitsPerSample16
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, rate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Data:           quantize(samples, bitDepth),
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write approximation: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return f.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
