package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"

	wavelet "github.com/tphakala/go-wavelet"
	"github.com/tphakala/go-wavelet/ann"
	"github.com/tphakala/go-wavelet/moments"
	"gonum.org/v1/gonum/mat"
)

func main() {
	// Command-line flags
	var (
		filterName = flag.String("filter", "lagrange", "Filter: lagrange, db4, db8")
		order      = flag.Int("order", wavelet.DefaultConfig().Order, "Lagrange order m (1-16)")
		levels     = flag.Int("levels", wavelet.DefaultConfig().Levels, "Decomposition levels (1-8)")
		sampleRate = flag.Float64("rate", defaultSampleRate, "Test signal sample rate in Hz")
		samples    = flag.Int("samples", defaultSamples, "Test signal length")
		demo       = flag.Bool("demo", false, "Run a demonstration")
	)
	flag.Parse()

	if *demo {
		runDemo()
		return
	}

	filterType, err := wavelet.ParseFilterType(*filterName)
	if err != nil {
		log.Fatal(err)
	}
	cfg := wavelet.Config{Filter: filterType, Order: *order, Levels: *levels}

	svc := wavelet.NewService()
	h, err := svc.Subscribe(cfg)
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}
	defer func() { _ = svc.Unsubscribe(h) }()

	info, err := svc.Info(h)
	if err != nil {
		log.Fatalf("Failed to query session: %v", err)
	}
	fmt.Printf("Session %d:\n", h)
	fmt.Printf("  Filter: %s (order %d)\n", info.Filter, info.Order)
	fmt.Printf("  Taps: %d\n", info.Taps)
	fmt.Printf("  Levels: %d\n", info.Levels)
	fmt.Printf("  SIMD: %s\n", info.SIMDType)

	fmt.Println("\nProcessing test signal...")
	signal := generateTestSignal(*samples, *sampleRate)
	out := make([]wavelet.Output, len(signal))
	if err := svc.ProcessBlock(h, signal, out); err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	counts := make([]int, cfg.Levels)
	energy := make([]float64, cfg.Levels)
	approx := 0
	for i := range out {
		for lvl := range out[i].Levels {
			if out[i].DetailReady[lvl] {
				counts[lvl]++
				v := float64(out[i].Detail[lvl])
				energy[lvl] += v * v
			}
		}
		if out[i].Ready {
			approx++
		}
	}

	fmt.Printf("Input samples: %d\n", len(signal))
	for lvl := range cfg.Levels {
		lo := *sampleRate / math.Exp2(float64(lvl+2))
		hi := *sampleRate / math.Exp2(float64(lvl+1))
		fmt.Printf("  D%d (%6.0f-%6.0f Hz): %5d coefficients, RMS %.4f\n",
			lvl+1, lo, hi, counts[lvl], rms(energy[lvl], counts[lvl]))
	}
	fmt.Printf("  A%d: %d coefficients\n", cfg.Levels, approx)

	fmt.Println("\nTransient detection on D1...")
	if err := detectTransients(out); err != nil {
		log.Fatalf("Detection failed: %v", err)
	}
}

func rms(energy float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Sqrt(energy / float64(n))
}

// generateTestSignal returns a sine tone with a periodic click.
func generateTestSignal(samples int, sampleRate float64) []float32 {
	signal := make([]float32, samples)
	omega := 2 * math.Pi * testSignalFrequency / sampleRate

	for i := range signal {
		signal[i] = float32(testSignalAmplitude * math.Sin(omega*float64(i)))
		if i%clickInterval == clickInterval/2 {
			signal[i] += clickAmplitude
		}
	}

	return signal
}

// newDetector builds a single-neuron step network that fires when the
// kurtosis input exceeds kurtosisThreshold.
func newDetector() (*ann.Network, error) {
	w := mat.NewDense(detectorOutputs, detectorInputs, []float64{1})
	b := mat.NewDense(detectorOutputs, 1, []float64{-kurtosisThreshold})
	return ann.New([]*mat.Dense{w}, []*mat.Dense{b}, ann.Step)
}

// detectTransients tracks windowed kurtosis of the first detail band and
// reports where the detector switches on.
func detectTransients(out []wavelet.Output) error {
	stats := moments.NewService()
	h, err := stats.Subscribe()
	if err != nil {
		return err
	}
	defer func() { _ = stats.Unsubscribe(h) }()

	detector, err := newDetector()
	if err != nil {
		return err
	}
	x := mat.NewDense(detectorInputs, 1, nil)
	y := mat.NewDense(detectorOutputs, 1, nil)

	active := false
	detections := 0
	for i := range out {
		if !out[i].DetailReady[0] {
			continue
		}
		m, err := stats.Compute(h, out[i].Detail[0])
		if err != nil && !errors.Is(err, moments.ErrZeroVariance) {
			return err
		}

		x.Set(0, 0, float64(m.Kurtosis))
		if err := detector.Forward(x, y); err != nil {
			return err
		}
		fired := y.At(0, 0) > 0
		if fired && !active {
			detections++
			fmt.Printf("  Transient near sample %d (kurtosis %.2f)\n", i, m.Kurtosis)
		}
		active = fired
	}
	fmt.Printf("Detections: %d\n", detections)
	return nil
}

func runDemo() {
	fmt.Println("=== Go Wavelet Analysis Demo ===")

	// Demo 1: Filter families
	fmt.Println("1. Filter Families")
	fmt.Println("------------------")

	configs := []wavelet.Config{
		{Filter: wavelet.FilterLagrange, Order: 1, Levels: 1},
		{Filter: wavelet.FilterLagrange, Order: 2, Levels: 1},
		{Filter: wavelet.FilterLagrange, Order: 3, Levels: 1},
		{Filter: wavelet.FilterDaubechies4, Levels: 1},
		{Filter: wavelet.FilterDaubechies8, Levels: 1},
	}

	svc := wavelet.NewService()
	h0 := make([]float32, wavelet.MaxFilterTaps)
	h1 := make([]float32, wavelet.MaxFilterTaps)
	for _, cfg := range configs {
		h, err := svc.Subscribe(cfg)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", cfg.Filter, err)
			continue
		}
		n, err := svc.Coefficients(h, h0, h1)
		_ = svc.Unsubscribe(h)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", cfg.Filter, err)
			continue
		}
		fmt.Printf("  %-8s m=%d: %2d taps, lowpass DC %.4f, highpass DC %+.4f\n",
			cfg.Filter, cfg.Order, n, sum(h0[:n]), sum(h1[:n]))
	}

	// Demo 2: Output cadence
	fmt.Println("\n2. Output Cadence (3 levels)")
	fmt.Println("----------------------------")

	cfg := wavelet.Config{Filter: wavelet.FilterDaubechies4, Levels: 3}
	h, err := svc.Subscribe(cfg)
	if err != nil {
		fmt.Printf("  Error - %v\n", err)
		return
	}
	for n := 1; n <= 2*(1<<cfg.Levels); n++ {
		o, err := svc.Process(h, 0)
		if err != nil {
			fmt.Printf("  Error - %v\n", err)
			break
		}
		line := ""
		for lvl := range cfg.Levels {
			if o.DetailReady[lvl] {
				line += fmt.Sprintf(" D%d", lvl+1)
			}
		}
		if o.Ready {
			line += fmt.Sprintf(" A%d", cfg.Levels)
		}
		fmt.Printf("  sample %2d:%s\n", n, line)
	}
	_ = svc.Unsubscribe(h)

	// Demo 3: Session pool
	fmt.Println("\n3. Session Pool")
	fmt.Println("---------------")

	handles := make([]wavelet.Handle, 0, svc.Capacity())
	for range svc.Capacity() + 1 {
		h, err := svc.Subscribe(wavelet.DefaultConfig())
		if err != nil {
			fmt.Printf("  Subscribe: %v\n", err)
			break
		}
		handles = append(handles, h)
		fmt.Printf("  Subscribed handle %d (%d/%d active)\n", h, svc.Active(), svc.Capacity())
	}
	for _, h := range handles {
		_ = svc.Unsubscribe(h)
	}
	fmt.Printf("  Released all (%d active)\n", svc.Active())

	fmt.Println("\n=== Demo Complete ===")
}

func sum(v []float32) float32 {
	var s float32
	for _, x := range v {
		s += x
	}
	return s
}
