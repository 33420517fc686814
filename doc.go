// Package wavelet provides streaming multirate wavelet analysis in pure Go.
//
// A [Service] owns a fixed pool of decomposition sessions. Each session runs
// a Mallat analysis filter bank: a cascade of decimate-by-two levels where
// every level splits its input into a lowpass approximation and a highpass
// detail band, and feeds the approximation to the next level. Memory for
// every session is allocated once, when the service is created; processing
// never allocates.
//
// # Features
//
//   - Lagrange halfband lowpass filters of order m = 1..16 (4m-1 taps),
//     synthesized from their closed form
//   - Daubechies-4 and Daubechies-8 scaling filters
//   - Quadrature-mirror highpass filters derived from the lowpass prototype
//   - Up to 8 decomposition levels per session
//   - Sample-by-sample streaming with per-level ready flags
//   - SIMD dot products via github.com/tphakala/simd
//
// # Quick Start
//
// For one-shot analysis of a whole signal:
//
//	d, err := wavelet.Decompose(samples, wavelet.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	packed := d.Flatten() // D1 | D2 | ... | DL | AL
//
// For streaming analysis:
//
//	svc := wavelet.NewService()
//	h, err := svc.Subscribe(wavelet.Config{
//	    Filter: wavelet.FilterDaubechies4,
//	    Levels: 3,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Unsubscribe(h)
//
//	for _, x := range samples {
//	    out, err := svc.Process(h, x)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for i := range out.Levels {
//	        if out.DetailReady[i] {
//	            consumeDetail(i, out.Detail[i])
//	        }
//	    }
//	    if out.Ready {
//	        consumeApproximation(out.Approximation)
//	    }
//	}
//
// # Output Cadence
//
// Level i observes the input rate divided by 2^i and emits at half of that.
// Counting input samples from 1, the detail of level i is ready on every
// sample number that is a multiple of 2^(i+1), and the final approximation
// on every multiple of 2^L. A level emits on the second sample of each pair
// it consumes.
//
// # Thread Safety
//
// [Service.Subscribe] and [Service.Unsubscribe] may be called from any
// goroutine. Calls on the same handle must be serialized by the caller;
// distinct handles may be processed concurrently, which is what
// [DecomposeChannels] does when parallel processing is requested.
//
// # Non-goals
//
// Only analysis is provided. There is no synthesis (inverse transform).
package wavelet
