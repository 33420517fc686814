package wavelet

import (
	"fmt"
	"sync"
)

// Decomposition is the complete analysis of a finite signal.
type Decomposition struct {
	// Config is the configuration the signal was analyzed with.
	Config Config

	// Details holds one band per level; Details[i] is the detail output of
	// level i, at the input rate divided by 2^(i+1).
	Details [][]float32

	// Approximation is the final lowpass band at the input rate divided
	// by 2^Levels.
	Approximation []float32
}

// Flatten packs the decomposition as D1 | D2 | ... | DL | AL, finest
// detail band first and the approximation last.
func (d *Decomposition) Flatten() []float32 {
	total := len(d.Approximation)
	for _, band := range d.Details {
		total += len(band)
	}

	packed := make([]float32, 0, total)
	for _, band := range d.Details {
		packed = append(packed, band...)
	}
	return append(packed, d.Approximation...)
}

// Len returns the number of coefficients across all bands.
func (d *Decomposition) Len() int {
	n := len(d.Approximation)
	for _, band := range d.Details {
		n += len(band)
	}
	return n
}

// Decompose is a convenience function for one-shot analysis. It subscribes
// a session, streams the whole input and unsubscribes.
func Decompose(input []float32, cfg Config) (*Decomposition, error) {
	svc := NewService()
	h, err := svc.Subscribe(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = svc.Unsubscribe(h) }()

	return decompose(svc, h, input, cfg)
}

func decompose(svc *Service, h Handle, input []float32, cfg Config) (*Decomposition, error) {
	d := &Decomposition{
		Config:        cfg,
		Details:       make([][]float32, cfg.Levels),
		Approximation: make([]float32, 0, len(input)>>cfg.Levels),
	}
	for i := range d.Details {
		d.Details[i] = make([]float32, 0, len(input)>>(i+1))
	}

	for _, x := range input {
		out, err := svc.Process(h, x)
		if err != nil {
			return nil, err
		}
		for i := range out.Levels {
			if out.DetailReady[i] {
				d.Details[i] = append(d.Details[i], out.Detail[i])
			}
		}
		if out.Ready {
			d.Approximation = append(d.Approximation, out.Approximation)
		}
	}
	return d, nil
}

// DecomposeChannels analyzes several independent channels with the same
// configuration. When parallel is true, channels are processed
// concurrently, up to MaxServices at a time.
func DecomposeChannels(channels [][]float32, cfg Config, parallel bool) ([]*Decomposition, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Decomposition, len(channels))

	// Sequential processing (default or when parallel disabled)
	if !parallel || len(channels) <= 1 {
		for ch, input := range channels {
			d, err := Decompose(input, cfg)
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			results[ch] = d
		}
		return results, nil
	}

	svc := NewService()
	for start := 0; start < len(channels); start += svc.Capacity() {
		end := min(start+svc.Capacity(), len(channels))
		if err := decomposeBatch(svc, channels[start:end], cfg, results[start:end]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// decomposeBatch runs one session per channel concurrently. len(channels)
// must not exceed the service capacity.
func decomposeBatch(svc *Service, channels [][]float32, cfg Config, results []*Decomposition) error {
	handles := make([]Handle, len(channels))
	defer func() {
		for _, h := range handles {
			if h != InvalidHandle {
				_ = svc.Unsubscribe(h)
			}
		}
	}()
	for i := range handles {
		handles[i] = InvalidHandle
	}
	for i := range channels {
		h, err := svc.Subscribe(cfg)
		if err != nil {
			return err
		}
		handles[i] = h
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(channels))

	for i := range channels {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()

			d, err := decompose(svc, handles[ch], channels[ch], cfg)
			if err != nil {
				errChan <- fmt.Errorf("channel %d: %w", ch, err)
				return
			}
			results[ch] = d
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Deinterleave splits frame-interleaved samples into planar channels.
// Trailing samples that do not fill a whole frame are dropped.
func Deinterleave(interleaved []float32, channels int) [][]float32 {
	if channels < 1 {
		return nil
	}
	frames := len(interleaved) / channels
	planar := make([][]float32, channels)
	for ch := range planar {
		planar[ch] = make([]float32, frames)
		for i := range frames {
			planar[ch][i] = interleaved[i*channels+ch]
		}
	}
	return planar
}
