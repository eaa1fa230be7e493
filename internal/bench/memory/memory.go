// Package memory measures the peak memory use of a function while it runs.
package memory

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sync/errgroup"
)

const DefaultInterval = 100 * time.Millisecond

const bytesPerMB = 1024 * 1024

// Sampler reports the current memory use in bytes.
type Sampler interface {
	Sample(ctx context.Context) (uint64, error)
}

type SamplerFunc func(ctx context.Context) (uint64, error)

func (f SamplerFunc) Sample(ctx context.Context) (uint64, error) { return f(ctx) }

// ProcessSampler reads the resident set size of the current process.
type ProcessSampler struct {
	proc *process.Process
}

func NewProcessSampler() (*ProcessSampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open own process: %w", err)
	}
	return &ProcessSampler{proc: p}, nil
}

func (s *ProcessSampler) Sample(ctx context.Context) (uint64, error) {
	info, err := s.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("read memory info: %w", err)
	}
	return info.RSS, nil
}

type Options struct {
	Interval time.Duration
	// Sampler defaults to a ProcessSampler.
	Sampler Sampler
}

// PeakUsage runs fn while sampling memory every interval and returns the
// largest sample taken. Sampling stops once fn returns; a final sample is
// taken at that point.
func PeakUsage(ctx context.Context, fn func(ctx context.Context) error, opts Options) (uint64, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	sampler := opts.Sampler
	if sampler == nil {
		ps, err := NewProcessSampler()
		if err != nil {
			return 0, err
		}
		sampler = ps
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	var peak uint64

	g.Go(func() error {
		defer close(done)
		return fn(gctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			v, err := sampler.Sample(gctx)
			if err != nil {
				return fmt.Errorf("sample memory: %w", err)
			}
			peak = max(peak, v)

			select {
			case <-done:
				if v, err := sampler.Sample(ctx); err == nil {
					peak = max(peak, v)
				}
				return nil
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return peak, nil
}

func ToMB(bytes uint64) float64 {
	return float64(bytes) / bytesPerMB
}

// FormatMB renders a byte count the way legacy result files store it.
func FormatMB(bytes uint64) string {
	return fmt.Sprintf("%.5f MB", ToMB(bytes))
}
