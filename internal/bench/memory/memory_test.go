package memory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingSampler returns 10, 20, 30, ... and signals after n samples.
type countingSampler struct {
	calls   atomic.Int64
	n       int64
	reached chan struct{}
}

func newCountingSampler(n int64) *countingSampler {
	return &countingSampler{n: n, reached: make(chan struct{})}
}

func (s *countingSampler) Sample(context.Context) (uint64, error) {
	c := s.calls.Add(1)
	if c == s.n {
		close(s.reached)
	}
	return uint64(c * 10), nil
}

func TestPeakUsage(t *testing.T) {
	s := newCountingSampler(3)

	peak, err := PeakUsage(context.Background(), func(ctx context.Context) error {
		<-s.reached
		return nil
	}, Options{Interval: time.Millisecond, Sampler: s})
	require.NoError(t, err)

	calls := s.calls.Load()
	assert.GreaterOrEqual(t, calls, int64(4), "final sample after fn returns")
	assert.Equal(t, uint64(calls*10), peak)
}

func TestPeakUsage_FunctionError(t *testing.T) {
	boom := errors.New("boom")
	s := SamplerFunc(func(context.Context) (uint64, error) { return 1, nil })

	_, err := PeakUsage(context.Background(), func(ctx context.Context) error {
		return boom
	}, Options{Interval: time.Millisecond, Sampler: s})
	assert.ErrorIs(t, err, boom)
}

func TestPeakUsage_SamplerErrorCancelsFunction(t *testing.T) {
	s := SamplerFunc(func(context.Context) (uint64, error) { return 0, errors.New("no procfs") })

	_, err := PeakUsage(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}, Options{Interval: time.Millisecond, Sampler: s})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no procfs")
}

func TestProcessSampler(t *testing.T) {
	s, err := NewProcessSampler()
	require.NoError(t, err)

	rss, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Greater(t, rss, uint64(0))
}

func TestFormatMB(t *testing.T) {
	assert.Equal(t, "1.50000 MB", FormatMB(3*512*1024))
	assert.InDelta(t, 0.5, ToMB(512*1024), 1e-12)
}
