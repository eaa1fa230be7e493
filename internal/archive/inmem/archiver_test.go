package inmem

import (
	"context"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/ts-bench/internal/archive"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiver_Save(t *testing.T) {
	rs, err := result.Parse([]byte(`{"a": {"dtw": {"accuracy": 1}}, "b": {"dtw": {"accuracy": 0.5}}}`))
	require.NoError(t, err)

	a := NewArchiver()
	defer a.Close()

	var wg sync.WaitGroup
	runs := make([]archive.Run, 8)
	for i := range runs {
		runs[i] = archive.NewRun("UCR", rs)
		wg.Add(1)
		go func(run archive.Run) {
			defer wg.Done()
			assert.NoError(t, a.Save(context.Background(), run))
		}(runs[i])
	}
	wg.Wait()

	assert.Equal(t, len(runs), a.Runs())
	docs := a.Documents(runs[0].ID)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[1].Dataset)
}

func TestArchiver_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewArchiver()
	err := a.Save(ctx, archive.Run{Name: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, a.Runs())
}
