package inmem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/ts-bench/internal/archive"
	"github.com/google/uuid"
)

type Archiver struct {
	mu   sync.RWMutex
	docs map[uuid.UUID][]archive.Document
}

func NewArchiver() *Archiver {
	return &Archiver{docs: make(map[uuid.UUID][]archive.Document)}
}

func (a *Archiver) Save(ctx context.Context, run archive.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docs := run.Documents()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.docs[run.ID] = append(a.docs[run.ID], docs...)
	slog.Info("Archived run in memory", "run", run.Name, "id", run.ID, "documents", len(docs))
	return nil
}

// Documents returns the stored documents of a run.
func (a *Archiver) Documents(runID uuid.UUID) []archive.Document {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]archive.Document(nil), a.docs[runID]...)
}

func (a *Archiver) Runs() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.docs)
}

func (a *Archiver) Close() {}
