package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/timemedia/adlibrary/internal/query"
)

const cycleTimeout = 10 * time.Second

// Snapshot is the loader's externally visible state. Data survives a failed
// cycle so the previous page can stay on screen next to the error.
type Snapshot struct {
	Data    *query.Result
	Loading bool
	Err     error
}

// Loader drives fetch/compute cycles against a Source and guarantees that
// the last issued cycle is the one whose result sticks, even when an older
// cycle's call resolves later. Staleness is decided by a generation counter
// checked at completion; in-flight requests are not cancelled.
type Loader struct {
	source  Source
	timeout time.Duration
	log     *zap.Logger

	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

// NewLoader creates a loader for the given source.
func NewLoader(source Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		source:  source,
		timeout: cycleTimeout,
		log:     log,
	}
}

// Apply starts a new cycle for the given state. The returned channel closes
// when the cycle settles: either its result was applied or it was discarded
// as stale.
func (l *Loader) Apply(ctx context.Context, st query.State) <-chan struct{} {
	l.mu.Lock()
	l.gen++
	cycle := l.gen
	l.snap.Loading = true
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		cctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()

		res, err := l.source.Query(cctx, st)

		l.mu.Lock()
		defer l.mu.Unlock()
		if cycle != l.gen {
			// a newer cycle superseded this one; drop the result
			l.log.Debug("discarding stale query cycle",
				zap.Uint64("cycle", cycle),
				zap.Uint64("current", l.gen))
			return
		}
		l.snap.Loading = false
		if err != nil {
			l.snap.Err = err
			l.log.Warn("query cycle failed",
				zap.Uint64("cycle", cycle),
				zap.Error(err))
			return
		}
		l.snap.Data = res
		l.snap.Err = nil
	}()
	return done
}

// State returns the current snapshot.
func (l *Loader) State() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}
