package report

import (
	"context"
	"sync"
)

// Runner serializes pipeline runs with last-write-wins semantics: starting a
// run cancels any run still in flight, and a run whose result arrives after
// a newer one started reports itself stale so callers discard it instead of
// overwriting fresher data.
type Runner struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Run executes fn under the runner. The returned bool is false when the run
// was superseded before finishing; its rows must then be discarded.
func (r *Runner) Run(ctx context.Context, fn func(context.Context) ([]Row, error)) ([]Row, bool, error) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.seq++
	token := r.seq
	r.mu.Unlock()

	rows, err := fn(ctx)

	r.mu.Lock()
	latest := token == r.seq
	if latest {
		r.cancel = nil
		cancel()
	}
	r.mu.Unlock()

	if !latest {
		return nil, false, nil
	}
	return rows, true, err
}
