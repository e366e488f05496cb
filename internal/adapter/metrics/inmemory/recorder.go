package inmemory

import (
	"sync"
	"time"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
)

type PassSnapshot struct {
	Processed int       `json:"processed"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Skipped   int       `json:"skipped"`
	NoAction  int       `json:"no_action"`
	Failed    int       `json:"failed"`
	Runs      int       `json:"runs"`
	LastRunAt time.Time `json:"last_run_at"`
}

type Snapshot struct {
	Passes map[string]PassSnapshot `json:"passes"`
}

// Recorder accumulates per-pass totals across runs. It backs the /ops/kpi
// endpoint.
type Recorder struct {
	mu     sync.Mutex
	passes map[string]PassSnapshot
	now    func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{
		passes: map[string]PassSnapshot{},
		now:    time.Now,
	}
}

func (r *Recorder) RecordPass(pass string, s report.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.passes[pass]
	p.Processed += s.Processed
	p.Created += s.Created
	p.Updated += s.Updated
	p.Skipped += s.Skipped
	p.NoAction += s.NoAction
	p.Failed += s.Failed
	p.Runs++
	p.LastRunAt = r.now()
	r.passes[pass] = p
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := Snapshot{Passes: make(map[string]PassSnapshot, len(r.passes))}
	for k, v := range r.passes {
		out.Passes[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
