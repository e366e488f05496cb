package inmemory

import (
	"testing"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
)

func TestRecorder_AccumulatesAcrossRuns(t *testing.T) {
	r := NewRecorder()
	r.RecordPass("wages", report.Summary{Processed: 3, Updated: 2, NoAction: 1})
	r.RecordPass("wages", report.Summary{Processed: 2, Created: 1, Failed: 1})
	r.RecordPass("prices", report.Summary{Processed: 5, Created: 5})

	snap := r.Snapshot()
	wages := snap.Passes["wages"]
	if wages.Processed != 5 || wages.Created != 1 || wages.Updated != 2 || wages.Failed != 1 {
		t.Fatalf("unexpected wages snapshot: %+v", wages)
	}
	if wages.Runs != 2 {
		t.Fatalf("expected 2 wage runs, got %d", wages.Runs)
	}
	if snap.Passes["prices"].Created != 5 {
		t.Fatalf("unexpected prices snapshot: %+v", snap.Passes["prices"])
	}
}

func TestRecorder_SnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordPass("leases", report.Summary{Processed: 1, Updated: 1})
	snap := r.Snapshot()
	snap.Passes["leases"] = PassSnapshot{}

	if got := r.Snapshot().Passes["leases"]; got.Updated != 1 {
		t.Fatalf("mutating a snapshot must not affect the recorder, got %+v", got)
	}
}
