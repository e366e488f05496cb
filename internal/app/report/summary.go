package report

import "fmt"

// Summary is the per-pass accounting every regulation pass returns. A pass
// completes even when individual entities fail; the failures are listed here
// instead of aborting the batch.
type Summary struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	NoAction  int      `json:"no_action"`
	Failed    int      `json:"failed"`
	Failures  []string `json:"failures,omitempty"`
}

// Count buckets a reconcile outcome ("created", "updated", "skipped",
// "no_action") into the summary.
func (s *Summary) Count(outcome string) {
	switch outcome {
	case "created":
		s.Created++
	case "updated":
		s.Updated++
	case "skipped":
		s.Skipped++
	case "no_action":
		s.NoAction++
	}
}

func (s *Summary) Fail(entity string, err error) {
	s.Failed++
	s.Failures = append(s.Failures, fmt.Sprintf("%s: %v", entity, err))
}

func (s Summary) String() string {
	return fmt.Sprintf("processed=%d created=%d updated=%d skipped=%d no_action=%d failed=%d",
		s.Processed, s.Created, s.Updated, s.Skipped, s.NoAction, s.Failed)
}
