package cleanup

import (
	"fmt"
	"time"

	"devopshq/artifactory-cleanup/pkg/artifactory"
)

// Report describes the outcome of one policy execution.
type Report struct {
	// RunID is the unique identifier of this execution.
	RunID string `json:"run_id"`

	// Policy is the executed policy's name.
	Policy string `json:"policy"`

	// StartedAt and FinishedAt bound the execution.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Examined is the number of artifacts the rule chain saw.
	Examined int64 `json:"examined"`

	// Removed holds the artifacts that were deleted, or would have been
	// deleted in dry-run mode.
	Removed []artifactory.Item `json:"removed"`

	// BytesReclaimed is the total size of removed artifacts.
	BytesReclaimed int64 `json:"bytes_reclaimed"`

	// Destroy reports whether deletions were actually performed.
	Destroy bool `json:"destroy"`

	// Err holds the failure when the policy could not complete.
	Err error `json:"-"`
}

// String renders a one-line summary suitable for text output.
func (r *Report) String() string {
	mode := "dry-run"
	if r.Destroy {
		mode = "destroy"
	}
	if r.Err != nil {
		return fmt.Sprintf("policy %s (%s): failed: %v", r.Policy, mode, r.Err)
	}
	return fmt.Sprintf("policy %s (%s): %d examined, %d removed, %d bytes reclaimed",
		r.Policy, mode, r.Examined, len(r.Removed), r.BytesReclaimed)
}

// Summary aggregates the reports of a full run across all policies.
type Summary struct {
	// Reports holds one report per executed policy, in policy order.
	Reports []*Report `json:"reports"`

	// StartedAt and FinishedAt bound the whole run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Removed returns the total number of removed artifacts across policies.
func (s *Summary) Removed() int64 {
	var total int64
	for _, report := range s.Reports {
		total += int64(len(report.Removed))
	}
	return total
}

// BytesReclaimed returns the total size of removed artifacts across
// policies.
func (s *Summary) BytesReclaimed() int64 {
	var total int64
	for _, report := range s.Reports {
		total += report.BytesReclaimed
	}
	return total
}

// Failed returns the reports of policies that did not complete.
func (s *Summary) Failed() []*Report {
	var failed []*Report
	for _, report := range s.Reports {
		if report.Err != nil {
			failed = append(failed, report)
		}
	}
	return failed
}
