package importer

import "shelfr/internal/resolver"

// Status is the terminal state of one candidate.
type Status string

const (
	StatusPlaced      Status = "PLACED"
	StatusReplaced    Status = "REPLACED"
	StatusKeptBoth    Status = "KEPT_BOTH"
	StatusSkipped     Status = "SKIPPED"
	StatusQuarantined Status = "QUARANTINED"
	StatusFailed      Status = "FAILED"
)

// Result is the outcome of one candidate folder.
type Result struct {
	Source     string
	ASIN       string
	Provenance resolver.Source
	Status     Status
	Decision   string
	Reason     string
	Target     string
	Err        error
}

// Summary aggregates a whole run. The run always completes: a failing
// candidate contributes a Failed result and processing continues.
type Summary struct {
	RunID   string
	DryRun  bool
	Results []Result
}

// Count returns how many results carry the given status.
func (s Summary) Count(status Status) int {
	n := 0
	for _, result := range s.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}
