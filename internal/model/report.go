package model

// MutantStatus records what happened when a candidate was materialized.
type MutantStatus int

const (
	// Written means the mutant unit was written to disk.
	Written MutantStatus = iota
	// Skipped means the run was cancelled before the candidate was materialized.
	Skipped
	// Failed means the mutant could not be produced.
	Failed
)

// String returns the status name used in manifests.
func (s MutantStatus) String() string {
	switch s {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mutant is a unit rewritten by exactly one candidate mutation.
type Mutant struct {
	Details MutationDetails
	Unit    Unit
}

// Candidate ties a candidate to the unit file it was found in.
type Candidate struct {
	Origin  Path
	Details MutationDetails
}

// Report is the outcome of materializing one candidate.
type Report struct {
	Candidate Candidate
	Status    MutantStatus
	Output    Path // mutant file, empty unless Written
	Err       string
}
