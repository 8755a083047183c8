package propagate

// Outcome is the terminal state of processing one repository.
type Outcome int

const (
	OutcomeUndefined Outcome = iota
	// OutcomeUpdated is reached when the rendered workflows were written
	// and a pull request is open, either created in this pass or left over
	// from an earlier one.
	OutcomeUpdated
	OutcomeSkippedDisabled
	OutcomeSkippedUpToDate
	OutcomeSkippedDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkippedDisabled:
		return "skipped (disabled)"
	case OutcomeSkippedUpToDate:
		return "skipped (up-to-date)"
	case OutcomeSkippedDryRun:
		return "skipped (dry-run)"
	default:
		return "undefined"
	}
}

// RunResult aggregates the per-repository outcomes of one pass.
type RunResult struct {
	Success int
	Skipped int
	Failed  int
}

func (r *RunResult) record(outcome Outcome, err error) {
	switch {
	case err != nil:
		r.Failed++
	case outcome == OutcomeUpdated:
		r.Success++
	default:
		r.Skipped++
	}
}
