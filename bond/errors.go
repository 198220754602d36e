package bond

import "errors"

var (
	// ErrInputUnrecognized is returned when the normalizer finds nothing
	// extractable at all: no identifier shape and no tokens.
	ErrInputUnrecognized = errors.New("input unrecognized")

	// ErrScheduleGeneration is returned for inconsistent schedule inputs,
	// e.g. an unset maturity or an issue date after maturity.
	ErrScheduleGeneration = errors.New("schedule generation error")

	// ErrNonConvergence is returned when the yield solver exhausts its
	// iteration cap. Callers retry once with a widened bracket before
	// surfacing it.
	ErrNonConvergence = errors.New("root finding non-convergence")
)

// FailureKind is the per-bond failure taxonomy reported inline in portfolio
// results.
type FailureKind string

const (
	FailInputUnrecognized FailureKind = "INPUT_UNRECOGNIZED"
	FailSchedule          FailureKind = "SCHEDULE_GENERATION_ERROR"
	FailNonConvergence    FailureKind = "ROOT_FINDING_NONCONVERGENCE"
)

// FailureRecord captures a terminal per-bond failure. Failures never abort
// sibling calculations; they ride along in the batch result.
type FailureRecord struct {
	Kind    FailureKind
	Message string
}

func (f FailureRecord) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// ClassifyFailure maps a pipeline error onto the failure taxonomy.
func ClassifyFailure(err error) FailureRecord {
	kind := FailSchedule
	switch {
	case errors.Is(err, ErrInputUnrecognized):
		kind = FailInputUnrecognized
	case errors.Is(err, ErrNonConvergence):
		kind = FailNonConvergence
	case errors.Is(err, ErrScheduleGeneration):
		kind = FailSchedule
	}
	return FailureRecord{Kind: kind, Message: err.Error()}
}
