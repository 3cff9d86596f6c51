package assistant

import (
	"errors"
	"fmt"
)

// Pipeline sentinel errors. Provider-side failures keep their own typed
// errors (elevenlabs.Error, persona.ErrGeneration) and are wrapped with
// the stage they occurred in.
var (
	// ErrTooShort rejects enrollment audio under the provider's
	// 10 second minimum. The boundary is inclusive: exactly 10 s
	// passes.
	ErrTooShort = errors.New("assistant: enrollment audio shorter than 10 seconds")

	// ErrCorruptOutput marks a normalized file that was written but
	// failed re-decoding, as opposed to an undecodable input.
	ErrCorruptOutput = errors.New("assistant: normalized audio failed verification")

	// ErrDenoise wraps a noise reduction failure.
	ErrDenoise = errors.New("assistant: noise reduction failed")

	// ErrSynthesis wraps a speech synthesis failure after the single
	// legacy-call fallback has been exhausted.
	ErrSynthesis = errors.New("assistant: speech synthesis failed")

	// ErrFilter wraps a post-synthesis decode/filter/encode failure.
	ErrFilter = errors.New("assistant: post-filtering failed")
)

// State is a stage of the pipeline state machine.
type State int

const (
	StateValidating State = iota
	StateResolvingIdentity
	StateGeneratingText
	StateSynthesizing
	StateFiltering
	StateComplete
	StateFailed
)

// String returns the human-readable stage name.
func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateResolvingIdentity:
		return "resolving identity"
	case StateGeneratingText:
		return "generating text"
	case StateSynthesizing:
		return "synthesizing"
	case StateFiltering:
		return "filtering"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// StageError attaches the failing stage to the underlying error. The
// wrapped error stays reachable through errors.Is/As.
type StageError struct {
	State State
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("assistant: %s: %v", e.State, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
