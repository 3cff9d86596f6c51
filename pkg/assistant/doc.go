// Package assistant orchestrates the voice reply pipeline: it
// normalizes and validates an enrollment recording, finds or enrolls
// the user's cloned voice, generates a personalized reply from the user
// profile, synthesizes it in the cloned voice, and high-pass filters
// the result before publishing it.
//
// The pipeline is a linear state machine (see State). Each external
// capability is an interface so callers can swap providers; the
// concrete wiring lives in the CLI.
package assistant
