package assistant

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/evermore-ai/evermore/pkg/elevenlabs"
)

// voiceDescription is attached to every voice this service creates.
const voiceDescription = "a person talking"

// VoiceCatalog is the subset of the voice provider the resolver needs.
// *elevenlabs.VoiceService satisfies it.
type VoiceCatalog interface {
	List(ctx context.Context) ([]elevenlabs.Voice, error)
	Create(ctx context.Context, name, description string, sample io.Reader, filename string) (string, error)
}

// Resolver finds an existing cloned voice by name, or enrolls a new one
// from a normalized sample.
//
// Lookup is case-insensitive. Two concurrent resolutions of the same
// previously unknown name may both enroll a voice; the provider treats
// names as non-unique, so the second clone is harmless and the next
// resolution picks whichever the listing returns first.
type Resolver struct {
	Catalog VoiceCatalog
}

// Resolve returns the id of the voice named name, creating it from the
// sample at samplePath when no match exists.
func (r *Resolver) Resolve(ctx context.Context, name, samplePath string) (string, error) {
	voices, err := r.Catalog.List(ctx)
	if err != nil {
		return "", err
	}
	for _, v := range voices {
		if strings.EqualFold(v.Name, name) {
			return v.VoiceID, nil
		}
	}

	f, err := os.Open(samplePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return r.Catalog.Create(ctx, name, voiceDescription, f, "sample.wav")
}
