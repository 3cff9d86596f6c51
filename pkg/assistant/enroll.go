package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evermore-ai/evermore/pkg/audio/denoise"
)

// EnrollRequest describes a standalone voice enrollment: the
// preparation half of the pipeline without text generation or
// synthesis.
type EnrollRequest struct {
	// Name is the catalog display name for the voice.
	Name string

	// RecordingPath is the enrollment recording in any supported format.
	RecordingPath string

	// SkipNoiseReduction leaves the sample as recorded.
	SkipNoiseReduction bool

	// TempDir is where intermediate audio lands; empty means the
	// system temp directory.
	TempDir string

	Normalizer *Normalizer
	Catalog    VoiceCatalog

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Enroll prepares the recording (normalize, validate, optionally
// denoise) and resolves the named voice against the catalog, creating
// it when absent. Temporary files are removed before it returns.
func Enroll(ctx context.Context, req EnrollRequest) (string, error) {
	log := req.Logger
	if log == nil {
		log = slog.Default()
	}

	temps := &tempSet{}
	defer temps.release(log)

	asset, err := req.Normalizer.Normalize(ctx, req.RecordingPath, req.TempDir, temps)
	if err != nil {
		return "", err
	}
	if d := asset.Clip.Duration(); d < MinSampleDuration {
		return "", fmt.Errorf("%w: %s < %s", ErrTooShort, d, MinSampleDuration)
	}

	if !req.SkipNoiseReduction {
		cleaned, err := denoise.Reduce(asset.Clip)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDenoise, err)
		}
		asset, err = temps.newWAV(req.TempDir, cleaned)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDenoise, err)
		}
	}

	resolver := &Resolver{Catalog: req.Catalog}
	return resolver.Resolve(ctx, req.Name, asset.Path)
}
