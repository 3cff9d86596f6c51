package assistant

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
	"github.com/evermore-ai/evermore/pkg/audio/wav"
)

// Asset is an owned handle to normalized PCM audio backed by a
// temporary WAV file. The clip's duration is derived from its samples;
// the file exists only for the lifetime of the run that created it.
type Asset struct {
	Path string
	Clip *pcm.Clip
}

// tempSet tracks every temporary file a run creates. Release is
// unconditional: it runs on success, on handled failure, and on panic
// unwind, so a run can never leak scratch audio.
type tempSet struct {
	paths []string
}

// add registers a path for removal at the end of the run.
func (t *tempSet) add(path string) {
	t.paths = append(t.paths, path)
}

// newWAV writes a clip to a fresh temporary file in dir and registers
// it for cleanup.
func (t *tempSet) newWAV(dir string, clip *pcm.Clip) (*Asset, error) {
	f, err := os.CreateTemp(dir, "evermore-*.wav")
	if err != nil {
		return nil, fmt.Errorf("assistant: create temp audio: %w", err)
	}
	t.add(f.Name())

	_, werr := f.Write(wav.Encode(clip))
	cerr := f.Close()
	if werr != nil {
		return nil, fmt.Errorf("assistant: write temp audio: %w", werr)
	}
	if cerr != nil {
		return nil, fmt.Errorf("assistant: close temp audio: %w", cerr)
	}

	return &Asset{Path: f.Name(), Clip: clip}, nil
}

// release removes all tracked files. Missing files are fine; anything
// else is logged and otherwise ignored, since cleanup must not mask the
// run's real outcome.
func (t *tempSet) release(log *slog.Logger) {
	for _, p := range t.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove temp audio", "path", p, "err", err)
		}
	}
	t.paths = nil
}
