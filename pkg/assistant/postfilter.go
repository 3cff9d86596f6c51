package assistant

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
	"github.com/evermore-ai/evermore/pkg/audio/transcode"
	"github.com/evermore-ai/evermore/pkg/audio/wav"
)

// DefaultCutoffHz is the corner of the post-synthesis high-pass filter.
// It sits below the fundamental of adult speech, so the filter removes
// rumble and DC offset without touching voiced content.
const DefaultCutoffHz = 80.0

// PostFilter applies a first-order high-pass filter to a synthesized
// mp3 and writes the result atomically at the destination path.
type PostFilter struct {
	Transcoder transcode.Transcoder

	// CutoffHz overrides DefaultCutoffHz when > 0.
	CutoffHz float64
}

// Apply filters the mp3 payload and writes the filtered mp3 to destPath,
// creating parent directories as needed. The write is a temp-file plus
// rename, so readers never observe a partial file.
func (f *PostFilter) Apply(ctx context.Context, mp3 []byte, destPath string) error {
	wavData, err := f.Transcoder.Transcode(ctx, mp3, "mp3", transcode.Spec{Format: "wav"})
	if err != nil {
		return fmt.Errorf("%w: decode synthesized audio: %v", ErrFilter, err)
	}
	audio, err := wav.Decode(wavData)
	if err != nil {
		return fmt.Errorf("%w: decode synthesized audio: %v", ErrFilter, err)
	}

	clip := audio.Mono()
	cutoff := f.CutoffHz
	if cutoff <= 0 {
		cutoff = DefaultCutoffHz
	}
	filtered := highpass(clip, cutoff)

	out, err := f.Transcoder.Transcode(ctx, wav.Encode(filtered), "wav", transcode.Spec{
		Format:     "mp3",
		SampleRate: filtered.Rate,
		Channels:   1,
		Bitrate:    "128k",
	})
	if err != nil {
		return fmt.Errorf("%w: encode filtered audio: %v", ErrFilter, err)
	}

	if dir := filepath.Dir(destPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrFilter, err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".evermore-*.mp3")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFilter, err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrFilter, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrFilter, err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrFilter, err)
	}
	return nil
}

// highpass runs a first-order RC high-pass over the clip. The recurrence
// y[i] = a*(y[i-1] + x[i] - x[i-1]) matches an analog single-pole filter
// with corner frequency cutoff.
func highpass(c *pcm.Clip, cutoff float64) *pcm.Clip {
	x := c.Floats()
	if len(x) == 0 {
		return &pcm.Clip{Rate: c.Rate}
	}
	rc := 1.0 / (2 * math.Pi * cutoff)
	dt := 1.0 / float64(c.Rate)
	a := rc / (rc + dt)

	y := make([]float64, len(x))
	y[0] = x[0]
	for i := 1; i < len(x); i++ {
		y[i] = a * (y[i-1] + x[i] - x[i-1])
	}
	return pcm.FromFloats(y, c.Rate)
}
