package assistant

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
	"github.com/evermore-ai/evermore/pkg/audio/resampler"
	"github.com/evermore-ai/evermore/pkg/audio/transcode"
	"github.com/evermore-ai/evermore/pkg/audio/wav"
)

// Normalizer converts arbitrary supported input audio into the
// canonical enrollment format: 16 kHz, mono, 16-bit signed PCM.
//
// WAV input is handled with the built-in decoder and resampler;
// everything else goes through the external transcoder. Either way the
// result is written to a temporary file and verified by decoding it
// back before it is handed to the next stage.
type Normalizer struct {
	Transcoder transcode.Transcoder
}

// Normalize produces a verified canonical asset from the file at
// inputPath. The temporary output is registered in temps; callers never
// remove it directly.
func (n *Normalizer) Normalize(ctx context.Context, inputPath, dir string, temps *tempSet) (*Asset, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("assistant: read input: %w", err)
	}

	srcFormat := strings.TrimPrefix(strings.ToLower(filepath.Ext(inputPath)), ".")

	clip, err := n.decode(ctx, data, srcFormat)
	if err != nil {
		return nil, err
	}

	asset, err := temps.newWAV(dir, clip)
	if err != nil {
		return nil, err
	}

	// Verify the freshly written file decodes independently. A decode
	// failure here is output corruption, not an input format problem.
	written, err := os.ReadFile(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("assistant: reread normalized audio: %w", err)
	}
	verified, err := wav.Decode(written)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptOutput, err)
	}
	if len(verified.Samples) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrCorruptOutput)
	}

	return asset, nil
}

// decode produces a canonical mono 16 kHz clip from raw container data.
func (n *Normalizer) decode(ctx context.Context, data []byte, srcFormat string) (*pcm.Clip, error) {
	if srcFormat == "wav" {
		if audio, err := wav.Decode(data); err == nil {
			return resampler.Resample(audio.Mono(), pcm.CanonicalRate)
		}
		// A .wav that doesn't parse may still be decodable by the
		// transcoder (e.g. float or a-law WAV variants).
	}

	out, err := n.Transcoder.Transcode(ctx, data, srcFormat, transcode.WAV16kMono)
	if err != nil {
		return nil, err
	}
	audio, err := wav.Decode(out)
	if err != nil {
		return nil, fmt.Errorf("%w: transcoder output: %v", transcode.ErrFormat, err)
	}
	return audio.Mono(), nil
}
