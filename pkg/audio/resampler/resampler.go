// Package resampler converts PCM clips between sample rates using a
// pure Go resampler (no CGO/FFI dependencies).
package resampler

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
)

// Resample converts a mono clip to the destination sample rate. The
// input clip is not modified. When the rates already match, the input
// clip is returned as-is.
func Resample(c *pcm.Clip, dstRate int) (*pcm.Clip, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("resampler: invalid destination rate %d", dstRate)
	}
	if c.Rate == dstRate {
		return c, nil
	}
	if c.Rate <= 0 {
		return nil, fmt.Errorf("resampler: invalid source rate %d", c.Rate)
	}

	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(c.Rate),
		OutputRate: float64(dstRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("resampler: create: %w", err)
	}

	out, err := rs.Process(c.Floats())
	if err != nil {
		return nil, fmt.Errorf("resampler: process: %w", err)
	}

	// Drain delayed samples held inside the filter.
	tail, err := rs.Flush()
	if err == nil && len(tail) > 0 {
		out = append(out, tail...)
	}

	return pcm.FromFloats(out, dstRate), nil
}
