package pcm

import (
	"encoding/binary"
	"time"
)

// CanonicalRate is the working sample rate of the assistant pipeline.
// Enrollment audio is normalized to 16 kHz mono 16-bit before any
// provider call.
const CanonicalRate = 16000

// Clip is decoded mono PCM audio: 16-bit signed linear samples at a
// known sample rate.
//
// The duration of a Clip is always derived from the sample count and
// the rate; it is never stored separately.
type Clip struct {
	// Samples are the 16-bit signed mono samples.
	Samples []int16

	// Rate is the sample rate in Hz.
	Rate int
}

// NewClip creates a clip from samples at the given rate.
func NewClip(samples []int16, rate int) *Clip {
	return &Clip{Samples: samples, Rate: rate}
}

// Duration returns the clip duration derived from len(Samples)/Rate.
func (c *Clip) Duration() time.Duration {
	if c.Rate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.Rate)
}

// Seconds returns the clip duration in seconds.
func (c *Clip) Seconds() float64 {
	if c.Rate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.Rate)
}

// Empty reports whether the clip contains no samples.
func (c *Clip) Empty() bool {
	return c == nil || len(c.Samples) == 0
}

// Bytes returns the samples as little-endian 16-bit signed data.
func (c *Clip) Bytes() []byte {
	b := make([]byte, len(c.Samples)*2)
	for i, s := range c.Samples {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}
	return b
}

// FromBytes interprets little-endian 16-bit signed data as a mono clip.
// A trailing odd byte is dropped.
func FromBytes(b []byte, rate int) *Clip {
	n := len(b) / 2
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return &Clip{Samples: samples, Rate: rate}
}

// Floats returns the samples normalized to the [-1, 1) float64 range.
func (c *Clip) Floats() []float64 {
	f := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		f[i] = float64(s) / 32768.0
	}
	return f
}

// FromFloats quantizes normalized float64 samples back to a 16-bit
// clip, clamping values outside [-1, 1).
func FromFloats(f []float64, rate int) *Clip {
	samples := make([]int16, len(f))
	for i, v := range f {
		samples[i] = quantize(v)
	}
	return &Clip{Samples: samples, Rate: rate}
}

func quantize(v float64) int16 {
	switch {
	case v >= 1.0:
		return 32767
	case v <= -1.0:
		return -32768
	default:
		return int16(v * 32768.0)
	}
}

// Downmix collapses interleaved multi-channel samples to mono by
// averaging across channels. Mono input is returned as-is.
func Downmix(interleaved []int16, channels int) []int16 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]int16, frames)
	for i := range frames {
		var sum int32
		for ch := range channels {
			sum += int32(interleaved[i*channels+ch])
		}
		mono[i] = int16(sum / int32(channels))
	}
	return mono
}
