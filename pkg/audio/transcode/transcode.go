// Package transcode converts audio between containers and codecs.
//
// The Transcoder interface is the capability contract the assistant
// pipeline depends on; FFmpeg is the production implementation, backed
// by an external ffmpeg binary whose location comes from configuration.
package transcode

import (
	"context"
	"errors"
)

// ErrFormat indicates the input could not be decoded as the declared
// (or any supported) format.
var ErrFormat = errors.New("transcode: undecodable input")

// Spec describes the desired output of a transcode operation.
type Spec struct {
	// Format is the output container/codec: "wav" (pcm_s16le) or "mp3".
	Format string

	// SampleRate is the output sample rate in Hz. Zero keeps the
	// source rate.
	SampleRate int

	// Channels is the output channel count. Zero keeps the source
	// channel count.
	Channels int

	// Bitrate is the output bitrate for compressed formats, e.g.
	// "128k". Ignored for wav.
	Bitrate string
}

// WAV16kMono is the canonical enrollment target: 16 kHz mono s16le.
var WAV16kMono = Spec{Format: "wav", SampleRate: 16000, Channels: 1}

// Transcoder decodes audio of a declared source format and re-encodes
// it per spec. Implementations must return an error wrapping ErrFormat
// when the input itself can not be decoded.
type Transcoder interface {
	Transcode(ctx context.Context, src []byte, srcFormat string, spec Spec) ([]byte, error)
}
