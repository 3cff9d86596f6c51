// Package wav encodes and decodes 16-bit PCM audio in the WAV (RIFF)
// container. It is intentionally limited to the formats the assistant
// pipeline produces and consumes: linear PCM, 16-bit, mono or stereo.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
)

// ErrNotWAV is returned when the data does not look like a RIFF/WAVE file.
var ErrNotWAV = errors.New("wav: not a RIFF/WAVE file")

const headerSize = 44

// Audio is decoded WAV audio data. Samples are interleaved when
// Channels is greater than one.
type Audio struct {
	Samples  []int16
	Rate     int
	Channels int
}

// Mono collapses the audio to a mono clip, averaging channels.
func (a *Audio) Mono() *pcm.Clip {
	return pcm.NewClip(pcm.Downmix(a.Samples, a.Channels), a.Rate)
}

// Encode serializes a mono clip as a 16-bit PCM WAV file.
func Encode(c *pcm.Clip) []byte {
	data := c.Bytes()
	buf := make([]byte, headerSize+len(data))

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(data)))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(c.Rate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(c.Rate*2))
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(data)))
	copy(buf[44:], data)

	return buf
}

// Decode parses a 16-bit PCM WAV file. It walks the RIFF chunk list, so
// files with extra chunks (LIST, fact) decode correctly.
func Decode(data []byte) (*Audio, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	var (
		rate     int
		channels int
		bits     int
		pcmData  []byte
		haveFmt  bool
	)

	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(data) {
			return nil, fmt.Errorf("wav: truncated %q chunk", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, errors.New("wav: short fmt chunk")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, fmt.Errorf("wav: unsupported audio format %d (want PCM)", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			rate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			pcmData = data[body : body+size]
		}

		// Chunks are word-aligned.
		off = body + size + size%2
	}

	if !haveFmt {
		return nil, errors.New("wav: missing fmt chunk")
	}
	if pcmData == nil {
		return nil, errors.New("wav: missing data chunk")
	}
	if bits != 16 {
		return nil, fmt.Errorf("wav: unsupported bit depth %d (want 16)", bits)
	}
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("wav: unsupported channel count %d", channels)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", rate)
	}

	n := len(pcmData) / 2
	if n == 0 {
		return nil, errors.New("wav: empty data chunk")
	}
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcmData[i*2:]))
	}

	return &Audio{Samples: samples, Rate: rate, Channels: channels}, nil
}
