package assistant

import (
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
	"github.com/evermore-ai/evermore/pkg/audio/transcode"
	"github.com/evermore-ai/evermore/pkg/audio/wav"
)

func TestNormalizeWAVInput(t *testing.T) {
	dir := t.TempDir()
	input := writeWAV(t, dir, sineClip(2, 44100))

	n := &Normalizer{Transcoder: identityTranscoder{}}
	temps := &tempSet{}
	defer temps.release(slog.Default())

	asset, err := n.Normalize(context.Background(), input, dir, temps)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if asset.Clip.Rate != pcm.CanonicalRate {
		t.Errorf("rate = %d, want %d", asset.Clip.Rate, pcm.CanonicalRate)
	}
	// 2 s at 44.1 kHz resamples to roughly 2 s at 16 kHz.
	if got := asset.Clip.Duration().Seconds(); got < 1.9 || got > 2.1 {
		t.Errorf("duration = %.2fs, want ~2s", got)
	}
	if _, err := os.Stat(asset.Path); err != nil {
		t.Errorf("asset file missing: %v", err)
	}
}

func TestNormalizeReleaseRemovesTemps(t *testing.T) {
	dir := t.TempDir()
	input := writeWAV(t, dir, sineClip(1, 16000))

	n := &Normalizer{Transcoder: identityTranscoder{}}
	temps := &tempSet{}
	asset, err := n.Normalize(context.Background(), input, dir, temps)
	if err != nil {
		t.Fatal(err)
	}
	temps.release(slog.Default())
	if _, err := os.Stat(asset.Path); !os.IsNotExist(err) {
		t.Errorf("temp file still present after release")
	}
}

type failingTranscoder struct{ err error }

func (f failingTranscoder) Transcode(context.Context, []byte, string, transcode.Spec) ([]byte, error) {
	return nil, f.err
}

func TestNormalizeUndecodableInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.m4a")
	if err := os.WriteFile(input, []byte("definitely not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	wantErr := transcode.ErrFormat
	n := &Normalizer{Transcoder: failingTranscoder{err: wantErr}}
	_, err := n.Normalize(context.Background(), input, dir, &tempSet{})
	if !errors.Is(err, transcode.ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}

type garbageTranscoder struct{}

func (garbageTranscoder) Transcode(context.Context, []byte, string, transcode.Spec) ([]byte, error) {
	return []byte("garbage output"), nil
}

func TestNormalizeBadTranscoderOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp3")
	if err := os.WriteFile(input, []byte("mp3ish"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := &Normalizer{Transcoder: garbageTranscoder{}}
	_, err := n.Normalize(context.Background(), input, dir, &tempSet{})
	if !errors.Is(err, transcode.ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat for undecodable transcoder output", err)
	}
}

// encodeAudio serializes interleaved audio by patching the channel
// fields of a mono encoding.
func encodeAudio(t *testing.T, a *wav.Audio) []byte {
	t.Helper()
	buf := wav.Encode(&pcm.Clip{Samples: a.Samples, Rate: a.Rate})
	binary.LittleEndian.PutUint16(buf[22:24], uint16(a.Channels))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(a.Rate*2*a.Channels))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(2*a.Channels))
	return buf
}

func TestNormalizeMonoDownmix(t *testing.T) {
	// Stereo WAV input must come out mono.
	mono := sineClip(1, 16000)
	audio := &wav.Audio{Samples: make([]int16, len(mono.Samples)*2), Rate: 16000, Channels: 2}
	for i, s := range mono.Samples {
		audio.Samples[2*i] = s
		audio.Samples[2*i+1] = s
	}
	dir := t.TempDir()
	input := filepath.Join(dir, "stereo.wav")
	if err := os.WriteFile(input, encodeAudio(t, audio), 0o644); err != nil {
		t.Fatal(err)
	}

	n := &Normalizer{Transcoder: identityTranscoder{}}
	temps := &tempSet{}
	defer temps.release(slog.Default())
	asset, err := n.Normalize(context.Background(), input, dir, temps)
	if err != nil {
		t.Fatal(err)
	}
	if len(asset.Clip.Samples) != len(mono.Samples) {
		t.Errorf("got %d samples, want %d", len(asset.Clip.Samples), len(mono.Samples))
	}
}
