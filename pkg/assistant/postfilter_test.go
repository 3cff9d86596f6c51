package assistant

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/evermore-ai/evermore/pkg/audio/wav"
)

func TestHighpassRemovesDCOffset(t *testing.T) {
	rate := 16000
	clip := sineClip(1, rate)
	// Bias the whole clip well above zero.
	for i := range clip.Samples {
		clip.Samples[i] += 4000
	}

	out := highpass(clip, DefaultCutoffHz)
	if len(out.Samples) != len(clip.Samples) {
		t.Fatalf("sample count changed: %d -> %d", len(clip.Samples), len(out.Samples))
	}

	var mean float64
	for _, s := range out.Samples[rate/10:] { // skip the settle-in
		mean += float64(s)
	}
	mean /= float64(len(out.Samples) - rate/10)
	if math.Abs(mean) > 200 {
		t.Errorf("residual DC offset %.1f, want near zero", mean)
	}
}

func TestHighpassPassesVoiceBand(t *testing.T) {
	clip := sineClip(1, 16000) // 220 Hz tone, well above the 80 Hz corner
	out := highpass(clip, DefaultCutoffHz)

	rms := func(s []int16) float64 {
		var sum float64
		for _, v := range s {
			sum += float64(v) * float64(v)
		}
		return math.Sqrt(sum / float64(len(s)))
	}
	in, filtered := rms(clip.Samples), rms(out.Samples)
	if filtered < 0.8*in {
		t.Errorf("220 Hz tone attenuated too much: %.1f -> %.1f", in, filtered)
	}
}

func TestApplyWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "reply.mp3")

	f := &PostFilter{Transcoder: identityTranscoder{}}
	payload := wav.Encode(sineClip(0.5, 16000))
	if err := f.Apply(context.Background(), payload, dest); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("output missing: %v", err)
	}

	// No stray temp files left next to the destination.
	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the destination file, got %d entries", len(entries))
	}
}

func TestApplyKeepsShape(t *testing.T) {
	mono := sineClip(0.25, 16000)
	dir := t.TempDir()
	dest := filepath.Join(dir, "reply.mp3")
	f := &PostFilter{Transcoder: identityTranscoder{}}
	if err := f.Apply(context.Background(), wav.Encode(mono), dest); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	audio, err := wav.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if audio.Channels != 1 || len(audio.Samples) != len(mono.Samples) {
		t.Errorf("got %d channels, %d samples; want mono, %d samples",
			audio.Channels, len(audio.Samples), len(mono.Samples))
	}
}

func TestApplyRejectsGarbage(t *testing.T) {
	f := &PostFilter{Transcoder: identityTranscoder{}}
	err := f.Apply(context.Background(), []byte("not audio"), filepath.Join(t.TempDir(), "x.mp3"))
	if err == nil {
		t.Fatal("expected error for undecodable payload")
	}
}
