package assistant

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/evermore-ai/evermore/pkg/audio/wav"
	"github.com/evermore-ai/evermore/pkg/elevenlabs"
)

func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, wav.Encode(sineClip(1, 16000)), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveMatchesCaseInsensitively(t *testing.T) {
	catalog := &fakeCatalog{voices: []elevenlabs.Voice{
		{VoiceID: "v1", Name: "Bob"},
		{VoiceID: "v2", Name: "ALICE"},
	}}
	r := &Resolver{Catalog: catalog}

	id, err := r.Resolve(context.Background(), "alice", sampleFile(t))
	if err != nil {
		t.Fatal(err)
	}
	if id != "v2" {
		t.Errorf("id = %q, want v2", id)
	}
	if catalog.creates != 0 {
		t.Errorf("creates = %d, want 0", catalog.creates)
	}
}

func TestResolveCreatesOnceAcrossRuns(t *testing.T) {
	catalog := &fakeCatalog{}
	r := &Resolver{Catalog: catalog}
	sample := sampleFile(t)

	first, err := r.Resolve(context.Background(), "Alice", sample)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve(context.Background(), "alice", sample)
	if err != nil {
		t.Fatal(err)
	}
	if catalog.creates != 1 {
		t.Fatalf("creates = %d, want 1", catalog.creates)
	}
	if first != second {
		t.Errorf("resolved different ids: %q vs %q", first, second)
	}
}

func TestResolveMissingSample(t *testing.T) {
	r := &Resolver{Catalog: &fakeCatalog{}}
	if _, err := r.Resolve(context.Background(), "Alice", "/nonexistent/sample.wav"); err == nil {
		t.Fatal("expected error for missing sample file")
	}
}
