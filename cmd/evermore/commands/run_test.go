package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evermore-ai/evermore/pkg/assistant"
)

func TestRenderRunSummary(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "reply.mp3")
	if err := os.WriteFile(out, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	res := &assistant.Result{
		RunID:      "run-1",
		State:      assistant.StateComplete,
		VoiceID:    "voice-1",
		Text:       "hello there",
		OutputPath: out,
	}
	summary := renderRunSummary("complete", res, 1500*time.Millisecond, []string{"level=INFO msg=done"})

	for _, want := range []string{"voice-1", "hello there", "2.00 KB", "1.5s"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestRenderRunSummaryMissingOutput(t *testing.T) {
	res := &assistant.Result{
		RunID:      "run-2",
		State:      assistant.StateFailed,
		OutputPath: "/nonexistent/reply.mp3",
	}
	summary := renderRunSummary("failed", res, 80*time.Millisecond, nil)

	if !strings.Contains(summary, "80ms") {
		t.Error("summary missing elapsed time")
	}
	if strings.Contains(summary, "KB") {
		t.Error("summary should not report a size for a missing output")
	}
}
