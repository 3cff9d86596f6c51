package cli

import (
	"fmt"
	"testing"
)

func TestLogBuffer_Eviction(t *testing.T) {
	buf := NewLogBuffer(3)
	for i := 0; i < 5; i++ {
		buf.Add(fmt.Sprintf("line-%d", i))
	}

	got := buf.Lines()
	want := []string{"line-2", "line-3", "line-4"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLogWriter_MultiLine(t *testing.T) {
	w := NewLogWriter(10)
	if _, err := w.Write([]byte("first\nsecond\n")); err != nil {
		t.Fatal(err)
	}

	lines := w.Lines()
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Errorf("lines = %v", lines)
	}
}

func TestLogWriter_ChannelNonBlocking(t *testing.T) {
	w := NewLogWriter(5)
	// Overfill the notification channel; writes must not block.
	for i := 0; i < 200; i++ {
		if _, err := w.Write([]byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case line := <-w.Channel():
		if line != "x" {
			t.Errorf("line = %q", line)
		}
	default:
		t.Error("expected buffered notification")
	}
}
