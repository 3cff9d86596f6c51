package persona

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuildRequestEmbedsProfile(t *testing.T) {
	profile := Profile{
		"loved_one_name":    "John",
		"favorite_food":     "Pizza",
		"distinct_greeting": "Hey there! How are you today?",
	}
	req := BuildRequest(profile)

	if len(req.System) != 2 {
		t.Fatalf("len(System) = %d, want 2", len(req.System))
	}
	if !strings.Contains(req.System[0], "Loved one name is John.") {
		t.Errorf("persona message missing prettified key:\n%s", req.System[0])
	}
	if !strings.Contains(req.System[0], "Favorite food is Pizza.") {
		t.Errorf("persona message missing prettified key:\n%s", req.System[0])
	}
	if !strings.Contains(req.System[1], `"loved_one_name":"John"`) {
		t.Errorf("grounding message missing verbatim profile JSON:\n%s", req.System[1])
	}
	if req.User != "Hey there! How are you today?" {
		t.Errorf("User = %q", req.User)
	}
	if req.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", req.MaxTokens)
	}
	if req.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", req.Temperature)
	}
}

func TestBuildRequestDefaultGreeting(t *testing.T) {
	req := BuildRequest(Profile{"loved_one_name": "John"})
	if req.User != DefaultGreeting {
		t.Errorf("User = %q, want %q", req.User, DefaultGreeting)
	}
}

func TestBuildRequestDeterministicOrder(t *testing.T) {
	profile := Profile{"b_key": "2", "a_key": "1", "c_key": "3"}
	a := BuildRequest(profile)
	b := BuildRequest(profile)
	if a.System[0] != b.System[0] {
		t.Error("persona message not deterministic")
	}
	if strings.Index(a.System[0], "A key") > strings.Index(a.System[0], "B key") {
		t.Error("profile keys not in sorted order")
	}
}

func TestPrettify(t *testing.T) {
	cases := map[string]string{
		"loved_one_name":   "Loved one name",
		"favorite_food":    "Favorite food",
		"nickname":         "Nickname",
		"special_moment_1": "Special moment 1",
	}
	for in, want := range cases {
		if got := prettify(in); got != want {
			t.Errorf("prettify(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Complete(ctx context.Context, req *Request) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestMuxRouting(t *testing.T) {
	mux := NewMux()
	gpt := &fakeGenerator{reply: "from gpt"}
	gem := &fakeGenerator{reply: "from gemini"}
	if err := mux.Handle("gpt-4o", gpt); err != nil {
		t.Fatal(err)
	}
	if err := mux.Handle("gemini-2.0-flash", gem); err != nil {
		t.Fatal(err)
	}

	got, err := mux.Complete(context.Background(), "gemini-2.0-flash", &Request{User: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "from gemini" {
		t.Errorf("reply = %q", got)
	}
	if gpt.calls != 0 || gem.calls != 1 {
		t.Errorf("calls: gpt=%d gemini=%d", gpt.calls, gem.calls)
	}
}

func TestMuxDuplicateAndMissing(t *testing.T) {
	mux := NewMux()
	if err := mux.Handle("m", &fakeGenerator{}); err != nil {
		t.Fatal(err)
	}
	if err := mux.Handle("m", &fakeGenerator{}); err == nil {
		t.Error("want error for duplicate registration")
	}
	if gen, err := mux.Generator("m"); err != nil || gen == nil {
		t.Errorf("Generator(m) = %v, %v", gen, err)
	}
	if _, err := mux.Generator("missing"); err == nil {
		t.Error("want error for unregistered name")
	}
	if _, err := mux.Complete(context.Background(), "missing", &Request{}); err == nil {
		t.Error("want error for unknown generator")
	}
}

func TestGenerationErrorWrapping(t *testing.T) {
	gen := &fakeGenerator{err: ErrGeneration}
	mux := NewMux()
	mux.Handle("m", gen)
	_, err := mux.Complete(context.Background(), "m", &Request{})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want ErrGeneration", err)
	}
}
