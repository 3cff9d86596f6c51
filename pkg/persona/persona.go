// Package persona generates personalized spoken-reply text from a user
// profile. A Generator is the text-generation capability contract; the
// OpenAI and Gemini backends implement it, and Mux routes between
// registered backends by model name.
package persona

import (
	"context"
	"errors"
	"fmt"
)

// ErrGeneration wraps any provider failure during text generation.
// Generation has no fallback: there is no meaningful default reply.
var ErrGeneration = errors.New("persona: text generation failed")

// Profile maps semantic profile keys (relationship name, birthday,
// greeting phrase, ...) to free-text values. The pipeline uses it only
// for prompt grounding; it has no lifecycle here.
type Profile map[string]string

// GreetingKey is the profile key holding the user's opening line.
const GreetingKey = "distinct_greeting"

// DefaultGreeting is used when the profile carries no greeting.
const DefaultGreeting = "Hi there!"

// Greeting returns the profile's greeting, or the default.
func (p Profile) Greeting() string {
	if g, ok := p[GreetingKey]; ok && g != "" {
		return g
	}
	return DefaultGreeting
}

// Request is a single bounded completion request.
type Request struct {
	// System messages, applied in order before the user message.
	System []string

	// User is the user-turn message.
	User string

	// MaxTokens caps the completion length.
	MaxTokens int64

	// Temperature is the sampling temperature.
	Temperature float64
}

// Generator produces a completion for a request.
type Generator interface {
	Complete(ctx context.Context, req *Request) (string, error)
}

// Mux routes completion requests to registered generators by name.
type Mux struct {
	generators map[string]Generator
}

// NewMux creates an empty generator multiplexer.
func NewMux() *Mux {
	return &Mux{generators: make(map[string]Generator)}
}

// Handle registers a generator under the given name. Registering the
// same name twice is an error.
func (m *Mux) Handle(name string, gen Generator) error {
	if _, ok := m.generators[name]; ok {
		return fmt.Errorf("persona: generator already registered for %s", name)
	}
	m.generators[name] = gen
	return nil
}

// Generator returns the generator registered under the given name.
func (m *Mux) Generator(name string) (Generator, error) {
	gen, ok := m.generators[name]
	if !ok {
		return nil, fmt.Errorf("persona: generator not found for %s", name)
	}
	return gen, nil
}

// Complete routes the request to the named generator.
func (m *Mux) Complete(ctx context.Context, name string, req *Request) (string, error) {
	gen, err := m.Generator(name)
	if err != nil {
		return "", err
	}
	return gen.Complete(ctx, req)
}
