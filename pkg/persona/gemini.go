package persona

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var _ Generator = (*GeminiGenerator)(nil)

// GeminiGenerator implements Generator using the Google Gemini API.
type GeminiGenerator struct {
	Client *genai.Client

	// Model should not start with "models/".
	Model string
}

// Complete performs a bounded content generation call.
func (g *GeminiGenerator) Complete(ctx context.Context, req *Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if len(req.System) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(req.System, "\n\n"), genai.RoleUser)
	}

	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(req.User), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates", ErrGeneration)
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			sb.WriteString(p.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrGeneration)
	}
	return sb.String(), nil
}
