package persona

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

var _ Generator = (*OpenAIGenerator)(nil)

// OpenAIGenerator implements Generator using the OpenAI chat
// completions API.
type OpenAIGenerator struct {
	Client *openai.Client

	// Model is the chat model, e.g. "gpt-4o".
	Model string
}

// Complete performs a bounded chat completion.
func (g *OpenAIGenerator) Complete(ctx context.Context, req *Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.System)+1)
	for _, s := range req.System {
		messages = append(messages, openai.SystemMessage(s))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(g.Model),
		Messages:    messages,
		MaxTokens:   openai.Int(req.MaxTokens),
		Temperature: openai.Float(req.Temperature),
	}

	resp, err := g.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrGeneration)
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGeneration)
	}
	return content, nil
}
