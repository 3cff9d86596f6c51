package elevenlabs

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
)

// synthesisChunkSize is the read granularity for streamed audio.
const synthesisChunkSize = 32 * 1024

// TTSService provides speech synthesis operations.
type TTSService struct {
	client *Client
}

// newTTSService creates a new TTS service.
func newTTSService(client *Client) *TTSService {
	return &TTSService{client: client}
}

func synthesisPath(voiceID, suffix, outputFormat string) string {
	path := "/v1/text-to-speech/" + url.PathEscape(voiceID) + suffix
	if outputFormat != "" {
		path += "?output_format=" + url.QueryEscape(outputFormat)
	}
	return path
}

// Convert performs buffered speech synthesis: the full audio file is
// returned as a single byte slice.
func (s *TTSService) Convert(ctx context.Context, req *SynthesisRequest) ([]byte, error) {
	slog.Debug("elevenlabs convert", "voice_id", req.VoiceID, "text_len", len(req.Text), "format", req.OutputFormat)

	body, err := s.client.http.requestAudio(ctx, http.MethodPost, synthesisPath(req.VoiceID, "", req.OutputFormat), req)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	audio, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}

// ConvertStream performs streaming speech synthesis.
//
// Returns an iterator that yields audio chunks in provider delivery
// order; the sequence is finite, consumed exactly once, and the
// connection is closed when iteration completes or breaks.
//
// Example:
//
//	var buf bytes.Buffer
//	for chunk, err := range client.TTS.ConvertStream(ctx, req) {
//	    if err != nil {
//	        return err
//	    }
//	    buf.Write(chunk)
//	}
func (s *TTSService) ConvertStream(ctx context.Context, req *SynthesisRequest) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		body, err := s.client.http.requestAudio(ctx, http.MethodPost, synthesisPath(req.VoiceID, "/stream", req.OutputFormat), req)
		if err != nil {
			yield(nil, err)
			return
		}
		defer body.Close()

		for {
			chunk := make([]byte, synthesisChunkSize)
			n, err := body.Read(chunk)
			if n > 0 {
				if !yield(chunk[:n], nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("read audio stream: %w", err))
				return
			}
		}
	}
}

// Generate performs synthesis through the legacy call shape: no voice
// settings bundle and the provider's default output format. Kept as the
// one-shot fallback for providers that reject the Convert call shape.
func (s *TTSService) Generate(ctx context.Context, voiceID, text, modelID string) ([]byte, error) {
	slog.Debug("elevenlabs generate (legacy)", "voice_id", voiceID, "text_len", len(text))

	req := struct {
		Text    string `json:"text"`
		ModelID string `json:"model_id,omitempty"`
	}{Text: text, ModelID: modelID}

	body, err := s.client.http.requestAudio(ctx, http.MethodPost, synthesisPath(voiceID, "", ""), req)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	audio, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}
