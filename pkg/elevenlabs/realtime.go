package elevenlabs

import (
	"context"
	"encoding/base64"
	"fmt"
	"iter"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// ConvertStreamWS performs streaming synthesis over the websocket
// stream-input endpoint. The full text is sent up front followed by the
// end-of-input marker; audio chunks are yielded in delivery order until
// the provider signals the final chunk.
//
// Like ConvertStream, the returned sequence is finite and consumed
// exactly once.
func (s *TTSService) ConvertStreamWS(ctx context.Context, req *SynthesisRequest) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		wsURL := s.wsEndpoint(req)

		header := make(map[string][]string)
		header["xi-api-key"] = []string{s.client.APIKey()}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
		if err != nil {
			yield(nil, fmt.Errorf("connect websocket: %w", err))
			return
		}
		defer conn.Close()

		// Opening message: a single space primes the stream and
		// carries the voice settings.
		open := struct {
			Text          string         `json:"text"`
			VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
		}{Text: " ", VoiceSettings: req.VoiceSettings}
		if err := conn.WriteJSON(open); err != nil {
			yield(nil, fmt.Errorf("send open message: %w", err))
			return
		}

		if err := conn.WriteJSON(struct {
			Text string `json:"text"`
		}{Text: req.Text + " "}); err != nil {
			yield(nil, fmt.Errorf("send text: %w", err))
			return
		}

		// Empty text closes the input side.
		if err := conn.WriteJSON(struct {
			Text string `json:"text"`
		}{Text: ""}); err != nil {
			yield(nil, fmt.Errorf("send end of input: %w", err))
			return
		}

		for {
			var msg struct {
				Audio   string `json:"audio"`
				IsFinal bool   `json:"isFinal"`
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					return
				}
				yield(nil, fmt.Errorf("read message: %w", err))
				return
			}

			if msg.Error != "" {
				yield(nil, &Error{Status: msg.Error, Message: msg.Message})
				return
			}

			if msg.Audio != "" {
				audio, err := base64.StdEncoding.DecodeString(msg.Audio)
				if err != nil {
					yield(nil, fmt.Errorf("decode audio chunk: %w", err))
					return
				}
				if !yield(audio, nil) {
					return
				}
			}

			if msg.IsFinal {
				return
			}
		}
	}
}

// wsEndpoint derives the stream-input websocket URL from the configured
// base URL.
func (s *TTSService) wsEndpoint(req *SynthesisRequest) string {
	base := s.client.BaseURL()
	base = strings.Replace(base, "https://", "wss://", 1)
	base = strings.Replace(base, "http://", "ws://", 1)

	q := url.Values{}
	if req.ModelID != "" {
		q.Set("model_id", req.ModelID)
	}
	if req.OutputFormat != "" {
		q.Set("output_format", req.OutputFormat)
	}

	u := base + "/v1/text-to-speech/" + url.PathEscape(req.VoiceID) + "/stream-input"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}
