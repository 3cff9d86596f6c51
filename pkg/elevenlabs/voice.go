package elevenlabs

import (
	"context"
	"io"
	"net/http"
)

// VoiceService provides voice catalog and cloning operations.
type VoiceService struct {
	client *Client
}

// newVoiceService creates a new voice service.
func newVoiceService(client *Client) *VoiceService {
	return &VoiceService{client: client}
}

// List returns the provider's voice catalog.
func (s *VoiceService) List(ctx context.Context) ([]Voice, error) {
	var resp struct {
		Voices []Voice `json:"voices"`
	}
	if err := s.client.http.requestJSON(ctx, http.MethodGet, "/v1/voices", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Voices, nil
}

// Create registers a new cloned voice from an enrollment sample.
//
// The created voice is persistent in the provider's catalog; there is
// no rollback from the caller's side, so all local validation should
// run before calling this.
func (s *VoiceService) Create(ctx context.Context, name, description string, sample io.Reader, filename string) (string, error) {
	var resp struct {
		VoiceID string `json:"voice_id"`
	}

	fields := map[string]string{
		"name":        name,
		"description": description,
	}
	if err := s.client.http.uploadForm(ctx, "/v1/voices/add", sample, filename, fields, &resp); err != nil {
		return "", err
	}
	return resp.VoiceID, nil
}

// Delete removes a cloned voice from the catalog.
func (s *VoiceService) Delete(ctx context.Context, voiceID string) error {
	return s.client.http.requestJSON(ctx, http.MethodDelete, "/v1/voices/"+voiceID, nil, nil)
}
