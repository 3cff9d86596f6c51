package elevenlabs

// Voice is an entry in the provider's voice catalog.
type Voice struct {
	// VoiceID is the provider's opaque voice identifier.
	VoiceID string `json:"voice_id"`

	// Name is the display name. The catalog treats names as a
	// case-insensitive logical unique key, enforced by lookup before
	// create rather than by the provider.
	Name string `json:"name"`

	// Category is "premade", "cloned" or "generated".
	Category string `json:"category,omitempty"`
}

// VoiceSettings control provider-side prosody for synthesis.
type VoiceSettings struct {
	// Stability in [0, 1]; lower is more expressive.
	Stability float64 `json:"stability"`

	// SimilarityBoost in [0, 1]; how closely to track the cloned voice.
	SimilarityBoost float64 `json:"similarity_boost"`

	// Style in [0, 1]; style exaggeration.
	Style float64 `json:"style"`

	// Speed multiplier around 1.0.
	Speed float64 `json:"speed"`

	// SpeakerBoost enables speaker similarity boosting.
	SpeakerBoost bool `json:"use_speaker_boost"`
}

// DefaultVoiceSettings are the assistant's standard prosody settings.
var DefaultVoiceSettings = VoiceSettings{
	Stability:       0.5,
	SimilarityBoost: 1.0,
	Style:           1.0,
	Speed:           0.9,
	SpeakerBoost:    true,
}

// SynthesisRequest is a single text-to-speech invocation.
type SynthesisRequest struct {
	// VoiceID selects the voice to synthesize with.
	VoiceID string `json:"-"`

	// Text is the text to speak.
	Text string `json:"text"`

	// ModelID is the synthesis model, e.g. "eleven_multilingual_v2".
	ModelID string `json:"model_id,omitempty"`

	// OutputFormat is the container/codec spec, e.g. "mp3_44100_128".
	// Sent as a query parameter, not in the body.
	OutputFormat string `json:"-"`

	// VoiceSettings override the voice's stored settings.
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
}

const (
	// ModelMultilingualV2 is the default synthesis model.
	ModelMultilingualV2 = "eleven_multilingual_v2"

	// FormatMP3_44100_128 is the default output format: MP3 at
	// 44.1 kHz, 128 kbps.
	FormatMP3_44100_128 = "mp3_44100_128"
)
