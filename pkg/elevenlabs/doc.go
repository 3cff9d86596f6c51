// Package elevenlabs provides a client for the ElevenLabs voice
// cloning and speech synthesis API.
//
// The client is organized into services:
//   - Voice: catalog listing, instant voice cloning, deletion
//   - TTS: buffered synthesis, HTTP chunked streaming, websocket
//     stream-input, and the legacy call shape
//
// Example:
//
//	client := elevenlabs.NewClient(os.Getenv("ELEVENLABS_API_KEY"))
//	voices, err := client.Voice.List(ctx)
package elevenlabs
