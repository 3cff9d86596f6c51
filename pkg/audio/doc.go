// Package audio provides audio processing utilities.
//
// This package serves as an umbrella for audio-related sub-packages:
//
//   - pcm: PCM (Pulse Code Modulation) clip handling
//   - wav: WAV container encoding and decoding
//   - resampler: sample rate conversion
//   - transcode: container/codec conversion via an external transcoder
//   - denoise: spectral noise suppression
package audio
