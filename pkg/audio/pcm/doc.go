// Package pcm provides types for working with PCM (Pulse Code Modulation)
// audio data.
//
// A Clip holds decoded mono 16-bit samples together with their sample
// rate. Duration is always derived from the sample count, never stored
// independently, so a clip can not carry a stale duration.
//
// Example usage:
//
//	clip := pcm.FromBytes(data, pcm.CanonicalRate)
//	if clip.Seconds() < 10 {
//	    // too short for enrollment
//	}
package pcm
