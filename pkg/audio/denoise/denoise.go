// Package denoise suppresses stationary background noise in PCM audio
// using spectral gating: an STFT magnitude threshold estimated from the
// quietest portion of the signal, applied per frequency bin, then
// resynthesized by overlap-add.
//
// Reduce is pure and deterministic for a fixed input, and always
// preserves the sample count and sample rate of the input clip.
package denoise

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/evermore-ai/evermore/pkg/audio/pcm"
)

const (
	fftSize = 512
	hopSize = 128
	halfFFT = fftSize/2 + 1

	// noiseQuantile selects the per-bin magnitude treated as the
	// stationary noise floor.
	noiseQuantile = 0.10

	// gateFactor scales the floor into the gating threshold.
	gateFactor = 1.5

	// attenuation is the residual gain applied to gated bins. Hard
	// zeroing causes audible musical noise.
	attenuation = 0.1
)

// Reduce returns a denoised copy of the clip. The output has exactly
// the same sample count and sample rate as the input. Inputs shorter
// than one analysis frame are returned as an unmodified copy.
func Reduce(c *pcm.Clip) (*pcm.Clip, error) {
	if c.Empty() {
		return nil, errors.New("denoise: empty clip")
	}
	if c.Rate <= 0 {
		return nil, errors.New("denoise: invalid sample rate")
	}

	n := len(c.Samples)
	if n < fftSize {
		out := make([]int16, n)
		copy(out, c.Samples)
		return pcm.NewClip(out, c.Rate), nil
	}

	samples := c.Floats()
	hann := make([]float64, fftSize)
	for i := range hann {
		hann[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(fftSize)))
	}

	numFrames := (n-fftSize)/hopSize + 1

	// Pass 1: magnitude spectrogram.
	mags := make([][]float64, numFrames)
	phases := make([][]complex128, numFrames)
	for t := 0; t < numFrames; t++ {
		start := t * hopSize
		re := make([]float64, fftSize)
		im := make([]float64, fftSize)
		for i := 0; i < fftSize; i++ {
			re[i] = samples[start+i] * hann[i]
		}
		fft(re, im)

		mag := make([]float64, halfFFT)
		phase := make([]complex128, halfFFT)
		for i := 0; i < halfFFT; i++ {
			v := complex(re[i], im[i])
			mag[i] = cmplx.Abs(v)
			phase[i] = v
		}
		mags[t] = mag
		phases[t] = phase
	}

	threshold := noiseThreshold(mags)

	// Pass 2: gate, resynthesize, overlap-add.
	output := make([]float64, n)
	winSum := make([]float64, n)
	for t := 0; t < numFrames; t++ {
		re := make([]float64, fftSize)
		im := make([]float64, fftSize)
		for i := 0; i < halfFFT; i++ {
			gain := 1.0
			if mags[t][i] < threshold[i] {
				gain = attenuation
			}
			if cmplx.Abs(phases[t][i]) < 1e-12 {
				continue
			}
			v := cmplx.Rect(mags[t][i]*gain, cmplx.Phase(phases[t][i]))
			re[i] = real(v)
			im[i] = imag(v)
			// Mirror for the real-valued inverse transform.
			if i > 0 && i < halfFFT-1 {
				re[fftSize-i] = re[i]
				im[fftSize-i] = -im[i]
			}
		}
		ifft(re, im)

		start := t * hopSize
		for i := 0; i < fftSize; i++ {
			output[start+i] += re[i] * hann[i]
			winSum[start+i] += hann[i] * hann[i]
		}
	}

	for i := range output {
		if winSum[i] > 1e-8 {
			output[i] /= winSum[i]
		} else {
			// Tail samples never covered by a full frame keep their
			// original value so the length contract holds losslessly.
			output[i] = samples[i]
		}
	}

	return pcm.FromFloats(output, c.Rate), nil
}

// noiseThreshold estimates the per-bin gating threshold from the
// quietest observed magnitudes in each frequency bin.
func noiseThreshold(mags [][]float64) []float64 {
	numFrames := len(mags)
	threshold := make([]float64, halfFFT)
	column := make([]float64, numFrames)
	for i := 0; i < halfFFT; i++ {
		for t := 0; t < numFrames; t++ {
			column[t] = mags[t][i]
		}
		sort.Float64s(column)
		idx := int(float64(numFrames) * noiseQuantile)
		if idx >= numFrames {
			idx = numFrames - 1
		}
		threshold[i] = column[idx] * gateFactor
	}
	return threshold
}
