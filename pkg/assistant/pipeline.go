package assistant

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/evermore-ai/evermore/pkg/audio/denoise"
	"github.com/evermore-ai/evermore/pkg/elevenlabs"
	"github.com/evermore-ai/evermore/pkg/persona"
)

// MinSampleDuration is the shortest enrollment recording the pipeline
// accepts. Shorter samples produce unreliable clones.
const MinSampleDuration = 10 * time.Second

// Synthesizer is the subset of the TTS provider the pipeline needs.
type Synthesizer interface {
	Convert(ctx context.Context, req *elevenlabs.SynthesisRequest) ([]byte, error)
	ConvertStream(ctx context.Context, req *elevenlabs.SynthesisRequest) iter.Seq2[[]byte, error]
	ConvertStreamWS(ctx context.Context, req *elevenlabs.SynthesisRequest) iter.Seq2[[]byte, error]
	Generate(ctx context.Context, voiceID, text, modelID string) ([]byte, error)
}

// Config carries the per-run knobs of the pipeline.
type Config struct {
	// VoiceName is the catalog name of the user's cloned voice.
	VoiceName string

	// FallbackVoiceID is used when the named voice cannot be resolved
	// or the enrollment sample cannot be prepared. Empty disables the
	// fallback, making those failures fatal.
	FallbackVoiceID string

	// SkipNoiseReduction leaves the enrollment sample as recorded.
	SkipNoiseReduction bool

	// Streaming synthesizes over the chunked endpoint and assembles
	// the audio client-side.
	Streaming bool

	// Realtime synthesizes over the websocket stream-input endpoint.
	// Takes precedence over Streaming.
	Realtime bool

	// ModelID overrides elevenlabs.ModelMultilingualV2.
	ModelID string

	// OutputFormat overrides elevenlabs.FormatMP3_44100_128.
	OutputFormat string

	// VoiceSettings override elevenlabs.DefaultVoiceSettings.
	VoiceSettings *elevenlabs.VoiceSettings

	// TempDir is where intermediate audio lands; empty means the
	// system temp directory.
	TempDir string
}

// Result describes a completed (or failed) pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// State is the final state, StateComplete on success.
	State State

	// VoiceID is the voice the reply was synthesized with.
	VoiceID string

	// Text is the generated reply.
	Text string

	// OutputPath is where the filtered reply audio was written.
	OutputPath string
}

// Pipeline turns one enrollment recording plus a user profile into a
// spoken, personalized greeting in the user's cloned voice.
//
// Stages run strictly in order: validate, resolve identity, generate
// text, synthesize, filter. Intermediate files are removed when the run
// ends, whether it completed or failed.
type Pipeline struct {
	Normalizer  *Normalizer
	Resolver    *Resolver
	Generator   persona.Generator
	Synthesizer Synthesizer
	Filter      *PostFilter

	Config Config

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Run executes the pipeline for the recording at inputPath and writes
// the spoken reply to outputPath. The returned Result is non-nil even
// on error, carrying the state the run failed in.
func (p *Pipeline) Run(ctx context.Context, inputPath string, profile persona.Profile, outputPath string) (*Result, error) {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}
	res := &Result{RunID: uuid.NewString(), OutputPath: outputPath}
	log = log.With("run_id", res.RunID)

	temps := &tempSet{}
	defer temps.release(log)

	fail := func(state State, err error) (*Result, error) {
		res.State = StateFailed
		log.Error("pipeline failed", "state", state.String(), "error", err)
		return res, &StageError{State: state, Err: err}
	}

	// Validate: normalize and check the sample is long enough.
	res.State = StateValidating
	log.Info("normalizing enrollment sample", "input", inputPath)

	voiceID := ""
	sample, err := p.prepareSample(ctx, inputPath, temps, log)
	if err != nil {
		if p.Config.FallbackVoiceID == "" || !fallbackEligible(err) {
			return fail(StateValidating, err)
		}
		log.Warn("sample preparation failed, using fallback voice",
			"voice_id", p.Config.FallbackVoiceID, "error", err)
		voiceID = p.Config.FallbackVoiceID
	}

	// Resolve identity: find or enroll the cloned voice.
	res.State = StateResolvingIdentity
	if voiceID == "" {
		voiceID, err = p.Resolver.Resolve(ctx, p.Config.VoiceName, sample.Path)
		if err != nil {
			if p.Config.FallbackVoiceID == "" {
				return fail(StateResolvingIdentity, err)
			}
			log.Warn("voice resolution failed, using fallback voice",
				"voice_id", p.Config.FallbackVoiceID, "error", err)
			voiceID = p.Config.FallbackVoiceID
		}
	}
	res.VoiceID = voiceID
	log.Info("voice resolved", "voice_id", voiceID)

	// Generate the reply text.
	res.State = StateGeneratingText
	req := persona.BuildRequest(profile)
	text, err := p.Generator.Complete(ctx, req)
	if err != nil {
		return fail(StateGeneratingText, err)
	}
	res.Text = text
	log.Info("reply generated", "text_len", len(text))

	// Synthesize speech.
	res.State = StateSynthesizing
	audio, err := p.synthesize(ctx, voiceID, text, log)
	if err != nil {
		return fail(StateSynthesizing, fmt.Errorf("%w: %w", ErrSynthesis, err))
	}
	log.Info("speech synthesized", "bytes", len(audio))

	// Filter and publish.
	res.State = StateFiltering
	if err := p.Filter.Apply(ctx, audio, outputPath); err != nil {
		return fail(StateFiltering, err)
	}

	res.State = StateComplete
	log.Info("pipeline complete", "output", outputPath)
	return res, nil
}

// prepareSample normalizes, validates and optionally denoises the
// enrollment recording, returning the canonical temp asset.
func (p *Pipeline) prepareSample(ctx context.Context, inputPath string, temps *tempSet, log *slog.Logger) (*Asset, error) {
	asset, err := p.Normalizer.Normalize(ctx, inputPath, p.Config.TempDir, temps)
	if err != nil {
		return nil, err
	}
	if d := asset.Clip.Duration(); d < MinSampleDuration {
		return nil, fmt.Errorf("%w: %s < %s", ErrTooShort, d, MinSampleDuration)
	}
	if p.Config.SkipNoiseReduction {
		return asset, nil
	}

	cleaned, err := denoise.Reduce(asset.Clip)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDenoise, err)
	}
	out, err := temps.newWAV(p.Config.TempDir, cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDenoise, err)
	}
	log.Info("noise reduction applied", "duration", cleaned.Duration())
	return out, nil
}

// fallbackEligible reports whether a sample preparation failure may be
// absorbed by the fallback voice. Validation failures are the caller's
// fault and always propagate; denoise failures are environmental.
func fallbackEligible(err error) bool {
	return errors.Is(err, ErrDenoise)
}

// synthesize produces the reply audio, retrying once over the legacy
// endpoint when the provider rejects the modern request shape.
func (p *Pipeline) synthesize(ctx context.Context, voiceID, text string, log *slog.Logger) ([]byte, error) {
	modelID := p.Config.ModelID
	if modelID == "" {
		modelID = elevenlabs.ModelMultilingualV2
	}
	format := p.Config.OutputFormat
	if format == "" {
		format = elevenlabs.FormatMP3_44100_128
	}
	settings := p.Config.VoiceSettings
	if settings == nil {
		s := elevenlabs.DefaultVoiceSettings
		settings = &s
	}
	req := &elevenlabs.SynthesisRequest{
		VoiceID:       voiceID,
		Text:          text,
		ModelID:       modelID,
		OutputFormat:  format,
		VoiceSettings: settings,
	}

	var audio []byte
	var err error
	switch {
	case p.Config.Realtime:
		audio, err = collectStream(p.Synthesizer.ConvertStreamWS(ctx, req))
	case p.Config.Streaming:
		audio, err = collectStream(p.Synthesizer.ConvertStream(ctx, req))
	default:
		audio, err = p.Synthesizer.Convert(ctx, req)
	}
	if err == nil {
		return audio, nil
	}

	if e, ok := elevenlabs.AsError(err); ok && e.IsUnsupported() {
		log.Warn("synthesis endpoint unsupported, retrying legacy endpoint", "error", err)
		return p.Synthesizer.Generate(ctx, voiceID, text, modelID)
	}
	return nil, err
}

func collectStream(seq iter.Seq2[[]byte, error]) ([]byte, error) {
	var out []byte
	for chunk, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}
