package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// FFmpeg transcodes audio by invoking an external ffmpeg binary.
type FFmpeg struct {
	// Path is the ffmpeg executable. Empty means "ffmpeg" from $PATH.
	Path string
}

var _ Transcoder = (*FFmpeg)(nil)

// NewFFmpeg creates a transcoder for the given ffmpeg binary path.
func NewFFmpeg(path string) *FFmpeg {
	return &FFmpeg{Path: path}
}

func (f *FFmpeg) binary() string {
	if f.Path != "" {
		return f.Path
	}
	return "ffmpeg"
}

// Transcode writes src to a scratch file, runs ffmpeg, and reads the
// result back. Scratch files are removed on every exit path; ffmpeg
// needs a seekable input for mp4-family containers, so piping is not an
// option.
func (f *FFmpeg) Transcode(ctx context.Context, src []byte, srcFormat string, spec Spec) ([]byte, error) {
	dir, err := os.MkdirTemp("", "evermore-transcode-*")
	if err != nil {
		return nil, fmt.Errorf("transcode: scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in."+extension(srcFormat))
	out := filepath.Join(dir, "out."+spec.Format)

	if err := os.WriteFile(in, src, 0o600); err != nil {
		return nil, fmt.Errorf("transcode: write input: %w", err)
	}

	args := buildArgs(in, out, srcFormat, spec)
	cmd := exec.CommandContext(ctx, f.binary(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: ffmpeg: %s: %s", ErrFormat, err, firstLine(stderr.Bytes()))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("transcode: read output: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced empty output", ErrFormat)
	}
	return data, nil
}

// buildArgs assembles the ffmpeg invocation for a transcode.
func buildArgs(in, out, srcFormat string, spec Spec) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if fmt := demuxer(srcFormat); fmt != "" {
		args = append(args, "-f", fmt)
	}
	args = append(args, "-i", in, "-vn")
	if spec.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(spec.Channels))
	}
	if spec.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(spec.SampleRate))
	}
	switch spec.Format {
	case "wav":
		args = append(args, "-acodec", "pcm_s16le")
	case "mp3":
		args = append(args, "-acodec", "libmp3lame")
		if spec.Bitrate != "" {
			args = append(args, "-b:a", spec.Bitrate)
		}
	}
	return append(args, out)
}

// demuxer maps a declared source format to an ffmpeg demuxer name.
// m4a files use the mov/mp4 demuxer, which ffmpeg picks by file
// extension, so no -f override is needed there.
func demuxer(srcFormat string) string {
	switch srcFormat {
	case "mp3", "wav", "ogg", "flac":
		return srcFormat
	}
	return ""
}

func extension(srcFormat string) string {
	if srcFormat == "" {
		return "bin"
	}
	return srcFormat
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimSpace(b))
}
