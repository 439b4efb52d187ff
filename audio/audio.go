package audio

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ambersariya/tubechord/model"
	"github.com/pkg/errors"
)

// Processor downloads audio from YouTube via the yt-dlp binary and
// extracts chroma STFT features for chord analysis. Callers must invoke
// Cleanup (normally deferred) so temp downloads are removed on every
// exit path.
type Processor struct {
	HopLength int
	FFTSize   int

	// Progress, when set, receives decode progress in samples.
	Progress func(done int, total int)

	tempDirs []string
}

func NewProcessor() *Processor {
	return &Processor{HopLength: 512, FFTSize: 2048}
}

// VideoTitle fetches the video title without downloading any media.
func (p *Processor) VideoTitle(url string) (string, error) {
	out, err := exec.Command("yt-dlp",
		"--quiet", "--no-warnings",
		"--skip-download",
		"--print", "title",
		url,
	).Output()
	if err != nil {
		return "", errors.Wrap(err, "fetching video title")
	}

	title := strings.TrimSpace(string(out))
	if title == "" {
		return "", errors.New("yt-dlp returned an empty title")
	}
	return title, nil
}

// Download fetches the audio of a YouTube URL into a temp dir and
// converts it to WAV, returning the WAV path.
func (p *Processor) Download(url string) (string, error) {
	dir, err := os.MkdirTemp("", "tubechord_")
	if err != nil {
		return "", errors.Wrap(err, "creating temp dir")
	}
	p.tempDirs = append(p.tempDirs, dir)

	stem := filepath.Join(dir, "audio")
	wavPath := stem + ".wav"

	var stderr bytes.Buffer
	cmd := exec.Command("yt-dlp",
		"--quiet", "--no-warnings",
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "wav",
		"--output", stem+".%(ext)s",
		url,
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "downloading audio (stderr: %s)", stderr.String())
	}

	if _, err := os.Stat(wavPath); err != nil {
		return "", errors.Errorf("expected WAV file not found at %q; ensure ffmpeg is installed and on PATH", wavPath)
	}
	return wavPath, nil
}

// Process runs the full acquisition pipeline for a URL: download, then
// chroma extraction.
func (p *Processor) Process(url string) (model.Chroma, error) {
	wavPath, err := p.Download(url)
	if err != nil {
		return model.Chroma{}, err
	}
	return p.ExtractChroma(wavPath)
}

// Cleanup removes every temp dir created during processing.
func (p *Processor) Cleanup() {
	for _, dir := range p.tempDirs {
		os.RemoveAll(dir)
	}
	p.tempDirs = p.tempDirs[:0]
}
