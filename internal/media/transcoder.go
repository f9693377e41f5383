package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

// Transcoder extracts a single-channel 16 kHz PCM WAV track from a video
// file by shelling out to ffmpeg. A non-zero exit is terminal for the run:
// the media is almost certainly malformed, so there is no retry.
type Transcoder struct {
	Binary string // defaults to "ffmpeg"
}

func NewTranscoder() *Transcoder {
	return &Transcoder{Binary: "ffmpeg"}
}

func (t *Transcoder) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	const op = "Transcoder.ExtractAudio"

	bin := t.Binary
	if bin == "" {
		bin = "ffmpeg"
	}

	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"

	cmd := exec.CommandContext(ctx, bin,
		"-i", videoPath,
		"-ac", "1", // mono
		"-ar", "16000", // 16 kHz
		"-y",
		audioPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", utils.E(utils.CodeInternal, op, "ffmpeg failed",
			fmt.Errorf("%w: %v: %s", utils.ErrTranscodeFailed, err, tail(stderr.String(), 512)))
	}
	return audioPath, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
