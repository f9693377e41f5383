package media

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

func TestExtractAudioOutputPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}

	dir := t.TempDir()
	video := filepath.Join(dir, "recording.mp4")
	require.NoError(t, os.WriteFile(video, []byte("video"), 0o644))

	script := filepath.Join(dir, "fake-ffmpeg")
	body := "#!/bin/sh\nfor last; do :; done\ncp \"$2\" \"$last\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	tr := &Transcoder{Binary: script}
	audio, err := tr.ExtractAudio(context.Background(), video)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "recording.wav"), audio)
	_, statErr := os.Stat(audio)
	assert.NoError(t, statErr)
}

func TestExtractAudioFailure(t *testing.T) {
	tr := &Transcoder{Binary: "false"}

	_, err := tr.ExtractAudio(context.Background(), "/nonexistent/recording.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrTranscodeFailed)
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}
