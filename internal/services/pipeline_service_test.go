package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/skillbridge-backend/internal/media"
	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/providers/videoroom"
	"github.com/skillbridge/skillbridge-backend/internal/summary"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

const testTranscript = "आज के सत्र में हमने पाइथन की मूल बातें सीखीं, वेरिएबल्स और लूप्स पर विस्तार से चर्चा हुई।"

// fakeTranscoder writes a shell script that copies its input to the output
// path, standing in for ffmpeg.
func fakeTranscoder(t *testing.T) *media.Transcoder {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script transcoder stub")
	}

	script := filepath.Join(t.TempDir(), "fake-ffmpeg")
	body := "#!/bin/sh\nfor last; do :; done\ncp \"$2\" \"$last\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return &media.Transcoder{Binary: script}
}

type pipelineFixture struct {
	rooms    *fakeRooms
	stt      *fakeSTT
	uploader *fakeUploader
	repo     *fakeSessionRepo
	pipeline RecordingPipeline
	srv      *httptest.Server
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not really a video"))
	}))
	t.Cleanup(srv.Close)

	f := &pipelineFixture{
		rooms: &fakeRooms{
			recordings: []videoroom.RecordingInfo{
				{ID: "rec-1", Status: "finished", DurationSeconds: 900},
			},
			downloadURL: srv.URL + "/rec-1.mp4",
		},
		stt:      &fakeSTT{transcript: testTranscript},
		uploader: &fakeUploader{},
		repo:     newFakeSessionRepo(),
		srv:      srv,
	}
	f.pipeline = NewRecordingPipeline(RecordingPipelineDeps{
		Rooms:      f.rooms,
		Transcoder: fakeTranscoder(t),
		Uploader:   f.uploader,
		STT:        f.stt,
		Summaries:  summary.New(nil, nil),
		Sessions:   f.repo,
	})
	return f
}

func TestProcessFullRun(t *testing.T) {
	f := newPipelineFixture(t)
	f.repo.addSession(&models.Session{ID: 7, RoomName: "lesson-7"})
	sessionID := uint(7)

	res, err := f.pipeline.Process(context.Background(), "lesson-7", &sessionID, "hindi")
	require.NoError(t, err)

	assert.Equal(t, StatePersisted, res.State)
	assert.True(t, res.Persisted)
	assert.Equal(t, "rec-1", res.RecordingID)
	assert.Equal(t, testTranscript, res.Transcript)
	assert.NotEmpty(t, res.Summary)
	assert.True(t, res.SummaryIsMock)
	assert.Equal(t, "hi", res.Language)
	assert.Equal(t, int64(900), res.DurationSeconds)
	assert.Contains(t, res.StorageURI, "gs://test-bucket/recordings/")

	rec := f.repo.recordings[7]
	require.NotNil(t, rec)
	assert.Equal(t, "rec-1", rec.RecordingID)
	assert.Equal(t, res.StorageURI, rec.StorageURI)

	sum := f.repo.summaries[7]
	require.NotNil(t, sum)
	assert.Equal(t, testTranscript, sum.Transcript)
	assert.True(t, sum.IsMock)
	assert.Equal(t, "hi", sum.Language)
}

func TestProcessEmptyRoomName(t *testing.T) {
	f := newPipelineFixture(t)

	res, err := f.pipeline.Process(context.Background(), "", nil, "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Equal(t, StateAborted, res.State)
	assert.Equal(t, 0, f.rooms.listCalls)
}

func TestProcessNoFinishedRecording(t *testing.T) {
	f := newPipelineFixture(t)
	f.rooms.recordings = []videoroom.RecordingInfo{
		{ID: "rec-1", Status: "in-progress"},
	}

	res, err := f.pipeline.Process(context.Background(), "lesson-7", nil, "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.ErrorIs(t, err, utils.ErrNoFinishedRecording)

	assert.Equal(t, StateAborted, res.State)
	assert.Equal(t, StateRoomReady, res.LastGood)

	// no later stage ran
	assert.Equal(t, 0, f.rooms.downloadCalls)
	assert.Equal(t, 0, f.uploader.calls)
	assert.Equal(t, 0, f.stt.calls)
}

func TestProcessPicksFirstFinishedRecording(t *testing.T) {
	f := newPipelineFixture(t)
	f.rooms.recordings = []videoroom.RecordingInfo{
		{ID: "rec-a", Status: "in-progress"},
		{ID: "rec-b", Status: "finished", DurationSeconds: 60},
		{ID: "rec-c", Status: "finished", DurationSeconds: 1200},
	}

	res, err := f.pipeline.Process(context.Background(), "lesson-7", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "rec-b", res.RecordingID)
}

func TestProcessUnknownSessionStillReturnsResult(t *testing.T) {
	f := newPipelineFixture(t)
	sessionID := uint(999) // never registered

	res, err := f.pipeline.Process(context.Background(), "lesson-7", &sessionID, "en")
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.Equal(t, StateSummarized, res.State)
	assert.Equal(t, testTranscript, res.Transcript)
	assert.NotEmpty(t, res.Summary)
	assert.Empty(t, f.repo.recordings)
	assert.Empty(t, f.repo.summaries)
}

func TestProcessNilSessionSkipsPersistence(t *testing.T) {
	f := newPipelineFixture(t)

	res, err := f.pipeline.Process(context.Background(), "lesson-7", nil, "en")
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.Equal(t, StateSummarized, res.State)
	assert.NotEmpty(t, res.Transcript)
}

func TestProcessTranscriptionFailureAborts(t *testing.T) {
	f := newPipelineFixture(t)
	f.stt.transcript = "   " // blank transcripts are treated as failure

	res, err := f.pipeline.Process(context.Background(), "lesson-7", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrTranscriptionFailed)
	assert.Equal(t, StateAborted, res.State)
	assert.Equal(t, StateUploaded, res.LastGood)
	assert.Empty(t, res.Summary, "summarization never ran")
}

func TestProcessDownloadFailureAborts(t *testing.T) {
	f := newPipelineFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()
	f.rooms.downloadURL = srv.URL + "/rec-1.mp4"

	res, err := f.pipeline.Process(context.Background(), "lesson-7", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrDownloadFailed)
	assert.Equal(t, StateAborted, res.State)
	assert.Equal(t, StateRecordingFound, res.LastGood)
	assert.Equal(t, 0, f.uploader.calls)
}

func TestProcessReRunReplacesRows(t *testing.T) {
	f := newPipelineFixture(t)
	f.repo.addSession(&models.Session{ID: 3, RoomName: "lesson-3"})
	sessionID := uint(3)

	_, err := f.pipeline.Process(context.Background(), "lesson-3", &sessionID, "hi")
	require.NoError(t, err)
	first := f.repo.recordings[3].StorageURI

	res, err := f.pipeline.Process(context.Background(), "lesson-3", &sessionID, "hi")
	require.NoError(t, err)

	assert.Len(t, f.repo.recordings, 1)
	assert.Len(t, f.repo.summaries, 1)
	assert.NotEqual(t, first, res.StorageURI, "each run uploads a fresh object")
	assert.Equal(t, res.StorageURI, f.repo.recordings[3].StorageURI)
}
