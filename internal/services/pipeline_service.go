package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillbridge/skillbridge-backend/internal/cache"
	"github.com/skillbridge/skillbridge-backend/internal/media"
	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/providers/stt"
	"github.com/skillbridge/skillbridge-backend/internal/providers/videoroom"
	pgrepo "github.com/skillbridge/skillbridge-backend/internal/repositories/postgres"
	"github.com/skillbridge/skillbridge-backend/internal/storage"
	"github.com/skillbridge/skillbridge-backend/internal/summary"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type PipelineState string

const (
	StateCreated        PipelineState = "created"
	StateRoomReady      PipelineState = "room_ready"
	StateRecordingFound PipelineState = "recording_found"
	StateDownloaded     PipelineState = "downloaded"
	StateAudioExtracted PipelineState = "audio_extracted"
	StateUploaded       PipelineState = "uploaded"
	StateTranscribed    PipelineState = "transcribed"
	StateSummarized     PipelineState = "summarized"
	StatePersisted      PipelineState = "persisted"
	StateAborted        PipelineState = "aborted"
)

// PipelineResult carries what one run produced. Transcript and Summary are
// returned to the API caller even when persistence was skipped.
type PipelineResult struct {
	State    PipelineState
	LastGood PipelineState // stage reached before an abort

	RecordingID     string
	DownloadURL     string
	StorageURI      string
	FileSize        int64
	DurationSeconds int64

	Transcript    string
	Summary       string
	SummaryIsMock bool
	Language      string

	Persisted bool
}

// RecordingPipeline sequences one recording through fetch, download, audio
// extraction, durable upload, transcription, summarization and persistence.
// Each external call is attempted once per run; callers wanting retries
// re-invoke the whole pipeline. Runs for different sessions are independent
// and may execute concurrently; the per-session lock serializes only the
// persistence step.
type RecordingPipeline interface {
	Process(ctx context.Context, roomName string, sessionID *uint, language string) (*PipelineResult, error)
}

type recordingPipeline struct {
	rooms      videoroom.Client
	transcoder *media.Transcoder
	uploader   storage.Uploader
	stt        stt.Provider
	summaries  *summary.Generator
	sessions   pgrepo.SessionRepository
	locks      cache.Locker

	transcribeTimeout time.Duration
	sttLanguage       string
	sttAlternates     []string

	http *http.Client
	log  *logrus.Logger
}

type RecordingPipelineDeps struct {
	Rooms      videoroom.Client
	Transcoder *media.Transcoder
	Uploader   storage.Uploader
	STT        stt.Provider
	Summaries  *summary.Generator
	Sessions   pgrepo.SessionRepository
	Locks      cache.Locker

	TranscribeTimeout time.Duration
	STTLanguage       string
	STTAlternates     []string

	Logger *logrus.Logger
}

func NewRecordingPipeline(d RecordingPipelineDeps) RecordingPipeline {
	if d.TranscribeTimeout <= 0 {
		d.TranscribeTimeout = 600 * time.Second
	}
	if d.STTLanguage == "" {
		d.STTLanguage = "hi-IN"
	}
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return &recordingPipeline{
		rooms:             d.Rooms,
		transcoder:        d.Transcoder,
		uploader:          d.Uploader,
		stt:               d.STT,
		summaries:         d.Summaries,
		sessions:          d.Sessions,
		locks:             d.Locks,
		transcribeTimeout: d.TranscribeTimeout,
		sttLanguage:       d.STTLanguage,
		sttAlternates:     d.STTAlternates,
		http:              &http.Client{Timeout: 5 * time.Minute},
		log:               d.Logger,
	}
}

func (p *recordingPipeline) Process(ctx context.Context, roomName string, sessionID *uint, language string) (*PipelineResult, error) {
	const op = "RecordingPipeline.Process"

	res := &PipelineResult{
		State:    StateCreated,
		Language: summary.NormalizeLanguage(language),
	}
	log := p.log.WithFields(logrus.Fields{"room_name": roomName, "op": op})

	if roomName == "" {
		return res.abort(), utils.E(utils.CodeInvalidArgument, op, "room name is required", nil)
	}
	// The room was created when the session started; nothing to do here
	// beyond entering the next stage.
	res.State = StateRoomReady

	recs, err := p.rooms.ListRecordings(ctx, roomName)
	if err != nil {
		return res.abort(), err
	}
	rec, ok := videoroom.FirstFinished(recs)
	if !ok {
		return res.abort(), utils.E(utils.CodeNotFound, op, "no finished recordings found", utils.ErrNoFinishedRecording)
	}
	res.State = StateRecordingFound
	res.RecordingID = rec.ID
	res.DurationSeconds = rec.DurationSeconds

	downloadURL, err := p.rooms.DownloadLink(ctx, rec.ID)
	if err != nil {
		return res.abort(), err
	}
	res.DownloadURL = downloadURL

	// Scoped working directory; removed on every exit path, aborts included.
	tmpDir, err := os.MkdirTemp("", "recording-*")
	if err != nil {
		return res.abort(), utils.E(utils.CodeInternal, op, "failed to create working directory", err)
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, "recording.mp4")
	size, err := p.download(ctx, downloadURL, videoPath)
	if err != nil {
		return res.abort(), utils.E(utils.CodeUnavailable, op, "failed to download recording",
			fmt.Errorf("%w: %v", utils.ErrDownloadFailed, err))
	}
	res.State = StateDownloaded
	res.FileSize = size

	audioPath, err := p.transcoder.ExtractAudio(ctx, videoPath)
	if err != nil {
		return res.abort(), err
	}
	res.State = StateAudioExtracted

	storageURI, err := p.upload(ctx, audioPath)
	if err != nil {
		return res.abort(), utils.E(utils.CodeUnavailable, op, "failed to upload audio",
			fmt.Errorf("%w: %v", utils.ErrUploadFailed, err))
	}
	res.State = StateUploaded
	res.StorageURI = storageURI

	transcript, err := p.transcribe(ctx, storageURI)
	if err != nil {
		return res.abort(), utils.E(utils.CodeUnavailable, op, "failed to transcribe audio",
			fmt.Errorf("%w: %v", utils.ErrTranscriptionFailed, err))
	}
	res.State = StateTranscribed
	res.Transcript = transcript

	// Summarization cannot abort the run: the generator absorbs backend
	// failures into the templated fallback.
	res.Summary, res.SummaryIsMock = p.summaries.Generate(ctx, transcript, res.Language)
	res.State = StateSummarized

	if err := p.persist(ctx, sessionID, res, log); err != nil {
		return res.abort(), err
	}
	return res, nil
}

func (r *PipelineResult) abort() *PipelineResult {
	r.LastGood = r.State
	r.State = StateAborted
	return r
}

func (p *recordingPipeline) download(ctx context.Context, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(f, resp.Body)
}

func (p *recordingPipeline) upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := "recordings/" + strings.ReplaceAll(uuid.NewString(), "-", "") + ".wav"
	return p.uploader.Upload(ctx, objectName, "audio/wav", f)
}

func (p *recordingPipeline) transcribe(ctx context.Context, storageURI string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.transcribeTimeout)
	defer cancel()

	transcript, err := p.stt.Transcribe(ctx, storageURI, p.sttLanguage, p.sttAlternates)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("empty transcript")
	}
	return transcript, nil
}

// persist upserts the recording and summary rows. A missing session id, or a
// session that no longer exists, skips persistence without failing the run:
// the API caller still receives the transcript and summary.
func (p *recordingPipeline) persist(ctx context.Context, sessionID *uint, res *PipelineResult, log *logrus.Entry) error {
	const op = "RecordingPipeline.persist"

	if sessionID == nil {
		log.Info("no session id supplied, skipping persistence")
		return nil
	}

	if p.locks != nil {
		release, err := p.locks.Acquire(ctx, fmt.Sprintf("lock:session:%d", *sessionID), 30*time.Second)
		if err != nil {
			return utils.E(utils.CodeInternal, op, "failed to acquire session lock", err)
		}
		defer release()
	}

	err := p.sessions.UpsertRecording(ctx, &models.SessionRecording{
		SessionID:       *sessionID,
		RecordingID:     res.RecordingID,
		DownloadURL:     res.DownloadURL,
		StorageURI:      res.StorageURI,
		FileSize:        res.FileSize,
		DurationSeconds: res.DurationSeconds,
	})
	if err == nil {
		err = p.sessions.UpsertSummary(ctx, &models.SessionSummary{
			SessionID:  *sessionID,
			Transcript: res.Transcript,
			Summary:    res.Summary,
			Language:   res.Language,
			IsMock:     res.SummaryIsMock,
		})
	}

	if errors.Is(err, utils.ErrSessionNotFound) {
		log.WithField("session_id", *sessionID).Warn("session not found, pipeline output not persisted")
		return nil
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to persist pipeline output", err)
	}

	res.Persisted = true
	res.State = StatePersisted
	return nil
}
