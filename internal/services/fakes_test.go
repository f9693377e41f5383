package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/providers/videoroom"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type fakeRooms struct {
	recordings  []videoroom.RecordingInfo
	listErr     error
	downloadURL string

	createCalls   int
	listCalls     int
	downloadCalls int
}

func (f *fakeRooms) CreateRoom(ctx context.Context, name string, expiry time.Time) (*videoroom.RoomInfo, error) {
	f.createCalls++
	if name == "" {
		name = "session-test"
	}
	return &videoroom.RoomInfo{ID: "room-id", Name: name, URL: "https://rooms.test/" + name}, nil
}

func (f *fakeRooms) ListRecordings(ctx context.Context, roomName string) ([]videoroom.RecordingInfo, error) {
	f.listCalls++
	return f.recordings, f.listErr
}

func (f *fakeRooms) DownloadLink(ctx context.Context, recordingID string) (string, error) {
	f.downloadCalls++
	return f.downloadURL, nil
}

type fakeSTT struct {
	transcript string
	err        error
	calls      int
}

func (f *fakeSTT) Transcribe(ctx context.Context, uri, language string, alternateLangs []string) (string, error) {
	f.calls++
	return f.transcript, f.err
}

func (f *fakeSTT) Close() error { return nil }

type fakeUploader struct {
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	f.calls++
	return "gs://test-bucket/" + objectName, nil
}

// fakeSessionRepo is an in-memory SessionRepository. Sessions must be
// registered with addSession before upserts against them succeed.
type fakeSessionRepo struct {
	mu sync.Mutex

	sessions   map[uint]*models.Session
	recordings map[uint]*models.SessionRecording
	summaries  map[uint]*models.SessionSummary
	notes      map[uint]string

	upsertSummaryErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions:   map[uint]*models.Session{},
		recordings: map[uint]*models.SessionRecording{},
		summaries:  map[uint]*models.SessionSummary{},
		notes:      map[uint]string{},
	}
}

func (f *fakeSessionRepo) addSession(s *models.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = s
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = uint(len(f.sessions) + 1)
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) GetByRoomName(ctx context.Context, roomName string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.RoomName == roomName {
			cp := *s
			return &cp, nil
		}
	}
	return nil, utils.ErrSessionNotFound
}

func (f *fakeSessionRepo) End(ctx context.Context, id uint, endedAt time.Time, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return utils.ErrSessionNotFound
	}
	s.Status = status
	s.EndedAt = &endedAt
	return nil
}

func (f *fakeSessionRepo) UpsertRecording(ctx context.Context, rec *models.SessionRecording) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[rec.SessionID]; !ok {
		return utils.ErrSessionNotFound
	}
	f.recordings[rec.SessionID] = rec
	return nil
}

func (f *fakeSessionRepo) UpsertSummary(ctx context.Context, sum *models.SessionSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertSummaryErr != nil {
		return f.upsertSummaryErr
	}
	if _, ok := f.sessions[sum.SessionID]; !ok {
		return utils.ErrSessionNotFound
	}
	f.summaries[sum.SessionID] = sum
	return nil
}

func (f *fakeSessionRepo) UpsertNotes(ctx context.Context, sessionID uint, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[sessionID]; !ok {
		return utils.ErrSessionNotFound
	}
	f.notes[sessionID] = notes
	return nil
}

func (f *fakeSessionRepo) GetSummary(ctx context.Context, sessionID uint) (*models.SessionSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum, ok := f.summaries[sessionID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return sum, nil
}

func (f *fakeSessionRepo) GetNotes(ctx context.Context, sessionID uint) (*models.SessionNotes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[sessionID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &models.SessionNotes{SessionID: sessionID, Notes: n}, nil
}
