package videoroom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

const recordingPageSize = 50

// Daily is the Daily.co implementation of Client. With Fallback set (or no
// API key configured) provider failures degrade to a synthesized placeholder
// room instead of an error, so sessions can start without a live provider.
type Daily struct {
	apiKey  string
	domain  string
	baseURL string

	// Fallback enables degraded operation for CreateRoom.
	Fallback bool

	http *http.Client
	log  *logrus.Logger
}

func NewDaily(apiKey, domain, baseURL string, log *logrus.Logger) *Daily {
	if baseURL == "" {
		baseURL = "https://api.daily.co/v1"
	}
	if log == nil {
		log = logrus.New()
	}
	return &Daily{
		apiKey:   apiKey,
		domain:   domain,
		baseURL:  strings.TrimRight(baseURL, "/"),
		Fallback: apiKey == "",
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

func (d *Daily) CreateRoom(ctx context.Context, name string, expiry time.Time) (*RoomInfo, error) {
	const op = "Daily.CreateRoom"

	if name == "" {
		name = "session-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	if expiry.IsZero() {
		expiry = time.Now().Add(2 * time.Hour)
	}

	if d.apiKey == "" {
		return d.placeholderRoom(name), nil
	}

	body, _ := json.Marshal(map[string]any{
		"name": name,
		"properties": map[string]any{
			"exp":                  expiry.Unix(),
			"enable_recording":     "cloud",
			"enable_transcription": true,
			"max_participants":     10,
		},
	})

	var room RoomInfo
	if err := d.do(ctx, http.MethodPost, "/rooms", bytes.NewReader(body), &room); err != nil {
		if d.Fallback {
			d.log.WithError(err).WithField("room_name", name).Warn("room creation failed, using placeholder room")
			return d.placeholderRoom(name), nil
		}
		return nil, utils.E(utils.CodeUnavailable, op, "failed to create room", err)
	}
	return &room, nil
}

func (d *Daily) placeholderRoom(name string) *RoomInfo {
	return &RoomInfo{
		ID:   uuid.NewString(),
		Name: name,
		URL:  fmt.Sprintf("https://%s/%s", d.domain, name),
	}
}

func (d *Daily) ListRecordings(ctx context.Context, roomName string) ([]RecordingInfo, error) {
	const op = "Daily.ListRecordings"

	q := url.Values{}
	q.Set("room_name", roomName)
	q.Set("limit", fmt.Sprint(recordingPageSize))

	var out struct {
		Recordings []RecordingInfo `json:"recordings"`
	}
	if err := d.do(ctx, http.MethodGet, "/recordings?"+q.Encode(), nil, &out); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to list recordings", err)
	}
	return out.Recordings, nil
}

func (d *Daily) DownloadLink(ctx context.Context, recordingID string) (string, error) {
	const op = "Daily.DownloadLink"

	var out struct {
		URL string `json:"url"`
	}
	if err := d.do(ctx, http.MethodGet, "/recordings/"+recordingID+"/access-link", nil, &out); err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to get recording access link", err)
	}
	return out.URL, nil
}

func (d *Daily) do(ctx context.Context, method, path string, body io.Reader, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s", utils.ErrProvider, method, path, resp.StatusCode, string(snippet))
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
