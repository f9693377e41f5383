package videoroom

import (
	"context"
	"time"
)

type RoomInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type RecordingInfo struct {
	ID              string `json:"id"`
	Status          string `json:"status"` // "finished" when ready for download
	DurationSeconds int64  `json:"duration"`
}

// Client talks to the video-room provider. CreateRoom generates a random
// room slug when name is empty. ListRecordings returns provider order,
// flattened up to one provider page.
type Client interface {
	CreateRoom(ctx context.Context, name string, expiry time.Time) (*RoomInfo, error)
	ListRecordings(ctx context.Context, roomName string) ([]RecordingInfo, error)
	DownloadLink(ctx context.Context, recordingID string) (string, error)
}

// FirstFinished picks the recording to process: the first entry in provider
// order whose status is "finished". Provider order is also the tie-break
// when several finished recordings exist.
func FirstFinished(recs []RecordingInfo) (RecordingInfo, bool) {
	for _, r := range recs {
		if r.Status == "finished" {
			return r, true
		}
	}
	return RecordingInfo{}, false
}
