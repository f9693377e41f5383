package models

import "time"

const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session is one live lesson instance with a video room. Rows are never
// deleted programmatically; completion and cancellation are status changes.
type Session struct {
	ID      uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID  string  `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	SkillID *uint   `gorm:"column:skill_id;index" json:"skill_id,omitempty"`

	RoomName string `gorm:"column:room_name;type:text;uniqueIndex" json:"room_name"`
	RoomURL  string `gorm:"column:room_url;type:text" json:"room_url"`
	Status   string `gorm:"column:status;type:text" json:"status"` // active|completed|cancelled

	StartedAt time.Time  `gorm:"column:started_at;type:timestamptz" json:"started_at"`
	EndedAt   *time.Time `gorm:"column:ended_at;type:timestamptz" json:"ended_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Session) TableName() string { return "sessions" }

// SessionRecording is the one finished capture of a session. StorageURI
// stays empty until the durable upload completes; DownloadURL is the
// provider's time-limited link and must not be treated as a locator.
type SessionRecording struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SessionID uint   `gorm:"column:session_id;uniqueIndex" json:"session_id"`

	RecordingID string `gorm:"column:recording_id;type:text" json:"recording_id"`
	DownloadURL string `gorm:"column:download_url;type:text" json:"download_url"`
	StorageURI  string `gorm:"column:storage_uri;type:text" json:"storage_uri,omitempty"`

	FileSize        int64 `gorm:"column:file_size" json:"file_size,omitempty"`
	DurationSeconds int64 `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (SessionRecording) TableName() string { return "session_recordings" }

// SessionSummary holds the transcript and its generated summary. At most one
// row per session; re-running the pipeline replaces it.
type SessionSummary struct {
	ID        uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SessionID uint `gorm:"column:session_id;uniqueIndex" json:"session_id"`

	Transcript string `gorm:"column:transcript;type:text" json:"transcript"`
	Summary    string `gorm:"column:summary;type:text" json:"summary"`
	Language   string `gorm:"column:language;type:text" json:"language"` // hi|en
	IsMock     bool   `gorm:"column:is_mock" json:"is_mock"`

	GeneratedAt time.Time `gorm:"column:generated_at;type:timestamptz" json:"generated_at"`
}

func (SessionSummary) TableName() string { return "session_summaries" }

// SessionNotes is free-text user notes, last write wins.
type SessionNotes struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SessionID uint   `gorm:"column:session_id;uniqueIndex" json:"session_id"`
	Notes     string `gorm:"column:notes;type:text" json:"notes"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (SessionNotes) TableName() string { return "session_notes" }
