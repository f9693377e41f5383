package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type UserProfile struct {
	UserID      string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FullName    string `gorm:"column:full_name;type:text" json:"full_name"`
	Bio         string `gorm:"column:bio;type:text" json:"bio"`
	PhoneNumber string `gorm:"column:phone_number;type:text" json:"phone_number"`
	Location    string `gorm:"column:location;type:text" json:"location"`

	TeachingHours string  `gorm:"column:teaching_hours;type:text" json:"teaching_hours"`
	HourlyRate    float64 `gorm:"column:hourly_rate;type:numeric(10,2)" json:"hourly_rate"`

	AvailableDays   pq.StringArray `gorm:"column:available_days;type:text[]" json:"available_days"`
	PreferredTime   string         `gorm:"column:preferred_time;type:text" json:"preferred_time"`   // early_morning..night|flexible
	TeachingMode    string         `gorm:"column:teaching_mode;type:text" json:"teaching_mode"`     // online|in_person|both
	ExperienceLevel string         `gorm:"column:experience_level;type:text" json:"experience_level"`

	// JSONB, free-form structure
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences,omitempty"`

	Rating        float64 `gorm:"column:rating;type:numeric(3,2)" json:"rating"`
	TotalStudents int     `gorm:"column:total_students" json:"total_students"`
	TotalLessons  int     `gorm:"column:total_lessons" json:"total_lessons"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }
