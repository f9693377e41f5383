package models

import "time"

type Skill struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:name;type:text;uniqueIndex" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Category    string `gorm:"column:category;type:text;index" json:"category"` // technology|language|arts|music|sports|cooking|business|other

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Skill) TableName() string { return "skills" }

// TeachableSkill links an educator's profile to a skill they offer.
type TeachableSkill struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID  string `gorm:"column:user_id;type:uuid;index:idx_teachable_user_skill,unique" json:"user_id"`
	SkillID uint   `gorm:"column:skill_id;index:idx_teachable_user_skill,unique" json:"skill_id"`

	ProficiencyLevel string `gorm:"column:proficiency_level;type:text" json:"proficiency_level"` // beginner|intermediate|advanced|expert
	ExperienceYears  int    `gorm:"column:experience_years" json:"experience_years"`
	Description      string `gorm:"column:description;type:text" json:"description"`

	Skill *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (TeachableSkill) TableName() string { return "teachable_skills" }

const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestRejected  = "rejected"
	RequestCompleted = "completed"
)

// SkillRequest is a learner's offer to an educator, either paid or bartered
// against a skill the learner can teach back.
type SkillRequest struct {
	ID               uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LearnerID        string `gorm:"column:learner_id;type:uuid;index" json:"learner_id"`
	EducatorID       string `gorm:"column:educator_id;type:uuid;index" json:"educator_id"`
	TeachableSkillID uint   `gorm:"column:teachable_skill_id;index" json:"teachable_skill_id"`

	IsPaymentOffer bool    `gorm:"column:is_payment_offer" json:"is_payment_offer"`
	OfferedAmount  float64 `gorm:"column:offered_amount;type:numeric(10,2)" json:"offered_amount,omitempty"`
	OfferedSkill   string  `gorm:"column:offered_skill;type:text" json:"offered_skill,omitempty"`

	Message string `gorm:"column:message;type:text" json:"message"`
	Status  string `gorm:"column:status;type:text;index" json:"status"` // pending|accepted|rejected|completed

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (SkillRequest) TableName() string { return "skill_requests" }
