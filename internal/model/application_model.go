package model

import (
	"time"

	"github.com/google/uuid"
)

// Application status values. Once persisted a record always carries one of these.
const (
	StatusApplied   = "applied"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
	StatusAccepted  = "accepted"
	StatusWithdrawn = "withdrawn"
)

var Statuses = []string{
	StatusApplied,
	StatusScreening,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusAccepted,
	StatusWithdrawn,
}

var EmploymentTypes = []string{"full-time", "part-time", "contract", "internship"}

var WorkModes = []string{"remote", "hybrid", "onsite"}

var ExperienceLevels = []string{"entry", "mid", "senior", "lead"}

type Company struct {
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
	Industry string `json:"industry,omitempty"`
	Size     string `json:"size,omitempty"`
}

type Job struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	JobURL          string   `json:"job_url,omitempty"`
	EmploymentType  string   `json:"employment_type,omitempty"`
	WorkMode        string   `json:"work_mode,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	SalaryMin       *float64 `json:"salary_min"`
	SalaryMax       *float64 `json:"salary_max"`
	Currency        string   `json:"currency,omitempty"`
}

// ApplicationDetails is the nested "application" section of a record.
type ApplicationDetails struct {
	Status        string `json:"status"`
	AppliedDate   string `json:"applied_date"` // calendar date, YYYY-MM-DD
	Source        string `json:"source,omitempty"`
	ResumeVersion string `json:"resume_version,omitempty"`
	CoverLetter   string `json:"cover_letter,omitempty"`
	ReferralName  string `json:"referral_name,omitempty"`
}

type Requirements struct {
	SkillsRequired  []string `json:"skills_required"`
	SkillsPreferred []string `json:"skills_preferred"`
	YearsExperience *int     `json:"years_experience"`
	Education       string   `json:"education,omitempty"`
}

// TimelineEvent is one entry of a record's append-only timeline.
type TimelineEvent struct {
	Date   string `json:"date"`
	Status string `json:"status,omitempty"`
	Note   string `json:"note,omitempty"`
}

type Application struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Company      Company            `gorm:"type:jsonb;serializer:json" json:"company"`
	Job          Job                `gorm:"type:jsonb;serializer:json" json:"job"`
	Details      ApplicationDetails `gorm:"type:jsonb;serializer:json" json:"application"`
	Requirements Requirements       `gorm:"type:jsonb;serializer:json" json:"requirements"`
	Timeline     []TimelineEvent    `gorm:"type:jsonb;serializer:json" json:"timeline"`
	Notes        string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}

// ParseDate accepts the wire date formats a record may carry: a bare
// calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
