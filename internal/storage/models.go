package storage

import "time"

// Form is a persisted form definition. Content holds the serialized layout.
type Form struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;not null;index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	Published   bool      `gorm:"not null;default:false" json:"published"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500;not null;default:''" json:"description"`
	Content     string    `gorm:"type:text;not null;default:'[]'" json:"content"`
	Visits      int       `gorm:"not null;default:0" json:"visits"`
	Submissions int       `gorm:"not null;default:0" json:"submissions"`
	ShareURL    string    `gorm:"size:36;not null;uniqueIndex" json:"shareURL"`

	FormSubmissions []FormSubmission `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// FormSubmission is one accepted public submission. Content holds the
// JSON-encoded submission values.
type FormSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	FormID    uint      `gorm:"not null;index" json:"formId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
}

// Stats aggregates counters over every form of a user.
type Stats struct {
	Visits         int     `json:"visits"`
	Submissions    int     `json:"submissions"`
	SubmissionRate float64 `json:"submissionRate"`
	BounceRate     float64 `json:"bounceRate"`
}
