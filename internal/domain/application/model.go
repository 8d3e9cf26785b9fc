package application

import "time"

// Status identifies the board column an application sits in.
type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusRejected     Status = "Rejected"
	StatusOffer        Status = "Offer"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusApplied, StatusInterviewing, StatusRejected, StatusOffer}

// Valid reports whether the status is a known board column.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// FieldPatch is a partial update of descriptive fields; nil pointers leave
// the stored value unchanged. Status and position are deliberately absent,
// they only move through the board service.
type FieldPatch struct {
	CompanyName   *string
	JobTitle      *string
	DateApplied   *time.Time
	JobPostingURL *string
	SalaryNotes   *string
	PrivateNotes  *string
	ContactName   *string
	ContactEmail  *string
	ReminderDate  *time.Time
}

// Application represents one tracked job application. Position is the
// zero-based index within the (owner, status) column; the board service
// keeps positions dense and is the only writer of Status and Position.
type Application struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"user_id"`
	CompanyName   string     `json:"company_name"`
	JobTitle      string     `json:"job_title"`
	Status        Status     `json:"status"`
	Position      int        `json:"position_index"`
	DateApplied   time.Time  `json:"date_applied"`
	JobPostingURL *string    `json:"job_posting_url,omitempty"`
	SalaryNotes   *string    `json:"salary_notes,omitempty"`
	PrivateNotes  *string    `json:"private_notes,omitempty"`
	ContactName   *string    `json:"contact_name,omitempty"`
	ContactEmail  *string    `json:"contact_email,omitempty"`
	ReminderDate  *time.Time `json:"reminder_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
