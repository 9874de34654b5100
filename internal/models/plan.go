package models

import "time"

// PlanStatus tracks where a plan is in the wizard lifecycle
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusGenerated PlanStatus = "generated"
)

// Plan is a stored financial plan owned by a user. Draft holds the sealed
// wizard state and DraftTag its integrity tag; only the service opens them.
type Plan struct {
	ID          string            `json:"id"`
	UserID      int64             `json:"user_id"`
	Status      PlanStatus        `json:"status"`
	Draft       string            `json:"-"`
	DraftTag    string            `json:"-"`
	Profile     *FinancialProfile `json:"profile,omitempty"`
	Steps       map[string]bool   `json:"steps"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	GeneratedAt *time.Time        `json:"generated_at,omitempty"`
}

// PlanReminder is a plan whose analysis is due for review
type PlanReminder struct {
	PlanID      string    `json:"plan_id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	GeneratedAt time.Time `json:"generated_at"`
	Score       int       `json:"score"`
}
