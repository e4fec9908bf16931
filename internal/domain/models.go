package domain

import "time"

type EventKind string

const (
	EventBirthday    EventKind = "birthday"
	EventAnniversary EventKind = "anniversary"
)

type ApprovalStatus string

const (
	ApprovalUnset    ApprovalStatus = "unset"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalDeclined ApprovalStatus = "declined"
)

// Employee is a roster row refreshed by the HR sync. Code is the stable HR
// identifier and never changes once assigned. A non-nil RetiredAt marks the
// employee inactive; normal flows never clear it.
type Employee struct {
	Code        string
	DisplayName string
	SlackUserID string
	HireDate    *time.Time
	BirthDate   *time.Time
	RetiredAt   *time.Time
	HRUpdatedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e Employee) Active() bool {
	return e.RetiredAt == nil
}

// ResponseRecord tracks one employee's reaction to one anniversary date.
// The (EmployeeCode, EventDate) pair is unique. Announced flips once, by the
// celebration sweep, and is terminal.
type ResponseRecord struct {
	ID           string
	EmployeeCode string
	EventDate    time.Time
	EventKind    EventKind
	Approval     ApprovalStatus
	GiftID       string
	Announced    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Gift is immutable reference data from the gift catalog.
type Gift struct {
	ID          string
	DisplayName string
	Link        string
}
