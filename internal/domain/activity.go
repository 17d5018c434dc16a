package domain

// ActivityType enumerates kinds of activity.
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeTask    ActivityType = "task"
	ActivityTypeEmail   ActivityType = "email"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeMeeting, ActivityTypeTask, ActivityTypeEmail:
		return true
	}
	return false
}

// ActivityStatus is either pending or done.
type ActivityStatus string

const (
	ActivityStatusPending ActivityStatus = "pendiente"
	ActivityStatusDone    ActivityStatus = "completada"
)

// Valid reports whether s is a known status.
func (s ActivityStatus) Valid() bool {
	return s == ActivityStatusPending || s == ActivityStatusDone
}

// DefaultRemindBeforeMinutes applies when an activity has a due date but no
// explicit reminder offset.
const DefaultRemindBeforeMinutes = 15

// MaxRemindBeforeMinutes caps the reminder offset at one year.
const MaxRemindBeforeMinutes = 525600

// Activity is a call, meeting, task or email, optionally due at a time and
// linked to other records.
type Activity struct {
	ID                  string
	TenantID            string
	Type                ActivityType
	Title               string
	Status              ActivityStatus
	DueDate             *int64
	RemindBeforeMinutes *int
	Notes               *string
	AccountID           *string
	ContactID           *string
	DealID              *string
	LeadID              *string
	CreatedBy           *string
	CreatedAt           int64
	UpdatedAt           int64
}
