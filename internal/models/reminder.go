package models

import (
	"time"

	"github.com/google/uuid"
)

// Recurrence type values stored on a reminder.
const (
	RecurrenceNone    = "NONE"
	RecurrenceDaily   = "DAILY"
	RecurrenceWeekly  = "WEEKLY"
	RecurrenceMonthly = "MONTHLY"
	RecurrenceYearly  = "YEARLY"
)

type Reminder struct {
	ReminderID     int64      `json:"reminder_id"`
	UUID           string     `json:"reminder_uuid"`
	Slug           string     `json:"reminder_url_slug"`
	Title          string     `json:"reminder_title"`
	Description    string     `json:"reminder_desc"`
	Link           string     `json:"reminder_link"`
	Type           string     `json:"reminder_type"`
	RecurrenceType string     `json:"reminder_recurrence_type"` // NONE, DAILY, WEEKLY, MONTHLY, YEARLY
	RecurrenceRule string     `json:"reminder_recurrence_rrule"`
	DateStart      *time.Time `json:"reminder_date_start"` // anchor for recurrence expansion
	DateEnd        *time.Time `json:"reminder_date_end"`   // due date when non-recurring, UNTIL mirror otherwise
	IsCompleted    bool       `json:"reminder_is_completed"`
	OwnerUUID      string     `json:"reminder_user_uuid"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
	IsDeleted      bool       `json:"is_deleted"`
}

// NewReminder returns a reminder with a fresh UUID and a NONE
// recurrence type. Remaining fields are filled in by the caller.
func NewReminder(ownerUUID string) *Reminder {
	return &Reminder{
		UUID:           uuid.NewString(),
		RecurrenceType: RecurrenceNone,
		OwnerUUID:      ownerUUID,
	}
}

// IsRecurring returns true if this reminder repeats.
func (r *Reminder) IsRecurring() bool {
	return r.RecurrenceType != "" && r.RecurrenceType != RecurrenceNone
}
