package models

import (
	"time"

	"github.com/google/uuid"
)

// SharedReminder links a reminder to an additional user it has been
// shared with. Both sides are referenced by UUID, not primary key.
type SharedReminder struct {
	SharedReminderID int64     `json:"shared_reminder_id"`
	UUID             string    `json:"shared_reminder_uuid"`
	ReminderUUID     string    `json:"shared_reminder_reminder_uuid"`
	UserUUID         string    `json:"shared_reminder_user_uuid"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
	IsDeleted        bool      `json:"is_deleted"`
}

func NewSharedReminder(reminderUUID, userUUID string) *SharedReminder {
	return &SharedReminder{
		UUID:         uuid.NewString(),
		ReminderUUID: reminderUUID,
		UserUUID:     userUUID,
	}
}
