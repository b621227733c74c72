// Package alert decides which reminders are due soon and emits webhook
// notifications for them.
package alert

import (
	"fmt"
	"time"

	"github.com/remindly/remindly/internal/notify"
	"github.com/remindly/remindly/internal/recur"
)

// DefaultThresholdDays is how many days before a due date an alert
// starts firing.
const DefaultThresholdDays = 5

// Scope labels distinguish a user's own reminders from ones shared
// with them in the notification text.
const (
	ScopeOwned  = "Your"
	ScopeShared = "Shared"
)

// ShouldAlert reports whether a reminder with the given sort date is
// due soon. It never fires for the no-occurrence sentinel (zero time),
// for overdue dates, or for dates more than thresholdDays out.
func ShouldAlert(sortDate, today time.Time, thresholdDays int) bool {
	if sortDate.IsZero() {
		return false
	}
	due := recur.DateOnly(sortDate)
	day := recur.DateOnly(today)
	if due.Before(day) {
		return false
	}
	days := int(due.Sub(day).Hours() / 24)
	return days <= thresholdDays
}

// BuildNotification produces the webhook payload for a due-soon
// reminder.
func BuildNotification(scope, title string, due time.Time) notify.Payload {
	return notify.Payload{
		Text: fmt.Sprintf("%s reminder '%s' due %s is approaching", scope, title, due.Format(recur.DateLayout)),
	}
}
