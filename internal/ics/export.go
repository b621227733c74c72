// Package ics renders a user's reminders as an iCalendar feed so they
// can be subscribed to from a calendar client.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/remindly/remindly/internal/models"
	"github.com/remindly/remindly/internal/recur"
)

const productID = "-//Remindly//Reminder Export//EN"

// Export builds an iCalendar document with one all-day VEVENT per
// reminder. Recurring reminders carry their rule as an RFC 5545 RRULE
// (the stored text uses an ISO UNTIL date, which is rewritten to the
// basic UTC form calendar clients require). Reminders with no usable
// date are skipped rather than failing the export.
func Export(reminders []*models.Reminder, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, reminder := range reminders {
		start := eventStart(reminder)
		if start == nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@remindly", reminder.UUID))
		event.SetDtStampTime(now)
		event.SetSummary(reminder.Title)
		if reminder.Description != "" {
			event.SetDescription(reminder.Description)
		}
		if reminder.Link != "" {
			event.SetURL(reminder.Link)
		}
		event.SetAllDayStartAt(recur.DateOnly(*start))

		if reminder.IsRecurring() {
			if rule, ok := recur.Parse(reminder.RecurrenceRule).Get(); ok {
				event.SetProperty(ical.ComponentPropertyRrule, rule.RFC5545())
			}
		} else if reminder.DateEnd != nil {
			// All-day DTEND is exclusive.
			event.SetAllDayEndAt(recur.DateOnly(*reminder.DateEnd).AddDate(0, 0, 1))
		}
	}

	return cal.Serialize(), nil
}

func eventStart(reminder *models.Reminder) *time.Time {
	if reminder.IsRecurring() {
		return reminder.DateStart
	}
	// One-time reminders anchor on their due date.
	return reminder.DateEnd
}
