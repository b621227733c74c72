package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remindly/remindly/internal/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestExport(t *testing.T) {
	now := time.Date(2025, time.April, 10, 12, 0, 0, 0, time.UTC)

	oneTime := models.NewReminder("owner-1")
	oneTime.Title = "File taxes"
	oneTime.Description = "Federal and state"
	oneTime.DateEnd = datePtr(2025, time.April, 15)

	weekly := models.NewReminder("owner-1")
	weekly.Title = "Water plants"
	weekly.RecurrenceType = models.RecurrenceWeekly
	weekly.RecurrenceRule = "FREQ=WEEKLY;INTERVAL=1;UNTIL=2025-06-30;BYDAY=MO"
	weekly.DateStart = datePtr(2025, time.April, 7)

	dateless := models.NewReminder("owner-1")
	dateless.Title = "No dates at all"

	feed, err := Export([]*models.Reminder{oneTime, weekly, dateless}, now)
	require.NoError(t, err)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "SUMMARY:File taxes")
	assert.Contains(t, feed, "SUMMARY:Water plants")
	// The stored ISO UNTIL date is rewritten to the RFC 5545 basic form.
	assert.Contains(t, feed, "RRULE:FREQ=WEEKLY;INTERVAL=1;UNTIL=20250630T000000Z;BYDAY=MO")
	// A reminder with no usable date is skipped, not exported empty.
	assert.NotContains(t, feed, "No dates at all")
	assert.Equal(t, 2, strings.Count(feed, "BEGIN:VEVENT"))
}
