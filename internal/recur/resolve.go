package recur

import (
	"time"

	"github.com/samber/mo"

	"github.com/remindly/remindly/internal/log"
	"github.com/remindly/remindly/internal/models"
)

// Resolution is the display/sort pair computed for one reminder.
// Display is None when there is no valid next occurrence ("N/A"), in
// which case Sort carries the zero time so the reminder sorts ahead of
// every dated one. That ordering is inherited from the stored
// behavior and pinned by tests; do not change it casually.
type Resolution struct {
	Display mo.Option[time.Time]
	Sort    time.Time
}

// IsNA reports whether the reminder has no valid next occurrence.
func (res Resolution) IsNA() bool {
	return res.Display.IsAbsent()
}

// DisplayString renders the display date, or "N/A" when absent.
func (res Resolution) DisplayString() string {
	if d, ok := res.Display.Get(); ok {
		return d.Format(DateLayout)
	}
	return "N/A"
}

func notApplicable() Resolution {
	return Resolution{Display: mo.None[time.Time](), Sort: time.Time{}}
}

func resolved(date time.Time) Resolution {
	return Resolution{Display: mo.Some(date), Sort: date}
}

// Resolve determines the next occurrence of a reminder as of now.
//
// Non-recurring reminders resolve to their end date. A non-recurring
// reminder without one is a data-integrity anomaly (the end date is
// mandatory for them); it resolves to N/A and is logged rather than
// failing the caller. Recurring reminders resolve to their first
// generated occurrence after now, unless that occurrence already lies
// before today (a period-boundary artifact) or the rule is exhausted,
// both of which resolve to N/A.
func Resolve(recurrenceType, ruleText string, start, end *time.Time, now time.Time) Resolution {
	if recurrenceType == "" || recurrenceType == models.RecurrenceNone {
		if end == nil {
			log.Error("non-recurring reminder has no end date", nil)
			return notApplicable()
		}
		return resolved(DateOnly(*end))
	}

	if start == nil {
		log.Debug("recurring reminder has no start date, treating as exhausted")
		return notApplicable()
	}

	rule, ok := Parse(ruleText).Get()
	if !ok {
		log.Debug("recurring reminder has no parseable rule", "rule_text", ruleText)
		return notApplicable()
	}

	occurrences := Generate(rule.WithStart(*start), now, 1)
	if len(occurrences) == 0 {
		log.Debug("recurring reminder has no more occurrences")
		return notApplicable()
	}

	next := occurrences[0]
	today := DateOnly(now)
	if next.Before(today) {
		// Generation ran exactly at a period boundary and produced a
		// stale occurrence.
		log.Debug("next occurrence is already in the past", "occurrence", next.Format(DateLayout))
		return notApplicable()
	}
	return resolved(next)
}
