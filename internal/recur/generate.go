package recur

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/remindly/remindly/internal/log"
)

// DefaultWindow is how many occurrences callers materialize when
// previewing a rule. Expansion is lazy, so open-ended daily or yearly
// rules never expand beyond the requested window.
const DefaultWindow = 5

// Generate expands the rule into at most count occurrence dates
// strictly after the given instant, in ascending order. Occurrences
// past the rule's Until bound are dropped, which can leave fewer than
// count results. Rules with frequency None expand to nothing. The
// result depends only on the arguments; "now" is whatever the caller
// passes as after.
func Generate(rule Rule, after time.Time, count int) []time.Time {
	if rule.Freq == None || count <= 0 {
		return nil
	}

	r, err := rule.compile()
	if err != nil {
		// A stored rule the engine cannot expand behaves like one
		// with no remaining occurrences.
		log.Debug("recurrence rule rejected by expansion", "rule", rule.String(), "reason", err)
		return nil
	}

	var out []time.Time
	current := after
	for len(out) < count {
		occ := r.After(current, false)
		if occ.IsZero() {
			break
		}
		if !rule.Until.IsZero() && occ.After(rule.Until) {
			break
		}
		out = append(out, DateOnly(occ))
		current = occ
	}
	return out
}

// GenerateDates is Generate with the dates rendered as YYYY-MM-DD
// strings, the format used at display boundaries.
func GenerateDates(rule Rule, after time.Time, count int) []string {
	occurrences := Generate(rule, after, count)
	dates := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, occ.Format(DateLayout))
	}
	return dates
}

func (r Rule) compile() (*rrule.RRule, error) {
	opt := rrule.ROption{
		Freq:     rruleFrequencies[r.Freq],
		Interval: r.Interval,
		Dtstart:  r.Start,
	}
	if !r.Until.IsZero() {
		opt.Until = r.Until
	}
	if len(r.ByWeekday) > 0 {
		var days []rrule.Weekday
		for _, w := range weekdayOrder {
			for _, d := range r.ByWeekday {
				if d == w.day {
					days = append(days, w.rd)
					break
				}
			}
		}
		opt.Byweekday = days
	}
	if r.ByMonthDay != 0 {
		opt.Bymonthday = []int{r.ByMonthDay}
	}
	return rrule.NewRRule(opt)
}
