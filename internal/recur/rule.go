// Package recur is the recurrence engine: it models a reminder's
// recurrence rule, serializes it to the stored rule text, expands it
// into concrete occurrence dates, and resolves the single next
// occurrence used for display and sorting.
package recur

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

// DateLayout is the calendar date format used at every boundary.
const DateLayout = "2006-01-02"

// untilCompatLayout accepts UNTIL values written in the RFC 5545 basic
// form by older versions of the rule text.
const untilCompatLayout = "20060102T150405Z"

type Frequency int

const (
	None Frequency = iota
	Daily
	Weekly
	Monthly
	Yearly
)

var frequencyNames = map[Frequency]string{
	Daily:   "DAILY",
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
	Yearly:  "YEARLY",
}

var rruleFrequencies = map[Frequency]rrule.Frequency{
	Daily:   rrule.DAILY,
	Weekly:  rrule.WEEKLY,
	Monthly: rrule.MONTHLY,
	Yearly:  rrule.YEARLY,
}

// ParseFrequency maps a stored recurrence type string to a Frequency.
// Unknown values map to None.
func ParseFrequency(s string) Frequency {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAILY":
		return Daily
	case "WEEKLY":
		return Weekly
	case "MONTHLY":
		return Monthly
	case "YEARLY":
		return Yearly
	default:
		return None
	}
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return "NONE"
}

// Weekday tags appear in rule text as two-letter codes, MO..SU.
// Serialization always emits them in Monday-first order so that
// round-tripping is stable regardless of input order.
var weekdayOrder = []struct {
	code string
	day  time.Weekday
	rd   rrule.Weekday
}{
	{"MO", time.Monday, rrule.MO},
	{"TU", time.Tuesday, rrule.TU},
	{"WE", time.Wednesday, rrule.WE},
	{"TH", time.Thursday, rrule.TH},
	{"FR", time.Friday, rrule.FR},
	{"SA", time.Saturday, rrule.SA},
	{"SU", time.Sunday, rrule.SU},
}

// Rule is an immutable recurrence definition. Start is the expansion
// anchor and is carried by the reminder record, not by the rule text;
// a Rule reconstructed with Parse has a zero Start until the caller
// attaches one with WithStart.
type Rule struct {
	Freq       Frequency
	Interval   int
	Start      time.Time
	Until      time.Time      // zero means unbounded
	ByWeekday  []time.Weekday // weekly rules only
	ByMonthDay int            // monthly rules only, 0 means unset
}

// DateOnly truncates an instant to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Build assembles a Rule from user-facing reminder fields. It returns
// None when freq is NONE or unsupported, or when start is missing:
// there is no recurrence to encode. Day constraints that do not apply
// to the frequency are dropped rather than rejected.
func Build(freq string, start, until *time.Time, interval int, byWeekday []string, byMonthDay int) mo.Option[Rule] {
	f := ParseFrequency(freq)
	if f == None || start == nil {
		return mo.None[Rule]()
	}
	if interval < 1 {
		interval = 1
	}

	r := Rule{
		Freq:     f,
		Interval: interval,
		Start:    DateOnly(*start),
	}
	if until != nil {
		r.Until = DateOnly(*until)
	}
	if f == Weekly && len(byWeekday) > 0 {
		days, ok := parseWeekdayCodes(byWeekday)
		if !ok {
			return mo.None[Rule]()
		}
		r.ByWeekday = days
	}
	if f == Monthly && byMonthDay >= 1 && byMonthDay <= 31 {
		r.ByMonthDay = byMonthDay
	}
	return mo.Some(r)
}

// WithStart returns a copy of the rule anchored at the given date.
func (r Rule) WithStart(start time.Time) Rule {
	r.Start = DateOnly(start)
	return r
}

// String serializes the rule to the stored text format:
//
//	FREQ=<F>;INTERVAL=<n>[;UNTIL=<YYYY-MM-DD>][;BYDAY=<MO,..>][;BYMONTHDAY=<n>]
//
// Rules with frequency None serialize to the empty string.
func (r Rule) String() string {
	if r.Freq == None {
		return ""
	}

	interval := r.Interval
	if interval < 1 {
		interval = 1
	}
	parts := []string{
		"FREQ=" + r.Freq.String(),
		fmt.Sprintf("INTERVAL=%d", interval),
	}
	if !r.Until.IsZero() {
		parts = append(parts, "UNTIL="+r.Until.Format(DateLayout))
	}
	if codes := weekdayCodesOf(r.ByWeekday); len(codes) > 0 {
		parts = append(parts, "BYDAY="+strings.Join(codes, ","))
	}
	if r.ByMonthDay != 0 {
		parts = append(parts, fmt.Sprintf("BYMONTHDAY=%d", r.ByMonthDay))
	}
	return strings.Join(parts, ";")
}

// Parse is the inverse of String for the fields the text carries.
// It never fails hard: empty or malformed input yields None, so
// display paths can fall back to a zero rule while callers that care
// can still tell the difference. Unknown keys (COUNT, BYMONTH, ...)
// are ignored for forward compatibility with fuller RRULE text.
func Parse(text string) mo.Option[Rule] {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "RRULE:"))
	if text == "" {
		return mo.None[Rule]()
	}

	r := Rule{Interval: 1}
	for _, part := range strings.Split(text, ";") {
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return mo.None[Rule]()
		}
		switch strings.ToUpper(key) {
		case "FREQ":
			r.Freq = ParseFrequency(value)
			if r.Freq == None {
				return mo.None[Rule]()
			}
		case "INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return mo.None[Rule]()
			}
			r.Interval = n
		case "UNTIL":
			until, ok := parseUntil(value)
			if !ok {
				return mo.None[Rule]()
			}
			r.Until = until
		case "BYDAY":
			days, ok := parseWeekdayCodes(strings.Split(value, ","))
			if !ok {
				return mo.None[Rule]()
			}
			r.ByWeekday = days
		case "BYMONTHDAY":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 31 {
				return mo.None[Rule]()
			}
			r.ByMonthDay = n
		}
	}
	if r.Freq == None {
		return mo.None[Rule]()
	}
	return mo.Some(r)
}

// RFC5545 renders the rule in strict RFC 5545 form (UNTIL as a basic
// UTC date-time) for interchange with iCalendar consumers.
func (r Rule) RFC5545() string {
	if r.Freq == None {
		return ""
	}
	s := r.String()
	if r.Until.IsZero() {
		return s
	}
	iso := "UNTIL=" + r.Until.Format(DateLayout)
	basic := "UNTIL=" + r.Until.Format(untilCompatLayout)
	return strings.Replace(s, iso, basic, 1)
}

func parseUntil(value string) (time.Time, bool) {
	if t, err := time.ParseInLocation(DateLayout, value, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.Parse(untilCompatLayout, value); err == nil {
		return DateOnly(t), true
	}
	return time.Time{}, false
}

func parseWeekdayCodes(codes []string) ([]time.Weekday, bool) {
	seen := make(map[time.Weekday]bool)
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		matched := false
		for _, w := range weekdayOrder {
			if w.code == code {
				seen[w.day] = true
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	// Canonical Monday-first order.
	var days []time.Weekday
	for _, w := range weekdayOrder {
		if seen[w.day] {
			days = append(days, w.day)
		}
	}
	return days, true
}

func weekdayCodesOf(days []time.Weekday) []string {
	seen := make(map[time.Weekday]bool)
	for _, d := range days {
		seen[d] = true
	}
	var codes []string
	for _, w := range weekdayOrder {
		if seen[w.day] {
			codes = append(codes, w.code)
		}
	}
	return codes
}
