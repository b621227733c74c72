package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestBuild(t *testing.T) {
	start := datePtr(2025, time.January, 6)
	until := datePtr(2025, time.March, 1)

	t.Run("none frequency yields no rule", func(t *testing.T) {
		assert.True(t, Build("NONE", start, nil, 1, nil, 0).IsAbsent())
	})

	t.Run("unsupported frequency yields no rule", func(t *testing.T) {
		assert.True(t, Build("HOURLY", start, nil, 1, nil, 0).IsAbsent())
		assert.True(t, Build("whenever", start, nil, 1, nil, 0).IsAbsent())
	})

	t.Run("missing start yields no rule", func(t *testing.T) {
		assert.True(t, Build("DAILY", nil, nil, 1, nil, 0).IsAbsent())
	})

	t.Run("interval defaults to 1", func(t *testing.T) {
		rule, ok := Build("DAILY", start, nil, 0, nil, 0).Get()
		require.True(t, ok)
		assert.Equal(t, 1, rule.Interval)
	})

	t.Run("weekday set only applies to weekly", func(t *testing.T) {
		rule, ok := Build("DAILY", start, nil, 1, []string{"MO"}, 0).Get()
		require.True(t, ok)
		assert.Empty(t, rule.ByWeekday)

		rule, ok = Build("WEEKLY", start, nil, 1, []string{"WE", "MO"}, 0).Get()
		require.True(t, ok)
		assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, rule.ByWeekday)
	})

	t.Run("month day only applies to monthly", func(t *testing.T) {
		rule, ok := Build("WEEKLY", start, nil, 1, nil, 15).Get()
		require.True(t, ok)
		assert.Zero(t, rule.ByMonthDay)

		rule, ok = Build("MONTHLY", start, nil, 1, nil, 15).Get()
		require.True(t, ok)
		assert.Equal(t, 15, rule.ByMonthDay)
	})

	t.Run("until is carried", func(t *testing.T) {
		rule, ok := Build("YEARLY", start, until, 2, nil, 0).Get()
		require.True(t, ok)
		assert.Equal(t, *until, rule.Until)
		assert.Equal(t, 2, rule.Interval)
	})
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{
			name: "daily",
			rule: Rule{Freq: Daily, Interval: 1},
			want: "FREQ=DAILY;INTERVAL=1",
		},
		{
			name: "weekly with days and until",
			rule: Rule{Freq: Weekly, Interval: 2, Until: date(2025, time.June, 30), ByWeekday: []time.Weekday{time.Monday, time.Friday}},
			want: "FREQ=WEEKLY;INTERVAL=2;UNTIL=2025-06-30;BYDAY=MO,FR",
		},
		{
			name: "monthly with month day",
			rule: Rule{Freq: Monthly, Interval: 1, ByMonthDay: 31},
			want: "FREQ=MONTHLY;INTERVAL=1;BYMONTHDAY=31",
		},
		{
			name: "none serializes empty",
			rule: Rule{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.String())
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("empty input degrades to none", func(t *testing.T) {
		assert.True(t, Parse("").IsAbsent())
		assert.True(t, Parse("   ").IsAbsent())
	})

	t.Run("malformed input degrades to none", func(t *testing.T) {
		for _, text := range []string{
			"FREQ",
			"FREQ=SOMETIMES",
			"FREQ=DAILY;INTERVAL=zero",
			"FREQ=DAILY;INTERVAL=-1",
			"FREQ=WEEKLY;BYDAY=MO,XX",
			"FREQ=MONTHLY;BYMONTHDAY=32",
			"FREQ=DAILY;UNTIL=soon",
			"INTERVAL=2",
		} {
			assert.True(t, Parse(text).IsAbsent(), "input %q", text)
		}
	})

	t.Run("strips RRULE prefix", func(t *testing.T) {
		rule, ok := Parse("RRULE:FREQ=DAILY;INTERVAL=3").Get()
		require.True(t, ok)
		assert.Equal(t, Daily, rule.Freq)
		assert.Equal(t, 3, rule.Interval)
	})

	t.Run("interval defaults to 1 when absent", func(t *testing.T) {
		rule, ok := Parse("FREQ=YEARLY").Get()
		require.True(t, ok)
		assert.Equal(t, 1, rule.Interval)
	})

	t.Run("accepts RFC 5545 basic until", func(t *testing.T) {
		rule, ok := Parse("FREQ=DAILY;INTERVAL=1;UNTIL=20250630T000000Z").Get()
		require.True(t, ok)
		assert.Equal(t, date(2025, time.June, 30), rule.Until)
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		rule, ok := Parse("FREQ=DAILY;INTERVAL=1;COUNT=10;WKST=MO").Get()
		require.True(t, ok)
		assert.Equal(t, Daily, rule.Freq)
	})
}

func TestRoundTrip(t *testing.T) {
	rules := []Rule{
		{Freq: Daily, Interval: 1},
		{Freq: Daily, Interval: 7, Until: date(2026, time.December, 31)},
		{Freq: Weekly, Interval: 1, ByWeekday: []time.Weekday{time.Monday}},
		{Freq: Weekly, Interval: 3, Until: date(2025, time.May, 5), ByWeekday: []time.Weekday{time.Monday, time.Wednesday, time.Sunday}},
		{Freq: Monthly, Interval: 1, ByMonthDay: 1},
		{Freq: Monthly, Interval: 6, ByMonthDay: 31, Until: date(2030, time.January, 1)},
		{Freq: Yearly, Interval: 1},
	}
	for _, rule := range rules {
		t.Run(rule.String(), func(t *testing.T) {
			parsed, ok := Parse(rule.String()).Get()
			require.True(t, ok)
			assert.Equal(t, rule, parsed)
		})
	}
}

func TestRFC5545(t *testing.T) {
	rule := Rule{Freq: Weekly, Interval: 1, Until: date(2025, time.June, 30), ByWeekday: []time.Weekday{time.Friday}}
	assert.Equal(t, "FREQ=WEEKLY;INTERVAL=1;UNTIL=20250630T000000Z;BYDAY=FR", rule.RFC5545())

	unbounded := Rule{Freq: Daily, Interval: 2}
	assert.Equal(t, unbounded.String(), unbounded.RFC5545())
}
