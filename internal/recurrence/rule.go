// Package recurrence evaluates the textual recurrence rules attached to
// planned transactions. The grammar is a small subset of RFC 5545 RRULE
// text: semicolon-separated KEY=VALUE pairs with FREQ in {MONTHLY,WEEKLY},
// optional BYMONTHDAY, BYDAY and INTERVAL. Unrecognized keys are ignored
// so stored rules stay forward-compatible.
package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency is the base recurrence frequency of a rule.
type Frequency string

const (
	FreqMonthly Frequency = "MONTHLY"
	FreqWeekly  Frequency = "WEEKLY"
)

// ParseError reports malformed rule text. It is fatal to the caller since
// rule text is static per transaction; there is nothing to retry.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid recurrence rule %q: %s", e.Text, e.Reason)
}

var weekdays = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

// Rule is a parsed recurrence rule. The zero value is not usable; build one
// with Parse.
type Rule struct {
	Freq     Frequency
	Interval int

	// MonthDay is the BYMONTHDAY of a monthly rule; 0 means "use the
	// anchor's day of month".
	MonthDay int

	// WeekDay is the BYDAY of a weekly rule; valid only when HasWeekDay.
	WeekDay    time.Weekday
	HasWeekDay bool
}

// Parse parses rule text. The BYMONTHDAY/BYDAY of the rule, not of the
// anchor, determines the phase of the resulting occurrence sequence.
func Parse(text string) (Rule, error) {
	rule := Rule{Interval: 1}

	if strings.TrimSpace(text) == "" {
		return Rule{}, &ParseError{Text: text, Reason: "empty rule"}
	}

	seenFreq := false
	for _, part := range strings.Split(text, ";") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return Rule{}, &ParseError{Text: text, Reason: fmt.Sprintf("component %q is not KEY=VALUE", part)}
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "FREQ":
			switch Frequency(strings.ToUpper(value)) {
			case FreqMonthly:
				rule.Freq = FreqMonthly
			case FreqWeekly:
				rule.Freq = FreqWeekly
			default:
				return Rule{}, &ParseError{Text: text, Reason: fmt.Sprintf("unsupported FREQ %q", value)}
			}
			seenFreq = true
		case "BYMONTHDAY":
			day, err := strconv.Atoi(value)
			if err != nil || day < 1 || day > 31 {
				return Rule{}, &ParseError{Text: text, Reason: fmt.Sprintf("BYMONTHDAY %q is not in 1..31", value)}
			}
			rule.MonthDay = day
		case "BYDAY":
			weekday, ok := weekdays[strings.ToUpper(value)]
			if !ok {
				return Rule{}, &ParseError{Text: text, Reason: fmt.Sprintf("unknown BYDAY %q", value)}
			}
			rule.WeekDay = weekday
			rule.HasWeekDay = true
		case "INTERVAL":
			interval, err := strconv.Atoi(value)
			if err != nil || interval < 1 {
				return Rule{}, &ParseError{Text: text, Reason: fmt.Sprintf("INTERVAL %q is not a positive integer", value)}
			}
			rule.Interval = interval
		default:
			// Forward compatibility: unknown keys are ignored.
		}
	}

	if !seenFreq {
		return Rule{}, &ParseError{Text: text, Reason: "missing FREQ"}
	}
	return rule, nil
}

// OccurrencesWithin returns the ordered dates on which the rule fires in
// the closed interval [start, end], enumerating from anchor. Both interval
// bounds are inclusive and nothing before the anchor is emitted. The result
// is a pure function of the arguments.
func (r Rule) OccurrencesWithin(anchor, start, end time.Time) []time.Time {
	anchor = dateOf(anchor)
	start = dateOf(start)
	end = dateOf(end)

	if end.Before(start) {
		return nil
	}
	if start.Before(anchor) {
		start = anchor
	}

	switch r.Freq {
	case FreqWeekly:
		return r.weeklyWithin(anchor, start, end)
	default:
		return r.monthlyWithin(anchor, start, end)
	}
}

func (r Rule) monthlyWithin(anchor, start, end time.Time) []time.Time {
	day := r.MonthDay
	if day == 0 {
		day = anchor.Day()
	}

	// Month phase is relative to the anchor's month.
	anchorIdx := monthIndex(anchor)
	idx := anchorIdx
	if startIdx := monthIndex(start); startIdx > idx {
		steps := (startIdx - anchorIdx) / r.Interval
		idx = anchorIdx + steps*r.Interval
	}

	var dates []time.Time
	for ; ; idx += r.Interval {
		year, month := idx/12, time.Month(idx%12+1)
		if day > daysIn(year, month) {
			// e.g. day 31 in February: the month simply has no occurrence.
			if monthStart(year, month).After(end) {
				break
			}
			continue
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.After(end) {
			break
		}
		if date.Before(anchor) || date.Before(start) {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

func (r Rule) weeklyWithin(anchor, start, end time.Time) []time.Time {
	weekday := anchor.Weekday()
	if r.HasWeekDay {
		weekday = r.WeekDay
	}

	// Week phase is relative to the anchor's week, weeks starting Monday.
	first := weekStart(anchor).AddDate(0, 0, mondayOffset(weekday))
	step := 7 * r.Interval
	if first.Before(start) {
		weeks := int(start.Sub(first).Hours()) / 24 / step
		first = first.AddDate(0, 0, weeks*step)
	}

	var dates []time.Time
	for date := first; !date.After(end); date = date.AddDate(0, 0, step) {
		if date.Before(anchor) || date.Before(start) {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

// dateOf truncates a timestamp to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return monthStart(year, month).AddDate(0, 1, -1).Day()
}

// weekStart returns the Monday of t's week.
func weekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -mondayOffset(t.Weekday()))
}

// mondayOffset maps a weekday to its day offset in a Monday-started week.
func mondayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}
