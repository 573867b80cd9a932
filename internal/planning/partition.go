package planning

import (
	"errors"
	"sort"
	"time"
)

// ErrCrossYearInterval is returned when calendar-month partitioning is
// asked to span a year boundary. Behavior past one year is undefined in
// the domain, so it is a hard error rather than a silent generalization.
var ErrCrossYearInterval = errors.New("calendar-month partitioning cannot span a year boundary")

// PartitionByMonth groups occurrences into calendar months covering the
// closed query interval. Boundaries are first-of-month dates walked from
// the interval's first month through the month after its last; the final
// period is clipped to the interval's inclusive end. All occurrences land
// in the period's Transactions with no income split.
func PartitionByMonth(occurrences []Occurrence, interval Interval) ([]Period, error) {
	if interval.First.Year() != interval.Last.Year() {
		return nil, ErrCrossYearInterval
	}

	year := interval.First.Year()
	var boundaries []time.Time
	for month := int(interval.First.Month()); month <= int(interval.Last.Month())+1; month++ {
		boundaries = append(boundaries,
			time.Date(year+(month-1)/12, time.Month((month-1)%12+1), 1, 0, 0, 0, 0, time.UTC))
	}
	boundaries[len(boundaries)-1] = interval.Last.AddDate(0, 0, 1)

	periods := make([]Period, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		r := DateRange{Start: boundaries[i], End: boundaries[i+1]}
		periods = append(periods, Period{
			Range:        r,
			Transactions: OccurrenceSet{Occurrences: selectWithin(occurrences, r, nil)},
		})
	}
	return periods, nil
}

// PartitionByPayPeriod groups occurrences into periods anchored on income
// dates: every income date after the first opens a new period, so each pay
// period runs from a payday up to the day before the next one. The first
// period starts at the query interval's own start, whether or not an
// income falls there, and the last ends at the interval's inclusive end.
// With zero or one income a single period spans the whole interval.
func PartitionByPayPeriod(occurrences []Occurrence, interval Interval) []PayPeriod {
	incomeDates := distinctIncomeDates(occurrences)

	boundaries := []time.Time{interval.First}
	if len(incomeDates) > 1 {
		boundaries = append(boundaries, incomeDates[1:]...)
	}
	boundaries = append(boundaries, interval.Last.AddDate(0, 0, 1))

	periods := make([]PayPeriod, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		r := DateRange{Start: boundaries[i], End: boundaries[i+1]}
		income := true
		expense := false
		periods = append(periods, PayPeriod{
			Range:        r,
			Incomes:      OccurrenceSet{Occurrences: selectWithin(occurrences, r, &income)},
			Transactions: OccurrenceSet{Occurrences: selectWithin(occurrences, r, &expense)},
		})
	}
	return periods
}

// selectWithin filters occurrences to a range, optionally keeping only
// incomes (true) or only non-incomes (false).
func selectWithin(occurrences []Occurrence, r DateRange, income *bool) []Occurrence {
	var selected []Occurrence
	for _, o := range occurrences {
		if !r.Contains(o.Date) {
			continue
		}
		if income != nil && o.Income() != *income {
			continue
		}
		selected = append(selected, o)
	}
	return selected
}

func distinctIncomeDates(occurrences []Occurrence) []time.Time {
	seen := make(map[time.Time]struct{})
	var dates []time.Time
	for _, o := range occurrences {
		if !o.Income() {
			continue
		}
		if _, ok := seen[o.Date]; ok {
			continue
		}
		seen[o.Date] = struct{}{}
		dates = append(dates, o.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
