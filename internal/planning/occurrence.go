// Package planning holds the pure computation behind transaction queries:
// tag-based template resolution, expansion of recurrence rules into dated
// occurrences, and partitioning of occurrences into display periods. No
// function here touches the database or the clock; every call is a pure
// function of its inputs, so concurrent queries need no locking.
package planning

import (
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/models"
)

// Interval is a closed day range [First, Last], the shape query periods
// arrive in ("first of month" .. "last of month").
type Interval struct {
	First time.Time
	Last  time.Time
}

// DateRange is a half-open day range [Start, End), the shape of partitioned
// periods. An occurrence on a boundary date belongs to the period starting
// there, never the one ending there.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the date falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Occurrence is one concrete dated instance of a planned transaction,
// produced by expanding its recurrence rule within a query interval. It is
// derived and ephemeral, never persisted.
type Occurrence struct {
	Date        time.Time                  `json:"date"`
	Transaction *models.PlannedTransaction `json:"transaction"`
}

// Income reports whether the underlying transaction counts as income.
func (o Occurrence) Income() bool {
	return o.Transaction.IsIncome()
}

// TransactionSet is an ordered collection of planned transaction templates,
// returned by flat queries that carry no date interval.
type TransactionSet struct {
	Transactions []models.PlannedTransaction `json:"transactions"`
}

// Sum totals the template amounts, rounded to two decimal places.
func (s TransactionSet) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range s.Transactions {
		sum = sum.Add(t.Amount)
	}
	return sum.Round(2)
}

// OccurrenceSet is an ordered collection of occurrences within one period.
type OccurrenceSet struct {
	Occurrences []Occurrence `json:"occurrences"`
}

// Sum totals the occurrence amounts, rounded to two decimal places.
func (s OccurrenceSet) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, o := range s.Occurrences {
		sum = sum.Add(o.Transaction.Amount)
	}
	return sum.Round(2)
}

// Period is one calendar month of a partitioned query result.
type Period struct {
	Range        DateRange     `json:"date_range"`
	Transactions OccurrenceSet `json:"transactions"`
}

// PayPeriod is one income-anchored period of a partitioned query result:
// it runs from one payday up to just before the next, grouping expenses
// with the income that funds them.
type PayPeriod struct {
	Range        DateRange     `json:"date_range"`
	Incomes      OccurrenceSet `json:"incomes"`
	Transactions OccurrenceSet `json:"transactions"`
}
