package planning

import (
	"sort"

	"finplan/internal/models"
	"finplan/internal/recurrence"
)

// Expand evaluates each template's recurrence rule against the closed query
// interval and flattens the results into one date-sorted occurrence
// sequence. The sort is stable, so occurrences on the same date keep the
// template order the caller established (by name, then id). A template
// whose rule yields no dates in the interval contributes nothing; a
// template whose stored rule no longer parses surfaces the parse error.
func Expand(templates []models.PlannedTransaction, interval Interval) ([]Occurrence, error) {
	var occurrences []Occurrence
	for i := range templates {
		template := &templates[i]
		rule, err := recurrence.Parse(template.RecurrenceRule)
		if err != nil {
			return nil, err
		}
		for _, date := range rule.OccurrencesWithin(template.AnchorDate, interval.First, interval.Last) {
			occurrences = append(occurrences, Occurrence{Date: date, Transaction: template})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Date.Before(occurrences[j].Date)
	})
	return occurrences, nil
}

// SortTemplates orders templates by name, breaking ties by id. This is the
// upstream order occurrence expansion relies on for its tie-break.
func SortTemplates(templates []models.PlannedTransaction) {
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].Name != templates[j].Name {
			return templates[i].Name < templates[j].Name
		}
		return templates[i].ID < templates[j].ID
	})
}
