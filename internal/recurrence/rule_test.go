package recurrence

import (
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDates(t *testing.T, got []time.Time, want ...string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if !got[i].Equal(date(w)) {
			t.Errorf("occurrence %d: expected %s, got %s", i, w, got[i].Format("2006-01-02"))
		}
	}
}

func TestParse(t *testing.T) {
	t.Run("monthly_by_month_day", func(t *testing.T) {
		rule, err := Parse("FREQ=MONTHLY;BYMONTHDAY=15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rule.Freq != FreqMonthly {
			t.Errorf("expected monthly, got %s", rule.Freq)
		}
		if rule.MonthDay != 15 {
			t.Errorf("expected month day 15, got %d", rule.MonthDay)
		}
		if rule.Interval != 1 {
			t.Errorf("expected default interval 1, got %d", rule.Interval)
		}
	})

	t.Run("weekly_by_day", func(t *testing.T) {
		rule, err := Parse("FREQ=WEEKLY;BYDAY=FR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rule.Freq != FreqWeekly {
			t.Errorf("expected weekly, got %s", rule.Freq)
		}
		if !rule.HasWeekDay || rule.WeekDay != time.Friday {
			t.Errorf("expected Friday, got %v", rule.WeekDay)
		}
	})

	t.Run("interval", func(t *testing.T) {
		rule, err := Parse("FREQ=WEEKLY;BYDAY=MO;INTERVAL=2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rule.Interval != 2 {
			t.Errorf("expected interval 2, got %d", rule.Interval)
		}
	})

	t.Run("unknown_keys_ignored", func(t *testing.T) {
		if _, err := Parse("FREQ=MONTHLY;BYMONTHDAY=1;WKST=MO;COUNT=10"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects_malformed_text", func(t *testing.T) {
		cases := []string{
			"",
			"Test",
			"FREQ=DAILY",
			"FREQ=YEARLY;BYMONTHDAY=1",
			"BYMONTHDAY=15",
			"FREQ=MONTHLY;BYMONTHDAY=32",
			"FREQ=MONTHLY;BYMONTHDAY=0",
			"FREQ=WEEKLY;BYDAY=XX",
			"FREQ=WEEKLY;BYDAY=MO;INTERVAL=0",
			"FREQ=WEEKLY;BYDAY=MO;INTERVAL=abc",
		}
		for _, text := range cases {
			if _, err := Parse(text); err == nil {
				t.Errorf("expected parse error for %q", text)
			}
		}
	})
}

func TestMonthlyOccurrences(t *testing.T) {
	t.Run("fires_on_rule_day_each_month", func(t *testing.T) {
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=15")
		got := rule.OccurrencesWithin(date("2004-11-01"), date("2024-01-01"), date("2024-03-31"))
		assertDates(t, got, "2024-01-15", "2024-02-15", "2024-03-15")
	})

	t.Run("rule_day_beats_anchor_day", func(t *testing.T) {
		// The anchor fixes enumeration start, not the phase.
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=20")
		got := rule.OccurrencesWithin(date("2023-12-03"), date("2024-01-01"), date("2024-02-29"))
		assertDates(t, got, "2024-01-20", "2024-02-20")
	})

	t.Run("anchor_day_used_without_by_month_day", func(t *testing.T) {
		rule, _ := Parse("FREQ=MONTHLY")
		got := rule.OccurrencesWithin(date("2023-01-09"), date("2024-03-01"), date("2024-04-30"))
		assertDates(t, got, "2024-03-09", "2024-04-09")
	})

	t.Run("skips_months_without_the_day", func(t *testing.T) {
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=31")
		got := rule.OccurrencesWithin(date("2023-06-01"), date("2024-01-01"), date("2024-04-30"))
		assertDates(t, got, "2024-01-31", "2024-03-31")
	})

	t.Run("interval_phase_from_anchor_month", func(t *testing.T) {
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=1;INTERVAL=2")
		got := rule.OccurrencesWithin(date("2024-01-15"), date("2024-01-01"), date("2024-06-30"))
		// Anchor month January: March and May are in phase, the January
		// hit falls before the anchor itself.
		assertDates(t, got, "2024-03-01", "2024-05-01")
	})

	t.Run("inclusive_of_both_bounds", func(t *testing.T) {
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=1")
		got := rule.OccurrencesWithin(date("2020-01-01"), date("2024-02-01"), date("2024-03-01"))
		assertDates(t, got, "2024-02-01", "2024-03-01")
	})

	t.Run("nothing_before_anchor", func(t *testing.T) {
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=15")
		got := rule.OccurrencesWithin(date("2024-02-20"), date("2024-01-01"), date("2024-03-31"))
		assertDates(t, got, "2024-03-15")
	})

	t.Run("empty_interval", func(t *testing.T) {
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=15")
		if got := rule.OccurrencesWithin(date("2020-01-01"), date("2024-03-31"), date("2024-01-01")); len(got) != 0 {
			t.Errorf("expected no occurrences, got %v", got)
		}
	})

	t.Run("far_past_anchor", func(t *testing.T) {
		anchor := date("2024-01-10").Add(-1000 * 7 * 24 * time.Hour)
		rule, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=10")
		got := rule.OccurrencesWithin(anchor, date("2024-01-01"), date("2024-02-29"))
		assertDates(t, got, "2024-01-10", "2024-02-10")
	})
}

func TestWeeklyOccurrences(t *testing.T) {
	t.Run("fires_on_rule_weekday", func(t *testing.T) {
		rule, _ := Parse("FREQ=WEEKLY;BYDAY=FR")
		got := rule.OccurrencesWithin(date("2023-11-01"), date("2024-01-01"), date("2024-01-31"))
		assertDates(t, got, "2024-01-05", "2024-01-12", "2024-01-19", "2024-01-26")
	})

	t.Run("anchor_weekday_used_without_by_day", func(t *testing.T) {
		// 2023-11-07 is a Tuesday.
		rule, _ := Parse("FREQ=WEEKLY")
		got := rule.OccurrencesWithin(date("2023-11-07"), date("2024-01-01"), date("2024-01-16"))
		assertDates(t, got, "2024-01-02", "2024-01-09", "2024-01-16")
	})

	t.Run("interval_phase_from_anchor_week", func(t *testing.T) {
		// Anchor week starts Monday 2024-01-01; every second week.
		rule, _ := Parse("FREQ=WEEKLY;BYDAY=WE;INTERVAL=2")
		got := rule.OccurrencesWithin(date("2024-01-01"), date("2024-01-01"), date("2024-02-15"))
		assertDates(t, got, "2024-01-03", "2024-01-17", "2024-01-31", "2024-02-14")
	})

	t.Run("by_day_before_anchor_weekday_skips_first_week", func(t *testing.T) {
		// Anchor Thursday 2024-01-04: the Monday of its own week precedes
		// the anchor and is not emitted.
		rule, _ := Parse("FREQ=WEEKLY;BYDAY=MO")
		got := rule.OccurrencesWithin(date("2024-01-04"), date("2024-01-01"), date("2024-01-15"))
		assertDates(t, got, "2024-01-08", "2024-01-15")
	})

	t.Run("inclusive_of_end", func(t *testing.T) {
		rule, _ := Parse("FREQ=WEEKLY;BYDAY=WE")
		got := rule.OccurrencesWithin(date("2023-01-01"), date("2024-01-29"), date("2024-01-31"))
		assertDates(t, got, "2024-01-31")
	})
}
