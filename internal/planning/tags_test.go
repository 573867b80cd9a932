package planning

import (
	"testing"

	"finplan/internal/models"
)

func tag(transactionID, name string) models.TransactionTag {
	return models.TransactionTag{TransactionID: transactionID, Name: name}
}

func TestBuildTagIndex(t *testing.T) {
	index := BuildTagIndex([]models.TransactionTag{
		tag("t1", "house"),
		tag("t2", "debt"),
		tag("t1", "debt"),
	})

	if len(index) != 2 {
		t.Fatalf("expected 2 transactions in index, got %d", len(index))
	}
	names := index.Names("t1")
	if len(names) != 2 || names[0] != "house" || names[1] != "debt" {
		t.Errorf("expected t1 tags [house debt] in association order, got %v", names)
	}
	if len(index.Names("t3")) != 0 {
		t.Errorf("expected no tags for unknown transaction")
	}
}

func TestTransactionIDsForTags(t *testing.T) {
	index := BuildTagIndex([]models.TransactionTag{
		tag("t1", "income"),
		tag("t1", "salary"),
		tag("t2", "income"),
		tag("t3", "house"),
	})

	t.Run("union_matches_any_tag", func(t *testing.T) {
		ids := TransactionIDsForTags([]string{"income", "house"}, index, false)
		assertIDs(t, ids, "t1", "t2", "t3")
	})

	t.Run("intersection_requires_all_tags", func(t *testing.T) {
		ids := TransactionIDsForTags([]string{"income", "salary"}, index, true)
		assertIDs(t, ids, "t1")
	})

	t.Run("intersection_is_per_transaction", func(t *testing.T) {
		// Both tags match some transaction, but no single transaction
		// carries both.
		ids := TransactionIDsForTags([]string{"salary", "house"}, index, true)
		assertIDs(t, ids)
	})

	t.Run("union_contains_intersection", func(t *testing.T) {
		queries := [][]string{
			{"income"},
			{"income", "salary"},
			{"income", "house"},
			{"salary", "house"},
		}
		for _, tags := range queries {
			union := TransactionIDsForTags(tags, index, false)
			for id := range TransactionIDsForTags(tags, index, true) {
				if _, ok := union[id]; !ok {
					t.Errorf("tags %v: intersection id %s missing from union", tags, id)
				}
			}
		}
	})

	t.Run("empty_tags_match_nothing", func(t *testing.T) {
		assertIDs(t, TransactionIDsForTags(nil, index, false))
		assertIDs(t, TransactionIDsForTags(nil, index, true))
	})
}

func TestTransactionIDsForTagSet(t *testing.T) {
	index := BuildTagIndex([]models.TransactionTag{
		tag("t1", "rent"),
		tag("t2", "food"),
	})

	t.Run("union_over_set_tags", func(t *testing.T) {
		var set models.TransactionTagSet
		set.SetTagList([]string{"rent", "food"})
		assertIDs(t, TransactionIDsForTagSet(set, index), "t1", "t2")
	})

	t.Run("empty_set_matches_nothing", func(t *testing.T) {
		assertIDs(t, TransactionIDsForTagSet(models.TransactionTagSet{}, index))
	})
}

func assertIDs(t *testing.T, got map[string]struct{}, want ...string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for _, id := range want {
		if _, ok := got[id]; !ok {
			t.Errorf("expected id %s in result %v", id, got)
		}
	}
}
