package planning

import "finplan/internal/models"

// TagIndex maps a transaction id to its tag records in association order.
// It is rebuilt from the current associations on every query and never
// cached across calls; tags may change between queries.
type TagIndex map[string][]models.TransactionTag

// BuildTagIndex regroups tag associations by transaction id.
func BuildTagIndex(tags []models.TransactionTag) TagIndex {
	index := make(TagIndex, len(tags))
	for _, tag := range tags {
		index[tag.TransactionID] = append(index[tag.TransactionID], tag)
	}
	return index
}

// Names returns the tag names of one transaction, in association order.
func (i TagIndex) Names(transactionID string) []string {
	tags := i[transactionID]
	names := make([]string, len(tags))
	for n, tag := range tags {
		names[n] = tag.Name
	}
	return names
}

// TransactionIDsForTags selects the transaction ids matching the queried
// tags. Union mode selects a transaction when any of its tags is queried;
// intersection mode requires the transaction to carry every queried tag (a
// per-transaction superset test, not a per-tag existence test). An empty
// tag query matches nothing in either mode.
func TransactionIDsForTags(tags []string, index TagIndex, intersection bool) map[string]struct{} {
	ids := make(map[string]struct{})
	if len(tags) == 0 {
		return ids
	}

	queried := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		queried[tag] = struct{}{}
	}

	for transactionID, associated := range index {
		matched := make(map[string]struct{})
		for _, tag := range associated {
			if _, ok := queried[tag.Name]; ok {
				matched[tag.Name] = struct{}{}
			}
		}
		if intersection {
			if len(matched) == len(queried) {
				ids[transactionID] = struct{}{}
			}
		} else if len(matched) > 0 {
			ids[transactionID] = struct{}{}
		}
	}
	return ids
}

// TransactionIDsForTagSet selects transaction ids matching any tag of the
// set's ordered tag list. An empty list matches nothing.
func TransactionIDsForTagSet(set models.TransactionTagSet, index TagIndex) map[string]struct{} {
	return TransactionIDsForTags(set.TagList(), index, false)
}
