package models

import "strings"

// TransactionTagSet is a named, ordered group of tag names used to filter
// planned transactions. The tag list is persisted as a single comma-joined
// column; TagList/SetTagList round-trip the ordered list.
type TransactionTagSet struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Title  string `gorm:"not null" json:"title"`
	Tags   string `gorm:"not null" json:"-"`
}

// TagList splits the stored column back into the ordered tag name list.
func (s *TransactionTagSet) TagList() []string {
	if s.Tags == "" {
		return []string{}
	}
	return strings.Split(s.Tags, ",")
}

// SetTagList stores the ordered tag name list as a comma-joined column.
func (s *TransactionTagSet) SetTagList(tags []string) {
	s.Tags = strings.Join(tags, ",")
}
