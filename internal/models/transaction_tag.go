package models

// TransactionTag is a categorization of a planned transaction, e.g. "debt"
// or "house". Many tags per transaction, many transactions per tag name.
type TransactionTag struct {
	Base
	TransactionID string `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Name          string `gorm:"not null;index" json:"name"`
}
