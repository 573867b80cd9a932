package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnchorShift is how far a planned transaction's anchor date is moved into
// the past at creation time, so that a rule anchored "today" still produces
// occurrences when past periods are queried.
const AnchorShift = 1000 * 7 * 24 * time.Hour // 1000 weeks

// PlannedTransaction is a recurring financial template, not a single ledger
// entry. Its recurrence rule represents a conceptually infinite set of
// concrete transactions; a positive amount is income, anything else an
// expense. Rows are immutable after creation.
type PlannedTransaction struct {
	Base
	UserID         string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID      string          `gorm:"type:uuid;not null;index" json:"account_id"`
	ScenarioID     string          `gorm:"type:uuid;not null;index" json:"scenario_id"`
	Name           string          `gorm:"not null" json:"name"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Currency       string          `gorm:"size:3;not null;default:'USD'" json:"currency"`
	RecurrenceRule string          `gorm:"not null" json:"recurrence_rule"`
	AnchorDate     time.Time       `gorm:"not null" json:"anchor_date"`

	// Relationships
	Account *Account         `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Tags    []TransactionTag `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// IsIncome reports whether the transaction counts as income (amount > 0).
func (t *PlannedTransaction) IsIncome() bool {
	return t.Amount.IsPositive()
}
