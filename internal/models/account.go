package models

// Account represents a financial account transactions are planned against
type Account struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`

	// Relationships
	Transactions []PlannedTransaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
