package models

// Scenario partitions planned transactions into independent what-if plans.
// Every planned transaction belongs to exactly one scenario, and every
// query is restricted to a single scenario before expansion.
type Scenario struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`

	// Relationships
	Transactions []PlannedTransaction `gorm:"foreignKey:ScenarioID" json:"transactions,omitempty"`
}
