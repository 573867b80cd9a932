package services

import (
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/models"
	"finplan/internal/pagination"
	"finplan/internal/planning"
)

// QueryFilter selects which planned transactions a query applies to.
// Exactly one variant is chosen at the handler boundary and matched
// exhaustively in the transaction service.
type QueryFilter interface {
	isQueryFilter()
}

// NoFilter selects every transaction in the scenario.
type NoFilter struct{}

// TagFilter selects transactions by tag names, with union semantics by
// default or per-transaction superset semantics when Intersection is set.
type TagFilter struct {
	Tags         []string
	Intersection bool
}

// TagSetFilter selects transactions matching a stored tag set. Only the
// first existing set of the listed ids is applied; an empty id list matches
// nothing, and unknown ids degrade to an empty match rather than an error.
type TagSetFilter struct {
	IDs []string
}

// AccountFilter selects the transactions planned against one account.
type AccountFilter struct {
	AccountID string
}

func (NoFilter) isQueryFilter()      {}
func (TagFilter) isQueryFilter()     {}
func (TagSetFilter) isQueryFilter()  {}
func (AccountFilter) isQueryFilter() {}

// TransactionQuery is a decoded transaction query: a filter, an optional
// date period, and the scenario to restrict to. Schedule marks schedule
// queries, which default the date period to the current month.
type TransactionQuery struct {
	Filter     QueryFilter
	ScenarioID string
	DatePeriod string // "current_month" or "current_year"
	StartDate  *time.Time
	EndDate    *time.Time
	Schedule   bool
}

// QueryResult is the outcome of a transaction query. Planned is set for
// flat queries without a date interval; Months or PayPeriods are set for
// partitioned queries, depending on whether any occurrence in range was
// income. TagIndex is rebuilt from the current tag associations on every
// query.
type QueryResult struct {
	TagIndex   planning.TagIndex        `json:"tag_index"`
	Planned    *planning.TransactionSet `json:"transactions,omitempty"`
	Months     []planning.Period        `json:"months,omitempty"`
	PayPeriods []planning.PayPeriod     `json:"pay_periods,omitempty"`
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
}

// ScenarioServicer defines the contract for scenario-related business logic.
type ScenarioServicer interface {
	CreateScenario(userID, name string, cloneFromID *string) (*models.Scenario, error)
	GetUserScenarios(userID string) ([]models.Scenario, error)
	DefaultScenario(userID string) (*models.Scenario, error)
}

// TagServicer defines the contract for transaction tag business logic.
type TagServicer interface {
	TagTransaction(userID, transactionID, name string) (*models.TransactionTag, error)
	GetTagNames(userID string) ([]string, error)
}

// TagSetServicer defines the contract for transaction tag set business logic.
type TagSetServicer interface {
	CreateTagSet(userID, title string, tags []string) (*models.TransactionTagSet, error)
	GetUserTagSets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionTagSet], error)
}

// TransactionServicer defines the contract for planned transaction business
// logic, including the query side that expands recurrence rules and
// partitions occurrences into periods. Methods that depend on "now" take it
// explicitly so callers and tests control the reference instant.
type TransactionServicer interface {
	CreateTransaction(userID, accountID, scenarioID, name string, amount decimal.Decimal, currency, recurrenceRule string, occursOn *time.Time, now time.Time) (*models.PlannedTransaction, error)
	GetTransactionByID(userID, transactionID string) (*models.PlannedTransaction, error)
	DeleteTransaction(userID, transactionID string) error
	Query(userID string, query TransactionQuery, now time.Time) (*QueryResult, error)
}
