package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finplan/internal/errors"
	"finplan/internal/models"
	"finplan/internal/planning"
	"finplan/internal/recurrence"
)

// transactionService handles planned transaction business logic: creation
// and deletion of templates, and the query side that resolves the
// applicable template set, expands recurrence rules into occurrences, and
// partitions them into periods. All query computation is delegated to the
// pure functions in internal/planning over a snapshot read per call.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction validates and stores a new planned transaction. The
// recurrence rule must parse; occursOn (defaulting to now's date) is
// shifted 1000 weeks into the past and stored as the anchor date, so the
// rule also fires for past query periods.
func (s *transactionService) CreateTransaction(
	userID, accountID, scenarioID, name string,
	amount decimal.Decimal,
	currency, recurrenceRule string,
	occursOn *time.Time,
	now time.Time,
) (*models.PlannedTransaction, error) {
	if _, err := recurrence.Parse(recurrenceRule); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidRecurrenceRule, err)
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var scenario models.Scenario
	if err := s.db.Where("id = ? AND user_id = ?", scenarioID, userID).First(&scenario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScenarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	anchor := now
	if occursOn != nil {
		anchor = *occursOn
	}
	anchor = dateOf(anchor).Add(-models.AnchorShift)

	transaction := &models.PlannedTransaction{
		UserID:         userID,
		AccountID:      accountID,
		ScenarioID:     scenarioID,
		Name:           name,
		Amount:         amount,
		Currency:       currency,
		RecurrenceRule: recurrenceRule,
		AnchorDate:     anchor,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransactionByID returns a planned transaction with its tags.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.PlannedTransaction, error) {
	var transaction models.PlannedTransaction
	if err := s.db.Preload("Tags").Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes a planned transaction and its tag associations.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", transactionID).Delete(&models.TransactionTag{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// Query resolves the applicable template set for the filter, restricts it
// to the selected (or default) scenario, and, when the query carries a date
// interval, expands recurrence rules into occurrences and partitions them:
// pay periods when any occurrence in range is income, calendar months
// otherwise. Without an interval it returns the flat template set sorted by
// name. The reference instant now is only used to resolve the named
// "current_month"/"current_year" periods.
func (s *transactionService) Query(userID string, query TransactionQuery, now time.Time) (*QueryResult, error) {
	index, err := s.tagIndex(userID)
	if err != nil {
		return nil, err
	}

	if query.ScenarioID == "" {
		scenarioID, err := s.defaultScenarioID(userID)
		if err != nil {
			return nil, err
		}
		query.ScenarioID = scenarioID
	}

	templates, err := s.applicableTemplates(userID, query, index)
	if err != nil {
		return nil, err
	}
	planning.SortTemplates(templates)

	interval := resolveInterval(query, now)
	if interval == nil {
		return &QueryResult{
			TagIndex: index,
			Planned:  &planning.TransactionSet{Transactions: templates},
		}, nil
	}

	occurrences, err := planning.Expand(templates, *interval)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidRecurrenceRule, err)
	}

	income := false
	for _, o := range occurrences {
		if o.Income() {
			income = true
			break
		}
	}

	if income {
		return &QueryResult{
			TagIndex:   index,
			PayPeriods: planning.PartitionByPayPeriod(occurrences, *interval),
		}, nil
	}

	months, err := planning.PartitionByMonth(occurrences, *interval)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCrossYearSchedule, err)
	}
	return &QueryResult{TagIndex: index, Months: months}, nil
}

// applicableTemplates matches the query filter exhaustively and returns the
// scenario-restricted template set.
func (s *transactionService) applicableTemplates(userID string, query TransactionQuery, index planning.TagIndex) ([]models.PlannedTransaction, error) {
	base := s.db.Model(&models.PlannedTransaction{}).Where("planned_transactions.user_id = ?", userID)
	if query.ScenarioID != "" {
		base = base.Where("planned_transactions.scenario_id = ?", query.ScenarioID)
	}

	switch filter := query.Filter.(type) {
	case TagFilter:
		ids := planning.TransactionIDsForTags(filter.Tags, index, filter.Intersection)
		return s.findByIDs(base, ids)

	case TagSetFilter:
		if len(filter.IDs) == 0 {
			return nil, nil
		}
		set, err := s.firstTagSet(userID, filter.IDs)
		if err != nil {
			return nil, err
		}
		if set == nil {
			// Unknown tag set ids degrade to an empty match, not an error.
			return nil, nil
		}
		return s.findByIDs(base, planning.TransactionIDsForTagSet(*set, index))

	case AccountFilter:
		var templates []models.PlannedTransaction
		err := base.
			Joins("JOIN accounts ON accounts.id = planned_transactions.account_id").
			Where("accounts.id = ? AND accounts.deleted_at IS NULL", filter.AccountID).
			Find(&templates).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return templates, nil

	default: // NoFilter
		var templates []models.PlannedTransaction
		if err := base.Find(&templates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return templates, nil
	}
}

func (s *transactionService) findByIDs(base *gorm.DB, ids map[string]struct{}) ([]models.PlannedTransaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}

	var templates []models.PlannedTransaction
	if err := base.Where("planned_transactions.id IN ?", list).Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, nil
}

// firstTagSet returns the first existing tag set among the given ids,
// preserving the caller's id order, or nil when none exist.
func (s *transactionService) firstTagSet(userID string, ids []string) (*models.TransactionTagSet, error) {
	var sets []models.TransactionTagSet
	if err := s.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&sets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, id := range ids {
		for i := range sets {
			if sets[i].ID == id {
				return &sets[i], nil
			}
		}
	}
	return nil, nil
}

// defaultScenarioID returns the user's oldest scenario id, or "" when the
// user has no scenarios.
func (s *transactionService) defaultScenarioID(userID string) (string, error) {
	var scenario models.Scenario
	err := s.db.Where("user_id = ?", userID).Order("created_at").First(&scenario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenario.ID, nil
}

// tagIndex builds a fresh tag index from the user's current associations.
// Indexes are never cached across queries; tags may have changed.
func (s *transactionService) tagIndex(userID string) (planning.TagIndex, error) {
	var tags []models.TransactionTag
	err := s.db.
		Joins("JOIN planned_transactions ON planned_transactions.id = transaction_tags.transaction_id").
		Where("planned_transactions.user_id = ? AND planned_transactions.deleted_at IS NULL", userID).
		Order("transaction_tags.created_at").
		Find(&tags).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return planning.BuildTagIndex(tags), nil
}

// resolveInterval turns the query's period fields into a closed interval.
// Explicit dates win over named periods; schedule queries default to the
// current month. A nil result means a flat, un-expanded query.
func resolveInterval(query TransactionQuery, now time.Time) *planning.Interval {
	if query.StartDate != nil && query.EndDate != nil {
		return &planning.Interval{First: dateOf(*query.StartDate), Last: dateOf(*query.EndDate)}
	}

	period := query.DatePeriod
	if period == "" && query.Schedule {
		period = "current_month"
	}

	switch period {
	case "current_year":
		return &planning.Interval{
			First: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			Last:  time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	case "current_month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &planning.Interval{First: first, Last: first.AddDate(0, 1, -1)}
	default:
		return nil
	}
}

// dateOf truncates a timestamp to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
