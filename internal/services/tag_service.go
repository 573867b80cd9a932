package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finplan/internal/errors"
	"finplan/internal/models"
)

// tagService handles transaction tag business logic.
type tagService struct {
	db *gorm.DB
}

// NewTagService creates a new TagServicer.
func NewTagService(db *gorm.DB) TagServicer {
	return &tagService{db: db}
}

// TagTransaction attaches a tag to one of the user's planned transactions.
func (s *tagService) TagTransaction(userID, transactionID, name string) (*models.TransactionTag, error) {
	var transaction models.PlannedTransaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	tag := &models.TransactionTag{
		TransactionID: transactionID,
		Name:          name,
	}
	if err := s.db.Create(tag).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tag, nil
}

// GetTagNames returns the distinct tag names used across the user's
// transactions, ordered alphabetically.
func (s *tagService) GetTagNames(userID string) ([]string, error) {
	var names []string
	err := s.db.Model(&models.TransactionTag{}).
		Distinct("transaction_tags.name").
		Joins("JOIN planned_transactions ON planned_transactions.id = transaction_tags.transaction_id").
		Where("planned_transactions.user_id = ? AND planned_transactions.deleted_at IS NULL", userID).
		Order("transaction_tags.name").
		Pluck("transaction_tags.name", &names).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return names, nil
}
