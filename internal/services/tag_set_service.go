package services

import (
	"gorm.io/gorm"

	apperrors "finplan/internal/errors"
	"finplan/internal/models"
	"finplan/internal/pagination"
)

// tagSetService handles transaction tag set business logic.
type tagSetService struct {
	db *gorm.DB
}

// NewTagSetService creates a new TagSetServicer.
func NewTagSetService(db *gorm.DB) TagSetServicer {
	return &tagSetService{db: db}
}

// CreateTagSet stores a named, ordered group of tag names. The list is
// persisted comma-joined and reproduced in order on read.
func (s *tagSetService) CreateTagSet(userID, title string, tags []string) (*models.TransactionTagSet, error) {
	set := &models.TransactionTagSet{
		UserID: userID,
		Title:  title,
	}
	set.SetTagList(tags)

	if err := s.db.Create(set).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return set, nil
}

// GetUserTagSets returns a paginated list of the user's tag sets.
func (s *tagSetService) GetUserTagSets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionTagSet], error) {
	page.Defaults()

	base := s.db.Model(&models.TransactionTagSet{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sets []models.TransactionTagSet
	if err := base.Order("title").Scopes(pagination.Paginate(page)).Find(&sets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(sets, page.Page, page.PageSize, totalItems)
	return &result, nil
}
