package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finplan/internal/errors"
	"finplan/internal/models"
)

// scenarioService handles scenario-related business logic.
type scenarioService struct {
	db *gorm.DB
}

// NewScenarioService creates a new ScenarioServicer.
func NewScenarioService(db *gorm.DB) ScenarioServicer {
	return &scenarioService{db: db}
}

// CreateScenario creates a new what-if scenario. When cloneFromID is given,
// every planned transaction of the source scenario is copied into the new
// one (fresh ids, same attributes), so the clone can diverge independently.
func (s *scenarioService) CreateScenario(userID, name string, cloneFromID *string) (*models.Scenario, error) {
	var source *models.Scenario
	if cloneFromID != nil {
		var src models.Scenario
		if err := s.db.Where("id = ? AND user_id = ?", *cloneFromID, userID).First(&src).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrScenarioNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		source = &src
	}

	scenario := &models.Scenario{
		UserID: userID,
		Name:   name,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(scenario).Error; err != nil {
			return err
		}
		if source == nil {
			return nil
		}

		var templates []models.PlannedTransaction
		if err := tx.Where("user_id = ? AND scenario_id = ?", userID, source.ID).Find(&templates).Error; err != nil {
			return err
		}
		for i := range templates {
			clone := templates[i]
			clone.Base = models.Base{}
			clone.ScenarioID = scenario.ID
			if err := tx.Create(&clone).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return scenario, nil
}

// GetUserScenarios returns all scenarios of the user, oldest first.
func (s *scenarioService) GetUserScenarios(userID string) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&scenarios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenarios, nil
}

// DefaultScenario returns the user's oldest scenario, the one queries fall
// back to when no scenario is selected. Returns nil without error when the
// user has no scenarios yet.
func (s *scenarioService) DefaultScenario(userID string) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := s.db.Where("user_id = ?", userID).Order("created_at").First(&scenario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &scenario, nil
}
