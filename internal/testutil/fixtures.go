package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finplan/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account for the user.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID: userID,
		Name:   fmt.Sprintf("Test Account %d", nextID()),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestScenario creates a scenario for the user.
func CreateTestScenario(t *testing.T, db *gorm.DB, userID string) *models.Scenario {
	t.Helper()

	scenario := &models.Scenario{
		UserID: userID,
		Name:   fmt.Sprintf("Test Scenario %d", nextID()),
	}
	if err := db.Create(scenario).Error; err != nil {
		t.Fatalf("failed to create test scenario: %v", err)
	}
	return scenario
}

// CreateTestTransaction creates a planned transaction with the given name,
// amount and recurrence rule, anchored far enough in the past to cover any
// reasonable query period.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID, scenarioID, name string, amount decimal.Decimal, rule string) *models.PlannedTransaction {
	t.Helper()

	anchor := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-models.AnchorShift)
	tx := &models.PlannedTransaction{
		UserID:         userID,
		AccountID:      accountID,
		ScenarioID:     scenarioID,
		Name:           name,
		Amount:         amount,
		Currency:       "USD",
		RecurrenceRule: rule,
		AnchorDate:     anchor,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// TagTestTransaction attaches a tag to a planned transaction.
func TagTestTransaction(t *testing.T, db *gorm.DB, transactionID, name string) *models.TransactionTag {
	t.Helper()

	tag := &models.TransactionTag{
		TransactionID: transactionID,
		Name:          name,
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

// CreateTestTagSet creates a tag set holding the given ordered tag names.
func CreateTestTagSet(t *testing.T, db *gorm.DB, userID string, tags ...string) *models.TransactionTagSet {
	t.Helper()

	set := &models.TransactionTagSet{
		UserID: userID,
		Title:  fmt.Sprintf("Test Tag Set %d", nextID()),
	}
	set.SetTagList(tags)
	if err := db.Create(set).Error; err != nil {
		t.Fatalf("failed to create test tag set: %v", err)
	}
	return set
}
