package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/hirelink/hirelink-backend/internal/models"
	"gorm.io/gorm"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, username, role string) *models.User {
	if id == 0 {
		id = 1
	}
	if username == "" {
		username = "testuser"
	}
	if role == "" {
		role = models.RoleCandidate
	}

	return &models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed_password_123",
		FullName:     "Test User",
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestMessage creates a test message with default values
func (h *TestHelper) CreateTestMessage(id, conversationID, senderID uint, body string) *models.Message {
	if id == 0 {
		id = 1
	}
	if conversationID == 0 {
		conversationID = 1
	}
	if senderID == 0 {
		senderID = 1
	}
	if body == "" {
		body = "Test message"
	}

	return &models.Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       senderID,
		ClientID:       "client-test",
		Body:           body,
		CreatedAt:      time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("DATABASE_URL", "")
	os.Setenv("PASSWORD_MIN_LENGTH", "10")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("PASSWORD_MIN_LENGTH")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// GetRecordNotFoundError returns the gorm sentinel for missing rows
func GetRecordNotFoundError() error {
	return gorm.ErrRecordNotFound
}
