package mocks

import (
	"errors"
	"sync"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
// Hashes are the password with a fixed prefix.
type MockPasswordHasher struct {
	// HashErr is returned by Hash when set
	HashErr error

	mu          sync.Mutex
	verifyCalls int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

const mockHashPrefix = "mockhash:"

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	if password == "" {
		return "", errors.New("empty password")
	}
	return mockHashPrefix + password, nil
}

// Verify implements auth.PasswordHasher and records the call.
func (m *MockPasswordHasher) Verify(password, hash string) bool {
	m.mu.Lock()
	m.verifyCalls++
	m.mu.Unlock()
	return hash == mockHashPrefix+password
}

// VerifyCalls returns how many times Verify was called.
func (m *MockPasswordHasher) VerifyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verifyCalls
}
