package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// MinPasswordLength is the minimum number of characters a password must have.
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit in bytes. Longer passwords
	// would be rejected by the hasher, so they are rejected here first.
	MaxPasswordLength = 72
)

var validate = validator.New()

// User represents a registered account. The ID is assigned by storage on creation.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PublicUser is the outward view of a User.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Public returns the view of u that is safe to send to clients.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// ValidateEmail checks that email is present and syntactically valid.
// The address is kept exactly as entered; no case folding is applied.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if err := validate.Var(email, "email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the password length policy.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateRegistration checks the credentials supplied at registration.
func ValidateRegistration(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return NewValidationError("email", "is invalid", err)
	}
	if err := ValidatePassword(password); err != nil {
		return NewValidationError("password", "does not meet the length policy", err)
	}
	return nil
}
