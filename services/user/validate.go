package user

import (
	"errors"
	"regexp"

	"glowbook/services/session"
)

var (
	ErrEmailTaken      = errors.New("an account with this email already exists")
	ErrUsernameTaken   = errors.New("this username is already taken")
	ErrInvalidEmail    = errors.New("please enter a valid email address")
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters")
	ErrPasswordNoMatch = errors.New("passwords do not match")
	ErrInvalidUsername = errors.New("username must be 3-20 characters, letters, digits and underscores only")
	ErrFullNameMissing = errors.New("full name is required")
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// RegistrationInput is the raw sign-up form before validation.
type RegistrationInput struct {
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
}

// ValidateRegistration checks the form locally so obviously bad input never
// reaches the account store. Returns the first failure encountered.
func ValidateRegistration(in RegistrationInput) error {
	if in.FullName == "" {
		return ErrFullNameMissing
	}
	if !usernamePattern.MatchString(in.Username) {
		return ErrInvalidUsername
	}
	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	if len(in.Password) < 6 {
		return ErrPasswordTooWeak
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordNoMatch
	}
	return nil
}

// Params converts validated input into sign-up parameters.
func (in RegistrationInput) Params() session.SignUpParams {
	return session.SignUpParams{
		FullName: in.FullName,
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
	}
}
