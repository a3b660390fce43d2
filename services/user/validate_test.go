package user

import (
	"errors"
	"testing"
)

func validInput() RegistrationInput {
	return RegistrationInput{
		FullName:        "Anna Bianchi",
		Username:        "anna_b",
		Email:           "anna@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Phone:           "333 1234567",
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegistrationInput)
		wantErr error
	}{
		{name: "valid form", mutate: func(*RegistrationInput) {}, wantErr: nil},
		{name: "missing full name", mutate: func(in *RegistrationInput) { in.FullName = "" }, wantErr: ErrFullNameMissing},
		{name: "username too short", mutate: func(in *RegistrationInput) { in.Username = "ab" }, wantErr: ErrInvalidUsername},
		{name: "username too long", mutate: func(in *RegistrationInput) { in.Username = "abcdefghijklmnopqrstu" }, wantErr: ErrInvalidUsername},
		{name: "username with spaces", mutate: func(in *RegistrationInput) { in.Username = "anna b" }, wantErr: ErrInvalidUsername},
		{name: "username with underscore ok", mutate: func(in *RegistrationInput) { in.Username = "anna_b_99" }, wantErr: nil},
		{name: "malformed email", mutate: func(in *RegistrationInput) { in.Email = "anna@" }, wantErr: ErrInvalidEmail},
		{name: "email without domain dot", mutate: func(in *RegistrationInput) { in.Email = "anna@example" }, wantErr: ErrInvalidEmail},
		{name: "short password rejected before any lookup", mutate: func(in *RegistrationInput) {
			in.Password = "abc"
			in.ConfirmPassword = "abc"
		}, wantErr: ErrPasswordTooWeak},
		{name: "password mismatch", mutate: func(in *RegistrationInput) { in.ConfirmPassword = "secret2" }, wantErr: ErrPasswordNoMatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := ValidateRegistration(in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRegistrationInputParams(t *testing.T) {
	in := validInput()
	p := in.Params()
	if p.Email != in.Email || p.Username != in.Username || p.Phone != in.Phone {
		t.Fatalf("params lost fields: %+v", p)
	}
	if p.Password != in.Password {
		t.Fatal("password not carried over")
	}
}
