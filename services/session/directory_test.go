package session

import (
	"testing"

	"glowbook/models"
)

func TestIsAdminUser(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{name: "nil user", user: nil, want: false},
		{name: "regular user", user: &models.User{Email: "anna@example.com"}, want: false},
		{name: "admin claim", user: &models.User{Email: "anna@example.com", ClaimsAdmin: true}, want: true},
		{name: "directory email", user: &models.User{Email: "admin@example.com"}, want: true},
		{name: "second directory email", user: &models.User{Email: "kekko934.admin@example.com"}, want: true},
		{name: "third directory email", user: &models.User{Email: "valentina.admin@example.com"}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAdminUser(tc.user); got != tc.want {
				t.Fatalf("IsAdminUser(%+v) = %v, want %v", tc.user, got, tc.want)
			}
		})
	}
}

func TestLookupAdminCredential(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "exact match", username: "admin", password: "admin", want: true},
		{name: "case-insensitive username", username: "Valentina", password: "123456789", want: true},
		{name: "password is exact", username: "kekko934", password: "1029229km", want: false},
		{name: "unknown username", username: "ghost", password: "admin", want: false},
		{name: "empty credentials", username: "", password: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := lookupAdminCredential(tc.username, tc.password); ok != tc.want {
				t.Fatalf("lookupAdminCredential(%q, %q) = %v, want %v", tc.username, tc.password, ok, tc.want)
			}
		})
	}
}

func TestSynthesizeAdminUser(t *testing.T) {
	cred, ok := lookupAdminCredential("kekko934", "1029229Km")
	if !ok {
		t.Fatal("known credential not found")
	}
	u := synthesizeAdminUser(cred)
	if u.ID != "local-admin-kekko934" {
		t.Fatalf("unexpected identity: %s", u.ID)
	}
	if !u.ClaimsAdmin {
		t.Fatal("synthesized admin lacks the admin claim")
	}
	if u.Email != "kekko934.admin@example.com" {
		t.Fatalf("unexpected email: %s", u.Email)
	}
}
