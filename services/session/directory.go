package session

import (
	"strings"

	"glowbook/models"
)

// adminCredentials is the static local-admin table. These accounts are
// verified without touching the remote backend.
var adminCredentials = []models.AdminCredential{
	{Username: "admin", Password: "admin", Email: "admin@example.com", FullName: "Amministratore Master"},
	{Username: "kekko934", Password: "1029229Km", Email: "kekko934.admin@example.com", FullName: "Kekko (Admin)"},
	{Username: "valentina", Password: "123456789", Email: "valentina.admin@example.com", FullName: "Valentina (Admin)"},
}

// IsAdminUser reports whether u carries admin authority: its email appears
// in the static admin table, or it carries the admin claim.
func IsAdminUser(u *models.User) bool {
	if u == nil {
		return false
	}
	if u.ClaimsAdmin {
		return true
	}
	for _, cred := range adminCredentials {
		if cred.Email == u.Email {
			return true
		}
	}
	return false
}

// lookupAdminCredential matches a username (case-insensitive) and password
// (exact) against the static table.
func lookupAdminCredential(username, password string) (models.AdminCredential, bool) {
	for _, cred := range adminCredentials {
		if strings.EqualFold(cred.Username, username) && cred.Password == password {
			return cred, true
		}
	}
	return models.AdminCredential{}, false
}

// synthesizeAdminUser builds the local admin identity persisted in the
// session store.
func synthesizeAdminUser(cred models.AdminCredential) *models.User {
	return &models.User{
		ID:          "local-admin-" + cred.Username,
		Email:       cred.Email,
		Username:    cred.Username,
		FullName:    cred.FullName,
		ClaimsAdmin: true,
	}
}
