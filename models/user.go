package models

import "time"

// User is a registered client of the salon. The same shape also carries the
// synthesized local-admin identity, in which case ClaimsAdmin is set and no
// database record backs it.
type User struct {
	ID               string     `bson:"id" json:"id"`
	Email            string     `bson:"email" json:"email"`
	Username         string     `bson:"username" json:"username"`
	FullName         string     `bson:"full_name" json:"fullName"`
	Phone            string     `bson:"phone" json:"phone"`
	PasswordHash     string     `bson:"password_hash" json:"-"`
	ClaimsAdmin      bool       `bson:"claims_admin,omitempty" json:"claimsAdmin,omitempty"`
	EmailConfirmedAt *time.Time `bson:"email_confirmed_at,omitempty" json:"emailConfirmedAt,omitempty"`
	FCMToken         string     `bson:"fcm_token,omitempty" json:"-"`
	TokenHash        string     `bson:"token_hash,omitempty" json:"-"`
	CreatedAt        time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Profile is the subset of user fields the booking views join on.
type Profile struct {
	FullName string `bson:"full_name" json:"fullName"`
	Username string `bson:"username" json:"username"`
	Phone    string `bson:"phone" json:"phone"`
}

// AdminCredential is one entry of the static local-admin table.
type AdminCredential struct {
	Username string
	Password string
	Email    string
	FullName string
}
