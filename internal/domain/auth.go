package domain

import "time"

// Identity is the resolved caller context produced by a valid credential.
// It lives only for the duration of one request and is never mutated.
type Identity struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PasswordReset tracks an issued password-reset token.
type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
