package models

import "time"

// PasswordResetToken is a single-use, time-limited reset credential
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Used reports whether the token has already been redeemed
func (t *PasswordResetToken) Used() bool {
	return t.UsedAt != nil
}
