package entity

import "time"

type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Verified     bool
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VerificationToken is a short-lived numeric code mailed to an address to
// prove control of it. At most one row exists per (email, purpose) pair;
// issuing a new code replaces the previous one.
type VerificationToken struct {
	ID        uint64
	Email     string
	Code      string
	Purpose   string
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
// A token at exactly ExpiresAt is still valid.
func (t *VerificationToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
