package service

import "database/sql"

// Identity is the resolved requester of an operation. The zero value is the
// anonymous identity; Authenticated is the discriminator, never a runtime
// type check.
type Identity struct {
	UserID        uint64
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated requester.
var Anonymous = Identity{}

// AuthenticatedAs returns the identity of the given user id.
func AuthenticatedAs(userID uint64) Identity {
	return Identity{UserID: userID, Authenticated: true}
}

// OwnerRef returns the owning-user column value for records created by this
// identity: NULL for anonymous requesters.
func (i Identity) OwnerRef() sql.NullInt64 {
	if !i.Authenticated {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(i.UserID), Valid: true}
}

// CanMutate reports whether the identity may modify or delete a record with
// the given owner. Unowned records are mutable by anyone, including
// anonymous requesters; owned records only by the exact owning user.
func (i Identity) CanMutate(owner sql.NullInt64) bool {
	if !owner.Valid {
		return true
	}
	return i.Authenticated && uint64(owner.Int64) == i.UserID
}
