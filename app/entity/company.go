package entity

import (
	"database/sql"
	"time"
)

type Company struct {
	ID          uint64
	CompanyName sql.NullString
	WebsiteLink sql.NullString
	LoginType   sql.NullString
	Uname       sql.NullString
	Upass       sql.NullString
	CreatedAt   time.Time
	UserID      sql.NullInt64
}

// CompanyOption is the reduced projection used for dropdown lists.
type CompanyOption struct {
	ID          uint64 `json:"id"`
	CompanyName string `json:"company_name"`
}
