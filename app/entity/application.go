package entity

import (
	"database/sql"
	"time"
)

// Application statuses, in pipeline order. The strings are part of the wire
// contract and must not be translated.
const (
	StatusSubmitted    = "已投递"
	StatusScreening    = "简历筛选中"
	StatusAssessment   = "测评/笔试中"
	StatusInterviewing = "面试中"
	StatusHired        = "已录用"
	StatusClosed       = "已结束"
)

// ValidStatuses lists every accepted application status, in pipeline order.
var ValidStatuses = []string{
	StatusSubmitted,
	StatusScreening,
	StatusAssessment,
	StatusInterviewing,
	StatusHired,
	StatusClosed,
}

// ValidStatus reports whether s is one of the accepted status values.
func ValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a single job application. The Salery field keeps the
// original column spelling for wire compatibility.
type Application struct {
	ID        uint64
	Position  sql.NullString
	Base      sql.NullString
	Salery    sql.NullString
	Status    sql.NullString
	Resume    sql.NullString
	CompanyID sql.NullInt64
	UserID    sql.NullInt64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplicationWithCompany joins an application with the name of its company,
// as returned by list queries.
type ApplicationWithCompany struct {
	Application
	CompanyName sql.NullString
}
