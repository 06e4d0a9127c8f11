package dto

import (
	"database/sql"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

type CompanyCreate struct {
	CompanyName *string `json:"company_name"`
	WebsiteLink *string `json:"website_link" validate:"omitempty,url"`
	LoginType   *string `json:"login_type"`
	Uname       *string `json:"uname"`
	Upass       *string `json:"upass"`
}

type CompanyUpdate struct {
	CompanyName OptionalString `json:"company_name"`
	WebsiteLink OptionalString `json:"website_link"`
	LoginType   OptionalString `json:"login_type"`
	Uname       OptionalString `json:"uname"`
	Upass       OptionalString `json:"upass"`
}

type ApplicationCreate struct {
	Position *string `json:"position"`
	Base     *string `json:"base"`
	Salery   *string `json:"salery"`
	Status   *string `json:"status"`
	Resume   *string `json:"resume"`
	Company  *uint64 `json:"company"`
}

type ApplicationUpdate struct {
	Position OptionalString `json:"position"`
	Base     OptionalString `json:"base"`
	Salery   OptionalString `json:"salery"`
	Status   OptionalString `json:"status"`
	Resume   OptionalString `json:"resume"`
	Company  OptionalUint64 `json:"company"`
}

// CompanyPage is one page of a company listing.
type CompanyPage struct {
	Companies   []*entity.Company
	Count       int
	TotalPages  int
	CurrentPage int
}

// ApplicationPage is one page of an application listing.
type ApplicationPage struct {
	Applications []*entity.ApplicationWithCompany
	Count        int
	TotalPages   int
	CurrentPage  int
}

// DashboardStats aggregates the recruiting pipeline for the dashboard.
type DashboardStats struct {
	StatusCounts       map[string]int
	Funnel             FunnelStats
	RecentApplications []*entity.ApplicationWithCompany
	ConversionRates    ConversionRates
}

type FunnelStats struct {
	TotalApplications int
	PassedScreening   int
	PassedAssessment  int
	PassedInterview   int
	Hired             int
}

// ConversionRates are stage-to-stage percentages, rounded to two decimals;
// a stage with an empty denominator reports zero.
type ConversionRates struct {
	ScreeningRate  float64
	AssessmentRate float64
	InterviewRate  float64
	HireRate       float64
}

// NullStringPtr converts an optional request field to its database
// representation, with nil meaning NULL.
func NullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullInt64Ptr is the numeric counterpart of NullStringPtr.
func NullInt64Ptr(n *uint64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
