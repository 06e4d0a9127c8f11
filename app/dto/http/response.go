package http

import (
	"time"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserInfo struct {
	Email string `json:"email"`
}

type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginResponse struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
	Tokens  Tokens   `json:"tokens"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Message string `json:"message"`
}

type VerifyResponse struct {
	Valid   bool      `json:"valid"`
	User    *UserInfo `json:"user,omitempty"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
}

type SelfInfoResponse struct {
	Email string `json:"email"`
}

// Envelope is the resource response wrapper shared by the company,
// application and dashboard endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListEnvelope wraps a paginated listing.
type ListEnvelope struct {
	Success     bool        `json:"success"`
	Data        interface{} `json:"data"`
	Count       int         `json:"count"`
	TotalPages  int         `json:"total_pages"`
	CurrentPage int         `json:"current_page"`
}

type CompanyJSON struct {
	ID          uint64  `json:"id"`
	CompanyName *string `json:"company_name"`
	WebsiteLink *string `json:"website_link"`
	LoginType   *string `json:"login_type"`
	Uname       *string `json:"uname"`
	Upass       *string `json:"upass"`
	CreatedAt   string  `json:"created_at"`
	User        *uint64 `json:"user"`
}

func NewCompanyJSON(c *entity.Company) *CompanyJSON {
	return &CompanyJSON{
		ID:          c.ID,
		CompanyName: nullableString(c.CompanyName.String, c.CompanyName.Valid),
		WebsiteLink: nullableString(c.WebsiteLink.String, c.WebsiteLink.Valid),
		LoginType:   nullableString(c.LoginType.String, c.LoginType.Valid),
		Uname:       nullableString(c.Uname.String, c.Uname.Valid),
		Upass:       nullableString(c.Upass.String, c.Upass.Valid),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		User:        nullableID(c.UserID.Int64, c.UserID.Valid),
	}
}

func NewCompanyListJSON(companies []*entity.Company) []*CompanyJSON {
	out := make([]*CompanyJSON, 0, len(companies))
	for _, c := range companies {
		out = append(out, NewCompanyJSON(c))
	}
	return out
}

type ApplicationJSON struct {
	ID        uint64  `json:"id"`
	Position  *string `json:"position"`
	Base      *string `json:"base"`
	Salery    *string `json:"salery"`
	Status    *string `json:"status"`
	Resume    *string `json:"resume"`
	UpdateAt  string  `json:"update_at"`
	CreatedAt string  `json:"created_at"`
	Company   *uint64 `json:"company"`
	User      *uint64 `json:"user"`
}

func NewApplicationJSON(a *entity.Application) *ApplicationJSON {
	return &ApplicationJSON{
		ID:        a.ID,
		Position:  nullableString(a.Position.String, a.Position.Valid),
		Base:      nullableString(a.Base.String, a.Base.Valid),
		Salery:    nullableString(a.Salery.String, a.Salery.Valid),
		Status:    nullableString(a.Status.String, a.Status.Valid),
		Resume:    nullableString(a.Resume.String, a.Resume.Valid),
		UpdateAt:  a.UpdatedAt.Format(time.RFC3339),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		Company:   nullableID(a.CompanyID.Int64, a.CompanyID.Valid),
		User:      nullableID(a.UserID.Int64, a.UserID.Valid),
	}
}

// ApplicationCompanyJSON is the nested company reference embedded in
// application listings.
type ApplicationCompanyJSON struct {
	ID          uint64  `json:"id"`
	CompanyName *string `json:"company_name"`
}

type ApplicationListItemJSON struct {
	ID        uint64                  `json:"id"`
	Position  *string                 `json:"position"`
	Base      *string                 `json:"base"`
	Salery    *string                 `json:"salery"`
	Status    *string                 `json:"status"`
	Resume    *string                 `json:"resume"`
	UpdateAt  string                  `json:"update_at"`
	CreatedAt string                  `json:"created_at"`
	Company   *ApplicationCompanyJSON `json:"company"`
	User      *uint64                 `json:"user"`
}

func NewApplicationListJSON(applications []*entity.ApplicationWithCompany) []*ApplicationListItemJSON {
	out := make([]*ApplicationListItemJSON, 0, len(applications))
	for _, a := range applications {
		item := &ApplicationListItemJSON{
			ID:        a.ID,
			Position:  nullableString(a.Position.String, a.Position.Valid),
			Base:      nullableString(a.Base.String, a.Base.Valid),
			Salery:    nullableString(a.Salery.String, a.Salery.Valid),
			Status:    nullableString(a.Status.String, a.Status.Valid),
			Resume:    nullableString(a.Resume.String, a.Resume.Valid),
			UpdateAt:  a.UpdatedAt.Format(time.RFC3339),
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
			User:      nullableID(a.UserID.Int64, a.UserID.Valid),
		}
		if a.CompanyID.Valid {
			item.Company = &ApplicationCompanyJSON{
				ID:          uint64(a.CompanyID.Int64),
				CompanyName: nullableString(a.CompanyName.String, a.CompanyName.Valid),
			}
		}
		out = append(out, item)
	}
	return out
}

type DashboardJSON struct {
	StatusCounts       map[string]int          `json:"status_counts"`
	FunnelStats        FunnelStatsJSON         `json:"funnel_stats"`
	RecentApplications []RecentApplicationJSON `json:"recent_applications"`
	ConversionRates    ConversionRatesJSON     `json:"conversion_rates"`
}

type FunnelStatsJSON struct {
	TotalApplications int `json:"total_applications"`
	PassedScreening   int `json:"passed_screening"`
	PassedAssessment  int `json:"passed_assessment"`
	PassedInterview   int `json:"passed_interview"`
	Hired             int `json:"hired"`
}

type RecentApplicationJSON struct {
	ID        uint64 `json:"id"`
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type ConversionRatesJSON struct {
	ScreeningRate  float64 `json:"screening_rate"`
	AssessmentRate float64 `json:"assessment_rate"`
	InterviewRate  float64 `json:"interview_rate"`
	HireRate       float64 `json:"hire_rate"`
}

func NewDashboardJSON(stats *dto.DashboardStats) *DashboardJSON {
	recent := make([]RecentApplicationJSON, 0, len(stats.RecentApplications))
	for _, a := range stats.RecentApplications {
		recent = append(recent, RecentApplicationJSON{
			ID:        a.ID,
			JobTitle:  a.Position.String,
			Company:   a.CompanyName.String,
			Status:    a.Status.String,
			CreatedAt: a.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return &DashboardJSON{
		StatusCounts: stats.StatusCounts,
		FunnelStats: FunnelStatsJSON{
			TotalApplications: stats.Funnel.TotalApplications,
			PassedScreening:   stats.Funnel.PassedScreening,
			PassedAssessment:  stats.Funnel.PassedAssessment,
			PassedInterview:   stats.Funnel.PassedInterview,
			Hired:             stats.Funnel.Hired,
		},
		RecentApplications: recent,
		ConversionRates: ConversionRatesJSON{
			ScreeningRate:  stats.ConversionRates.ScreeningRate,
			AssessmentRate: stats.ConversionRates.AssessmentRate,
			InterviewRate:  stats.ConversionRates.InterviewRate,
			HireRate:       stats.ConversionRates.HireRate,
		},
	}
}

func nullableString(s string, valid bool) *string {
	if !valid {
		return nil
	}
	return &s
}

func nullableID(n int64, valid bool) *uint64 {
	if !valid {
		return nil
	}
	id := uint64(n)
	return &id
}
