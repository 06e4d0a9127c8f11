package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrApplicationNotFound = errors.New("application not found")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type companyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindByID(ctx context.Context, id uint64) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Company, int, error)
	Options(ctx context.Context) ([]*entity.CompanyOption, error)
}

type CompanyService struct {
	companies companyRepository
}

func NewCompanyService(companies companyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// Create stores a new company owned by the requester; anonymous requesters
// create unowned records.
func (s *CompanyService) Create(ctx context.Context, in *dto.CompanyCreate, identity Identity) (*entity.Company, error) {
	company := &entity.Company{
		CompanyName: dto.NullStringPtr(in.CompanyName),
		WebsiteLink: dto.NullStringPtr(in.WebsiteLink),
		LoginType:   dto.NullStringPtr(in.LoginType),
		Uname:       dto.NullStringPtr(in.Uname),
		Upass:       dto.NullStringPtr(in.Upass),
		CreatedAt:   time.Now(),
		UserID:      identity.OwnerRef(),
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Update applies the fields present in the request to an existing company,
// subject to the ownership rule.
func (s *CompanyService) Update(ctx context.Context, id uint64, in *dto.CompanyUpdate, identity Identity) (*entity.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	if !identity.CanMutate(company.UserID) {
		return nil, ErrForbidden
	}

	if in.CompanyName.Set {
		company.CompanyName = in.CompanyName.NullString()
	}
	if in.WebsiteLink.Set {
		company.WebsiteLink = in.WebsiteLink.NullString()
	}
	if in.LoginType.Set {
		company.LoginType = in.LoginType.NullString()
	}
	if in.Uname.Set {
		company.Uname = in.Uname.NullString()
	}
	if in.Upass.Set {
		company.Upass = in.Upass.NullString()
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company, subject to the ownership rule.
func (s *CompanyService) Delete(ctx context.Context, id uint64, identity Identity) error {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return ErrCompanyNotFound
	}

	if !identity.CanMutate(company.UserID) {
		return ErrForbidden
	}

	return s.companies.Delete(ctx, id)
}

// List returns one page of companies matching the search term.
func (s *CompanyService) List(ctx context.Context, search string, page, pageSize int) (*dto.CompanyPage, error) {
	page, pageSize = clampPage(page, pageSize)

	companies, total, err := s.companies.List(ctx, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.CompanyPage{
		Companies:   companies,
		Count:       total,
		TotalPages:  totalPages(total, pageSize),
		CurrentPage: page,
	}, nil
}

// Options returns every company as an (id, name) pair.
func (s *CompanyService) Options(ctx context.Context) ([]*entity.CompanyOption, error) {
	return s.companies.Options(ctx)
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func totalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
