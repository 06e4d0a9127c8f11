package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

type applicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	FindByID(ctx context.Context, id uint64) (*entity.Application, error)
	Update(ctx context.Context, application *entity.Application) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.ApplicationWithCompany, int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	Recent(ctx context.Context, n int) ([]*entity.ApplicationWithCompany, error)
}

// InvalidStatusError rejects a status value outside the accepted set and
// names the valid values.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q, valid statuses: %s", e.Status, strings.Join(entity.ValidStatuses, ", "))
}

type ApplicationService struct {
	applications applicationRepository
}

func NewApplicationService(applications applicationRepository) *ApplicationService {
	return &ApplicationService{applications: applications}
}

// Create stores a new application. A missing status defaults to 已投递.
func (s *ApplicationService) Create(ctx context.Context, in *dto.ApplicationCreate, identity Identity) (*entity.Application, error) {
	status := entity.StatusSubmitted
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, &InvalidStatusError{Status: *in.Status}
		}
		status = *in.Status
	}

	now := time.Now()
	application := &entity.Application{
		Position:  dto.NullStringPtr(in.Position),
		Base:      dto.NullStringPtr(in.Base),
		Salery:    dto.NullStringPtr(in.Salery),
		Status:    sql.NullString{String: status, Valid: true},
		Resume:    dto.NullStringPtr(in.Resume),
		CompanyID: dto.NullInt64Ptr(in.Company),
		UserID:    identity.OwnerRef(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// Update applies the fields present in the request, subject to the
// ownership rule. Status changes are validated against the accepted set.
func (s *ApplicationService) Update(ctx context.Context, id uint64, in *dto.ApplicationUpdate, identity Identity) (*entity.Application, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	if !identity.CanMutate(application.UserID) {
		return nil, ErrForbidden
	}

	if in.Status.Set {
		if !in.Status.Valid || !entity.ValidStatus(in.Status.Value) {
			return nil, &InvalidStatusError{Status: in.Status.Value}
		}
		application.Status = in.Status.NullString()
	}
	if in.Position.Set {
		application.Position = in.Position.NullString()
	}
	if in.Base.Set {
		application.Base = in.Base.NullString()
	}
	if in.Salery.Set {
		application.Salery = in.Salery.NullString()
	}
	if in.Resume.Set {
		application.Resume = in.Resume.NullString()
	}
	if in.Company.Set {
		application.CompanyID = in.Company.NullInt64()
	}

	if err := s.applications.Update(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// Delete removes an application, subject to the ownership rule.
func (s *ApplicationService) Delete(ctx context.Context, id uint64, identity Identity) error {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if application == nil {
		return ErrApplicationNotFound
	}

	if !identity.CanMutate(application.UserID) {
		return ErrForbidden
	}

	return s.applications.Delete(ctx, id)
}

// List returns one page of applications matching the search term, newest
// first.
func (s *ApplicationService) List(ctx context.Context, search string, page, pageSize int) (*dto.ApplicationPage, error) {
	page, pageSize = clampPage(page, pageSize)

	applications, total, err := s.applications.List(ctx, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.ApplicationPage{
		Applications: applications,
		Count:        total,
		TotalPages:   totalPages(total, pageSize),
		CurrentPage:  page,
	}, nil
}
