package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
)

type fakeCompanyRepository struct {
	companies map[uint64]*entity.Company
	nextID    uint64
}

func newFakeCompanyRepository() *fakeCompanyRepository {
	return &fakeCompanyRepository{companies: make(map[uint64]*entity.Company), nextID: 1}
}

func (r *fakeCompanyRepository) Create(_ context.Context, company *entity.Company) error {
	company.ID = r.nextID
	r.nextID++
	copied := *company
	r.companies[company.ID] = &copied
	return nil
}

func (r *fakeCompanyRepository) FindByID(_ context.Context, id uint64) (*entity.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	copied := *company
	return &copied, nil
}

func (r *fakeCompanyRepository) Update(_ context.Context, company *entity.Company) error {
	copied := *company
	r.companies[company.ID] = &copied
	return nil
}

func (r *fakeCompanyRepository) Delete(_ context.Context, id uint64) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepository) List(_ context.Context, _ string, limit, offset int) ([]*entity.Company, int, error) {
	var all []*entity.Company
	for id := uint64(1); id < r.nextID; id++ {
		if company, ok := r.companies[id]; ok {
			copied := *company
			all = append(all, &copied)
		}
	}
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeCompanyRepository) Options(_ context.Context) ([]*entity.CompanyOption, error) {
	var options []*entity.CompanyOption
	for id := uint64(1); id < r.nextID; id++ {
		if company, ok := r.companies[id]; ok {
			options = append(options, &entity.CompanyOption{ID: id, CompanyName: company.CompanyName.String})
		}
	}
	return options, nil
}

func strPtr(s string) *string { return &s }

func TestCompanyService_CreateAnonymous(t *testing.T) {
	repo := newFakeCompanyRepository()
	svc := service.NewCompanyService(repo)

	company, err := svc.Create(context.Background(), &dto.CompanyCreate{
		CompanyName: strPtr("Acme"),
	}, service.Anonymous)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if company.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if company.UserID.Valid {
		t.Fatal("anonymous creation must leave the owner NULL")
	}
	if company.WebsiteLink.Valid {
		t.Fatal("omitted field must be NULL")
	}
}

func TestCompanyService_CreateOwned(t *testing.T) {
	repo := newFakeCompanyRepository()
	svc := service.NewCompanyService(repo)

	company, err := svc.Create(context.Background(), &dto.CompanyCreate{
		CompanyName: strPtr("Acme"),
	}, service.AuthenticatedAs(9))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !company.UserID.Valid || company.UserID.Int64 != 9 {
		t.Fatalf("expected owner 9, got %+v", company.UserID)
	}
}

func TestCompanyService_UpdatePartial(t *testing.T) {
	repo := newFakeCompanyRepository()
	svc := service.NewCompanyService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CompanyCreate{
		CompanyName: strPtr("Acme"),
		WebsiteLink: strPtr("https://acme.example"),
	}, service.Anonymous)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, &dto.CompanyUpdate{
		CompanyName: dto.OptionalString{Set: true, Valid: true, Value: "Acme Corp"},
		Uname:       dto.OptionalString{Set: true}, // explicit null clears
	}, service.Anonymous)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CompanyName.String != "Acme Corp" {
		t.Fatalf("unexpected name %q", updated.CompanyName.String)
	}
	if updated.WebsiteLink.String != "https://acme.example" {
		t.Fatal("absent field must keep its value")
	}
	if updated.Uname.Valid {
		t.Fatal("null field must be cleared")
	}
}

func TestCompanyService_UpdateOwnership(t *testing.T) {
	repo := newFakeCompanyRepository()
	svc := service.NewCompanyService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CompanyCreate{CompanyName: strPtr("Acme")}, service.AuthenticatedAs(7))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	in := &dto.CompanyUpdate{CompanyName: dto.OptionalString{Set: true, Valid: true, Value: "X"}}

	if _, err := svc.Update(ctx, created.ID, in, service.Anonymous); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for anonymous, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, in, service.AuthenticatedAs(8)); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, in, service.AuthenticatedAs(7)); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
}

func TestCompanyService_UpdateNotFound(t *testing.T) {
	svc := service.NewCompanyService(newFakeCompanyRepository())

	_, err := svc.Update(context.Background(), 99, &dto.CompanyUpdate{}, service.Anonymous)
	if !errors.Is(err, service.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestCompanyService_DeleteOwnership(t *testing.T) {
	repo := newFakeCompanyRepository()
	svc := service.NewCompanyService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CompanyCreate{CompanyName: strPtr("Acme")}, service.AuthenticatedAs(7))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, service.AuthenticatedAs(8)); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID, service.AuthenticatedAs(7)); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID, service.AuthenticatedAs(7)); !errors.Is(err, service.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound after delete, got %v", err)
	}
}

func TestCompanyService_ListPagination(t *testing.T) {
	repo := newFakeCompanyRepository()
	svc := service.NewCompanyService(repo)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := svc.Create(ctx, &dto.CompanyCreate{CompanyName: strPtr("Acme")}, service.Anonymous); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	page, err := svc.List(ctx, "", 2, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Count != 25 {
		t.Fatalf("expected count 25, got %d", page.Count)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if page.CurrentPage != 2 {
		t.Fatalf("expected page 2, got %d", page.CurrentPage)
	}
	if len(page.Companies) != 10 {
		t.Fatalf("expected 10 companies, got %d", len(page.Companies))
	}
}

func TestCompanyService_ListEmpty(t *testing.T) {
	svc := service.NewCompanyService(newFakeCompanyRepository())

	page, err := svc.List(context.Background(), "", 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Count != 0 {
		t.Fatalf("expected count 0, got %d", page.Count)
	}
	if page.TotalPages != 1 {
		t.Fatalf("empty listing still reports 1 page, got %d", page.TotalPages)
	}
	if page.CurrentPage != 1 {
		t.Fatalf("expected page clamped to 1, got %d", page.CurrentPage)
	}
}

func TestCompanyService_UnownedMutableByAnyone(t *testing.T) {
	repo := newFakeCompanyRepository()
	svc := service.NewCompanyService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CompanyCreate{CompanyName: strPtr("Acme")}, service.Anonymous)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	in := &dto.CompanyUpdate{CompanyName: dto.OptionalString{Set: true, Valid: true, Value: "X"}}
	if _, err := svc.Update(ctx, created.ID, in, service.AuthenticatedAs(8)); err != nil {
		t.Fatalf("authenticated update of unowned record failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID, service.Anonymous); err != nil {
		t.Fatalf("anonymous delete of unowned record failed: %v", err)
	}
}
