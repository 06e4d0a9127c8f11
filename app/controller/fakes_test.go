package controller_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
	"github.com/vibast-solutions/ms-go-jobtrack/config"
)

type fakeUserRepository struct {
	byEmail map[string]*entity.User
	byID    map[uint64]*entity.User
	nextID  uint64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[uint64]*entity.User),
		nextID:  1,
	}
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.byEmail[user.Email] = &copied
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uint64) (*entity.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) add(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &entity.User{Email: email, PasswordHash: string(hash), IsActive: true}
	if err := r.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

type fakeTokenRepository struct {
	tokens map[string]*entity.VerificationToken
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{tokens: make(map[string]*entity.VerificationToken)}
}

func (r *fakeTokenRepository) Upsert(_ context.Context, token *entity.VerificationToken) error {
	token.ID = uint64(len(r.tokens) + 1)
	copied := *token
	r.tokens[token.Email+"|"+token.Purpose] = &copied
	return nil
}

func (r *fakeTokenRepository) Find(_ context.Context, email, code, purpose string) (*entity.VerificationToken, error) {
	token, ok := r.tokens[email+"|"+purpose]
	if !ok || token.Code != code {
		return nil, nil
	}
	copied := *token
	return &copied, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

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

type fakeApplicationRepository struct {
	applications map[uint64]*entity.Application
	nextID       uint64
}

func newFakeApplicationRepository() *fakeApplicationRepository {
	return &fakeApplicationRepository{applications: make(map[uint64]*entity.Application), nextID: 1}
}

func (r *fakeApplicationRepository) Create(_ context.Context, application *entity.Application) error {
	application.ID = r.nextID
	r.nextID++
	copied := *application
	r.applications[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepository) FindByID(_ context.Context, id uint64) (*entity.Application, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, nil
	}
	copied := *application
	return &copied, nil
}

func (r *fakeApplicationRepository) Update(_ context.Context, application *entity.Application) error {
	copied := *application
	r.applications[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepository) Delete(_ context.Context, id uint64) error {
	delete(r.applications, id)
	return nil
}

func (r *fakeApplicationRepository) List(_ context.Context, _ string, limit, offset int) ([]*entity.ApplicationWithCompany, int, error) {
	var all []*entity.ApplicationWithCompany
	for id := r.nextID; id >= 1; id-- {
		if application, ok := r.applications[id]; ok {
			all = append(all, &entity.ApplicationWithCompany{Application: *application})
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

func (r *fakeApplicationRepository) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, application := range r.applications {
		counts[application.Status.String]++
	}
	return counts, nil
}

func (r *fakeApplicationRepository) Recent(_ context.Context, n int) ([]*entity.ApplicationWithCompany, error) {
	recent, _, err := r.List(context.Background(), "", n, 0)
	return recent, err
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessTokenTTL:  15 * time.Minute,
		JWTRefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newTokenService() *service.TokenService {
	return service.NewTokenService(testConfig())
}

// jsonRequest builds an echo context for a JSON request body.
func jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
