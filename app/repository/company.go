package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (company_name, website_link, login_type, uname, upass, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		company.CompanyName,
		company.WebsiteLink,
		company.LoginType,
		company.Uname,
		company.Upass,
		company.CreatedAt,
		company.UserID,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	company.ID = uint64(id)
	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uint64) (*entity.Company, error) {
	query := `
		SELECT id, company_name, website_link, login_type, uname, upass, created_at, user_id
		FROM companies WHERE id = ?
	`
	company := &entity.Company{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&company.ID,
		&company.CompanyName,
		&company.WebsiteLink,
		&company.LoginType,
		&company.Uname,
		&company.Upass,
		&company.CreatedAt,
		&company.UserID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET
			company_name = ?,
			website_link = ?,
			login_type = ?,
			uname = ?,
			upass = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		company.CompanyName,
		company.WebsiteLink,
		company.LoginType,
		company.Uname,
		company.Upass,
		company.ID,
	)
	return err
}

func (r *CompanyRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM companies WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// List returns a page of companies ordered by name, optionally filtered by a
// search term matched against name and website, plus the unpaged row count.
func (r *CompanyRepository) List(ctx context.Context, search string, limit, offset int) ([]*entity.Company, int, error) {
	countQuery := `SELECT COUNT(*) FROM companies WHERE (? = '' OR company_name LIKE ? OR website_link LIKE ?)`
	pattern := "%" + search + "%"

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, search, pattern, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, company_name, website_link, login_type, uname, upass, created_at, user_id
		FROM companies
		WHERE (? = '' OR company_name LIKE ? OR website_link LIKE ?)
		ORDER BY company_name
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, search, pattern, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		company := &entity.Company{}
		if err := rows.Scan(
			&company.ID,
			&company.CompanyName,
			&company.WebsiteLink,
			&company.LoginType,
			&company.Uname,
			&company.Upass,
			&company.CreatedAt,
			&company.UserID,
		); err != nil {
			return nil, 0, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

// Options returns every company as an (id, name) pair for dropdown lists.
func (r *CompanyRepository) Options(ctx context.Context) ([]*entity.CompanyOption, error) {
	query := `SELECT id, COALESCE(company_name, '') FROM companies ORDER BY company_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*entity.CompanyOption
	for rows.Next() {
		option := &entity.CompanyOption{}
		if err := rows.Scan(&option.ID, &option.CompanyName); err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return options, nil
}
