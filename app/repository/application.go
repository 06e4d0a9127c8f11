package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, application *entity.Application) error {
	query := `
		INSERT INTO applications (position, base, salery, status, resume, company_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		application.Position,
		application.Base,
		application.Salery,
		application.Status,
		application.Resume,
		application.CompanyID,
		application.UserID,
		application.CreatedAt,
		application.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	application.ID = uint64(id)
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uint64) (*entity.Application, error) {
	query := `
		SELECT id, position, base, salery, status, resume, company_id, user_id, created_at, updated_at
		FROM applications WHERE id = ?
	`
	application := &entity.Application{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&application.ID,
		&application.Position,
		&application.Base,
		&application.Salery,
		&application.Status,
		&application.Resume,
		&application.CompanyID,
		&application.UserID,
		&application.CreatedAt,
		&application.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return application, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, application *entity.Application) error {
	query := `
		UPDATE applications SET
			position = ?,
			base = ?,
			salery = ?,
			status = ?,
			resume = ?,
			company_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	application.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		application.Position,
		application.Base,
		application.Salery,
		application.Status,
		application.Resume,
		application.CompanyID,
		application.UpdatedAt,
		application.ID,
	)
	return err
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM applications WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// List returns a page of applications newest first, joined with the company
// name. The search term matches position, base and company name.
func (r *ApplicationRepository) List(ctx context.Context, search string, limit, offset int) ([]*entity.ApplicationWithCompany, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM applications a
		LEFT JOIN companies c ON c.id = a.company_id
		WHERE (? = '' OR a.position LIKE ? OR a.base LIKE ? OR c.company_name LIKE ?)
	`
	pattern := "%" + search + "%"

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, search, pattern, pattern, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.id, a.position, a.base, a.salery, a.status, a.resume, a.company_id, a.user_id, a.created_at, a.updated_at, c.company_name
		FROM applications a
		LEFT JOIN companies c ON c.id = a.company_id
		WHERE (? = '' OR a.position LIKE ? OR a.base LIKE ? OR c.company_name LIKE ?)
		ORDER BY a.created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, search, pattern, pattern, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	applications, err := scanApplicationsWithCompany(rows)
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// CountByStatus returns the number of applications per status value.
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT COALESCE(status, ''), COUNT(*) FROM applications GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Recent returns the n newest applications joined with their company name.
func (r *ApplicationRepository) Recent(ctx context.Context, n int) ([]*entity.ApplicationWithCompany, error) {
	query := `
		SELECT a.id, a.position, a.base, a.salery, a.status, a.resume, a.company_id, a.user_id, a.created_at, a.updated_at, c.company_name
		FROM applications a
		LEFT JOIN companies c ON c.id = a.company_id
		ORDER BY a.created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplicationsWithCompany(rows)
}

func scanApplicationsWithCompany(rows *sql.Rows) ([]*entity.ApplicationWithCompany, error) {
	var applications []*entity.ApplicationWithCompany
	for rows.Next() {
		application := &entity.ApplicationWithCompany{}
		if err := rows.Scan(
			&application.ID,
			&application.Position,
			&application.Base,
			&application.Salery,
			&application.Status,
			&application.Resume,
			&application.CompanyID,
			&application.UserID,
			&application.CreatedAt,
			&application.UpdatedAt,
			&application.CompanyName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return applications, nil
}
