package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Lead, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, tenant_id, name, email, phone, company, source, status, created_by, created_at, updated_at`

func scanLead(row scanner) (domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(&l.ID, &l.TenantID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Source,
		&l.Status, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *leadRepository) Create(ctx context.Context, l *domain.Lead) error {
	const query = `
        INSERT INTO leads (` + leadColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		l.ID, l.TenantID, l.Name, l.Email, l.Phone, l.Company, l.Source,
		l.Status, l.CreatedBy, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *leadRepository) Update(ctx context.Context, l *domain.Lead) error {
	const query = `
        UPDATE leads SET name=$1, email=$2, phone=$3, company=$4, source=$5, status=$6, updated_at=$7
        WHERE tenant_id=$8 AND id=$9`
	return expectOne(conn(ctx, r.pool).Exec(ctx, query,
		l.Name, l.Email, l.Phone, l.Company, l.Source, l.Status, l.UpdatedAt, l.TenantID, l.ID))
}

func (r *leadRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error) {
	const query = `SELECT ` + leadColumns + ` FROM leads WHERE tenant_id=$1 AND id=$2`
	l, err := scanLead(conn(ctx, r.pool).QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leadRepository) List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Lead, error) {
	w := tenantScope(tenantID)
	w.eq("status", filter.Status)
	w.search(filter.Search, "name", "email", "company")

	query := `SELECT ` + leadColumns + ` FROM leads WHERE ` + w.String() +
		` ORDER BY created_at DESC, id ASC ` + page(filter)
	rows, err := conn(ctx, r.pool).Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Lead, error) {
		return scanLead(row)
	})
}

func (r *leadRepository) Delete(ctx context.Context, tenantID, id string) error {
	return expectOne(conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM leads WHERE tenant_id=$1 AND id=$2`, tenantID, id))
}
