package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// AccountRepository encapsulates account persistence. Every method is scoped
// to a tenant.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Account, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Account, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository instantiates repository.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, tenant_id, name, website, phone, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.TenantID, &a.Name, &a.Website, &a.Phone, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	const query = `
        INSERT INTO accounts (` + accountColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		a.ID, a.TenantID, a.Name, a.Website, a.Phone, a.CreatedBy, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *accountRepository) Update(ctx context.Context, a *domain.Account) error {
	const query = `
        UPDATE accounts SET name=$1, website=$2, phone=$3, updated_at=$4
        WHERE tenant_id=$5 AND id=$6`
	return expectOne(conn(ctx, r.pool).Exec(ctx, query,
		a.Name, a.Website, a.Phone, a.UpdatedAt, a.TenantID, a.ID))
}

func (r *accountRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id=$1 AND id=$2`
	a, err := scanAccount(conn(ctx, r.pool).QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Account, error) {
	w := tenantScope(tenantID)
	w.search(filter.Search, "name", "website")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + w.String() +
		` ORDER BY name ASC, id ASC ` + page(filter)
	rows, err := conn(ctx, r.pool).Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		return scanAccount(row)
	})
}

func (r *accountRepository) Delete(ctx context.Context, tenantID, id string) error {
	return expectOne(conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM accounts WHERE tenant_id=$1 AND id=$2`, tenantID, id))
}
