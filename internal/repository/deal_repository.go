package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// DealRepository encapsulates deal persistence.
type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	Update(ctx context.Context, deal *domain.Deal) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Deal, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Deal, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type dealRepository struct {
	pool *pgxpool.Pool
}

// NewDealRepository instantiates repository.
func NewDealRepository(pool *pgxpool.Pool) DealRepository {
	return &dealRepository{pool: pool}
}

const dealColumns = `id, tenant_id, title, amount, currency, stage, close_date, account_id, contact_id, created_by, created_at, updated_at`

func scanDeal(row scanner) (domain.Deal, error) {
	var d domain.Deal
	err := row.Scan(&d.ID, &d.TenantID, &d.Title, &d.Amount, &d.Currency, &d.Stage, &d.CloseDate,
		&d.AccountID, &d.ContactID, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *dealRepository) Create(ctx context.Context, d *domain.Deal) error {
	const query = `
        INSERT INTO deals (` + dealColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		d.ID, d.TenantID, d.Title, d.Amount, d.Currency, d.Stage, d.CloseDate,
		d.AccountID, d.ContactID, d.CreatedBy, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *dealRepository) Update(ctx context.Context, d *domain.Deal) error {
	const query = `
        UPDATE deals SET title=$1, amount=$2, currency=$3, stage=$4, close_date=$5,
            account_id=$6, contact_id=$7, updated_at=$8
        WHERE tenant_id=$9 AND id=$10`
	return expectOne(conn(ctx, r.pool).Exec(ctx, query,
		d.Title, d.Amount, d.Currency, d.Stage, d.CloseDate,
		d.AccountID, d.ContactID, d.UpdatedAt, d.TenantID, d.ID))
}

func (r *dealRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Deal, error) {
	const query = `SELECT ` + dealColumns + ` FROM deals WHERE tenant_id=$1 AND id=$2`
	d, err := scanDeal(conn(ctx, r.pool).QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dealRepository) List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Deal, error) {
	w := tenantScope(tenantID)
	w.eq("account_id", filter.AccountID)
	w.eq("contact_id", filter.ContactID)
	w.eq("stage", filter.Stage)
	w.search(filter.Search, "title")

	query := `SELECT ` + dealColumns + ` FROM deals WHERE ` + w.String() +
		` ORDER BY updated_at DESC, id ASC ` + page(filter)
	rows, err := conn(ctx, r.pool).Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Deal, error) {
		return scanDeal(row)
	})
}

func (r *dealRepository) Delete(ctx context.Context, tenantID, id string) error {
	return expectOne(conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM deals WHERE tenant_id=$1 AND id=$2`, tenantID, id))
}
