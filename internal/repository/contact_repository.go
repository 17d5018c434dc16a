package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// ContactRepository encapsulates contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Contact, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Contact, error)
	Delete(ctx context.Context, tenantID, id string) error
	CountByAccount(ctx context.Context, tenantID, accountID string) (int, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, tenant_id, name, email, phone, title, account_id, created_by, created_at, updated_at`

func scanContact(row scanner) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Title,
		&c.AccountID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	const query = `
        INSERT INTO contacts (` + contactColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.Title, c.AccountID, c.CreatedBy, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *contactRepository) Update(ctx context.Context, c *domain.Contact) error {
	const query = `
        UPDATE contacts SET name=$1, email=$2, phone=$3, title=$4, account_id=$5, updated_at=$6
        WHERE tenant_id=$7 AND id=$8`
	return expectOne(conn(ctx, r.pool).Exec(ctx, query,
		c.Name, c.Email, c.Phone, c.Title, c.AccountID, c.UpdatedAt, c.TenantID, c.ID))
}

func (r *contactRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts WHERE tenant_id=$1 AND id=$2`
	c, err := scanContact(conn(ctx, r.pool).QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepository) List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Contact, error) {
	w := tenantScope(tenantID)
	w.eq("account_id", filter.AccountID)
	w.search(filter.Search, "name", "email")

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE ` + w.String() +
		` ORDER BY name ASC, id ASC ` + page(filter)
	rows, err := conn(ctx, r.pool).Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Contact, error) {
		return scanContact(row)
	})
}

func (r *contactRepository) Delete(ctx context.Context, tenantID, id string) error {
	return expectOne(conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM contacts WHERE tenant_id=$1 AND id=$2`, tenantID, id))
}

func (r *contactRepository) CountByAccount(ctx context.Context, tenantID, accountID string) (int, error) {
	var n int
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM contacts WHERE tenant_id=$1 AND account_id=$2`, tenantID, accountID).Scan(&n)
	return n, err
}
