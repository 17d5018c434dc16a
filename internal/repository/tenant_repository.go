package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// TenantRepository persists tenants and their memberships.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	AddMember(ctx context.Context, m *domain.Membership) error
	GetMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error)
	ListForUser(ctx context.Context, userID string) ([]domain.TenantMembership, error)
	ListMembers(ctx context.Context, tenantID string) ([]domain.Member, error)
}

type tenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository returns a Postgres-backed implementation.
func NewTenantRepository(pool *pgxpool.Pool) TenantRepository {
	return &tenantRepository{pool: pool}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	const query = `
        INSERT INTO tenants (id, name, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.CreatedBy, tenant.CreatedAt, tenant.UpdatedAt)
	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	const query = `SELECT id, name, created_by, created_at, updated_at FROM tenants WHERE id=$1`
	var t domain.Tenant
	if err := conn(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddMember inserts the membership or updates the role of an existing one.
func (r *tenantRepository) AddMember(ctx context.Context, m *domain.Membership) error {
	const query = `
        INSERT INTO memberships (tenant_id, user_id, role, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (tenant_id, user_id) DO UPDATE SET role=EXCLUDED.role`
	_, err := conn(ctx, r.pool).Exec(ctx, query, m.TenantID, m.UserID, m.Role, m.CreatedAt)
	return err
}

func (r *tenantRepository) GetMembership(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	const query = `
        SELECT tenant_id, user_id, role, created_at
        FROM memberships WHERE tenant_id=$1 AND user_id=$2`
	var m domain.Membership
	if err := conn(ctx, r.pool).QueryRow(ctx, query, tenantID, userID).Scan(
		&m.TenantID, &m.UserID, &m.Role, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *tenantRepository) ListForUser(ctx context.Context, userID string) ([]domain.TenantMembership, error) {
	const query = `
        SELECT t.id, t.name, t.created_by, t.created_at, t.updated_at, m.role
        FROM memberships m JOIN tenants t ON t.id = m.tenant_id
        WHERE m.user_id=$1
        ORDER BY t.name`
	rows, err := conn(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TenantMembership, error) {
		var tm domain.TenantMembership
		err := row.Scan(&tm.Tenant.ID, &tm.Tenant.Name, &tm.Tenant.CreatedBy,
			&tm.Tenant.CreatedAt, &tm.Tenant.UpdatedAt, &tm.Role)
		return tm, err
	})
}

func (r *tenantRepository) ListMembers(ctx context.Context, tenantID string) ([]domain.Member, error) {
	const query = `
        SELECT u.id, u.email, u.name, m.role, m.created_at
        FROM memberships m JOIN users u ON u.id = m.user_id
        WHERE m.tenant_id=$1
        ORDER BY u.name`
	rows, err := conn(ctx, r.pool).Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Member, error) {
		var m domain.Member
		err := row.Scan(&m.UserID, &m.Email, &m.Name, &m.Role, &m.CreatedAt)
		return m, err
	})
}
