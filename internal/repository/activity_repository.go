package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// ActivityRepository encapsulates activity persistence.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	Update(ctx context.Context, activity *domain.Activity) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Activity, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Activity, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

const activityColumns = `id, tenant_id, type, title, status, due_date, remind_before_minutes, notes,
    account_id, contact_id, deal_id, lead_id, created_by, created_at, updated_at`

func scanActivity(row scanner) (domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(&a.ID, &a.TenantID, &a.Type, &a.Title, &a.Status, &a.DueDate, &a.RemindBeforeMinutes,
		&a.Notes, &a.AccountID, &a.ContactID, &a.DealID, &a.LeadID, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	const query = `
        INSERT INTO activities (` + activityColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		a.ID, a.TenantID, a.Type, a.Title, a.Status, a.DueDate, a.RemindBeforeMinutes, a.Notes,
		a.AccountID, a.ContactID, a.DealID, a.LeadID, a.CreatedBy, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *activityRepository) Update(ctx context.Context, a *domain.Activity) error {
	const query = `
        UPDATE activities SET type=$1, title=$2, status=$3, due_date=$4, remind_before_minutes=$5, notes=$6,
            account_id=$7, contact_id=$8, deal_id=$9, lead_id=$10, updated_at=$11
        WHERE tenant_id=$12 AND id=$13`
	return expectOne(conn(ctx, r.pool).Exec(ctx, query,
		a.Type, a.Title, a.Status, a.DueDate, a.RemindBeforeMinutes, a.Notes,
		a.AccountID, a.ContactID, a.DealID, a.LeadID, a.UpdatedAt, a.TenantID, a.ID))
}

func (r *activityRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Activity, error) {
	const query = `SELECT ` + activityColumns + ` FROM activities WHERE tenant_id=$1 AND id=$2`
	a, err := scanActivity(conn(ctx, r.pool).QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Activity, error) {
	w := tenantScope(tenantID)
	w.eq("status", filter.Status)
	w.eq("account_id", filter.AccountID)
	w.eq("contact_id", filter.ContactID)
	w.eq("deal_id", filter.DealID)
	w.eq("lead_id", filter.LeadID)
	if filter.DueFrom != nil {
		w.add("due_date >= $%d", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		w.add("due_date <= $%d", *filter.DueTo)
	}
	w.search(filter.Search, "title", "notes")

	query := `SELECT ` + activityColumns + ` FROM activities WHERE ` + w.String() +
		` ORDER BY due_date ASC NULLS LAST, id ASC ` + page(filter)
	rows, err := conn(ctx, r.pool).Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Activity, error) {
		return scanActivity(row)
	})
}

func (r *activityRepository) Delete(ctx context.Context, tenantID, id string) error {
	return expectOne(conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM activities WHERE tenant_id=$1 AND id=$2`, tenantID, id))
}
