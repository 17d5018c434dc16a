package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// NoteRepository encapsulates note persistence.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	Update(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Note, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Note, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository instantiates repository.
func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &noteRepository{pool: pool}
}

const noteColumns = `id, tenant_id, body, account_id, contact_id, deal_id, lead_id, created_by, created_at, updated_at`

func scanNote(row scanner) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.TenantID, &n.Body, &n.AccountID, &n.ContactID, &n.DealID, &n.LeadID,
		&n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *noteRepository) Create(ctx context.Context, n *domain.Note) error {
	const query = `
        INSERT INTO notes (` + noteColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		n.ID, n.TenantID, n.Body, n.AccountID, n.ContactID, n.DealID, n.LeadID,
		n.CreatedBy, n.CreatedAt, n.UpdatedAt)
	return err
}

func (r *noteRepository) Update(ctx context.Context, n *domain.Note) error {
	const query = `
        UPDATE notes SET body=$1, account_id=$2, contact_id=$3, deal_id=$4, lead_id=$5, updated_at=$6
        WHERE tenant_id=$7 AND id=$8`
	return expectOne(conn(ctx, r.pool).Exec(ctx, query,
		n.Body, n.AccountID, n.ContactID, n.DealID, n.LeadID, n.UpdatedAt, n.TenantID, n.ID))
}

func (r *noteRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Note, error) {
	const query = `SELECT ` + noteColumns + ` FROM notes WHERE tenant_id=$1 AND id=$2`
	n, err := scanNote(conn(ctx, r.pool).QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepository) List(ctx context.Context, tenantID string, filter ListFilter) ([]domain.Note, error) {
	w := tenantScope(tenantID)
	w.eq("account_id", filter.AccountID)
	w.eq("contact_id", filter.ContactID)
	w.eq("deal_id", filter.DealID)
	w.eq("lead_id", filter.LeadID)
	w.search(filter.Search, "body")

	query := `SELECT ` + noteColumns + ` FROM notes WHERE ` + w.String() +
		` ORDER BY created_at DESC, id ASC ` + page(filter)
	rows, err := conn(ctx, r.pool).Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Note, error) {
		return scanNote(row)
	})
}

func (r *noteRepository) Delete(ctx context.Context, tenantID, id string) error {
	return expectOne(conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM notes WHERE tenant_id=$1 AND id=$2`, tenantID, id))
}
