// Package memory is a test double for the repository interfaces. It keeps
// every table in process maps and raises the same pgconn errors as the
// Postgres constraints (unique ids, tenant scoped foreign keys, RESTRICT on
// delete) so service, middleware and HTTP tests run without a database.
// Production code never imports it.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

type key struct {
	tenant string
	id     string
}

// Store holds every table. The zero value is not usable; call NewStore.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	tenants     map[string]domain.Tenant
	users       map[string]domain.User
	memberships map[key]domain.Membership
	accounts    map[key]domain.Account
	contacts    map[key]domain.Contact
	deals       map[key]domain.Deal
	leads       map[key]domain.Lead
	activities  map[key]domain.Activity
	notes       map[key]domain.Note
}

// NewStore returns an empty store seeded with the given tenants.
func NewStore(seedTenants ...string) *Store {
	s := &Store{
		tenants:     map[string]domain.Tenant{},
		users:       map[string]domain.User{},
		memberships: map[key]domain.Membership{},
		accounts:    map[key]domain.Account{},
		contacts:    map[key]domain.Contact{},
		deals:       map[key]domain.Deal{},
		leads:       map[key]domain.Lead{},
		activities:  map[key]domain.Activity{},
		notes:       map[key]domain.Note{},
	}
	now := domain.NowMillis()
	for _, id := range seedTenants {
		s.tenants[id] = domain.Tenant{ID: id, Name: id, CreatedAt: now, UpdatedAt: now}
	}
	return s
}

// InTx runs fn and restores the previous state when it fails. Transactions
// are serialised.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := s.clone()
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) clone() *Store {
	return &Store{
		tenants:     maps.Clone(s.tenants),
		users:       maps.Clone(s.users),
		memberships: maps.Clone(s.memberships),
		accounts:    maps.Clone(s.accounts),
		contacts:    maps.Clone(s.contacts),
		deals:       maps.Clone(s.deals),
		leads:       maps.Clone(s.leads),
		activities:  maps.Clone(s.activities),
		notes:       maps.Clone(s.notes),
	}
}

func (s *Store) restore(snap *Store) {
	s.tenants = snap.tenants
	s.users = snap.users
	s.memberships = snap.memberships
	s.accounts = snap.accounts
	s.contacts = snap.contacts
	s.deals = snap.deals
	s.leads = snap.leads
	s.activities = snap.activities
	s.notes = snap.notes
}

// Repositories bundles the repositories backed by one store.
type Repositories struct {
	Users      repository.UserRepository
	Tenants    repository.TenantRepository
	Accounts   repository.AccountRepository
	Contacts   repository.ContactRepository
	Deals      repository.DealRepository
	Leads      repository.LeadRepository
	Activities repository.ActivityRepository
	Notes      repository.NoteRepository
	Transactor repository.Transactor
}

// Repositories returns every repository view of the store.
func (s *Store) Repositories() Repositories {
	return Repositories{
		Users:      userRepo{s},
		Tenants:    tenantRepo{s},
		Accounts:   accountRepo{s},
		Contacts:   contactRepo{s},
		Deals:      dealRepo{s},
		Leads:      leadRepo{s},
		Activities: activityRepo{s},
		Notes:      noteRepo{s},
		Transactor: s,
	}
}

func uniqueViolation(table string) error {
	return &pgconn.PgError{Code: "23505", TableName: table, Message: "duplicate key value violates unique constraint"}
}

func foreignKeyViolation(table string) error {
	return &pgconn.PgError{Code: "23503", TableName: table, Message: "violates foreign key constraint"}
}

// reference checks an optional foreign key inside the tenant.
func reference[T any](rows map[key]T, tenant string, id *string) bool {
	if id == nil {
		return true
	}
	_, ok := rows[key{tenant, *id}]
	return ok
}

func eqPtr(filter *string, value *string) bool {
	if filter == nil {
		return true
	}
	return value != nil && *value == *filter
}

func eqStr(filter *string, value string) bool {
	return filter == nil || value == *filter
}

// matches reports whether any field contains the search term, case-insensitively.
func matches(search *string, fields ...*string) bool {
	if search == nil {
		return true
	}
	term := strings.ToLower(strings.TrimSpace(*search))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if f != nil && strings.Contains(strings.ToLower(*f), term) {
			return true
		}
	}
	return false
}

// page applies the same bounds as the Postgres repositories.
func page[T any](rows []T, filter repository.ListFilter) []T {
	limit, offset := repository.PageBounds(filter)
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func get[T any](s *Store, table func(*Store) map[key]T, tenant, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := table(s)[key{tenant, id}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &row, nil
}
