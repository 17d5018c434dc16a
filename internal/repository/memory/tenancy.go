package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, ok := r.s.users[user.ID]; ok {
		return uniqueViolation("users")
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return uniqueViolation("users")
		}
	}
	stored := *user
	stored.Email = email
	r.s.users[user.ID] = stored
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type tenantRepo struct{ s *Store }

func (r tenantRepo) Create(_ context.Context, tenant *domain.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tenants[tenant.ID]; ok {
		return uniqueViolation("tenants")
	}
	r.s.tenants[tenant.ID] = *tenant
	return nil
}

func (r tenantRepo) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (r tenantRepo) AddMember(_ context.Context, m *domain.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tenants[m.TenantID]; !ok {
		return foreignKeyViolation("memberships")
	}
	if _, ok := r.s.users[m.UserID]; !ok {
		return foreignKeyViolation("memberships")
	}
	k := key{m.TenantID, m.UserID}
	if existing, ok := r.s.memberships[k]; ok {
		existing.Role = m.Role
		r.s.memberships[k] = existing
		return nil
	}
	r.s.memberships[k] = *m
	return nil
}

func (r tenantRepo) GetMembership(_ context.Context, tenantID, userID string) (*domain.Membership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.memberships[key{tenantID, userID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (r tenantRepo) ListForUser(_ context.Context, userID string) ([]domain.TenantMembership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.TenantMembership{}
	for k, m := range r.s.memberships {
		if k.id != userID {
			continue
		}
		out = append(out, domain.TenantMembership{Tenant: r.s.tenants[k.tenant], Role: m.Role})
	}
	slices.SortFunc(out, func(a, b domain.TenantMembership) int {
		return strings.Compare(a.Tenant.Name, b.Tenant.Name)
	})
	return out, nil
}

func (r tenantRepo) ListMembers(_ context.Context, tenantID string) ([]domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Member{}
	for k, m := range r.s.memberships {
		if k.tenant != tenantID {
			continue
		}
		u := r.s.users[k.id]
		out = append(out, domain.Member{UserID: u.ID, Email: u.Email, Name: u.Name, Role: m.Role, CreatedAt: m.CreatedAt})
	}
	slices.SortFunc(out, func(a, b domain.Member) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}
