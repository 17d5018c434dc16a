package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// TenantInput describes tenant creation payload.
type TenantInput struct {
	ID   string
	Name string
}

// MemberInput adds a registered user to the active tenant.
type MemberInput struct {
	Email string
	Role  domain.Role
}

// TenantService manages tenants and memberships.
type TenantService struct {
	tenants repository.TenantRepository
	users   repository.UserRepository
	tx      repository.Transactor
}

// NewTenantService constructs the service.
func NewTenantService(tenants repository.TenantRepository, users repository.UserRepository, tx repository.Transactor) *TenantService {
	return &TenantService{tenants: tenants, users: users, tx: tx}
}

// ListForUser returns every tenant the user belongs to with their role.
func (s *TenantService) ListForUser(ctx context.Context, userID string) ([]domain.TenantMembership, error) {
	return s.tenants.ListForUser(ctx, userID)
}

// Create makes a tenant with the caller as owner.
func (s *TenantService) Create(ctx context.Context, userID string, input TenantInput) (*domain.TenantMembership, error) {
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}
	now := domain.NowMillis()
	tenant := &domain.Tenant{ID: id, Name: name, CreatedBy: &userID, CreatedAt: now, UpdatedAt: now}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.tenants.Create(ctx, tenant); err != nil {
			return err
		}
		return s.tenants.AddMember(ctx, &domain.Membership{
			TenantID:  tenant.ID,
			UserID:    userID,
			Role:      domain.RoleOwner,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &domain.TenantMembership{Tenant: *tenant, Role: domain.RoleOwner}, nil
}

// Current returns the active tenant with the caller's role.
func (s *TenantService) Current(ctx context.Context, scope Scope, role domain.Role) (*domain.TenantMembership, error) {
	tenant, err := s.tenants.GetByID(ctx, scope.TenantID)
	if err != nil {
		return nil, notFound(err, "tenant")
	}
	return &domain.TenantMembership{Tenant: *tenant, Role: role}, nil
}

// Members lists the users of the active tenant.
func (s *TenantService) Members(ctx context.Context, scope Scope) ([]domain.Member, error) {
	return s.tenants.ListMembers(ctx, scope.TenantID)
}

// AddMember grants a registered user a role in the active tenant. Adding an
// existing member changes their role. Only owners may grant ownership.
func (s *TenantService) AddMember(ctx context.Context, scope Scope, callerRole domain.Role, input MemberInput) (*domain.Member, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, apperrors.NewRequiredField("email")
	}
	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role " + string(role))
	}
	if role == domain.RoleOwner && callerRole != domain.RoleOwner {
		return nil, apperrors.NewForbidden(apperrors.CodeForbidden, "only owners may grant the owner role")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	membership := &domain.Membership{
		TenantID:  scope.TenantID,
		UserID:    user.ID,
		Role:      role,
		CreatedAt: domain.NowMillis(),
	}
	if err := s.tenants.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return &domain.Member{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      role,
		CreatedAt: membership.CreatedAt,
	}, nil
}
