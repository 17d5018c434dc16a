package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	TenantID  string
}

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users         repository.UserRepository
	tenants       repository.TenantRepository
	tx            repository.Transactor
	revoked       auth.RevocationStore
	tokenMgr      *auth.TokenManager
	bcryptCost    int
	defaultTenant string
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	TenantRepo repository.TenantRepository
	Transactor repository.Transactor
	Revocation auth.RevocationStore
	Tokens     *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokens := deps.Tokens
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	}
	return &AuthService{
		users:         deps.UserRepo,
		tenants:       deps.TenantRepo,
		tx:            deps.Transactor,
		revoked:       deps.Revocation,
		tokenMgr:      tokens,
		bcryptCost:    cfg.Auth.BcryptCost,
		defaultTenant: cfg.Tenancy.DefaultTenantID,
	}
}

// Register creates a user, joins it to the default tenant and signs a token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.NewRequiredField("email")
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	now := domain.NowMillis()
	user := &domain.User{
		ID:           NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return apperrors.NewConflict(apperrors.CodeEmailTaken, "email already registered")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if err := s.users.Create(ctx, user); err != nil {
			if apperrors.IsUniqueViolation(err) {
				return apperrors.NewConflict(apperrors.CodeEmailTaken, "email already registered")
			}
			return err
		}
		if s.defaultTenant == "" {
			return nil
		}
		return s.tenants.AddMember(ctx, &domain.Membership{
			TenantID:  s.defaultTenant,
			UserID:    user.ID,
			Role:      domain.RoleMember,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, invalidCredentials()
	}
	return s.issue(user)
}

// Me returns the user behind an id, typically the authenticated principal.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.revoked == nil || tokenID == "" {
		return nil
	}
	return s.revoked.RevokeToken(ctx, tokenID, expiresAt)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	issued, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: issued.Token, ExpiresAt: issued.ExpiresAt, TenantID: s.defaultTenant}, nil
}

func invalidCredentials() error {
	return apperrors.NewDomainError(apperrors.CodeInvalidLogin, "invalid email or password", http.StatusUnauthorized)
}
