package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/repository/memory"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeRevocations struct {
	revoked map[string]time.Time
}

func (f *fakeRevocations) RevokeToken(_ context.Context, id string, until time.Time) error {
	f.revoked[id] = until
	return nil
}

func (f *fakeRevocations) IsTokenRevoked(_ context.Context, id string) (bool, error) {
	_, ok := f.revoked[id]
	return ok, nil
}

func strPtr(s string) *string { return &s }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, code, de.Code)
}

var scope = Scope{TenantID: "t1", UserID: "u1"}

func newRepos() memory.Repositories {
	return memory.NewStore("t1", "t2").Repositories()
}

func TestAccountCreateAssignsIDAndTrims(t *testing.T) {
	repos := newRepos()
	pub := &recordingPublisher{}
	svc := NewAccountService(repos.Accounts, repos.Contacts, pub, zap.NewNop())

	acct, err := svc.Create(context.Background(), scope, AccountInput{Name: "  Acme ", Website: strPtr(" ")})
	require.NoError(t, err)

	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "Acme", acct.Name)
	assert.Nil(t, acct.Website)
	assert.Equal(t, "t1", acct.TenantID)
	assert.Equal(t, acct.CreatedAt, acct.UpdatedAt)
	assert.Equal(t, []events.EventType{events.EventAccountCreated}, pub.types())
}

func TestAccountCreateRequiresName(t *testing.T) {
	repos := newRepos()
	svc := NewAccountService(repos.Accounts, repos.Contacts, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), scope, AccountInput{Name: "   "})
	assertCode(t, err, "name_required")
}

func TestAccountCreateRejectsBadID(t *testing.T) {
	repos := newRepos()
	svc := NewAccountService(repos.Accounts, repos.Contacts, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), scope, AccountInput{ID: "a/b", Name: "Acme"})
	assertCode(t, err, apperrors.CodeValidation)
}

func TestAccountDeleteWithContactsConflicts(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	accounts := NewAccountService(repos.Accounts, repos.Contacts, nil, zap.NewNop())
	contacts := NewContactService(repos.Contacts, nil, zap.NewNop())

	acct, err := accounts.Create(ctx, scope, AccountInput{Name: "Acme"})
	require.NoError(t, err)
	_, err = contacts.Create(ctx, scope, ContactInput{Name: "Ana", AccountID: &acct.ID})
	require.NoError(t, err)

	err = accounts.Delete(ctx, scope, acct.ID)
	assertCode(t, err, apperrors.CodeAccountContacts)

	_, err = accounts.Get(ctx, scope, acct.ID)
	assert.NoError(t, err)
}

func TestAccountUpdatePatchesAndClears(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := NewAccountService(repos.Accounts, repos.Contacts, nil, zap.NewNop())

	acct, err := svc.Create(ctx, scope, AccountInput{Name: "Acme", Website: strPtr("acme.test"), Phone: strPtr("555")})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, scope, acct.ID, AccountPatch{Website: strPtr(""), Name: strPtr("Acme Inc")}))

	got, err := svc.Get(ctx, scope, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", got.Name)
	assert.Nil(t, got.Website)
	assert.Equal(t, "555", *got.Phone)

	assertCode(t, svc.Update(ctx, scope, acct.ID, AccountPatch{Name: strPtr("")}), "name_required")
	assertCode(t, svc.Update(ctx, scope, "missing", AccountPatch{}), apperrors.CodeNotFound)
}

func TestGetIsTenantScoped(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := NewAccountService(repos.Accounts, repos.Contacts, nil, zap.NewNop())

	acct, err := svc.Create(ctx, scope, AccountInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, Scope{TenantID: "t2", UserID: "u1"}, acct.ID)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestDealStageChangePublishes(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	pub := &recordingPublisher{}
	svc := NewDealService(repos.Deals, pub, zap.NewNop())

	deal, err := svc.Create(ctx, scope, DealInput{Title: "Big one"})
	require.NoError(t, err)
	assert.Equal(t, domain.DealStageNew, deal.Stage)

	won := domain.DealStageWon
	require.NoError(t, svc.Update(ctx, scope, deal.ID, DealPatch{Stage: &won}))

	require.Len(t, pub.events, 1)
	payload, ok := pub.events[0].Payload.(events.DealStageChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.DealStageNew, payload.OldStage)
	assert.Equal(t, domain.DealStageWon, payload.NewStage)

	bogus := domain.DealStage("bogus")
	assertCode(t, svc.Update(ctx, scope, deal.ID, DealPatch{Stage: &bogus}), apperrors.CodeValidation)
}

func TestDealRejectsNegativeAmount(t *testing.T) {
	repos := newRepos()
	svc := NewDealService(repos.Deals, nil, zap.NewNop())
	amount := -1.0

	_, err := svc.Create(context.Background(), scope, DealInput{Title: "x", Amount: &amount})
	assertCode(t, err, apperrors.CodeValidation)
}

func newLeadService(repos memory.Repositories, pub Publisher) *LeadService {
	return NewLeadService(LeadDependencies{
		LeadRepo:    repos.Leads,
		AccountRepo: repos.Accounts,
		ContactRepo: repos.Contacts,
		Transactor:  repos.Transactor,
		Dispatcher:  pub,
		Logger:      zap.NewNop(),
	})
}

func TestLeadConvertCreatesAccountAndContact(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	pub := &recordingPublisher{}
	svc := newLeadService(repos, pub)

	lead, err := svc.Create(ctx, scope, LeadInput{Name: "Ana", Email: strPtr("ana@acme.test"), Company: strPtr("Acme")})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)

	conv, err := svc.Convert(ctx, scope, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, conv.AccountID)

	acct, err := repos.Accounts.GetByID(ctx, "t1", *conv.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", acct.Name)

	contact, err := repos.Contacts.GetByID(ctx, "t1", conv.ContactID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", contact.Name)
	assert.Equal(t, conv.AccountID, contact.AccountID)

	updated, err := svc.Get(ctx, scope, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusQualified, updated.Status)
	assert.Equal(t, []events.EventType{events.EventLeadConverted}, pub.types())
}

func TestLeadConvertWithoutCompanySkipsAccount(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := newLeadService(repos, nil)

	lead, err := svc.Create(ctx, scope, LeadInput{Name: "Solo"})
	require.NoError(t, err)

	conv, err := svc.Convert(ctx, scope, lead.ID)
	require.NoError(t, err)
	assert.Nil(t, conv.AccountID)

	accounts, err := repos.Accounts.List(ctx, "t1", repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestLeadConvertDiscardedConflicts(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := newLeadService(repos, nil)

	lead, err := svc.Create(ctx, scope, LeadInput{Name: "Gone", Company: strPtr("X"), Status: domain.LeadStatusDiscarded})
	require.NoError(t, err)

	_, err = svc.Convert(ctx, scope, lead.ID)
	assertCode(t, err, apperrors.CodeConflict)

	_, err = svc.Convert(ctx, scope, "missing")
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestActivityDefaultsAndEvents(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	pub := &recordingPublisher{}
	svc := NewActivityService(repos.Activities, pub, zap.NewNop())
	due := time.Now().Add(time.Hour).UnixMilli()

	act, err := svc.Create(ctx, scope, ActivityInput{Title: "Call Ana", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityTypeTask, act.Type)
	assert.Equal(t, domain.ActivityStatusPending, act.Status)

	require.Len(t, pub.events, 1)
	payload := pub.events[0].Payload.(events.ActivityScheduledPayload)
	assert.Equal(t, domain.DefaultRemindBeforeMinutes, payload.RemindBeforeMinutes)
	assert.Equal(t, due, payload.DueDate)

	done := domain.ActivityStatusDone
	require.NoError(t, svc.Update(ctx, scope, act.ID, ActivityPatch{Status: &done}))
	assert.Equal(t, []events.EventType{events.EventActivityScheduled, events.EventActivityCompleted}, pub.types())
}

func TestActivityValidation(t *testing.T) {
	repos := newRepos()
	svc := NewActivityService(repos.Activities, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, scope, ActivityInput{Title: "x", Type: "fax"})
	assertCode(t, err, apperrors.CodeValidation)

	negative := -5
	_, err = svc.Create(ctx, scope, ActivityInput{Title: "x", RemindBeforeMinutes: &negative})
	assertCode(t, err, apperrors.CodeValidation)

	huge := domain.MaxRemindBeforeMinutes + 1
	_, err = svc.Create(ctx, scope, ActivityInput{Title: "x", RemindBeforeMinutes: &huge})
	assertCode(t, err, apperrors.CodeValidation)

	yearly := domain.MaxRemindBeforeMinutes
	_, err = svc.Create(ctx, scope, ActivityInput{Title: "x", RemindBeforeMinutes: &yearly})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, scope, ActivityInput{})
	assertCode(t, err, "title_required")
}

func TestNoteRequiresBody(t *testing.T) {
	repos := newRepos()
	svc := NewNoteService(repos.Notes)

	_, err := svc.Create(context.Background(), scope, NoteInput{Body: " "})
	assertCode(t, err, "body_required")
}

func TestDeleteReferencedContactIsRecordInUse(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	contacts := NewContactService(repos.Contacts, nil, zap.NewNop())
	deals := NewDealService(repos.Deals, nil, zap.NewNop())

	c, err := contacts.Create(ctx, scope, ContactInput{Name: "Ana"})
	require.NoError(t, err)
	_, err = deals.Create(ctx, scope, DealInput{Title: "d", ContactID: &c.ID})
	require.NoError(t, err)

	assertCode(t, contacts.Delete(ctx, scope, c.ID), apperrors.CodeRecordInUse)
	assertCode(t, contacts.Delete(ctx, scope, "missing"), apperrors.CodeNotFound)
}

func newAuthService(repos memory.Repositories, rev *fakeRevocations) *AuthService {
	cfg := config.Config{
		Auth:    config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4},
		Tenancy: config.TenancyConfig{DefaultTenantID: "t1"},
	}
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:   repos.Users,
		TenantRepo: repos.Tenants,
		Transactor: repos.Transactor,
		Revocation: rev,
	})
}

func TestRegisterJoinsDefaultTenant(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	svc := newAuthService(repos, &fakeRevocations{revoked: map[string]time.Time{}})

	res, err := svc.Register(ctx, "", "Ana@Acme.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.test", res.User.Email)
	assert.Equal(t, "ana", res.User.Name)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "t1", res.TenantID)

	m, err := repos.Tenants.GetMembership(ctx, "t1", res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, m.Role)

	_, err = svc.Register(ctx, "Other", "ana@acme.test", "secret2")
	assertCode(t, err, apperrors.CodeEmailTaken)

	_, err = svc.Register(ctx, "Short", "short@acme.test", "123")
	assertCode(t, err, apperrors.CodeValidation)
}

func TestLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	rev := &fakeRevocations{revoked: map[string]time.Time{}}
	svc := newAuthService(repos, rev)

	_, err := svc.Register(ctx, "Ana", "ana@acme.test", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@acme.test", "wrong")
	assertCode(t, err, apperrors.CodeInvalidLogin)
	_, err = svc.Login(ctx, "nobody@acme.test", "secret1")
	assertCode(t, err, apperrors.CodeInvalidLogin)

	res, err := svc.Login(ctx, "ANA@acme.test", "secret1")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(res.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, claims.ID, res.ExpiresAt))
	assert.Contains(t, rev.revoked, claims.ID)
}

func TestTenantCreateMakesOwnerAndAddMember(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	auth := newAuthService(repos, &fakeRevocations{revoked: map[string]time.Time{}})
	tenants := NewTenantService(repos.Tenants, repos.Users, repos.Transactor)

	owner, err := auth.Register(ctx, "Owner", "owner@acme.test", "secret1")
	require.NoError(t, err)
	other, err := auth.Register(ctx, "Bea", "bea@acme.test", "secret1")
	require.NoError(t, err)

	tm, err := tenants.Create(ctx, owner.User.ID, TenantInput{ID: "acme", Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, tm.Role)

	list, err := tenants.ListForUser(ctx, owner.User.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	acme := Scope{TenantID: "acme", UserID: owner.User.ID}
	member, err := tenants.AddMember(ctx, acme, domain.RoleOwner, MemberInput{Email: "bea@acme.test", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, other.User.ID, member.UserID)

	_, err = tenants.AddMember(ctx, acme, domain.RoleAdmin, MemberInput{Email: "bea@acme.test", Role: domain.RoleOwner})
	assertCode(t, err, apperrors.CodeForbidden)

	_, err = tenants.AddMember(ctx, acme, domain.RoleOwner, MemberInput{Email: "ghost@acme.test"})
	assertCode(t, err, apperrors.CodeNotFound)

	members, err := tenants.Members(ctx, acme)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = tenants.Create(ctx, owner.User.ID, TenantInput{ID: "acme", Name: "Dup"})
	assert.True(t, apperrors.IsUniqueViolation(err))
}
