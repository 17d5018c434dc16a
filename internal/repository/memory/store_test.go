package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func TestAccountsAreTenantScoped(t *testing.T) {
	ctx := context.Background()
	repos := NewStore("t1", "t2").Repositories()

	require.NoError(t, repos.Accounts.Create(ctx, &domain.Account{ID: "a1", TenantID: "t1", Name: "Acme"}))
	require.NoError(t, repos.Accounts.Create(ctx, &domain.Account{ID: "a1", TenantID: "t2", Name: "Other"}))

	got, err := repos.Accounts.GetByID(ctx, "t1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	list, err := repos.Accounts.List(ctx, "t2", repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Other", list[0].Name)

	_, err = repos.Accounts.GetByID(ctx, "t3", "a1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestDuplicateIDIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	repos := NewStore("t1").Repositories()
	require.NoError(t, repos.Leads.Create(ctx, &domain.Lead{ID: "l1", TenantID: "t1", Name: "x", Status: domain.LeadStatusNew}))

	err := repos.Leads.Create(ctx, &domain.Lead{ID: "l1", TenantID: "t1", Name: "y", Status: domain.LeadStatusNew})
	assert.True(t, apperrors.IsUniqueViolation(err))
}

func TestContactReferenceMustExistInTenant(t *testing.T) {
	ctx := context.Background()
	repos := NewStore("t1", "t2").Repositories()
	require.NoError(t, repos.Accounts.Create(ctx, &domain.Account{ID: "a1", TenantID: "t2", Name: "Acme"}))

	err := repos.Contacts.Create(ctx, &domain.Contact{ID: "c1", TenantID: "t1", Name: "Ana", AccountID: strPtr("a1")})
	assert.True(t, apperrors.IsForeignKeyViolation(err))
}

func TestAccountDeleteRestrictedAndCascades(t *testing.T) {
	ctx := context.Background()
	repos := NewStore("t1").Repositories()
	require.NoError(t, repos.Accounts.Create(ctx, &domain.Account{ID: "a1", TenantID: "t1", Name: "Acme"}))
	require.NoError(t, repos.Contacts.Create(ctx, &domain.Contact{ID: "c1", TenantID: "t1", Name: "Ana", AccountID: strPtr("a1")}))
	require.NoError(t, repos.Notes.Create(ctx, &domain.Note{ID: "n1", TenantID: "t1", Body: "hi", AccountID: strPtr("a1")}))

	assert.True(t, apperrors.IsForeignKeyViolation(repos.Accounts.Delete(ctx, "t1", "a1")))

	require.NoError(t, repos.Contacts.Delete(ctx, "t1", "c1"))
	require.NoError(t, repos.Accounts.Delete(ctx, "t1", "a1"))

	_, err := repos.Notes.GetByID(ctx, "t1", "n1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore("t1")
	repos := store.Repositories()
	boom := errors.New("boom")

	err := repos.Transactor.InTx(ctx, func(ctx context.Context) error {
		require.NoError(t, repos.Accounts.Create(ctx, &domain.Account{ID: "a1", TenantID: "t1", Name: "Acme"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repos.Accounts.GetByID(ctx, "t1", "a1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestActivityListFiltersAndOrdersByDueDate(t *testing.T) {
	ctx := context.Background()
	repos := NewStore("t1").Repositories()
	due := func(v int64) *int64 { return &v }
	for _, a := range []domain.Activity{
		{ID: "x", TenantID: "t1", Title: "later", Type: domain.ActivityTypeTask, Status: domain.ActivityStatusPending, DueDate: due(300)},
		{ID: "y", TenantID: "t1", Title: "undated", Type: domain.ActivityTypeTask, Status: domain.ActivityStatusPending},
		{ID: "z", TenantID: "t1", Title: "soon", Type: domain.ActivityTypeCall, Status: domain.ActivityStatusPending, DueDate: due(100)},
		{ID: "w", TenantID: "t1", Title: "done", Type: domain.ActivityTypeCall, Status: domain.ActivityStatusDone, DueDate: due(200)},
	} {
		require.NoError(t, repos.Activities.Create(ctx, &a))
	}

	all, err := repos.Activities.List(ctx, "t1", repository.ListFilter{})
	require.NoError(t, err)
	ids := []string{}
	for _, a := range all {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"z", "w", "x", "y"}, ids)

	pending, err := repos.Activities.List(ctx, "t1", repository.ListFilter{
		Status:  strPtr(string(domain.ActivityStatusPending)),
		DueFrom: due(50),
		DueTo:   due(250),
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "z", pending[0].ID)
}

func TestMembershipUpsertKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	repos := NewStore("t1").Repositories()
	require.NoError(t, repos.Users.Create(ctx, &domain.User{ID: "u1", Email: "Ana@Example.com", Name: "Ana"}))
	require.NoError(t, repos.Tenants.AddMember(ctx, &domain.Membership{TenantID: "t1", UserID: "u1", Role: domain.RoleMember}))
	require.NoError(t, repos.Tenants.AddMember(ctx, &domain.Membership{TenantID: "t1", UserID: "u1", Role: domain.RoleAdmin}))

	members, err := repos.Tenants.ListMembers(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, domain.RoleAdmin, members[0].Role)
	assert.Equal(t, "ana@example.com", members[0].Email)

	assert.True(t, apperrors.IsForeignKeyViolation(
		repos.Tenants.AddMember(ctx, &domain.Membership{TenantID: "missing", UserID: "u1", Role: domain.RoleMember})))
}
