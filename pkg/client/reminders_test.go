package client

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	next      int
	scheduled map[string]Reminder
	cancelled []string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{scheduled: map[string]Reminder{}}
}

func (f *fakeNotifier) Schedule(_ context.Context, r Reminder) (string, error) {
	f.next++
	id := fmt.Sprintf("n%d", f.next)
	f.scheduled[id] = r
	return id, nil
}

func (f *fakeNotifier) Cancel(_ context.Context, id string) error {
	delete(f.scheduled, id)
	f.cancelled = append(f.cancelled, id)
	return nil
}

func intPtr(v int) *int { return &v }

func newTestPlanner(now time.Time) (*ReminderPlanner, *fakeNotifier, KV) {
	kv := NewMemoryKV()
	n := newFakeNotifier()
	p := NewReminderPlanner(kv, n)
	p.now = func() time.Time { return now }
	return p, n, kv
}

func TestPlanReminder(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	p, _, _ := newTestPlanner(now)
	due := now.Add(time.Hour).UnixMilli()

	r, ok := p.Plan(Activity{ID: "a1", Title: "Call", DueDate: &due})
	require.True(t, ok)
	assert.Equal(t, time.UnixMilli(due).Add(-15*time.Minute), r.At)

	r, ok = p.Plan(Activity{ID: "a1", DueDate: &due, RemindBeforeMinutes: intPtr(0)})
	require.True(t, ok)
	assert.Equal(t, time.UnixMilli(due), r.At)

	_, ok = p.Plan(Activity{ID: "a1", DueDate: &due, Status: ActivityDone})
	assert.False(t, ok)
	_, ok = p.Plan(Activity{ID: "a1"})
	assert.False(t, ok)

	past := now.Add(-time.Minute).UnixMilli()
	_, ok = p.Plan(Activity{ID: "a1", DueDate: &past})
	assert.False(t, ok)
}

func TestPlanPushesTooSoonTrigger(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	p, _, _ := newTestPlanner(now)
	due := now.Add(5 * time.Minute).UnixMilli()

	r, ok := p.Plan(Activity{ID: "a1", DueDate: &due, RemindBeforeMinutes: intPtr(30)})
	require.True(t, ok)
	assert.Equal(t, now.Add(DefaultMinLead), r.At)
}

func TestSyncReschedulesAndDropsStale(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	p, n, _ := newTestPlanner(now)
	due := now.Add(time.Hour).UnixMilli()

	res, err := p.Sync(context.Background(), "t1", []Activity{
		{ID: "a1", Title: "Call", DueDate: &due},
		{ID: "a2", Title: "Mail", DueDate: &due},
	})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Scheduled: 2}, res)

	res, err = p.Sync(context.Background(), "t1", []Activity{
		{ID: "a1", Title: "Call", DueDate: &due, Status: ActivityDone},
	})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Cancelled: 2}, res)
	assert.Empty(t, n.scheduled)

	m, err := p.Scheduled()
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSyncPersistsMap(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	p, n, kv := newTestPlanner(now)
	due := now.Add(time.Hour).UnixMilli()
	acts := []Activity{{ID: "a1", Title: "Call", DueDate: &due}}

	_, err := p.Sync(context.Background(), "t1", acts)
	require.NoError(t, err)

	again := NewReminderPlanner(kv, n)
	again.now = p.now
	res, err := again.Sync(context.Background(), "t1", acts)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Scheduled: 1, Cancelled: 1}, res)
	assert.Equal(t, []string{"n1"}, n.cancelled)
	assert.Len(t, n.scheduled, 1)
}

func TestPlanClampsHugeOffset(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	p, _, _ := newTestPlanner(now)
	due := now.Add(2 * 365 * 24 * time.Hour).UnixMilli()

	r, ok := p.Plan(Activity{ID: "a1", DueDate: &due, RemindBeforeMinutes: intPtr(200_000_000)})
	require.True(t, ok)
	assert.False(t, r.At.After(time.UnixMilli(due)))
	assert.Equal(t, time.UnixMilli(due).Add(-MaxRemindBefore*time.Minute), r.At)
}

func TestSyncLeavesOtherTenantsAlone(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	p, n, _ := newTestPlanner(now)
	due := now.Add(time.Hour).UnixMilli()

	_, err := p.Sync(context.Background(), "t1", []Activity{{ID: "a1", Title: "Call", DueDate: &due}})
	require.NoError(t, err)
	res, err := p.Sync(context.Background(), "t2", []Activity{
		{ID: "b1", Title: "Mail", DueDate: &due},
		{ID: "a1", Title: "Same id, other tenant", DueDate: &due},
	})
	require.NoError(t, err)

	assert.Equal(t, SyncResult{Scheduled: 2}, res)
	assert.Empty(t, n.cancelled)
	assert.Len(t, n.scheduled, 3)

	m, err := p.Scheduled()
	require.NoError(t, err)
	assert.Contains(t, m, "t1/a1")
	assert.Contains(t, m, "t2/a1")
	assert.Contains(t, m, "t2/b1")
	assert.Equal(t, "t2", n.scheduled[m["t2/b1"]].TenantID)

	res, err = p.Sync(context.Background(), "t1", nil)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Cancelled: 1}, res)
	assert.Len(t, n.scheduled, 2)
}

func TestSyncRequiresTenant(t *testing.T) {
	p, _, _ := newTestPlanner(time.Now())
	_, err := p.Sync(context.Background(), "", nil)
	assert.Error(t, err)
}
