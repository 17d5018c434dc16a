package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventAccountCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.EntityID)
		return errors.New("boom")
	})
	d.Subscribe(EventAccountCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventContactCreated, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventAccountCreated, "t1", "u1", "a1", nil))

	require.Error(t, err)
	assert.Equal(t, []string{"first:a1", "second:a1"}, calls)
}

func TestSubscribeAllSeesEveryType(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []EventType
	d.SubscribeAll(func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), New(EventDealStageChanged, "t1", "u1", "d1", nil)))
	require.NoError(t, d.Publish(context.Background(), New(EventActivityCompleted, "t1", "u1", "x1", nil)))
	assert.Equal(t, []EventType{EventDealStageChanged, EventActivityCompleted}, seen)
}

func TestPublishRecoversPanics(t *testing.T) {
	d := NewInMemoryDispatcher()
	called := false
	d.Subscribe(EventContactCreated, func(context.Context, Event) error { panic("bad handler") })
	d.SubscribeAll(func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventContactCreated, "t1", "u1", "n1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.True(t, called)
}

func TestPublishRequiresTenant(t *testing.T) {
	d := NewInMemoryDispatcher()
	err := d.Publish(context.Background(), New(EventAccountCreated, "", "u1", "a1", nil))
	assert.ErrorIs(t, err, ErrMissingTenant)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventLeadConverted, "t1", "u1", "l1", LeadConvertedPayload{ContactID: "c1"})

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, "t1", e.TenantID)
}
