package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/events"
)

func TestNotificationServicePostsWebhook(t *testing.T) {
	received := make(chan events.Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var e events.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&e))
		received <- e
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.NewNop(), config.NotificationConfig{WebhookURL: srv.URL})
	svc.RegisterHandlers()

	accounts := NewAccountService(newRepos().Accounts, nil, dispatcher, zap.NewNop())
	acct, err := accounts.Create(context.Background(), scope, AccountInput{Name: "Acme"})
	require.NoError(t, err)

	e := <-received
	assert.Equal(t, events.EventAccountCreated, e.Type)
	assert.Equal(t, acct.ID, e.EntityID)
	assert.Equal(t, "t1", e.TenantID)
}

func TestNotificationServiceUsesDeliverer(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.NewNop(), config.NotificationConfig{WebhookURL: "http://127.0.0.1:1/unused"})
	var queued []func(context.Context)
	svc.SetDeliverer(func(job func(context.Context)) bool {
		queued = append(queued, job)
		return true
	})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventLeadConverted, "t1", "u1", "l1", nil)))
	assert.Len(t, queued, 1)
}
