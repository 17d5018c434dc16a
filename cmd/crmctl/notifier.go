package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/pkg/client"
)

// logNotifier stands in for a device notification scheduler and logs each call.
type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) Schedule(_ context.Context, r client.Reminder) (string, error) {
	id := fmt.Sprintf("%s/%s@%d", r.TenantID, r.ActivityID, r.At.UnixMilli())
	n.logger.Info("reminder scheduled",
		zap.String("tenant_id", r.TenantID),
		zap.String("activity_id", r.ActivityID),
		zap.String("title", r.Title),
		zap.Time("at", r.At),
		zap.Duration("in", time.Until(r.At).Round(time.Second)),
		zap.String("notification_id", id),
	)
	return id, nil
}

func (n *logNotifier) Cancel(_ context.Context, id string) error {
	n.logger.Info("reminder cancelled", zap.String("notification_id", id))
	return nil
}
