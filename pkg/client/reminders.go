package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMinLead is the shortest delay a reminder is scheduled with.
	DefaultMinLead = 10 * time.Second
	// DefaultRemindBefore applies to activities without remind_before_minutes.
	DefaultRemindBefore = 15
	// MaxRemindBefore caps remind_before_minutes at one year, as the server does.
	MaxRemindBefore = 525600
)

// Reminder is one local notification for an activity.
type Reminder struct {
	TenantID   string
	ActivityID string
	Title      string
	At         time.Time
}

// Notifier schedules local notifications. Schedule returns an id Cancel accepts.
type Notifier interface {
	Schedule(ctx context.Context, r Reminder) (string, error)
	Cancel(ctx context.Context, notificationID string) error
}

// SyncResult counts what one Sync changed.
type SyncResult struct {
	Scheduled int
	Cancelled int
}

// ReminderPlanner keeps scheduled notifications aligned with activities.
// The map from "<tenant>/<activity>" to notification id is persisted in the KV.
type ReminderPlanner struct {
	kv       KV
	notifier Notifier
	MinLead  time.Duration
	now      func() time.Time
}

// NewReminderPlanner returns a planner with DefaultMinLead.
func NewReminderPlanner(kv KV, notifier Notifier) *ReminderPlanner {
	return &ReminderPlanner{kv: kv, notifier: notifier, MinLead: DefaultMinLead, now: time.Now}
}

// Plan returns the reminder for an activity, or false when none is due:
// completed, undated and overdue activities get none. A trigger closer than
// MinLead is pushed to now+MinLead.
func (p *ReminderPlanner) Plan(a Activity) (Reminder, bool) {
	if a.Status == ActivityDone || a.DueDate == nil {
		return Reminder{}, false
	}
	now := p.now()
	due := time.UnixMilli(*a.DueDate)
	if !due.After(now) {
		return Reminder{}, false
	}
	before := DefaultRemindBefore
	if a.RemindBeforeMinutes != nil && *a.RemindBeforeMinutes >= 0 {
		before = min(*a.RemindBeforeMinutes, MaxRemindBefore)
	}
	at := due.Add(-time.Duration(before) * time.Minute)
	if earliest := now.Add(p.MinLead); at.Before(earliest) {
		at = earliest
	}
	return Reminder{TenantID: a.TenantID, ActivityID: a.ID, Title: a.Title, At: at}, true
}

func reminderKey(tenantID, activityID string) string {
	return tenantID + "/" + activityID
}

// Sync reschedules the reminders of one tenant. activities must be the
// tenant's complete activity list: reminders of this tenant whose activity is
// missing or no longer needs one are cancelled. Other tenants are untouched.
func (p *ReminderPlanner) Sync(ctx context.Context, tenantID string, activities []Activity) (SyncResult, error) {
	var res SyncResult
	if tenantID == "" {
		return res, errors.New("sync reminders: tenant is required")
	}
	scheduled, err := p.load()
	if err != nil {
		return res, err
	}

	var errs []error
	seen := make(map[string]bool, len(activities))
	for _, a := range activities {
		a.TenantID = tenantID
		key := reminderKey(tenantID, a.ID)
		seen[key] = true
		if id, ok := scheduled[key]; ok {
			if err := p.notifier.Cancel(ctx, id); err != nil {
				errs = append(errs, fmt.Errorf("cancel %s: %w", key, err))
			}
			delete(scheduled, key)
			res.Cancelled++
		}
		reminder, ok := p.Plan(a)
		if !ok {
			continue
		}
		id, err := p.notifier.Schedule(ctx, reminder)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule %s: %w", key, err))
			continue
		}
		scheduled[key] = id
		res.Scheduled++
	}

	prefix := reminderKey(tenantID, "")
	for key, id := range scheduled {
		if !strings.HasPrefix(key, prefix) || seen[key] {
			continue
		}
		if err := p.notifier.Cancel(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("cancel %s: %w", key, err))
		}
		delete(scheduled, key)
		res.Cancelled++
	}

	if err := p.save(scheduled); err != nil {
		errs = append(errs, err)
	}
	return res, errors.Join(errs...)
}

// Scheduled returns the persisted "<tenant>/<activity>" to notification map.
func (p *ReminderPlanner) Scheduled() (map[string]string, error) {
	return p.load()
}

func (p *ReminderPlanner) load() (map[string]string, error) {
	raw, ok, err := p.kv.Get(keyReminders)
	if err != nil {
		return nil, fmt.Errorf("read reminders: %w", err)
	}
	m := map[string]string{}
	if !ok || raw == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]string{}, nil
	}
	return m, nil
}

func (p *ReminderPlanner) save(m map[string]string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal reminders: %w", err)
	}
	if err := p.kv.Set(keyReminders, string(raw)); err != nil {
		return fmt.Errorf("save reminders: %w", err)
	}
	return nil
}
