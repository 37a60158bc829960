// Package scheduler polls every user's sorted collection on a fixed interval
// and decides, for the earliest-due reminder only, whether to deliver, retry
// or drop it. The pop is atomic and exclusive, so concurrent scheduler
// instances cannot double-deliver an entry, and a not-yet-due entry makes a
// pop/requeue round trip without being altered.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"remindme/internal/reminder/repository"
	pkgLog "remindme/pkg/log"
)

const (
	defaultInterval   = 5 * time.Second
	defaultSendWindow = 120 * time.Second
	defaultRetryDelay = 300 * time.Second
	defaultExpiry     = 200 * time.Second
)

// Sender delivers a due reminder through the messaging transport.
type Sender interface {
	SendText(ctx context.Context, userID, text string) error
}

// Config holds the scheduler timing knobs.
type Config struct {
	// Interval between polling ticks.
	Interval time.Duration
	// SendWindow is the half-width of the delivery window around the due time.
	SendWindow time.Duration
	// RetryDelay is added to the due time when delivery fails.
	RetryDelay time.Duration
	// Expiry is how far past due an undelivered reminder is silently dropped.
	Expiry time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.SendWindow <= 0 {
		c.SendWindow = defaultSendWindow
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.Expiry <= 0 {
		c.Expiry = defaultExpiry
	}
	return c
}

// Scheduler is the periodic due-task loop.
type Scheduler struct {
	l      pkgLog.Logger
	repo   repository.Repository
	sender Sender
	cfg    Config
}

// New creates a Scheduler.
func New(l pkgLog.Logger, repo repository.Repository, sender Sender, cfg Config) *Scheduler {
	return &Scheduler{
		l:      l,
		repo:   repo,
		sender: sender,
		cfg:    cfg.withDefaults(),
	}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx, time.Now())
		}
	}
}

// Tick processes every registered user once. A store fault for one user must
// not abort processing of the others.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	users, err := s.repo.AllUsers(ctx)
	if err != nil {
		s.l.Errorf(ctx, "scheduler: failed to list users: %v", err)
		return
	}

	for _, userID := range users {
		if err := s.processUser(ctx, userID, now); err != nil {
			s.l.Errorf(ctx, "scheduler: user %s: %v", userID, err)
		}
	}
}

// processUser examines only the earliest-due entry, which the pop removes as
// part of the read.
func (s *Scheduler) processUser(ctx context.Context, userID string, now time.Time) error {
	entry, ok, err := s.repo.PopEarliest(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	delta := time.Duration(entry.DueAt-now.Unix()) * time.Second

	switch {
	case delta.Abs() < s.cfg.SendWindow:
		text := fmt.Sprintf("You asked us to remind you about: %s", entry.Text)
		if err := s.sender.SendText(ctx, userID, text); err != nil {
			// Sole retry mechanism for delivery faults: push the due time out
			// and let a later tick try again.
			s.l.Warnf(ctx, "scheduler: delivery to user %s failed, delaying: %v", userID, err)
			return s.repo.Add(ctx, userID, entry.DueAt+int64(s.cfg.RetryDelay.Seconds()), entry.Text)
		}
		s.l.Infof(ctx, "scheduler: delivered reminder to user %s", userID)
		return nil

	case delta < -s.cfg.Expiry:
		// Too far past due and outside the send window: intentional data
		// loss for abandoned reminders, not a fault.
		s.l.Infof(ctx, "scheduler: dropping expired reminder for user %s (due %d)", userID, entry.DueAt)
		return nil

	default:
		// Not yet due (or exactly on a window edge): re-insert unchanged.
		return s.repo.Add(ctx, userID, entry.DueAt, entry.Text)
	}
}
