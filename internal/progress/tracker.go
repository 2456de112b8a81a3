// Package progress aggregates the experience-point side channel into a
// single process-wide gamification state. Engines never touch this state
// directly; they emit XPAwarded events and the tracker consumes them.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/events"
)

// Verify interface compliance at compile time.
var _ events.Handler = (*Tracker)(nil)

// Tracker owns the {xp, level, streak, badges} state. It is the only
// component in the system shared by all engines, so it locks internally.
type Tracker struct {
	mu           sync.Mutex
	stats        domain.UserStats
	lastActivity time.Time
	now          func() time.Time
	logger       *slog.Logger
}

// NewTracker creates a tracker starting at level 1 with no XP.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		stats: domain.UserStats{
			Level:  domain.LevelForXP(0),
			Badges: []string{},
		},
		now:    time.Now,
		logger: logger.With(slog.String("component", "progress_tracker")),
	}
}

// HandleEvent consumes XPAwarded events; other event types are ignored.
func (t *Tracker) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.EventTypeXPAwarded {
		return nil
	}

	var payload events.XPAwardedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode xp payload: %w", err)
	}
	if payload.Amount <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.touchStreakLocked()

	t.stats.XP += payload.Amount
	newLevel := domain.LevelForXP(t.stats.XP)
	leveledUp := newLevel > t.stats.Level
	t.stats.Level = newLevel
	if leveledUp {
		t.stats.Badges = append(t.stats.Badges, fmt.Sprintf("Level %d", newLevel))
	}

	t.logger.InfoContext(ctx, "xp awarded",
		slog.Int("amount", payload.Amount),
		slog.String("source", payload.Source),
		slog.Int("total_xp", t.stats.XP),
		slog.Int("level", t.stats.Level),
		slog.Bool("leveled_up", leveledUp))

	return nil
}

// touchStreakLocked updates the daily streak based on the previous activity
// date: same day keeps it, the next day extends it, a gap resets it to 1.
func (t *Tracker) touchStreakLocked() {
	today := t.now().UTC().Truncate(24 * time.Hour)
	switch {
	case t.lastActivity.IsZero():
		t.stats.Streak = 1
	case t.lastActivity.Equal(today):
		// Already counted today.
	case t.lastActivity.Equal(today.Add(-24 * time.Hour)):
		t.stats.Streak++
	default:
		t.stats.Streak = 1
	}
	t.lastActivity = today
}

// AwardBadge adds a named badge if not already held.
func (t *Tracker) AwardBadge(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range t.stats.Badges {
		if b == name {
			return
		}
	}
	t.stats.Badges = append(t.stats.Badges, name)
}

// Stats returns a copy of the current progress state.
func (t *Tracker) Stats() domain.UserStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.stats
	out.Badges = append([]string(nil), t.stats.Badges...)
	return out
}
