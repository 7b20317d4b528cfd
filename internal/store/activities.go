package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evdal/timeliste/internal/activity"
)

// LogActivity appends one event to the activity log. The actor is taken
// from the actor_name setting when present.
func (s *Store) LogActivity(message string) (*activity.Event, error) {
	ev := activity.Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   message,
	}
	if actor, err := s.GetSetting("actor_name"); err == nil {
		ev.Actor = actor
	}

	_, err := s.db.Exec(
		`INSERT INTO activity_events (id, ts, message, actor) VALUES (?, ?, ?, ?)`,
		ev.ID, ev.Timestamp, ev.Message, ev.Actor,
	)
	if err != nil {
		return nil, fmt.Errorf("insert activity event: %w", err)
	}
	return &ev, nil
}

// RecentEvents returns the newest events first.
func (s *Store) RecentEvents(limit int) ([]activity.Event, error) {
	query := `SELECT id, ts, message, actor FROM activity_events ORDER BY ts DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	return s.queryEvents(query)
}

// EventsBetween returns events whose timestamp date falls in [from, to],
// both yyyy-MM-dd keys.
func (s *Store) EventsBetween(from, to string) ([]activity.Event, error) {
	query := `SELECT id, ts, message, actor FROM activity_events
		WHERE date(ts) >= ? AND date(ts) <= ? ORDER BY ts DESC`
	return s.queryEvents(query, from, to)
}

func (s *Store) queryEvents(query string, args ...any) ([]activity.Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity events: %w", err)
	}
	defer rows.Close()

	var events []activity.Event
	for rows.Next() {
		var ev activity.Event
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.Message, &ev.Actor); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
