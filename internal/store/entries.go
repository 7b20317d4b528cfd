package store

import (
	"fmt"
	"time"

	"github.com/evdal/timeliste/internal/activity"
)

// AddEntry records hours against a date and appends a matching activity
// event to the log.
func (s *Store) AddEntry(date string, hours float64, status activity.Status, caseRef string) (*activity.TimeEntry, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO time_entries (entry_date, hours, status, case_ref, created_at) VALUES (?, ?, ?, ?, ?)`,
		date, hours, string(status), caseRef, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, _ := res.LastInsertId()

	message := fmt.Sprintf("Logged %.2fh on %s", hours, date)
	if caseRef == activity.NoWorkCaseRef {
		message = fmt.Sprintf("Logged no billable work on %s", date)
	} else if caseRef != "" {
		message = fmt.Sprintf("Logged %.2fh on %s (%s)", hours, date, caseRef)
	}
	if _, err := s.LogActivity(message); err != nil {
		return nil, err
	}

	return s.GetEntry(id)
}

func (s *Store) GetEntry(id int64) (*activity.TimeEntry, error) {
	e := &activity.TimeEntry{}
	var status, createdAt string

	err := s.db.QueryRow(
		`SELECT id, entry_date, hours, status, case_ref, created_at
		 FROM time_entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.Date, &e.Hours, &status, &e.CaseRef, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	e.Status = activity.Status(status)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// SetEntryStatus moves an entry through the approval workflow and logs it.
func (s *Store) SetEntryStatus(id int64, status activity.Status) error {
	res, err := s.db.Exec(`UPDATE time_entries SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("set entry status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set entry status: no entry %d", id)
	}
	_, err = s.LogActivity(fmt.Sprintf("Entry #%d marked %s", id, status))
	return err
}

func (s *Store) DeleteEntry(id int64) error {
	_, err := s.db.Exec(`DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	_, err = s.LogActivity(fmt.Sprintf("Entry #%d deleted", id))
	return err
}

func (s *Store) ListEntries(f EntryFilter) ([]activity.TimeEntry, error) {
	query := `SELECT id, entry_date, hours, status, case_ref, created_at FROM time_entries WHERE 1=1`
	var args []any

	if f.CaseRef != nil {
		query += ` AND case_ref = ?`
		args = append(args, *f.CaseRef)
	}
	if f.From != nil {
		query += ` AND entry_date >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += ` AND entry_date <= ?`
		args = append(args, *f.To)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []activity.TimeEntry
	for rows.Next() {
		var e activity.TimeEntry
		var status, createdAt string
		if err := rows.Scan(&e.ID, &e.Date, &e.Hours, &status, &e.CaseRef, &createdAt); err != nil {
			return nil, err
		}
		e.Status = activity.Status(status)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetDailyHours sums billable hours per day over [from, to] inclusive.
// No-work sentinel entries are excluded, matching the aggregation rule
// the view engine applies to raw entries.
func (s *Store) GetDailyHours(from, to string) ([]DailyHours, error) {
	rows, err := s.db.Query(`
		SELECT entry_date, COALESCE(SUM(hours), 0), COUNT(*)
		FROM time_entries
		WHERE entry_date >= ? AND entry_date <= ?
		  AND case_ref != ?
		GROUP BY entry_date
		ORDER BY entry_date`,
		from, to, activity.NoWorkCaseRef,
	)
	if err != nil {
		return nil, fmt.Errorf("daily hours: %w", err)
	}
	defer rows.Close()

	var days []DailyHours
	for rows.Next() {
		var d DailyHours
		if err := rows.Scan(&d.Date, &d.Hours, &d.EntryCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// GetTodayTotal returns today's billable hours.
func (s *Store) GetTodayTotal() (float64, error) {
	today := time.Now().Format("2006-01-02")
	var total float64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(hours), 0)
		FROM time_entries
		WHERE entry_date = ? AND case_ref != ?`, today, activity.NoWorkCaseRef,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
