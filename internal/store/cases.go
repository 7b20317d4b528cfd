package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateCase(ref, name, color string) (*Case, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO cases (ref, name, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		ref, name, color, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert case: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetCase(id)
}

func (s *Store) GetCase(id int64) (*Case, error) {
	c := &Case{}
	var createdAt, updatedAt string
	var archived int
	err := s.db.QueryRow(
		`SELECT id, ref, name, color, archived, created_at, updated_at FROM cases WHERE id = ?`, id,
	).Scan(&c.ID, &c.Ref, &c.Name, &c.Color, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get case %d: %w", id, err)
	}
	c.Archived = archived == 1
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return c, nil
}

func (s *Store) ListCases(includeArchived bool) ([]Case, error) {
	query := `SELECT id, ref, name, color, archived, created_at, updated_at FROM cases`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY ref`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var cases []Case
	for rows.Next() {
		var c Case
		var createdAt, updatedAt string
		var archived int
		if err := rows.Scan(&c.ID, &c.Ref, &c.Name, &c.Color, &archived, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.Archived = archived == 1
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (s *Store) ArchiveCase(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE cases SET archived = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}
