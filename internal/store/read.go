package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/girder/internal/project"
)

// ErrNotFound is returned when a project or revision does not exist.
var ErrNotFound = errors.New("not found")

// Revision is one stored document snapshot.
type Revision struct {
	ID          int64
	Project     string
	Fingerprint string
	SavedAt     string
}

// LoadLatest returns the most recent revision's document for a
// project. The document is validated on the way out - a corrupted row
// never reaches the engine.
func (s *Store) LoadLatest(ctx context.Context, name string) (*project.Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM revisions
		WHERE project = ?
		ORDER BY id DESC
		LIMIT 1
	`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	doc, err := project.DecodeJSON([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return doc, nil
}

// History returns a project's revisions, newest first.
func (s *Store) History(ctx context.Context, name string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project, fingerprint, saved_at
		FROM revisions
		WHERE project = ?
		ORDER BY id DESC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", name, err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.Project, &r.Fingerprint, &r.SavedAt); err != nil {
			return nil, fmt.Errorf("history %s: %w", name, err)
		}
		revs = append(revs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history %s: %w", name, err)
	}
	return revs, nil
}

// Projects returns all project names in creation order.
func (s *Store) Projects(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM projects ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return names, nil
}
