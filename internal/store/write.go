package store

import (
	"context"
	"fmt"

	"github.com/roach88/girder/internal/project"
)

// SaveRevision stores a document snapshot under a project name.
// Creates the project row on first save. Returns inserted=false when
// the identical document (by fingerprint) is already the project's
// stored revision - saving an unchanged sheet is a no-op.
//
// The ensure-project and insert-revision writes run in one
// transaction so a crash cannot leave a revision without its project.
func (s *Store) SaveRevision(ctx context.Context, name string, doc *project.Document) (inserted bool, err error) {
	fp, err := project.Fingerprint(doc)
	if err != nil {
		return false, fmt.Errorf("save revision: %w", err)
	}

	data, err := doc.EncodeJSON()
	if err != nil {
		return false, fmt.Errorf("save revision: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("save revision: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO projects (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name); err != nil {
		return false, fmt.Errorf("save revision: ensure project: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (project, fingerprint, doc)
		VALUES (?, ?, ?)
		ON CONFLICT(project, fingerprint) DO NOTHING
	`, name, fp, string(data))
	if err != nil {
		return false, fmt.Errorf("save revision: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("save revision: commit: %w", err)
	}
	return rows > 0, nil
}

// DeleteProject removes a project and all its revisions (cascade).
func (s *Store) DeleteProject(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete project: not found: %s", name)
	}
	return nil
}
