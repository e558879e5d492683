package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/jsondoc/internal/jv"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Get returns the head revision of the named document and its value.
// Returns ErrNotFound if the document does not exist.
func (s *Store) Get(ctx context.Context, name string) (jv.Value, Revision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.name, r.seq, r.digest, r.body
		FROM documents d
		JOIN revisions r ON r.name = d.name AND r.seq = d.head_seq
		WHERE d.name = ?
	`, name)

	v, rev, err := scanRevisionBody(row)
	if err != nil {
		return jv.Value{}, Revision{}, fmt.Errorf("get %q: %w", name, err)
	}
	return v, rev, nil
}

// GetRevision returns a specific revision by ID, head or not.
// Returns ErrNotFound if no revision has that ID.
func (s *Store) GetRevision(ctx context.Context, id string) (jv.Value, Revision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, seq, digest, body
		FROM revisions
		WHERE id = ?
	`, id)

	v, rev, err := scanRevisionBody(row)
	if err != nil {
		return jv.Value{}, Revision{}, fmt.Errorf("get revision %q: %w", id, err)
	}
	return v, rev, nil
}

// List returns the head revision of every document, ordered by name.
//
// Returns an empty slice (not nil) if the store holds no documents.
func (s *Store) List(ctx context.Context) ([]Revision, error) {
	return s.queryRevisions(ctx, "list", `
		SELECT r.id, r.name, r.seq, r.digest
		FROM documents d
		JOIN revisions r ON r.name = d.name AND r.seq = d.head_seq
		ORDER BY d.name COLLATE BINARY ASC
	`)
}

// History returns every revision of the named document, oldest first.
//
// Returns an empty slice (not nil) if the document does not exist.
func (s *Store) History(ctx context.Context, name string) ([]Revision, error) {
	return s.queryRevisions(ctx, "history", `
		SELECT id, name, seq, digest
		FROM revisions
		WHERE name = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, name)
}

// FindDigest returns every revision, of any document, whose content digest
// equals digest. Results are ordered by name, then seq.
func (s *Store) FindDigest(ctx context.Context, digest string) ([]Revision, error) {
	return s.queryRevisions(ctx, "find digest", `
		SELECT id, name, seq, digest
		FROM revisions
		WHERE digest = ?
		ORDER BY name COLLATE BINARY ASC, seq ASC
	`, digest)
}

func (s *Store) queryRevisions(ctx context.Context, op, query string, args ...any) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	revs := []Revision{}
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return revs, nil
}

// scanRevision scans id, name, seq and digest.
func scanRevision(row rowScanner) (Revision, error) {
	var rev Revision
	if err := row.Scan(&rev.ID, &rev.Name, &rev.Seq, &rev.Digest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Revision{}, ErrNotFound
		}
		return Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	return rev, nil
}

// scanRevisionBody scans id, name, seq, digest and body, parsing the body.
func scanRevisionBody(row rowScanner) (jv.Value, Revision, error) {
	var rev Revision
	var body string
	if err := row.Scan(&rev.ID, &rev.Name, &rev.Seq, &rev.Digest, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jv.Value{}, Revision{}, ErrNotFound
		}
		return jv.Value{}, Revision{}, fmt.Errorf("scan revision: %w", err)
	}

	v, err := jv.Parse(body)
	if err != nil {
		return jv.Value{}, Revision{}, fmt.Errorf("decode revision %s: %w", rev.ID, err)
	}
	return v, rev, nil
}
