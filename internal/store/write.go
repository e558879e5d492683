package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/jsondoc/internal/jv"
)

// Put stores v as the newest revision of the named document.
//
// The body is the canonical serialization of v and the revision carries its
// content digest. When the body is byte-identical to the head revision's
// body nothing is written and the head revision is returned, so repeated
// Puts of the same document are idempotent. The digest alone is not enough:
// it folds Unicode normalization forms that the body keeps apart.
//
// Values that cannot be serialized (NaN or infinite floats) are rejected
// before the transaction starts.
func (s *Store) Put(ctx context.Context, name string, v jv.Value) (Revision, error) {
	if name == "" {
		return Revision{}, fmt.Errorf("put: empty document name")
	}

	body, err := v.Append(nil)
	if err != nil {
		return Revision{}, fmt.Errorf("put %q: %w", name, err)
	}
	digest, err := jv.Digest(v)
	if err != nil {
		return Revision{}, fmt.Errorf("put %q: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("put %q: begin: %w", name, err)
	}
	defer tx.Rollback()

	var headSeq int64
	var headBody string
	err = tx.QueryRowContext(ctx, `
		SELECT d.head_seq, r.body
		FROM documents d
		JOIN revisions r ON r.name = d.name AND r.seq = d.head_seq
		WHERE d.name = ?
	`, name).Scan(&headSeq, &headBody)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		headSeq = 0
	case err != nil:
		return Revision{}, fmt.Errorf("put %q: read head: %w", name, err)
	case headBody == string(body):
		rev, err := scanRevision(tx.QueryRowContext(ctx, `
			SELECT id, name, seq, digest FROM revisions
			WHERE name = ? AND seq = ?
		`, name, headSeq))
		if err != nil {
			return Revision{}, fmt.Errorf("put %q: read head revision: %w", name, err)
		}
		slog.Debug("put unchanged", "name", name, "seq", rev.Seq)
		return rev, nil
	}

	rev := Revision{
		ID:     uuid.NewString(),
		Name:   name,
		Seq:    headSeq + 1,
		Digest: digest,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (name, head_seq, digest)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			head_seq = excluded.head_seq,
			digest = excluded.digest
	`, rev.Name, rev.Seq, rev.Digest)
	if err != nil {
		return Revision{}, fmt.Errorf("put %q: update head: %w", name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO revisions (id, name, seq, digest, body)
		VALUES (?, ?, ?, ?, ?)
	`, rev.ID, rev.Name, rev.Seq, rev.Digest, string(body))
	if err != nil {
		return Revision{}, fmt.Errorf("put %q: insert revision: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("put %q: commit: %w", name, err)
	}

	slog.Debug("put revision", "name", rev.Name, "seq", rev.Seq, "digest", rev.Digest)
	return rev, nil
}

// Delete removes the named document and its whole history.
// Returns ErrNotFound if the document does not exist.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}
	slog.Debug("deleted document", "name", name)
	return nil
}
