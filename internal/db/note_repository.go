package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNoteNotFound = errors.New("note not found")

type Note struct {
	NoteID     int64     `db:"note_id" json:"note_id"`
	Title      string    `db:"title" json:"title"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	UserID     int64     `db:"user_id" json:"user_id"`
}

type NoteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *Note) error {
	query := `
		INSERT INTO notes (title, body, user_id)
		VALUES ($1, $2, $3)
		RETURNING note_id, created_at, modified_at
	`

	return r.db.QueryRowxContext(ctx, query,
		note.Title, note.Body, note.UserID,
	).Scan(&note.NoteID, &note.CreatedAt, &note.ModifiedAt)
}

func (r *NoteRepository) GetByID(ctx context.Context, noteID int64) (*Note, error) {
	query := `
		SELECT note_id, title, body, created_at, modified_at, user_id
		FROM notes
		WHERE note_id = $1
	`

	var note Note
	if err := r.db.GetContext(ctx, &note, query, noteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return &note, nil
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID int64) ([]Note, error) {
	query := `
		SELECT note_id, title, body, created_at, modified_at, user_id
		FROM notes
		WHERE user_id = $1
		ORDER BY note_id
	`

	notes := []Note{}
	if err := r.db.SelectContext(ctx, &notes, query, userID); err != nil {
		return nil, err
	}

	return notes, nil
}

// Update rewrites title and body and bumps modified_at. The owner check
// happens in the service layer before this is called.
func (r *NoteRepository) Update(ctx context.Context, note *Note) error {
	query := `
		UPDATE notes
		SET title = $1, body = $2, modified_at = NOW()
		WHERE note_id = $3
		RETURNING modified_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		note.Title, note.Body, note.NoteID,
	).Scan(&note.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoteNotFound
		}
		return err
	}

	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, noteID int64) error {
	query := `DELETE FROM notes WHERE note_id = $1`

	result, err := r.db.ExecContext(ctx, query, noteID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}
