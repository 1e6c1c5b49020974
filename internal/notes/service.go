// Package notes implements owner-scoped CRUD on notes. Every operation that
// touches an existing note checks existence before ownership, so a caller
// probing someone else's note id learns "not found" only when the note truly
// does not exist.
package notes

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/notekeeper/backend/internal/db"
)

var (
	ErrNotOwner   = errors.New("note not owned by caller")
	ErrEmptyTitle = errors.New("title must not be empty")
)

// NoteStore is what the service needs from persistence. *db.NoteRepository
// satisfies it; tests use an in-memory fake.
type NoteStore interface {
	Create(ctx context.Context, note *db.Note) error
	GetByID(ctx context.Context, noteID int64) (*db.Note, error)
	ListByUser(ctx context.Context, userID int64) ([]db.Note, error)
	Update(ctx context.Context, note *db.Note) error
	Delete(ctx context.Context, noteID int64) error
}

var _ NoteStore = (*db.NoteRepository)(nil)

type Service struct {
	store  NoteStore
	logger *zap.Logger
}

func NewService(store NoteStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create stores a new note owned by the given user.
func (s *Service) Create(ctx context.Context, owner *db.User, title, body string) (*db.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	note := &db.Note{
		Title:  title,
		Body:   body,
		UserID: owner.ID,
	}

	if err := s.store.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		zap.Int64("note_id", note.NoteID),
		zap.Int64("user_id", owner.ID),
	)
	return note, nil
}

// List returns all notes owned by the user.
func (s *Service) List(ctx context.Context, owner *db.User) ([]db.Note, error) {
	return s.store.ListByUser(ctx, owner.ID)
}

// Get fetches a note by id, enforcing ownership.
func (s *Service) Get(ctx context.Context, caller *db.User, noteID int64) (*db.Note, error) {
	return s.authorize(ctx, caller, noteID)
}

// Update rewrites title and body of an owned note and bumps its modified
// timestamp.
func (s *Service) Update(ctx context.Context, caller *db.User, noteID int64, title, body string) (*db.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	note, err := s.authorize(ctx, caller, noteID)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Body = body
	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Delete removes an owned note. Deleting a note that is already gone yields
// db.ErrNoteNotFound, not success.
func (s *Service) Delete(ctx context.Context, caller *db.User, noteID int64) error {
	if _, err := s.authorize(ctx, caller, noteID); err != nil {
		return err
	}

	return s.store.Delete(ctx, noteID)
}

// authorize loads the note and compares its owner to the caller.
func (s *Service) authorize(ctx context.Context, caller *db.User, noteID int64) (*db.Note, error) {
	note, err := s.store.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if note.UserID != caller.ID {
		return nil, ErrNotOwner
	}

	return note, nil
}
