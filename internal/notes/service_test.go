package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notekeeper/backend/internal/db"
)

// fakeNoteStore is an in-memory NoteStore.
type fakeNoteStore struct {
	notes  map[int64]*db.Note
	nextID int64
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: map[int64]*db.Note{}, nextID: 1}
}

func (f *fakeNoteStore) Create(_ context.Context, note *db.Note) error {
	note.NoteID = f.nextID
	note.CreatedAt = time.Now()
	note.ModifiedAt = note.CreatedAt
	f.nextID++
	stored := *note
	f.notes[note.NoteID] = &stored
	return nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, noteID int64) (*db.Note, error) {
	note, ok := f.notes[noteID]
	if !ok {
		return nil, db.ErrNoteNotFound
	}
	found := *note
	return &found, nil
}

func (f *fakeNoteStore) ListByUser(_ context.Context, userID int64) ([]db.Note, error) {
	var result []db.Note
	for id := int64(1); id < f.nextID; id++ {
		if note, ok := f.notes[id]; ok && note.UserID == userID {
			result = append(result, *note)
		}
	}
	return result, nil
}

func (f *fakeNoteStore) Update(_ context.Context, note *db.Note) error {
	stored, ok := f.notes[note.NoteID]
	if !ok {
		return db.ErrNoteNotFound
	}
	stored.Title = note.Title
	stored.Body = note.Body
	stored.ModifiedAt = time.Now()
	note.ModifiedAt = stored.ModifiedAt
	return nil
}

func (f *fakeNoteStore) Delete(_ context.Context, noteID int64) error {
	if _, ok := f.notes[noteID]; !ok {
		return db.ErrNoteNotFound
	}
	delete(f.notes, noteID)
	return nil
}

var (
	alice = &db.User{ID: 1, Username: "alice"}
	bob   = &db.User{ID: 2, Username: "bob"}
)

func newTestNoteService() (*Service, *fakeNoteStore) {
	store := newFakeNoteStore()
	return NewService(store, zap.NewNop()), store
}

func TestCreateAndGet(t *testing.T) {
	service, _ := newTestNoteService()

	created, err := service.Create(context.Background(), alice, "T", "B")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := service.Get(context.Background(), alice, created.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "B", got.Body)
}

func TestCreateEmptyTitle(t *testing.T) {
	service, _ := newTestNoteService()

	_, err := service.Create(context.Background(), alice, "", "body")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = service.Create(context.Background(), alice, "   ", "body")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestOwnershipEnforced(t *testing.T) {
	service, _ := newTestNoteService()

	created, err := service.Create(context.Background(), alice, "alice's note", "private")
	require.NoError(t, err)

	_, err = service.Get(context.Background(), bob, created.NoteID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = service.Update(context.Background(), bob, created.NoteID, "hijacked", "")
	assert.ErrorIs(t, err, ErrNotOwner)

	err = service.Delete(context.Background(), bob, created.NoteID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The owner still succeeds after the failed attempts.
	updated, err := service.Update(context.Background(), alice, created.NoteID, "new title", "new body")
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)

	require.NoError(t, service.Delete(context.Background(), alice, created.NoteID))
}

func TestUpdateBumpsModifiedAt(t *testing.T) {
	service, store := newTestNoteService()

	created, err := service.Create(context.Background(), alice, "T", "B")
	require.NoError(t, err)

	// Backdate the stored timestamps so the bump is observable.
	past := time.Now().Add(-time.Hour)
	store.notes[created.NoteID].CreatedAt = past
	store.notes[created.NoteID].ModifiedAt = past

	updated, err := service.Update(context.Background(), alice, created.NoteID, "T2", "B2")
	require.NoError(t, err)
	assert.True(t, updated.ModifiedAt.After(past))
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	service, _ := newTestNoteService()

	created, err := service.Create(context.Background(), alice, "T", "B")
	require.NoError(t, err)
	require.NoError(t, service.Delete(context.Background(), alice, created.NoteID))

	// Gone for the owner and any other caller alike.
	_, err = service.Get(context.Background(), alice, created.NoteID)
	assert.ErrorIs(t, err, db.ErrNoteNotFound)

	_, err = service.Get(context.Background(), bob, created.NoteID)
	assert.ErrorIs(t, err, db.ErrNoteNotFound)

	err = service.Delete(context.Background(), alice, created.NoteID)
	assert.ErrorIs(t, err, db.ErrNoteNotFound)
}

func TestListReturnsOnlyOwnNotes(t *testing.T) {
	service, _ := newTestNoteService()

	_, err := service.Create(context.Background(), alice, "a1", "")
	require.NoError(t, err)
	_, err = service.Create(context.Background(), bob, "b1", "")
	require.NoError(t, err)
	_, err = service.Create(context.Background(), alice, "a2", "")
	require.NoError(t, err)

	notes, err := service.List(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "a1", notes[0].Title)
	assert.Equal(t, "a2", notes[1].Title)
}
