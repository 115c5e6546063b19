package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/students-mongo-api/internal/config"
	"github.com/aanand-mishra/students-mongo-api/internal/storage"
)

func newStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "data", "students.db")

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, "Alice", "20")
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := s.GetStudentByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetStudents(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	empty, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.CreateStudent(ctx, name, "1")
		require.NoError(t, err)
	}

	all, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, "Alice", "20")
	require.NoError(t, err)

	later := created.CreatedAt.Add(time.Minute)
	s.now = func() time.Time { return later }

	updated, err := s.UpdateStudentByID(ctx, created.ID.Hex(), "Alicia", "21")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "21", updated.Age)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)

	_, err = s.UpdateStudentByID(ctx, primitive.NewObjectID().Hex(), "x", "")
	assert.Equal(t, storage.KindNotFound, storage.KindOf(err))
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, "Alice", "20")
	require.NoError(t, err)

	removed, err := s.DeleteStudentByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = s.GetStudentByID(ctx, created.ID.Hex())
	assert.Equal(t, storage.KindNotFound, storage.KindOf(err))

	_, err = s.DeleteStudentByID(ctx, created.ID.Hex())
	assert.Equal(t, storage.KindNotFound, storage.KindOf(err))
}

func TestMalformedID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.GetStudentByID(ctx, "nope")
	assert.Equal(t, storage.KindInvalidID, storage.KindOf(err))

	_, err = s.UpdateStudentByID(ctx, "nope", "x", "")
	assert.Equal(t, storage.KindInvalidID, storage.KindOf(err))

	_, err = s.DeleteStudentByID(ctx, "")
	assert.Equal(t, storage.KindInvalidID, storage.KindOf(err))
}

func TestClosedDatabaseIsPersistenceError(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Db.Close())

	_, err := s.GetStudents(context.Background())
	require.Error(t, err)
	assert.Equal(t, storage.KindPersistence, storage.KindOf(err))
}
