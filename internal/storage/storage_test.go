package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/students-mongo-api/internal/storage"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want storage.Kind
	}{
		{"not found", storage.NotFound("op", "x"), storage.KindNotFound},
		{"wrapped not found", fmt.Errorf("outer: %w", storage.NotFound("op", "x")), storage.KindNotFound},
		{"persistence", storage.Persistence("op", errors.New("boom")), storage.KindPersistence},
		{"foreign error", errors.New("boom"), storage.KindPersistence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, storage.KindOf(tc.err))
		})
	}
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := storage.ParseID("op", oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "00"} {
		_, err := storage.ParseID("op", bad)
		require.Error(t, err, bad)
		assert.Equal(t, storage.KindInvalidID, storage.KindOf(err), bad)
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := storage.Persistence("GetStudents", fmt.Errorf("find: %w", context.DeadlineExceeded))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "GetStudents")
	assert.Contains(t, err.Error(), "persistence")
}

func TestErrorMessageIncludesID(t *testing.T) {
	err := storage.NotFound("DeleteStudentByID", "abc")
	assert.Equal(t, `DeleteStudentByID: not found (id "abc")`, err.Error())
}
