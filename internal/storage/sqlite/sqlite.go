// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It exists so the API can run without a MongoDB server (local demos,
// single-binary deployments). Ids are still ObjectIDs, generated here, so
// clients see exactly the same id format and not-found behaviour as with
// the document store.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/students-mongo-api/internal/config"
	"github.com/aanand-mishra/students-mongo-api/internal/storage"
	"github.com/aanand-mishra/students-mongo-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db  *sql.DB
	now func() time.Time
}

var _ storage.Storage = (*SQLite)(nil)

const columns = "id, name, age, created_at, updated_at"

// New opens the SQLite database at cfg.Storage.SQLitePath, creates the
// students table if it does not already exist, and returns a ready-to-use
// *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Storage.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Timestamps are unix milliseconds, the same precision the document
	// store keeps.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         TEXT    PRIMARY KEY,
			name       TEXT    NOT NULL,
			age        TEXT    NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db, now: time.Now}, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var (
		student          types.Student
		id               string
		created, updated int64
	)

	if err := row.Scan(&id, &student.Name, &student.Age, &created, &updated); err != nil {
		return types.Student{}, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return types.Student{}, fmt.Errorf("corrupt id %q: %w", id, err)
	}

	student.ID = oid
	student.CreatedAt = time.UnixMilli(created).UTC()
	student.UpdatedAt = time.UnixMilli(updated).UTC()
	return student, nil
}

func (s *SQLite) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *SQLite) CreateStudent(ctx context.Context, name, age string) (types.Student, error) {
	now := s.timestamp()
	student := types.Student{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.Db.ExecContext(ctx,
		"INSERT INTO students ("+columns+") VALUES (?, ?, ?, ?, ?)",
		student.ID.Hex(), student.Name, student.Age, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return types.Student{}, storage.Persistence("CreateStudent", fmt.Errorf("exec: %w", err))
	}

	return student, nil
}

func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT "+columns+" FROM students ORDER BY created_at, id")
	if err != nil {
		return nil, storage.Persistence("GetStudents", fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, storage.Persistence("GetStudents", fmt.Errorf("scan row: %w", err))
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Persistence("GetStudents", fmt.Errorf("rows iteration: %w", err))
	}

	return students, nil
}

func (s *SQLite) GetStudentByID(ctx context.Context, id string) (types.Student, error) {
	const op = "GetStudentByID"

	oid, err := storage.ParseID(op, id)
	if err != nil {
		return types.Student{}, err
	}

	row := s.Db.QueryRowContext(ctx,
		"SELECT "+columns+" FROM students WHERE id = ? LIMIT 1", oid.Hex())
	return classify(op, id, row)
}

// UpdateStudentByID uses UPDATE ... RETURNING so the match, the write, and
// the read of the new row happen in one statement.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id, name, age string) (types.Student, error) {
	const op = "UpdateStudentByID"

	oid, err := storage.ParseID(op, id)
	if err != nil {
		return types.Student{}, err
	}

	row := s.Db.QueryRowContext(ctx,
		"UPDATE students SET name = ?, age = ?, updated_at = ? WHERE id = ? RETURNING "+columns,
		name, age, s.timestamp().UnixMilli(), oid.Hex(),
	)
	return classify(op, id, row)
}

func (s *SQLite) DeleteStudentByID(ctx context.Context, id string) (types.Student, error) {
	const op = "DeleteStudentByID"

	oid, err := storage.ParseID(op, id)
	if err != nil {
		return types.Student{}, err
	}

	row := s.Db.QueryRowContext(ctx,
		"DELETE FROM students WHERE id = ? RETURNING "+columns, oid.Hex())
	return classify(op, id, row)
}

func (s *SQLite) Close(context.Context) error {
	return s.Db.Close()
}

// classify scans a single-row result, mapping sql.ErrNoRows to KindNotFound.
func classify(op, id string, row *sql.Row) (types.Student, error) {
	student, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.NotFound(op, id)
	}
	if err != nil {
		return types.Student{}, &storage.Error{Kind: storage.KindPersistence, Op: op, ID: id, Err: err}
	}
	return student, nil
}
