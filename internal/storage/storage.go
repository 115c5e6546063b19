// Package storage defines the Storage interface, the contract that any
// database backend must satisfy to work with this application.
//
// Handlers (HTTP layer) only ever talk to this interface. The mongo
// package is the default backend; the sqlite package satisfies the same
// contract for running without a database server; tests pass a fake.
//
// Backends report failures as *Error values carrying an explicit Kind, so
// callers never have to inspect driver-specific errors to tell a malformed
// id apart from a missing document or a broken connection.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/students-mongo-api/internal/types"
)

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a new student and returns the stored record,
	// including its generated id and timestamps.
	CreateStudent(ctx context.Context, name, age string) (types.Student, error)

	// GetStudents returns every student. Returns an empty slice (not nil)
	// if there are none.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID fetches a single student by its hex id.
	GetStudentByID(ctx context.Context, id string) (types.Student, error)

	// UpdateStudentByID replaces name and age of an existing student in a
	// single find-and-modify and returns the updated record.
	UpdateStudentByID(ctx context.Context, id, name, age string) (types.Student, error)

	// DeleteStudentByID removes a student permanently in a single
	// find-and-remove and returns the record that was removed.
	DeleteStudentByID(ctx context.Context, id string) (types.Student, error)

	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}

// Kind classifies a storage failure.
type Kind int

const (
	// KindPersistence is any database failure that is not one of the
	// kinds below. It is also what KindOf reports for foreign errors.
	KindPersistence Kind = iota

	// KindNotFound means no student has the requested id.
	KindNotFound

	// KindInvalidID means the id is not a valid ObjectID hex string.
	KindInvalidID
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidID:
		return "invalid id"
	default:
		return "persistence"
	}
}

// Error is the error type returned by every Storage implementation.
type Error struct {
	Kind Kind
	Op   string // backend operation, e.g. "GetStudentByID"
	ID   string // student id involved, if any
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.ID != "" {
		msg += fmt.Sprintf(" (id %q)", e.ID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err. Errors that are not (or do not wrap) a
// *Error are treated as KindPersistence.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindPersistence
}

// NotFound builds a KindNotFound error.
func NotFound(op, id string) *Error {
	return &Error{Kind: KindNotFound, Op: op, ID: id}
}

// Persistence wraps a driver failure as a KindPersistence error.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}

// ParseID converts an external hex id into an ObjectID. The empty string
// and anything that is not 24 hex characters yield a KindInvalidID error.
func ParseID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &Error{Kind: KindInvalidID, Op: op, ID: id, Err: err}
	}
	return oid, nil
}
