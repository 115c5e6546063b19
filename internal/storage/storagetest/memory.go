// Package storagetest provides an in-memory storage.Storage for tests of
// the HTTP layer.
package storagetest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/students-mongo-api/internal/storage"
	"github.com/aanand-mishra/students-mongo-api/internal/types"
)

// Memory keeps students in a map and remembers insertion order.
// Setting Err makes every operation fail with it.
type Memory struct {
	mu       sync.Mutex
	students map[primitive.ObjectID]types.Student
	order    []primitive.ObjectID

	Err error
}

var _ storage.Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{students: make(map[primitive.ObjectID]types.Student)}
}

// Len reports how many students are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.students)
}

func (m *Memory) CreateStudent(_ context.Context, name, age string) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return types.Student{}, m.Err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	s := types.Student{ID: primitive.NewObjectID(), Name: name, Age: age, CreatedAt: now, UpdatedAt: now}
	m.students[s.ID] = s
	m.order = append(m.order, s.ID)
	return s, nil
}

func (m *Memory) GetStudents(context.Context) ([]types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]types.Student, 0, len(m.students))
	for _, id := range m.order {
		if s, ok := m.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) GetStudentByID(_ context.Context, id string) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup("GetStudentByID", id)
}

func (m *Memory) UpdateStudentByID(_ context.Context, id, name, age string) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup("UpdateStudentByID", id)
	if err != nil {
		return types.Student{}, err
	}

	s.Name = name
	s.Age = age
	s.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	m.students[s.ID] = s
	return s, nil
}

func (m *Memory) DeleteStudentByID(_ context.Context, id string) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup("DeleteStudentByID", id)
	if err != nil {
		return types.Student{}, err
	}

	delete(m.students, s.ID)
	return s, nil
}

func (m *Memory) Close(context.Context) error { return nil }

func (m *Memory) lookup(op, id string) (types.Student, error) {
	if m.Err != nil {
		return types.Student{}, m.Err
	}

	oid, err := storage.ParseID(op, id)
	if err != nil {
		return types.Student{}, err
	}

	s, ok := m.students[oid]
	if !ok {
		return types.Student{}, storage.NotFound(op, id)
	}
	return s, nil
}
