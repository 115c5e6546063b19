// Package mongodb provides a MongoDB-backed implementation of the
// storage.Storage interface using the official mongo-driver.
//
// Every student lives as one document in a single collection. The driver
// generates nothing for us: ids are created client-side with
// primitive.NewObjectID so the inserted record can be returned without a
// second round trip.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aanand-mishra/students-mongo-api/internal/config"
	"github.com/aanand-mishra/students-mongo-api/internal/storage"
	"github.com/aanand-mishra/students-mongo-api/internal/types"
)

// MongoDB is the concrete implementation of storage.Storage.
// A *mongo.Collection is safe for concurrent use by multiple goroutines.
type MongoDB struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

var _ storage.Storage = (*MongoDB)(nil)

// New connects to the server in cfg.Storage.MongoURI, pings the primary,
// and returns a store bound to the configured database and collection.
func New(ctx context.Context, cfg *config.Config) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Storage.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb.New: ping: %w", err)
	}

	coll := client.Database(cfg.Storage.Database).Collection(cfg.Storage.Collection)
	m := NewWithCollection(coll)
	m.client = client
	return m, nil
}

// NewWithCollection wraps an existing collection. The caller keeps
// ownership of the client; Close becomes a no-op.
func NewWithCollection(coll *mongo.Collection) *MongoDB {
	return &MongoDB{collection: coll, now: time.Now}
}

// timestamp returns the current time at BSON datetime precision, so the
// record we echo back is identical to the one later read from the server.
func (m *MongoDB) timestamp() time.Time {
	return m.now().UTC().Truncate(time.Millisecond)
}

func (m *MongoDB) CreateStudent(ctx context.Context, name, age string) (types.Student, error) {
	now := m.timestamp()
	student := types.Student{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := m.collection.InsertOne(ctx, student); err != nil {
		return types.Student{}, storage.Persistence("CreateStudent", fmt.Errorf("insert: %w", err))
	}

	return student, nil
}

func (m *MongoDB) GetStudents(ctx context.Context) ([]types.Student, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, storage.Persistence("GetStudents", fmt.Errorf("find: %w", err))
	}
	defer cursor.Close(ctx)

	students := make([]types.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, storage.Persistence("GetStudents", fmt.Errorf("decode: %w", err))
	}

	return students, nil
}

func (m *MongoDB) GetStudentByID(ctx context.Context, id string) (types.Student, error) {
	const op = "GetStudentByID"

	oid, err := storage.ParseID(op, id)
	if err != nil {
		return types.Student{}, err
	}

	var student types.Student
	err = m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&student)
	if err != nil {
		return types.Student{}, classify(op, id, err)
	}

	return student, nil
}

func (m *MongoDB) UpdateStudentByID(ctx context.Context, id, name, age string) (types.Student, error) {
	const op = "UpdateStudentByID"

	oid, err := storage.ParseID(op, id)
	if err != nil {
		return types.Student{}, err
	}

	update := bson.M{
		"$set": bson.M{
			"name":      name,
			"age":       age,
			"updatedAt": m.timestamp(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var student types.Student
	err = m.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&student)
	if err != nil {
		return types.Student{}, classify(op, id, err)
	}

	return student, nil
}

func (m *MongoDB) DeleteStudentByID(ctx context.Context, id string) (types.Student, error) {
	const op = "DeleteStudentByID"

	oid, err := storage.ParseID(op, id)
	if err != nil {
		return types.Student{}, err
	}

	var student types.Student
	err = m.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&student)
	if err != nil {
		return types.Student{}, classify(op, id, err)
	}

	return student, nil
}

// Close disconnects the client created by New.
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb.Close: disconnect: %w", err)
	}
	return nil
}

// classify turns a single-document driver error into a storage error.
func classify(op, id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.NotFound(op, id)
	}
	return &storage.Error{Kind: storage.KindPersistence, Op: op, ID: id, Err: err}
}
