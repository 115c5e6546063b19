// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student represents a student document in the students collection.
//
// Struct tags serve two purposes:
//
//  1. json:"..." controls how the field appears in API responses. The camelCase
//     timestamp names and the "_id" key match what document-store clients
//     already expect.
//
//  2. bson:"..." is the key the mongo driver uses when the struct is
//     written to or read from a collection.
type Student struct {
	ID        primitive.ObjectID `json:"_id"       bson:"_id"`
	Name      string             `json:"name"      bson:"name"`
	Age       string             `json:"age"       bson:"age"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DefaultName is stored when a client sends a name made only of whitespace.
const DefaultName = "Untitled Student"

// Text is a string that also accepts a JSON number or boolean, keeping its
// literal text. Clients commonly send {"age": 20} instead of {"age": "20"}.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Text(fmt.Sprint(b))
		return nil
	}

	return fmt.Errorf("cannot decode %s into a text field", data)
}

// ─────────────────────────────────────────────────────────────────────────────
// Request payloads. One struct per endpoint; validate:"required" rejects
// missing and empty values.
// ─────────────────────────────────────────────────────────────────────────────

// CreateStudentRequest is the body of POST /api/students/create.
type CreateStudentRequest struct {
	Name Text `json:"name" validate:"required"`
	Age  Text `json:"age"  validate:"required"`
}

func (r *CreateStudentRequest) FromForm(form url.Values) {
	r.Name = Text(form.Get("name"))
	r.Age = Text(form.Get("age"))
}

// UpdateStudentRequest is the body of PUT /api/students/update/{studentId}.
// Age is optional; an omitted age is stored empty.
type UpdateStudentRequest struct {
	Name Text `json:"name" validate:"required"`
	Age  Text `json:"age"`
}

func (r *UpdateStudentRequest) FromForm(form url.Values) {
	r.Name = Text(form.Get("name"))
	r.Age = Text(form.Get("age"))
}

// FindStudentRequest is the body of POST /api/students/details.
type FindStudentRequest struct {
	StudentID Text `json:"studentId"`
}

func (r *FindStudentRequest) FromForm(form url.Values) {
	r.StudentID = Text(form.Get("studentId"))
}
