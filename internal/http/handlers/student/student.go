// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function accepts the storage dependency once, at route
// registration, and returns the http.HandlerFunc that runs per request:
//
//	mux.HandleFunc("POST /api/students/create", student.New(store))
//
// Handlers never see a concrete database. They decode a typed payload,
// validate it, call storage.Storage, and translate storage.Kind into the
// HTTP status of the response envelope.
package student

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-mongo-api/internal/storage"
	"github.com/aanand-mishra/students-mongo-api/internal/types"
	"github.com/aanand-mishra/students-mongo-api/internal/utils/request"
	"github.com/aanand-mishra/students-mongo-api/internal/utils/response"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// fieldMessages are the client-facing texts for missing fields.
var fieldMessages = map[string]string{
	"Name": "Student Name can not be empty !",
	"Age":  "Student Age can not be empty !",
}

func notFoundMessage(id string) string {
	return "Student not found with id " + id
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students/create
//
// Request body: { "name": "Alice", "age": "20" }
//
// Success (200): { "status": true, "message": <student> }
//
// Errors:
//
//	400: name or age missing/empty
//	422: body is not valid JSON / form data
//	500: database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "creating a student")

		var req types.CreateStudentRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		name := string(req.Name)
		if strings.TrimSpace(name) == "" {
			name = types.DefaultName
		}

		student, err := store.CreateStudent(r.Context(), name, string(req.Age))
		if err != nil {
			slog.ErrorContext(r.Context(), "error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err, "Some error occurred while creating the Student."))
			return
		}

		slog.InfoContext(r.Context(), "student created", slog.String("id", student.ID.Hex()))
		response.WriteJSON(w, http.StatusOK, response.OK(student))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns every student, unfiltered. An empty collection encodes as [].
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err, "Some error occurred while retrieving students."))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.OK(students))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles POST /api/students/details
// The id travels in the body: { "studentId": "<hex id>" }
//
// Success (200): { "status": true, "message": "Student found with id ...", "data": <student> }
//
// Errors:
//
//	404: id missing, malformed, or unknown
//	500: database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FindStudentRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		id := string(req.StudentID)
		slog.InfoContext(r.Context(), "getting a student", slog.String("id", id))

		student, err := store.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, r, err, id, "Error retrieving student with id "+id)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OKWithData("Student found with id "+id, student))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/update/{studentId}
// Replaces name and age. An omitted age is stored empty.
//
// Request body: { "name": "Alice B", "age": "21" }
//
// Success (200): { "status": true, "message": "Student records updated with id ..." }
//
// Errors:
//
//	400: name missing/empty
//	404: id malformed or unknown
//	500: database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("studentId")
		slog.InfoContext(r.Context(), "updating a student", slog.String("id", id))

		var req types.UpdateStudentRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		name := string(req.Name)
		if strings.TrimSpace(name) == "" {
			name = types.DefaultName
		}

		if _, err := store.UpdateStudentByID(r.Context(), id, name, string(req.Age)); err != nil {
			writeStorageError(w, r, err, id, "Error updating student with id "+id)
			return
		}

		slog.InfoContext(r.Context(), "student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK("Student records updated with id "+id))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/delete/{studentId}
// Permanently removes the record. Deleting the same id twice yields 404.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("studentId")
		slog.InfoContext(r.Context(), "deleting a student", slog.String("id", id))

		if _, err := store.DeleteStudentByID(r.Context(), id); err != nil {
			writeStorageError(w, r, err, id, "Could not delete student with id "+id)
			return
		}

		slog.InfoContext(r.Context(), "student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK("Student deleted successfully with id "+id))
	}
}

// decodeAndValidate fills req from the body and runs its validate tags.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req request.FormDecoder) bool {
	if err := request.Decode(w, r, req); err != nil {
		slog.WarnContext(r.Context(), "cannot decode request body", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.Fail(err.Error()))
		return false
	}

	if err := validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.Fail("invalid request"))
			return false
		}
		response.WriteJSON(w, http.StatusBadRequest,
			response.ValidationError(validateErrs, fieldMessages))
		return false
	}

	return true
}

// writeStorageError maps a storage failure on a single id to 404 or 500.
func writeStorageError(w http.ResponseWriter, r *http.Request, err error, id, failure string) {
	switch storage.KindOf(err) {
	case storage.KindNotFound, storage.KindInvalidID:
		slog.InfoContext(r.Context(), "student not found", slog.String("id", id))
		response.WriteJSON(w, http.StatusNotFound, response.Fail(notFoundMessage(id)))
	default:
		slog.ErrorContext(r.Context(), "storage failure",
			slog.String("id", id),
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.Fail(failure))
	}
}
