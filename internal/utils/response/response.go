// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every endpoint answers with the same envelope:
//
//	{ "status": true,  "message": <record | list | text>, "data": <record> }
//	{ "status": false, "message": "Student not found with id ..." }
//
// "data" is only present on the find-one endpoint.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope.
type Response struct {
	Status  bool `json:"status"`
	Message any  `json:"message"`
	Data    any  `json:"data,omitempty"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK wraps a successful result.
func OK(message any) Response {
	return Response{Status: true, Message: message}
}

// OKWithData wraps a successful result that carries a text message and a record.
func OKWithData(message string, data any) Response {
	return Response{Status: true, Message: message, Data: data}
}

// Fail wraps a client-facing error message.
func Fail(message string) Response {
	return Response{Status: false, Message: message}
}

// GeneralError wraps err's message, or fallback when err carries none.
//
//	response.WriteJSON(w, http.StatusInternalServerError,
//	    response.GeneralError(err, "Some error occurred while creating the Student."))
func GeneralError(err error, fallback string) Response {
	if err == nil || err.Error() == "" {
		return Fail(fallback)
	}
	return Fail(err.Error())
}

// ValidationError picks the message for the first failing field. messages
// maps a struct field name to the text sent to the client; fields without
// an entry get a generic "<field> is invalid".
func ValidationError(errs validator.ValidationErrors, messages map[string]string) Response {
	if len(errs) == 0 {
		return Fail("validation failed")
	}

	first := errs[0]
	if msg, ok := messages[first.Field()]; ok {
		return Fail(msg)
	}
	if first.ActualTag() == "required" {
		return Fail(first.Field() + " is required")
	}
	return Fail(first.Field() + " is invalid")
}
