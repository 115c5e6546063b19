// Package request decodes request bodies into the typed payloads declared
// in the types package. Both JSON and urlencoded form bodies are accepted.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// maxBodyBytes caps how much of a body is read.
const maxBodyBytes = 1 << 20

// FormDecoder is implemented by payloads that can be filled from form fields.
type FormDecoder interface {
	FromForm(form url.Values)
}

// DecodeError reports a body that could not be parsed. Handlers treat it
// as an unhandled request error rather than a validation failure.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "malformed request body: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode fills dst from r's body. An empty body leaves dst untouched, so
// the validator then reports the missing fields.
func Decode(w http.ResponseWriter, r *http.Request, dst FormDecoder) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if mediaType == "application/x-www-form-urlencoded" {
		raw, err := io.ReadAll(body)
		if err != nil {
			return &DecodeError{Err: err}
		}
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			return &DecodeError{Err: err}
		}
		dst.FromForm(form)
		return nil
	}

	err := json.NewDecoder(body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return &DecodeError{Err: fmt.Errorf("json: %w", err)}
	}
	return nil
}
