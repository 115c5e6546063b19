package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusNotFound, Fail("nope")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":false,"message":"nope"}`, rec.Body.String())
}

func TestOKWithDataIncludesData(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusOK, OKWithData("found", map[string]string{"name": "a"})))

	assert.JSONEq(t, `{"status":true,"message":"found","data":{"name":"a"}}`, rec.Body.String())
}

func TestGeneralErrorFallback(t *testing.T) {
	assert.Equal(t, "boom", GeneralError(errors.New("boom"), "fallback").Message)
	assert.Equal(t, "fallback", GeneralError(errors.New(""), "fallback").Message)
	assert.Equal(t, "fallback", GeneralError(nil, "fallback").Message)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	validate := validator.New()

	var errs validator.ValidationErrors
	require.ErrorAs(t, validate.Struct(payload{}), &errs)
	assert.Equal(t, "name missing", ValidationError(errs, map[string]string{"Name": "name missing"}).Message)
	assert.Equal(t, "Name is required", ValidationError(errs, nil).Message)

	require.ErrorAs(t, validate.Struct(payload{Name: "a", Email: "x"}), &errs)
	assert.Equal(t, "Email is invalid", ValidationError(errs, nil).Message)
}
