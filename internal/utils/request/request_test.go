package request_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-mongo-api/internal/types"
	"github.com/aanand-mishra/students-mongo-api/internal/utils/request"
)

func newRequest(contentType, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestDecodeJSON(t *testing.T) {
	var got types.CreateStudentRequest
	err := request.Decode(httptest.NewRecorder(), newRequest("application/json", `{"name":"Alice","age":20}`), &got)

	require.NoError(t, err)
	assert.Equal(t, types.Text("Alice"), got.Name)
	assert.Equal(t, types.Text("20"), got.Age)
}

func TestDecodeWithoutContentTypeIsJSON(t *testing.T) {
	var got types.FindStudentRequest
	err := request.Decode(httptest.NewRecorder(), newRequest("", `{"studentId":"abc"}`), &got)

	require.NoError(t, err)
	assert.Equal(t, types.Text("abc"), got.StudentID)
}

func TestDecodeForm(t *testing.T) {
	var got types.UpdateStudentRequest
	req := newRequest("application/x-www-form-urlencoded; charset=utf-8", "name=Bob+B&age=30")

	require.NoError(t, request.Decode(httptest.NewRecorder(), req, &got))
	assert.Equal(t, types.Text("Bob B"), got.Name)
	assert.Equal(t, types.Text("30"), got.Age)
}

func TestDecodeEmptyBody(t *testing.T) {
	var got types.CreateStudentRequest
	require.NoError(t, request.Decode(httptest.NewRecorder(), newRequest("application/json", ""), &got))
	assert.Empty(t, got.Name)
}

func TestDecodeMalformed(t *testing.T) {
	var got types.CreateStudentRequest
	err := request.Decode(httptest.NewRecorder(), newRequest("application/json", `{"name":]`), &got)

	var decodeErr *request.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, err.Error(), "malformed request body")
}
