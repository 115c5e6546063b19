package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDAttached(t *testing.T) {
	var buf bytes.Buffer
	log := New("prod", &buf)

	log.InfoContext(WithRequestID(context.Background(), "req-1"), "hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
}

func TestProdSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	New("prod", &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	New("dev", &buf).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithAttrsKeepsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New("staging", &buf).With("component", "test")

	log.InfoContext(WithRequestID(context.Background(), "req-2"), "hi")

	assert.Contains(t, buf.String(), `"request_id":"req-2"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}
