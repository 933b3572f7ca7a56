package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "text")

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestHTTPRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")

	HTTPRequest("GET", "/api/listings", "listings.search", 200, 15*time.Millisecond)
	HTTPRequest("POST", "/api/listings", "listings.create", 403, time.Millisecond)
	HTTPRequest("GET", "/api/admin/stats", "admin.stats", 500, time.Millisecond)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)

	var levels []string
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		levels = append(levels, entry["level"].(string))
	}
	assert.Equal(t, []string{"INFO", "WARN", "ERROR"}, levels)
}

func TestDatabaseResult(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "debug", "text")

	DatabaseResult("listing.create", 1, nil)
	DatabaseResult("listing.update", 0, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Database call succeeded")
	assert.Contains(t, out, "Database call failed")
	assert.Contains(t, out, "boom")
}
