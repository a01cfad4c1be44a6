package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_InfoWritesStandardAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("menu-service", &buf, slog.LevelDebug)

	log.Info("cart_item_added", "Item added to cart", "req-1", map[string]interface{}{"item_id": 3})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "Item added to cart", record["msg"])
	assert.Equal(t, "menu-service", record["service"])
	assert.Equal(t, "cart_item_added", record["action"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.NotEmpty(t, record["timestamp"])

	details, ok := record["details"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, details["item_id"])
}

func TestLogger_ErrorIncludesErrorGroup(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("menu-service", &buf, slog.LevelDebug)

	log.Error("catalog_load_failed", "Failed to load catalog", "req-2", errors.New("boom"), nil)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	group, ok := record["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "boom", group["msg"])
	assert.NotEmpty(t, group["stack"])
}

func TestLogger_ErrorWithoutErr(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("menu-service", &buf, slog.LevelDebug)

	log.Error("validation_failed", "mode is required", "", nil, nil)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	_, hasErr := record["error"]
	assert.False(t, hasErr)
}

func TestLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("menu-service", &buf, slog.LevelInfo)

	log.Debug("carousel_advanced", "Slide advanced", "", nil)
	assert.Zero(t, buf.Len())
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GenerateRequestID())
}
