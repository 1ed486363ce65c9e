package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableTimeTriState(t *testing.T) {
	type payload struct {
		DueDate NullableTime `json:"dueDate"`
	}

	t.Run("absent", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.DueDate.Set)
		assert.False(t, p.DueDate.Valid)
	})

	t.Run("null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"dueDate": null}`), &p))
		assert.True(t, p.DueDate.Set)
		assert.False(t, p.DueDate.Valid)
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"dueDate": "2026-03-15T09:00:00Z"}`), &p))
		assert.True(t, p.DueDate.Set)
		assert.True(t, p.DueDate.Valid)

		want := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
		assert.True(t, p.DueDate.Time.Equal(want))
	})

	t.Run("malformed value", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"dueDate": "next tuesday"}`), &p))
	})
}

func TestTasksToResponseNeverNil(t *testing.T) {
	out := tasksToResponse(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
