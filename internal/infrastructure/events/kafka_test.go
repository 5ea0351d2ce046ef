package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categories-api/internal/application/category"
)

func TestToMessages(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	msgs, err := toMessages([]category.ChangeEvent{{
		EventID:    "ev-1",
		Type:       category.EventCreated,
		CategoryID: "cat-1",
		ParentID:   "root-1",
		Name:       "Phones",
		OccurredAt: at,
	}})
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	m := msgs[0]
	assert.Equal(t, "cat-1", string(m.Key))
	assert.Equal(t, at, m.Time)
	require.Len(t, m.Headers, 1)
	assert.Equal(t, "category.created", string(m.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &body))
	assert.Equal(t, "ev-1", body["eventId"])
	assert.Equal(t, "root-1", body["parentId"])
	assert.Equal(t, "2024-03-01T10:00:00Z", body["occurredAt"])
}
