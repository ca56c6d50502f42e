package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateQuery_StableColumnOrder(t *testing.T) {
	query, args, err := BuildUpdateQuery("flood_reports", "id-1", map[string]interface{}{
		"upvotes":   3,
		"status":    "active",
		"downvotes": 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE flood_reports SET downvotes = $1, status = $2, upvotes = $3 WHERE id = $4 RETURNING *", query)
	assert.Equal(t, []interface{}{1, "active", 3, "id-1"}, args)
}

func TestBuildUpdateQuery_SingleField(t *testing.T) {
	query, args, err := BuildUpdateQuery("flood_reports", 7, map[string]interface{}{"status": "resolved"})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE flood_reports SET status = $1 WHERE id = $2 RETURNING *", query)
	assert.Equal(t, []interface{}{"resolved", 7}, args)
}

func TestBuildUpdateQuery_NoFields(t *testing.T) {
	_, _, err := BuildUpdateQuery("flood_reports", 1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildInsertQuery_StableColumnOrder(t *testing.T) {
	query, args, err := BuildInsertQuery("flood_reports", map[string]interface{}{
		"severity": 2,
		"address":  "ул. Ленина 1, Центральный",
		"status":   "active",
	})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO flood_reports (address, severity, status) VALUES ($1, $2, $3) RETURNING *", query)
	assert.Equal(t, []interface{}{"ул. Ленина 1, Центральный", 2, "active"}, args)
}

func TestBuildInsertQuery_NoFields(t *testing.T) {
	_, _, err := BuildInsertQuery("flood_reports", map[string]interface{}{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
