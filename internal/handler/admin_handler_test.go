package handler

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d9647/EduDirectory-sub000/internal/model"
)

func TestCoerceFieldsMapsNamesToColumns(t *testing.T) {
	fields, err := coerceFields(model.TypeSummerCamps, map[string]interface{}{
		"name":        "Camp Evergreen",
		"ageMin":      float64(8),
		"price":       "349.99",
		"isOvernight": "true",
		"startDate":   "2026-06-15",
		"categories":  []interface{}{"outdoors", "stem"},
		"isActive":    false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Camp Evergreen", fields["name"])
	assert.Equal(t, int64(8), fields["age_min"])
	assert.Equal(t, 349.99, fields["price"])
	assert.Equal(t, true, fields["is_overnight"])
	assert.Equal(t, pq.StringArray{"outdoors", "stem"}, fields["categories"])
	assert.Equal(t, false, fields["is_active"])

	start, ok := fields["start_date"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.June, start.Month())
}

func TestCoerceFieldsRejectsUnknownField(t *testing.T) {
	_, err := coerceFields(model.TypeJobs, map[string]interface{}{
		"viewCount": float64(999),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewCount")

	// A field valid for one type is not editable on another.
	_, err = coerceFields(model.TypeJobs, map[string]interface{}{
		"isOvernight": true,
	})
	assert.Error(t, err)
}

func TestCoerceValueDates(t *testing.T) {
	v, err := coerceValue(kindDate, "2026-03-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), v)

	v, err = coerceValue(kindDate, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), v)

	_, err = coerceValue(kindDate, "March 1st")
	assert.Error(t, err)
}

func TestCoerceValueNullsAndMismatches(t *testing.T) {
	v, err := coerceValue(kindString, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = coerceValue(kindNumber, true)
	assert.Error(t, err)
	_, err = coerceValue(kindBool, float64(1))
	assert.Error(t, err)
	_, err = coerceValue(kindArray, float64(1))
	assert.Error(t, err)
}

func TestCoerceValueArrayFromCSV(t *testing.T) {
	v, err := coerceValue(kindArray, "stem, arts ,,music")
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"stem", "arts", "music"}, v)
}
