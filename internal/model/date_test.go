package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-03-05"))
	assert.Equal(t, NewDate(2024, time.March, 5), d)

	require.NoError(t, d.Scan([]byte("2024-03-06 10:11:12")))
	assert.Equal(t, "2024-03-06", d.String())

	require.NoError(t, d.Scan(time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("yesterday"))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2024, time.January, 2).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDateJSON(t *testing.T) {
	var row struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-07-08"}`), &row))
	assert.Equal(t, NewDate(2024, time.July, 8), row.Date)

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-07-08"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":20240708}`), &row))
}

func TestFamilyTables(t *testing.T) {
	assert.Equal(t, "other_category", FamilyOther.Table())
	assert.Equal(t, "other_transaction_category_link", FamilyOther.LinkTable())
	assert.Equal(t, "store_category_link", FamilyStore.LinkTable())
	assert.Equal(t, "transaction_id", FamilyStore.OwnerColumn())
	assert.False(t, Family("author").Valid())
	for _, f := range Families {
		assert.True(t, f.Valid())
	}
}
