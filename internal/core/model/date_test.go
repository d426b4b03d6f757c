package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", d.String())

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOfDropsTimeComponent(t *testing.T) {
	d := DateOf(time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2024-01-10", d.String())
}

func TestDateComparisons(t *testing.T) {
	earlier, err := ParseDate("2024-01-09")
	require.NoError(t, err)
	later, err := ParseDate("2024-01-10")
	require.NoError(t, err)

	assert.True(t, later.After(earlier))
	assert.False(t, earlier.After(later))
	assert.True(t, earlier.Equal(earlier))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-10"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &back))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-10", d.String())

	require.NoError(t, d.Scan("2024-01-09"))
	assert.Equal(t, "2024-01-09", d.String())

	assert.Error(t, d.Scan(42))
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"Present": StatusPresent,
		"Absent":  StatusAbsent,
	} {
		got, ok := ParseStatus(raw)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "present", "Late", "PRESENT"} {
		_, ok := ParseStatus(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseDepartment(t *testing.T) {
	got, ok := ParseDepartment("Human Resources")
	assert.True(t, ok)
	assert.Equal(t, DepartmentHumanResources, got)

	_, ok = ParseDepartment("Astrology")
	assert.False(t, ok)

	assert.Len(t, Departments(), 8)
}
