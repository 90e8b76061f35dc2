package transaction_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Foster13/money-month-tracker/internal/transaction"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  transaction.Date
	}{
		{input: "2026-02-01", want: transaction.NewDate(2026, 2, 1)},
		{input: "2026-02-01T23:30:00+07:00", want: transaction.NewDate(2026, 2, 1)},
		{input: "2026-02-01T10:00:00.000Z", want: transaction.NewDate(2026, 2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := transaction.ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := transaction.ParseDate("01/02/2026")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	d := transaction.NewDate(2026, 1, 31)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-31"`, string(b))

	var back transaction.Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`20260131`), &back))
}

func TestDate_AddMonthsNormalizes(t *testing.T) {
	d := transaction.NewDate(2026, 1, 1).AddMonths(-1)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.December, d.Month())
}

func TestDateOf_UsesLocalDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2026, 5, 1, 0, 30, 0, 0, loc)

	assert.Equal(t, transaction.NewDate(2026, 5, 1), transaction.DateOf(ts))
}
