package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/service/reporting"
)

func TestParseRange(t *testing.T) {
	cairo, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)

	t.Run("daily", func(t *testing.T) {
		r, err := reporting.ParseRange(reporting.RangeQuery{Type: "daily", Date: "2025-03-05"}, cairo)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, cairo), r.Start)
		assert.Equal(t, time.Date(2025, 3, 5, 23, 59, 59, 999999999, cairo), r.End)
	})

	t.Run("monthly", func(t *testing.T) {
		r, err := reporting.ParseRange(reporting.RangeQuery{Type: "monthly", Month: "2", Year: "2024"}, cairo)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, cairo), r.Start)
		assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, cairo), r.End)
	})

	t.Run("custom date only", func(t *testing.T) {
		r, err := reporting.ParseRange(reporting.RangeQuery{Type: "custom", From: "2025-01-01", To: "2025-01-31"}, cairo)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 999999999, cairo), r.End)
	})

	t.Run("custom rfc3339", func(t *testing.T) {
		r, err := reporting.ParseRange(reporting.RangeQuery{Type: "custom", From: "2025-01-01T08:00:00Z", To: "2025-01-01T18:00:00Z"}, cairo)
		require.NoError(t, err)
		assert.Equal(t, 10*time.Hour, r.End.Sub(r.Start))
	})

	for name, q := range map[string]reporting.RangeQuery{
		"missing type":   {},
		"bad date":       {Type: "daily", Date: "05/03/2025"},
		"month 13":       {Type: "monthly", Month: "13", Year: "2025"},
		"missing year":   {Type: "monthly", Month: "1"},
		"reversed range": {Type: "custom", From: "2025-02-01", To: "2025-01-01"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := reporting.ParseRange(q, cairo)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}
