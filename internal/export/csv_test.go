package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTasksCSV(t *testing.T) {
	low := testutil.NewTestQuote(testutil.WithScenario(domain.ScenarioLow))
	high := testutil.NewTestQuote(testutil.WithScenario(domain.ScenarioHigh), testutil.WithCity("Paris", 1.2))

	var buf bytes.Buffer
	require.NoError(t, WriteTasksCSV(&buf, low, high))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, TaskColumns, rows[0])

	task := rows[1]
	assert.Equal(t, low.QuoteID, task[0])
	assert.Equal(t, "low", task[1])
	assert.Equal(t, "Marseille", task[3])
	assert.Equal(t, "tiling_floor", task[4])
	assert.Equal(t, "4.00", task[5])
	assert.Equal(t, "0.1800", task[11])
	assert.Equal(t, "424.43", task[12])
	assert.Equal(t, "1", task[16])

	totals := rows[2]
	assert.Equal(t, "TOTAL", totals[4])
	assert.Equal(t, "466.87", totals[15])

	assert.Equal(t, "Paris", rows[3][3])
	assert.Equal(t, "high", rows[4][1])
}

func TestWriteTasksCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasksCSV(&buf))
	assert.Equal(t, "quote_id,scenario,zone,city,task,quantity,unit,unit_cost,materials_cost,labor_hours,labor_cost,margin,net_price,vat_rate,vat_amount,total_price,duration_days\n", buf.String())
}
