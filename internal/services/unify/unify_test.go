package unify

import (
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinWeave/internal/domain/models"
	"FinWeave/internal/services/quality"
)

func closeOnly(date string, c null.Float) models.Record {
	return models.Record{Date: date, Close: c}
}

func TestBuildMasterCalendarSortedUnion(t *testing.T) {
	universe := models.Universe{
		"B": {closeOnly("2024-01-05", null.FloatFrom(2)), closeOnly("2024-01-03", null.FloatFrom(2))},
		"A": {closeOnly("2024-01-03", null.FloatFrom(1)), closeOnly("2024-01-04", null.FloatFrom(1))},
	}

	calendar := BuildMasterCalendar(universe)

	assert.Equal(t, []string{"2024-01-03", "2024-01-04", "2024-01-05"}, calendar)
	for i := 1; i < len(calendar); i++ {
		assert.Less(t, calendar[i-1], calendar[i])
	}
}

func TestBuildMasterCalendarSkipsEmptyDates(t *testing.T) {
	universe := models.Universe{
		"A": {closeOnly("", null.FloatFrom(1)), closeOnly("2024-01-03", null.FloatFrom(1))},
	}

	assert.Equal(t, []string{"2024-01-03"}, BuildMasterCalendar(universe))
}

func TestAlignLengthAndDates(t *testing.T) {
	universe := models.Universe{
		"A": {closeOnly("2024-01-03", null.FloatFrom(1))},
	}
	calendar := []string{"2024-01-03", "2024-01-04", "2024-01-05"}

	aligned := Align(universe, calendar)

	require.Len(t, aligned["A"], len(calendar))
	for i, d := range calendar {
		assert.Equal(t, d, aligned["A"][i].Date)
	}
	// Placeholder rows are all-null.
	assert.False(t, aligned["A"][1].Close.Valid)
	assert.False(t, aligned["A"][1].Volume.Valid)
}

func TestAlignDuplicateDateLastWins(t *testing.T) {
	universe := models.Universe{
		"A": {
			closeOnly("2024-01-03", null.FloatFrom(1)),
			closeOnly("2024-01-03", null.FloatFrom(2)),
		},
	}

	aligned := Align(universe, []string{"2024-01-03"})

	require.Len(t, aligned["A"], 1)
	assert.Equal(t, 2.0, aligned["A"][0].Close.Float64)
}

func TestComposeEmptyUniverse(t *testing.T) {
	assert.Empty(t, Compose(map[string]models.Series{}))
}

func TestComposeColumnsAndRows(t *testing.T) {
	aligned := map[string]models.Series{
		"B": {closeOnly("2024-01-03", null.FloatFrom(20)), closeOnly("2024-01-04", null.Float{})},
		"A": {closeOnly("2024-01-03", null.FloatFrom(10)), closeOnly("2024-01-04", null.FloatFrom(12))},
	}

	table := Compose(aligned)

	require.Len(t, table, 2)
	require.Len(t, table[0].Closes, 2)
	assert.Equal(t, 10.0, table[0].Closes["A_Close"].Float64)
	assert.Equal(t, 20.0, table[0].Closes["B_Close"].Float64)
	assert.False(t, table[1].Closes["B_Close"].Valid)
}

// End-to-end over the cleaning and unification stages: asset A trades D1 and
// D3, asset B trades D1 and D2 with a null close on D2 that forward-fills
// from D1.
func TestCleanAndUnifyScenario(t *testing.T) {
	a := models.Series{
		closeOnly("2024-01-02", null.FloatFrom(10)),
		closeOnly("2024-01-04", null.FloatFrom(12)),
	}
	b := models.Series{
		closeOnly("2024-01-02", null.FloatFrom(20)),
		closeOnly("2024-01-03", null.Float{}),
	}

	quality.ForwardFillClose(a)
	quality.ForwardFillClose(b)
	universe := models.Universe{
		"A": quality.RemoveInvalid(a),
		"B": quality.RemoveInvalid(b),
	}

	calendar := BuildMasterCalendar(universe)
	require.Equal(t, []string{"2024-01-02", "2024-01-03", "2024-01-04"}, calendar)

	table := Compose(Align(universe, calendar))
	require.Len(t, table, 3)

	// B's D2 close carried forward from D1.
	assert.Equal(t, 20.0, table[1].Closes["B_Close"].Float64)
	// A has no coverage on D2.
	assert.False(t, table[1].Closes["A_Close"].Valid)
	assert.Equal(t, 12.0, table[2].Closes["A_Close"].Float64)
}
