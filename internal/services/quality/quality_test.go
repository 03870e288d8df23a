package quality

import (
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinWeave/internal/domain/models"
)

func f(v float64) null.Float { return null.FloatFrom(v) }

func day(date string, o, h, l, c null.Float, vol null.Int) models.Record {
	return models.Record{Date: date, Open: o, High: h, Low: l, Close: c, Volume: vol}
}

func TestDetectMissingEmptySeries(t *testing.T) {
	count, positions := DetectMissing(nil)
	assert.Zero(t, count)
	assert.Empty(t, positions)

	count, positions = DetectMissing(models.Series{})
	assert.Zero(t, count)
	assert.Empty(t, positions)
}

func TestDetectMissingCountsCellsAndDedupesPositions(t *testing.T) {
	series := models.Series{
		day("2024-01-02", f(1), f(2), f(1), f(1.5), null.IntFrom(100)),
		day("2024-01-03", null.Float{}, f(2), f(1), null.Float{}, null.Int{}), // 3 null cells, one position
		day("2024-01-04", f(1), f(2), f(1), f(1.5), null.Int{}),               // 1 null cell
	}

	count, positions := DetectMissing(series)
	assert.Equal(t, 4, count)
	assert.Equal(t, []int{1, 2}, positions)
	assert.LessOrEqual(t, len(positions), len(series))
}

func TestDetectInconsistenciesHighBelowLow(t *testing.T) {
	series := models.Series{
		day("2024-01-02", f(10), f(9), f(11), f(10), null.IntFrom(1)), // high 9 < low 11
	}

	anomalies := DetectInconsistencies(series)
	require.NotEmpty(t, anomalies)
	assert.Equal(t, models.HighBelowLow, anomalies[0].Kind)
	assert.Equal(t, 0, anomalies[0].Position)
}

func TestDetectInconsistenciesOpenBelowLowOnly(t *testing.T) {
	// open=5 sits below low=6; close=8 is inside [6, 10].
	series := models.Series{
		day("2024-01-02", f(5), f(10), f(6), f(8), null.IntFrom(1)),
	}

	anomalies := DetectInconsistencies(series)
	require.Len(t, anomalies, 1)
	assert.Equal(t, models.OpenOutOfRange, anomalies[0].Kind)
}

func TestDetectInconsistenciesIndependentChecksStack(t *testing.T) {
	// high < low, and close/open both outside the (inverted) range.
	series := models.Series{
		day("2024-01-02", f(50), f(2), f(10), f(40), null.IntFrom(1)),
	}

	anomalies := DetectInconsistencies(series)
	require.Len(t, anomalies, 3)
	assert.Equal(t, models.HighBelowLow, anomalies[0].Kind)
	assert.Equal(t, models.CloseOutOfRange, anomalies[1].Kind)
	assert.Equal(t, models.OpenOutOfRange, anomalies[2].Kind)
}

func TestDetectInconsistenciesSkipsRecordsWithoutBounds(t *testing.T) {
	series := models.Series{
		day("2024-01-02", f(5), null.Float{}, f(6), f(100), null.IntFrom(1)),
		day("2024-01-03", f(5), f(10), null.Float{}, f(100), null.IntFrom(1)),
	}

	assert.Empty(t, DetectInconsistencies(series))
}

func TestDetectInconsistenciesSnapshotsRow(t *testing.T) {
	series := models.Series{
		day("2024-01-02", f(10), f(9), f(11), f(10), null.IntFrom(1)),
	}

	anomalies := DetectInconsistencies(series)
	require.Len(t, anomalies, 3) // high<low, and close/open both below low=11

	series[0].Close = f(999)
	assert.Equal(t, 10.0, anomalies[0].Row.Close.Float64)
}

func TestForwardFillClose(t *testing.T) {
	series := models.Series{
		day("2024-01-02", f(1), f(2), f(1), null.Float{}, null.IntFrom(1)), // leading null stays
		day("2024-01-03", f(1), f(2), f(1), f(10), null.IntFrom(1)),
		day("2024-01-04", null.Float{}, f(2), f(1), null.Float{}, null.Int{}),
		day("2024-01-05", f(1), f(2), f(1), f(12), null.IntFrom(1)),
	}

	ForwardFillClose(series)

	assert.False(t, series[0].Close.Valid)
	assert.Equal(t, 10.0, series[2].Close.Float64)
	assert.Equal(t, 12.0, series[3].Close.Float64)
	// Other null fields are untouched.
	assert.False(t, series[2].Open.Valid)
	assert.False(t, series[2].Volume.Valid)
}

func TestForwardFillCloseIdempotent(t *testing.T) {
	build := func() models.Series {
		return models.Series{
			day("2024-01-02", f(1), f(2), f(1), f(10), null.IntFrom(1)),
			day("2024-01-03", f(1), f(2), f(1), null.Float{}, null.IntFrom(1)),
			day("2024-01-04", f(1), f(2), f(1), null.Float{}, null.IntFrom(1)),
		}
	}

	once := build()
	ForwardFillClose(once)

	twice := build()
	ForwardFillClose(twice)
	ForwardFillClose(twice)

	assert.Equal(t, once, twice)
}

func TestRemoveInvalid(t *testing.T) {
	series := models.Series{
		day("2024-01-02", f(1), f(2), f(1), f(10), null.IntFrom(1)),
		day("2024-01-03", f(1), f(2), f(1), null.Float{}, null.IntFrom(1)),
		day("2024-01-04", null.Float{}, null.Float{}, null.Float{}, f(11), null.Int{}),
	}

	kept := RemoveInvalid(series)

	require.Len(t, kept, 2)
	assert.Equal(t, "2024-01-02", kept[0].Date)
	assert.Equal(t, "2024-01-04", kept[1].Date) // valid close keeps the row even with other nulls
	for _, r := range kept {
		assert.True(t, r.Close.Valid)
	}
	// Input untouched so callers can diff pre/post counts.
	assert.Len(t, series, 3)
}
