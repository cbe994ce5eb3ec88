package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nineToFive(dayID int, d int) GridDay {
	return GridDay{
		Date: date(d),
		Windows: []Window{
			{Start: MustParseTimeOfDay("09:00"), End: MustParseTimeOfDay("17:00"), DayID: dayID},
		},
	}
}

func TestBuildGrid_rowsSpanWindowUnion(t *testing.T) {
	g := BuildGrid([]GridDay{nineToFive(1, 10)})

	require.Len(t, g.Rows, 16)
	assert.Equal(t, "09:00", g.Rows[0].String())
	assert.Equal(t, "16:30", g.Rows[len(g.Rows)-1].String())
	for i := 1; i < len(g.Rows); i++ {
		assert.Equal(t, SlotMinutes, g.Rows[i].Minutes()-g.Rows[i-1].Minutes())
	}
}

func TestBuildGrid_rowsCoverWidestColumn(t *testing.T) {
	g := BuildGrid([]GridDay{
		nineToFive(1, 10),
		{
			Date: date(11),
			Windows: []Window{
				{Start: MustParseTimeOfDay("07:00"), End: MustParseTimeOfDay("12:00"), DayID: 2},
			},
		},
	})

	assert.Equal(t, "07:00", g.Rows[0].String())
	assert.Equal(t, "16:30", g.Rows[len(g.Rows)-1].String())

	// 07:00 exists only on the second day.
	assert.False(t, g.Cell(0, 0).Valid)
	assert.True(t, g.Cell(0, 1).Valid)
	// 16:30 exists only on the first.
	last := len(g.Rows) - 1
	assert.True(t, g.Cell(last, 0).Valid)
	assert.False(t, g.Cell(last, 1).Valid)
}

func TestBuildGrid_splitWindowRowsReachEndOfDay(t *testing.T) {
	g := BuildGrid([]GridDay{
		{
			Date: date(10),
			Windows: []Window{
				{Start: MustParseTimeOfDay("21:00"), End: MustParseTimeOfDay("23:59"), DayID: 1},
			},
		},
		{
			Date: date(11),
			Windows: []Window{
				{Start: MustParseTimeOfDay("00:00"), End: MustParseTimeOfDay("01:00"), DayID: 1},
			},
		},
	})

	// The 23:59 end marker counts as a full day, so rows run to 23:30.
	assert.Equal(t, "00:00", g.Rows[0].String())
	assert.Equal(t, "23:30", g.Rows[len(g.Rows)-1].String())
	assert.Len(t, g.Rows, 48)
}

func TestBuildGrid_emptyInput(t *testing.T) {
	g := BuildGrid(nil)

	assert.Empty(t, g.Rows)
	assert.Empty(t, g.Days)
}

func TestGridCell_outOfRange(t *testing.T) {
	g := BuildGrid([]GridDay{nineToFive(1, 10)})

	assert.Nil(t, g.Cell(-1, 0))
	assert.Nil(t, g.Cell(0, -1))
	assert.Nil(t, g.Cell(len(g.Rows), 0))
	assert.Nil(t, g.Cell(0, 1))
}

func TestGridAt(t *testing.T) {
	g := BuildGrid([]GridDay{nineToFive(1, 10)})

	cell, ok := g.At(MustParseTimeOfDay("09:00"), date(10))
	require.True(t, ok)
	assert.True(t, cell.Valid)

	_, ok = g.At(MustParseTimeOfDay("09:15"), date(10)) // off raster
	assert.False(t, ok)
	_, ok = g.At(MustParseTimeOfDay("09:00"), date(11)) // unknown column
	assert.False(t, ok)
	_, ok = g.At(MustParseTimeOfDay("08:30"), date(10)) // before the floor
	assert.False(t, ok)
	_, ok = g.At(MustParseTimeOfDay("17:00"), date(10)) // past the last row
	assert.False(t, ok)
}
