package view_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/careerguide/internal/view"
	"github.com/garnizeh/careerguide/pkg/careerapi"
)

func points(t *testing.T, s string) []careerapi.TrendPoint {
	t.Helper()
	var p []careerapi.TrendPoint
	require.NoError(t, json.Unmarshal([]byte(s), &p))
	return p
}

func TestChartSeries_ColourByKeyPosition(t *testing.T) {
	p := points(t, `[{"month":"Jan","a":1,"b":2,"c":3,"d":4,"e":5}]`)
	got := view.ChartSeries(p)
	require.Len(t, got, 5)
	assert.Equal(t, view.Series{Key: "a", Color: "#10B981"}, got[0])
	assert.Equal(t, view.Series{Key: "d", Color: "#EC4899"}, got[3])
	assert.Equal(t, view.Series{Key: "e", Color: "#3B82F6"}, got[4], "palette wraps")
}

func TestChartSeries_MonthNotFirst(t *testing.T) {
	p := points(t, `[{"python":1,"month":"Jan","go":2}]`)
	got := view.ChartSeries(p)
	assert.Equal(t, []view.Series{
		{Key: "python", Color: "#3B82F6"},
		{Key: "go", Color: "#8B5CF6"},
	}, got)
}

func TestChartSeries_Empty(t *testing.T) {
	assert.Nil(t, view.ChartSeries(nil))
	c := view.LayoutChart(nil)
	assert.Empty(t, c.Lines)
	assert.Equal(t, 640, c.Width)
}

func TestLayoutChart(t *testing.T) {
	p := points(t, `[
		{"month":"Jan","jobs":0,"salary":50},
		{"month":"Feb","jobs":100},
		{"month":"Mar","jobs":50,"salary":100}
	]`)
	c := view.LayoutChart(p)

	require.Len(t, c.XLabels, 3)
	assert.Equal(t, "Jan", c.XLabels[0].Text)
	assert.Equal(t, c.Left, c.XLabels[0].Pos)
	assert.Equal(t, c.Right, c.XLabels[2].Pos)

	require.Len(t, c.YLabels, 5)
	assert.Equal(t, "0", c.YLabels[0].Text)
	assert.Equal(t, "100", c.YLabels[4].Text)
	assert.Equal(t, c.Top, c.YLabels[4].Pos)

	require.Len(t, c.Lines, 2)
	assert.Len(t, strings.Fields(c.Lines[0].Points), 3)
	assert.Len(t, strings.Fields(c.Lines[1].Points), 2, "missing value adds no vertex")
	assert.True(t, strings.HasPrefix(c.Lines[0].Points, "48,296 "))
}
