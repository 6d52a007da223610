package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/garnizeh/careerguide/pkg/careerapi"
)

// Palette holds the line colours, picked round-robin by key position.
var Palette = []string{"#3B82F6", "#10B981", "#8B5CF6", "#F59E0B", "#EC4899"}

// Series is one plotted metric.
type Series struct {
	Key   string
	Color string
}

// ChartSeries returns one series per key of the first point other than the
// month. The colour index counts key positions with the month included.
func ChartSeries(points []careerapi.TrendPoint) []Series {
	if len(points) == 0 {
		return nil
	}
	var out []Series
	for i, k := range points[0].Keys {
		if k == careerapi.MonthKey {
			continue
		}
		out = append(out, Series{Key: k, Color: Palette[i%len(Palette)]})
	}
	return out
}

// Chart dimensions in SVG user units.
const (
	chartWidth   = 640
	chartHeight  = 320
	chartPadLeft = 48
	chartPadRest = 24
	chartTicks   = 4
)

// AxisLabel is a positioned tick label.
type AxisLabel struct {
	Pos  float64
	Text string
}

// SeriesLine is a series laid out as an SVG polyline.
type SeriesLine struct {
	Series
	Points string
}

// LineChart is the trend chart laid out for an inline SVG.
type LineChart struct {
	Width, Height    int
	Left, Right      float64
	Top, Bottom      float64
	Lines            []SeriesLine
	XLabels, YLabels []AxisLabel
}

// LayoutChart places every series of points on a shared value axis starting at
// zero. A point missing a metric adds no vertex to that line.
func LayoutChart(points []careerapi.TrendPoint) LineChart {
	c := LineChart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartPadLeft,
		Right:  chartWidth - chartPadRest,
		Top:    chartPadRest,
		Bottom: chartHeight - chartPadRest,
	}
	series := ChartSeries(points)
	if len(series) == 0 {
		return c
	}

	maxV := 0.0
	for _, p := range points {
		for _, s := range series {
			if v, ok := p.Value(s.Key); ok && v > maxV {
				maxV = v
			}
		}
	}
	if maxV <= 0 {
		maxV = 1
	}

	x := func(i int) float64 {
		if len(points) == 1 {
			return (c.Left + c.Right) / 2
		}
		return c.Left + float64(i)*(c.Right-c.Left)/float64(len(points)-1)
	}
	y := func(v float64) float64 {
		return c.Bottom - v/maxV*(c.Bottom-c.Top)
	}

	for i, p := range points {
		c.XLabels = append(c.XLabels, AxisLabel{Pos: x(i), Text: p.Month})
	}
	for t := 0; t <= chartTicks; t++ {
		v := maxV * float64(t) / chartTicks
		c.YLabels = append(c.YLabels, AxisLabel{Pos: y(v), Text: humanize.FtoaWithDigits(v, 1)})
	}

	for _, s := range series {
		var pts []string
		for i, p := range points {
			v, ok := p.Value(s.Key)
			if !ok {
				continue
			}
			pts = append(pts, coord(x(i))+","+coord(y(v)))
		}
		c.Lines = append(c.Lines, SeriesLine{Series: s, Points: strings.Join(pts, " ")})
	}
	return c
}

func coord(f float64) string {
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
}
