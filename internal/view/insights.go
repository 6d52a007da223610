package view

import (
	"math"
	"strings"

	"github.com/garnizeh/careerguide/pkg/careerapi"
)

const (
	MsgInsightsLoading   = "Loading Indian market insights..."
	DefaultRegion        = "india"
	defaultOpenPositions = "5,000+"
)

// Bar is a labelled horizontal bar; Width is a percentage.
type Bar struct {
	Name  string
	Width float64
}

// FallbackCities is shown when the backend ranks no cities.
var FallbackCities = []Bar{
	{"Bangalore", 95},
	{"Hyderabad", 85},
	{"Mumbai", 80},
	{"Delhi NCR", 78},
	{"Pune", 72},
}

var (
	GrowthSectors = []string{
		"IT Services & Software Development",
		"E-commerce & Digital Retail",
		"EdTech & Online Learning",
		"FinTech & Digital Payments",
		"Healthcare Technology",
	}
	EmergingOpportunities = []string{
		"Artificial Intelligence & ML",
		"Data Science & Analytics",
		"Cloud Computing Services",
		"Cybersecurity",
		"Digital Marketing",
	}
)

// InsightsView shows market trends for one industry. Fetches are numbered and
// only the latest one issued may land.
type InsightsView struct {
	base

	Industry string
	Region   string
	Insights *careerapi.Trends
	Loading  bool

	issued uint64
}

func NewInsightsView() *InsightsView {
	return &InsightsView{
		base:     newBase(),
		Industry: Industries[0].Value,
		Region:   DefaultRegion,
		Loading:  true,
	}
}

func (v *InsightsView) Kind() Kind { return KindInsights }

// SetIndustry selects an industry and reports whether the selection changed.
// Unknown industries are ignored.
func (v *InsightsView) SetIndustry(industry string) bool {
	if industry == v.Industry || !hasOption(Industries, industry) {
		return false
	}
	v.Industry = industry
	return true
}

// NeedsFetch is true until the first fetch of this instance has been issued.
func (v *InsightsView) NeedsFetch() bool { return v.issued == 0 }

// FetchRequest identifies one issued fetch.
type FetchRequest struct {
	Seq      uint64
	Industry string
	Region   string
}

// BeginFetch issues the next fetch and puts the view into loading.
func (v *InsightsView) BeginFetch() FetchRequest {
	v.issued++
	v.Loading = true
	return FetchRequest{Seq: v.issued, Industry: v.Industry, Region: v.Region}
}

// FinishFetch applies the result of fetch seq. Results of superseded fetches
// are dropped and reported as false. A failed fetch keeps the view loading.
func (v *InsightsView) FinishFetch(seq uint64, t *careerapi.Trends, err error) bool {
	if seq != v.issued {
		return false
	}
	if err != nil || t == nil {
		return true
	}
	v.Insights = t
	v.Loading = false
	return true
}

// Stats are the three headline figures.
type Stats struct {
	JobGrowth     string
	AverageSalary string
	OpenPositions string
}

func (v *InsightsView) Stats() Stats {
	if v.Insights == nil {
		return Stats{}
	}
	ii := v.Insights.IndustryInsights
	open := ii.OpenPositions.String()
	if open == "" {
		open = defaultOpenPositions
	}
	return Stats{
		JobGrowth:     ii.JobGrowth.String(),
		AverageSalary: FormatIndianSalary(ii.AverageSalary.String()),
		OpenPositions: open,
	}
}

func (v *InsightsView) Chart() LineChart {
	if v.Insights == nil {
		return LayoutChart(nil)
	}
	return LayoutChart(v.Insights.TrendData)
}

// Technologies scales mention counts so that 50 fills the bar.
func (v *InsightsView) Technologies() []Bar {
	if v.Insights == nil {
		return nil
	}
	out := make([]Bar, 0, len(v.Insights.TrendingTechnologies))
	for _, t := range v.Insights.TrendingTechnologies {
		out = append(out, Bar{Name: t.Name, Width: barWidth(t.Count, 50)})
	}
	return out
}

// Topics returns topic names with dashes shown as spaces.
func (v *InsightsView) Topics() []string {
	if v.Insights == nil {
		return nil
	}
	out := make([]string, 0, len(v.Insights.TrendingTopics))
	for _, t := range v.Insights.TrendingTopics {
		out = append(out, strings.ReplaceAll(t.Name, "-", " "))
	}
	return out
}

// Cities scales scores so that 10 fills the bar, falling back to a fixed
// ranking when none were returned.
func (v *InsightsView) Cities() []Bar {
	if v.Insights == nil || len(v.Insights.TopCities) == 0 {
		return FallbackCities
	}
	out := make([]Bar, 0, len(v.Insights.TopCities))
	for _, c := range v.Insights.TopCities {
		out = append(out, Bar{Name: c.Name, Width: barWidth(c.Score, 10)})
	}
	return out
}

func barWidth(v, full float64) float64 {
	return math.Max(0, math.Min(100, v/full*100))
}
