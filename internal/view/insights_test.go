package view_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/careerguide/internal/view"
	"github.com/garnizeh/careerguide/pkg/careerapi"
)

func decodeTrends(t *testing.T, s string) *careerapi.Trends {
	t.Helper()
	var tr careerapi.Trends
	require.NoError(t, json.Unmarshal([]byte(s), &tr))
	return &tr
}

func TestInsights_MountFetchesOnce(t *testing.T) {
	v := view.NewInsightsView()
	assert.True(t, v.Loading)
	assert.True(t, v.NeedsFetch())

	req := v.BeginFetch()
	assert.Equal(t, "technology", req.Industry)
	assert.Equal(t, "india", req.Region)
	assert.False(t, v.NeedsFetch())
}

func TestInsights_LastIssuedWins(t *testing.T) {
	v := view.NewInsightsView()
	first := v.BeginFetch()

	require.True(t, v.SetIndustry("finance"))
	second := v.BeginFetch()
	assert.Equal(t, "finance", second.Industry)

	finance := &careerapi.Trends{IndustryInsights: careerapi.IndustryInsights{JobGrowth: "12%"}}
	assert.True(t, v.FinishFetch(second.Seq, finance, nil))
	assert.False(t, v.Loading)

	stale := &careerapi.Trends{IndustryInsights: careerapi.IndustryInsights{JobGrowth: "99%"}}
	assert.False(t, v.FinishFetch(first.Seq, stale, nil))
	assert.Same(t, finance, v.Insights)
	assert.Equal(t, "12%", v.Stats().JobGrowth)
}

func TestInsights_FailureStaysLoading(t *testing.T) {
	v := view.NewInsightsView()
	req := v.BeginFetch()
	v.FinishFetch(req.Seq, nil, careerapi.ErrTransport)
	assert.True(t, v.Loading)
	assert.Nil(t, v.Insights)

	v.SetIndustry("data")
	req = v.BeginFetch()
	v.FinishFetch(req.Seq, &careerapi.Trends{}, nil)
	assert.False(t, v.Loading)
}

func TestInsights_SetIndustry(t *testing.T) {
	v := view.NewInsightsView()
	assert.False(t, v.SetIndustry("technology"), "same industry is no change")
	assert.False(t, v.SetIndustry("astrology"))
	assert.Equal(t, "technology", v.Industry)
	assert.True(t, v.SetIndustry("ecommerce"))
}

func TestInsights_Projections(t *testing.T) {
	v := view.NewInsightsView()
	req := v.BeginFetch()
	v.FinishFetch(req.Seq, decodeTrends(t, `{
		"trend_data": [{"month":"Jan","python":10,"go":5}],
		"industry_insights": {"jobGrowth":"15%","averageSalary":"$50000"},
		"trending_technologies": [{"name":"python","count":25},{"name":"rust","count":80}],
		"trending_topics": [{"name":"machine-learning"},{"name":"web3"}],
		"top_cities": [{"name":"Chennai","score":7.5}]
	}`), nil)

	st := v.Stats()
	assert.Equal(t, "15%", st.JobGrowth)
	assert.Equal(t, "₹37.50 Lakhs", st.AverageSalary)
	assert.Equal(t, "5,000+", st.OpenPositions)

	assert.Equal(t, []view.Bar{{Name: "python", Width: 50}, {Name: "rust", Width: 100}}, v.Technologies())
	assert.Equal(t, []string{"machine learning", "web3"}, v.Topics())
	assert.Equal(t, []view.Bar{{Name: "Chennai", Width: 75}}, v.Cities())
}

func TestInsights_FallbackCities(t *testing.T) {
	v := view.NewInsightsView()
	req := v.BeginFetch()
	v.FinishFetch(req.Seq, decodeTrends(t, `{
		"trend_data": [],
		"industry_insights": {"jobGrowth":"8%","averageSalary":"₹12 LPA","openPositions":1200},
		"trending_technologies": [],
		"trending_topics": []
	}`), nil)

	cities := v.Cities()
	require.Len(t, cities, 5)
	assert.Equal(t, []view.Bar{
		{Name: "Bangalore", Width: 95},
		{Name: "Hyderabad", Width: 85},
		{Name: "Mumbai", Width: 80},
		{Name: "Delhi NCR", Width: 78},
		{Name: "Pune", Width: 72},
	}, cities)
	assert.Equal(t, "1200", v.Stats().OpenPositions)
	assert.Equal(t, "₹12 LPA", v.Stats().AverageSalary)
}
