package view_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/careerguide/internal/view"
	"github.com/garnizeh/careerguide/pkg/careerapi"
)

func threePhases() *careerapi.Roadmap {
	links := []careerapi.LinkItem{{Title: "a", URL: "u1"}, {Title: "b", URL: "u2"}, {Title: "c", URL: "u3"}}
	return &careerapi.Roadmap{
		CareerGoal: "game developer",
		Phases: []careerapi.Phase{
			{Name: "Basics", Resources: &careerapi.PhaseResources{Videos: links, Courses: links[:1]}},
			{Name: "Engines"},
			{Name: "Portfolio"},
		},
	}
}

func TestRoadmap_EmptyGoalSendsNothing(t *testing.T) {
	v := view.NewRoadmapView()
	v.SetInput("go", "   ", "beginner")

	_, ok := v.BeginGenerate()
	assert.False(t, ok)
	assert.Equal(t, view.MsgGoalRequired, v.Error)
	assert.False(t, v.Loading)
}

func TestRoadmap_CanGenerateGatesBegin(t *testing.T) {
	v := view.NewRoadmapView()
	assert.False(t, v.CanGenerate())

	v.SetInput("", "data analyst", "")
	require.True(t, v.CanGenerate())

	_, ok := v.BeginGenerate()
	require.True(t, ok)
	assert.False(t, v.CanGenerate(), "disabled while loading")

	_, again := v.BeginGenerate()
	assert.False(t, again)
	assert.Empty(t, v.Error, "loading refusal sets no message")
}

func TestRoadmap_BeginBuildsRequest(t *testing.T) {
	v := view.NewRoadmapView()
	v.Error = "old"
	v.Roadmap = threePhases()
	v.SetInput("java, , blender", "game developer", "expert")

	req, ok := v.BeginGenerate()
	require.True(t, ok)
	assert.Equal(t, []string{"java", "blender"}, req.Skills)
	assert.Equal(t, "game developer", req.Goal)
	assert.Equal(t, "beginner", req.ExperienceLevel, "unknown level falls back")
	assert.True(t, v.Loading)
	assert.Empty(t, v.Error)
	assert.Nil(t, v.Roadmap)

	_, again := v.BeginGenerate()
	assert.False(t, again, "second generate refused while loading")
}

func TestRoadmap_FirstPhaseOpensOnLoad(t *testing.T) {
	v := view.NewRoadmapView()
	v.SetInput("", "dev", "advanced")
	_, ok := v.BeginGenerate()
	require.True(t, ok)

	v.FinishGenerate(threePhases(), nil)
	assert.False(t, v.Loading)
	assert.Equal(t, map[int]bool{0: true}, v.OpenPhases)

	v.TogglePhase(2)
	assert.True(t, v.IsOpen(0))
	assert.False(t, v.IsOpen(1))
	assert.True(t, v.IsOpen(2))

	v.TogglePhase(0)
	assert.False(t, v.IsOpen(0))
	assert.True(t, v.IsOpen(2))
}

func TestRoadmap_PhaseLinksCappedAtTwo(t *testing.T) {
	v := view.NewRoadmapView()
	v.FinishGenerate(threePhases(), nil)

	phases := v.Phases()
	require.Len(t, phases, 3)
	assert.Len(t, phases[0].Videos, 2)
	assert.Len(t, phases[0].Courses, 1)
	assert.True(t, phases[0].Open)
	assert.Nil(t, phases[1].Videos)
	assert.Equal(t, "Portfolio", phases[2].Phase.Name)
}

func TestRoadmap_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &careerapi.APIError{Endpoint: "roadmap", Message: "goal too vague"}, "goal too vague"},
		{"unsuccessful", &careerapi.APIError{Endpoint: "roadmap"}, view.MsgRoadmapFailed},
		{"schema", fmt.Errorf("%w: roadmap: bad", careerapi.ErrSchema), view.MsgRoadmapFailed},
		{"transport body", &careerapi.TransportError{Endpoint: "roadmap", StatusCode: 500, Message: "model offline"}, "model offline"},
		{"transport", &careerapi.TransportError{Endpoint: "roadmap", Err: errors.New("dial tcp")}, view.MsgRoadmapErrored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := view.NewRoadmapView()
			v.SetInput("", "dev", "")
			_, ok := v.BeginGenerate()
			require.True(t, ok)

			v.FinishGenerate(nil, tt.err)
			assert.Equal(t, tt.want, v.Error)
			assert.False(t, v.Loading)
			assert.Nil(t, v.Roadmap)
		})
	}
}
