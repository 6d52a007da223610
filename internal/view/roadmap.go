package view

import (
	"errors"
	"strings"

	"github.com/garnizeh/careerguide/pkg/careerapi"
)

const (
	MsgGoalRequired   = "Please enter a career goal"
	MsgRoadmapFailed  = "Failed to generate roadmap"
	MsgRoadmapErrored = "An error occurred while generating roadmap"
)

// phaseLinkLimit caps the videos and courses listed under an open phase.
const phaseLinkLimit = 2

// RoadmapView collects a goal and current skills and shows the generated
// roadmap as collapsible phases.
type RoadmapView struct {
	base

	CurrentSkills   string
	CareerGoal      string
	ExperienceLevel string

	Roadmap    *careerapi.Roadmap
	Loading    bool
	Error      string
	OpenPhases map[int]bool
}

func NewRoadmapView() *RoadmapView {
	return &RoadmapView{
		base:            newBase(),
		ExperienceLevel: ExperienceLevels[0].Value,
		OpenPhases:      map[int]bool{},
	}
}

func (v *RoadmapView) Kind() Kind { return KindRoadmap }

// SetInput stores the form fields. Unknown experience levels fall back to
// beginner.
func (v *RoadmapView) SetInput(skills, goal, level string) {
	v.CurrentSkills = skills
	v.CareerGoal = goal
	if !hasOption(ExperienceLevels, level) {
		level = ExperienceLevels[0].Value
	}
	v.ExperienceLevel = level
}

// CanGenerate reports whether the generate button is enabled.
func (v *RoadmapView) CanGenerate() bool {
	return !v.Loading && strings.TrimSpace(v.CareerGoal) != ""
}

// BeginGenerate validates the input and moves the view into loading. It
// returns false when no request should be sent.
func (v *RoadmapView) BeginGenerate() (careerapi.RoadmapRequest, bool) {
	if v.Loading {
		return careerapi.RoadmapRequest{}, false
	}
	if !v.CanGenerate() {
		v.Error = MsgGoalRequired
		return careerapi.RoadmapRequest{}, false
	}

	v.Loading = true
	v.Error = ""
	v.Roadmap = nil
	v.OpenPhases = map[int]bool{}

	return careerapi.RoadmapRequest{
		Skills:          ParseSkills(v.CurrentSkills),
		Goal:            v.CareerGoal,
		ExperienceLevel: v.ExperienceLevel,
	}, true
}

// FinishGenerate applies the outcome of a generate request and leaves loading.
func (v *RoadmapView) FinishGenerate(rm *careerapi.Roadmap, err error) {
	v.Loading = false

	if err != nil {
		v.Error = roadmapErrorText(err)
		return
	}
	if rm == nil {
		v.Error = MsgRoadmapErrored
		return
	}

	v.Roadmap = rm
	v.OpenPhases = map[int]bool{}
	if len(rm.Phases) > 0 {
		v.OpenPhases[0] = true
	}
}

func roadmapErrorText(err error) string {
	msg := careerapi.ServerMessage(err)
	if msg != "" {
		return msg
	}
	if errors.Is(err, careerapi.ErrTransport) || errors.Is(err, careerapi.ErrClosed) {
		return MsgRoadmapErrored
	}
	return MsgRoadmapFailed
}

// TogglePhase flips the expansion of phase i and nothing else.
func (v *RoadmapView) TogglePhase(i int) {
	if v.OpenPhases == nil {
		v.OpenPhases = map[int]bool{}
	}
	v.OpenPhases[i] = !v.OpenPhases[i]
}

func (v *RoadmapView) IsOpen(i int) bool { return v.OpenPhases[i] }

// PhaseView is a phase prepared for rendering.
type PhaseView struct {
	Index   int
	Phase   careerapi.Phase
	Open    bool
	Videos  []careerapi.LinkItem
	Courses []careerapi.LinkItem
}

// Phases returns the roadmap phases in server order.
func (v *RoadmapView) Phases() []PhaseView {
	if v.Roadmap == nil {
		return nil
	}
	out := make([]PhaseView, 0, len(v.Roadmap.Phases))
	for i, p := range v.Roadmap.Phases {
		pv := PhaseView{Index: i, Phase: p, Open: v.IsOpen(i)}
		if p.Resources != nil {
			pv.Videos = firstN(p.Resources.Videos, phaseLinkLimit)
			pv.Courses = firstN(p.Resources.Courses, phaseLinkLimit)
		}
		out = append(out, pv)
	}
	return out
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
