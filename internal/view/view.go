// Package view holds the per-view state of the career guidance front end and
// the pure logic that turns backend results into what a page shows.
//
// View-models are not safe for concurrent use; the session that owns one
// serialises access to it.
package view

import (
	"github.com/google/uuid"
)

// Kind identifies one of the routed views.
type Kind int

const (
	KindRoadmap Kind = iota
	KindJobs
	KindLearn
	KindResume
	KindInsights
)

var kindPaths = [...]string{
	KindRoadmap:  "/",
	KindJobs:     "/jobs",
	KindLearn:    "/learn",
	KindResume:   "/resume",
	KindInsights: "/insights",
}

var kindNames = [...]string{
	KindRoadmap:  "roadmap",
	KindJobs:     "jobs",
	KindLearn:    "learn",
	KindResume:   "resume",
	KindInsights: "insights",
}

// Kinds lists every view in navigation order.
func Kinds() []Kind {
	return []Kind{KindRoadmap, KindJobs, KindLearn, KindResume, KindInsights}
}

func (k Kind) Path() string {
	if k < 0 || int(k) >= len(kindPaths) {
		return "/"
	}
	return kindPaths[k]
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ViewForPath maps a request path to its view. The empty path selects the
// roadmap like "/" does; anything else unknown reports false.
func ViewForPath(path string) (Kind, bool) {
	if path == "" {
		return KindRoadmap, true
	}
	for _, k := range Kinds() {
		if k.Path() == path {
			return k, true
		}
	}
	return KindRoadmap, false
}

// Instance is a mounted view-model. ID is unique per mount so late results can
// tell whether the instance they were issued for is still the one on screen.
type Instance interface {
	Kind() Kind
	ID() string
}

type base struct {
	id string
}

func newBase() base { return base{id: uuid.NewString()} }

func (b base) ID() string { return b.id }

// New creates a fresh view-model for k.
func New(k Kind) Instance {
	switch k {
	case KindJobs:
		return NewJobSearchView()
	case KindLearn:
		return NewLearningHubView()
	case KindResume:
		return NewResumeView()
	case KindInsights:
		return NewInsightsView()
	default:
		return NewRoadmapView()
	}
}
