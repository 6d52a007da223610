package view

import (
	"strings"

	"github.com/garnizeh/careerguide/pkg/careerapi"
)

const MsgNoJobs = "No job listings found. Try different skills or location."

// ListState is what the job result area shows.
type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListResults
	ListEmpty
)

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListResults:
		return "results"
	case ListEmpty:
		return "empty"
	default:
		return "idle"
	}
}

// JobSearchView searches job matches for a set of skills.
type JobSearchView struct {
	base

	SearchTerm string
	Location   string
	Experience string

	Jobs     []careerapi.JobListing
	Loading  bool
	Searched bool
}

func NewJobSearchView() *JobSearchView {
	return &JobSearchView{
		base:       newBase(),
		Location:   JobLocations[0].Value,
		Experience: JobExperience[0].Value,
		Jobs:       []careerapi.JobListing{},
	}
}

func (v *JobSearchView) Kind() Kind { return KindJobs }

func (v *JobSearchView) SetInput(term, location, experience string) {
	v.SearchTerm = term
	if hasOption(JobLocations, location) {
		v.Location = location
	}
	if hasOption(JobExperience, experience) {
		v.Experience = experience
	}
}

func (v *JobSearchView) CanSearch() bool {
	return !v.Loading && strings.TrimSpace(v.SearchTerm) != ""
}

// BeginSearch returns the request to send, or false when the term is empty
// or a search is already running.
func (v *JobSearchView) BeginSearch() (careerapi.JobSearchRequest, bool) {
	if !v.CanSearch() {
		return careerapi.JobSearchRequest{}, false
	}
	v.Loading = true
	v.Searched = true
	return careerapi.JobSearchRequest{
		Skills:     ParseSkills(v.SearchTerm),
		Location:   v.Location,
		Experience: v.Experience,
	}, true
}

// FinishSearch replaces the job list on success. On failure the previous list
// stays as it was; the caller logs the error.
func (v *JobSearchView) FinishSearch(jobs []careerapi.JobListing, err error) {
	v.Loading = false
	if err != nil || jobs == nil {
		return
	}
	v.Jobs = jobs
}

// ListState orders loading over results over the empty message.
func (v *JobSearchView) ListState() ListState {
	switch {
	case v.Loading:
		return ListLoading
	case len(v.Jobs) > 0:
		return ListResults
	case v.Searched:
		return ListEmpty
	default:
		return ListIdle
	}
}
