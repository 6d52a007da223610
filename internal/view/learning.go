package view

import (
	"strings"

	"github.com/garnizeh/careerguide/pkg/careerapi"
)

const MsgNoResources = "No resources found in this category. Try another category or search term."

// Tab selects which learning resources are listed.
type Tab string

const (
	TabAll          Tab = "all"
	TabVideos       Tab = "videos"
	TabCourses      Tab = "courses"
	TabRepositories Tab = "repositories"
)

// Tabs lists the learning hub tabs in display order.
var Tabs = []struct {
	Tab   Tab
	Label string
}{
	{TabAll, "All Resources"},
	{TabVideos, "Videos"},
	{TabCourses, "Courses"},
	{TabRepositories, "Repositories"},
}

// ParseTab returns the tab named s, or false.
func ParseTab(s string) (Tab, bool) {
	switch t := Tab(s); t {
	case TabAll, TabVideos, TabCourses, TabRepositories:
		return t, true
	}
	return TabAll, false
}

// ResourceKind discriminates the learning resource variants.
type ResourceKind int

const (
	ResourceVideo ResourceKind = iota
	ResourceCourse
	ResourceRepository
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceVideo:
		return "video"
	case ResourceCourse:
		return "course"
	case ResourceRepository:
		return "repository"
	default:
		return "unknown"
	}
}

// Icon names the icon drawn next to a resource of this kind.
func (k ResourceKind) Icon() string {
	switch k {
	case ResourceVideo:
		return "youtube"
	case ResourceCourse:
		return "book-open"
	case ResourceRepository:
		return "code"
	default:
		return "link"
	}
}

// Resource is one learning resource of any kind. Fields that do not apply to
// the kind are left zero.
type Resource struct {
	Kind        ResourceKind
	Title       string
	URL         string
	Platform    string
	Language    string
	Description string
	Stars       int
	Thumbnail   string
	Channel     string
	VideoID     string
}

// Subtitle is the platform of a course or the language of a repository.
func (r Resource) Subtitle() string {
	if r.Platform != "" {
		return r.Platform
	}
	return r.Language
}

func fromVideo(x careerapi.Video) Resource {
	return Resource{
		Kind:        ResourceVideo,
		Title:       x.Title,
		URL:         x.URL,
		Description: x.Description,
		Thumbnail:   x.Thumbnail,
		Channel:     x.Channel,
		VideoID:     x.VideoID,
	}
}

func fromCourse(x careerapi.Course) Resource {
	return Resource{
		Kind:        ResourceCourse,
		Title:       x.Title,
		URL:         x.URL,
		Platform:    x.Platform,
		Description: x.Description,
		Thumbnail:   x.Thumbnail,
	}
}

func fromRepository(x careerapi.Repository) Resource {
	return Resource{
		Kind:        ResourceRepository,
		Title:       x.Title,
		URL:         x.URL,
		Language:    x.Language,
		Description: x.Description,
		Stars:       x.Stars,
	}
}

// LearningHubView searches learning resources and lists them by tab.
type LearningHubView struct {
	base

	SearchTerm string
	Resources  *careerapi.Resources
	Loading    bool
	ActiveTab  Tab
}

func NewLearningHubView() *LearningHubView {
	return &LearningHubView{base: newBase(), ActiveTab: TabAll}
}

func (v *LearningHubView) Kind() Kind { return KindLearn }

func (v *LearningHubView) SetTab(t Tab) { v.ActiveTab = t }

// BeginSearch returns the request for the current term, or false when the
// trimmed term is empty or a search is running.
func (v *LearningHubView) BeginSearch() (careerapi.LearningRequest, bool) {
	if v.Loading || strings.TrimSpace(v.SearchTerm) == "" {
		return careerapi.LearningRequest{}, false
	}
	v.Loading = true
	return careerapi.LearningRequest{
		SearchTerm: v.SearchTerm,
		Skills:     []string{v.SearchTerm},
	}, true
}

// FinishSearch stores the resources on success; failures leave the view as it
// was apart from loading.
func (v *LearningHubView) FinishSearch(res *careerapi.Resources, err error) {
	v.Loading = false
	if err != nil || res == nil {
		return
	}
	v.Resources = res
}

// Visible projects the stored resources through the active tab. The all tab
// concatenates videos, courses and repositories in that order.
func (v *LearningHubView) Visible() []Resource {
	if v.Resources == nil {
		return nil
	}
	r := v.Resources

	var out []Resource
	if v.ActiveTab == TabAll || v.ActiveTab == TabVideos {
		for _, x := range r.Videos {
			out = append(out, fromVideo(x))
		}
	}
	if v.ActiveTab == TabAll || v.ActiveTab == TabCourses {
		for _, x := range r.Courses {
			out = append(out, fromCourse(x))
		}
	}
	if v.ActiveTab == TabAll || v.ActiveTab == TabRepositories {
		for _, x := range r.Repositories {
			out = append(out, fromRepository(x))
		}
	}
	return out
}
