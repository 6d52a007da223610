package careerapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RoadmapRequest is the body of the roadmap generation call.
type RoadmapRequest struct {
	Skills          []string `json:"skills"`
	Goal            string   `json:"goal"`
	ExperienceLevel string   `json:"experienceLevel"`
}

type LinkItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type PhaseResources struct {
	Videos  []LinkItem `json:"videos"`
	Courses []LinkItem `json:"courses"`
}

// Phase is one stage of a generated roadmap.
type Phase struct {
	Name      string          `json:"name"`
	Duration  FlexString      `json:"duration"`
	Skills    []string        `json:"skills"`
	Resources *PhaseResources `json:"resources,omitempty"`
}

type Roadmap struct {
	CareerGoal          string     `json:"career_goal"`
	EstimatedCompletion FlexString `json:"estimated_completion"`
	RequiredSkills      []string   `json:"required_skills"`
	Phases              []Phase    `json:"phases"`
}

type JobSearchRequest struct {
	Skills     []string `json:"skills"`
	Location   string   `json:"location"`
	Experience string   `json:"experience"`
}

// JobListing is kept in server order; the client never re-sorts results.
type JobListing struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Salary      FlexString `json:"salary,omitempty"`
	Experience  FlexString `json:"experience,omitempty"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
}

type LearningRequest struct {
	SearchTerm string   `json:"searchTerm"`
	Skills     []string `json:"skills"`
}

type Video struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	VideoID     string `json:"videoId,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type Course struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Platform    string `json:"platform,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type Repository struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stars,omitempty"`
}

// Resources groups the three typed result lists of a learning search.
type Resources struct {
	Videos       []Video      `json:"videos"`
	Courses      []Course     `json:"courses"`
	Repositories []Repository `json:"repositories"`
}

type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

type ResumeAnalysis struct {
	Skills          SkillSet `json:"skills"`
	ATSScore        *float64 `json:"ats_compatibility_score,omitempty"`
	Recommendations []string `json:"recommendations"`
}

type IndustryInsights struct {
	JobGrowth     FlexString `json:"jobGrowth"`
	AverageSalary FlexString `json:"averageSalary"`
	OpenPositions FlexString `json:"openPositions,omitempty"`
}

type Technology struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
}

type Topic struct {
	Name string `json:"name"`
}

type City struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Trends is the market-trend payload for one industry and region.
type Trends struct {
	TrendData            []TrendPoint     `json:"trend_data"`
	IndustryInsights     IndustryInsights `json:"industry_insights"`
	TrendingTechnologies []Technology     `json:"trending_technologies"`
	TrendingTopics       []Topic          `json:"trending_topics"`
	TopCities            []City           `json:"top_cities,omitempty"`
}

// FlexString accepts a JSON string, number or null. Backends are loose about
// fields such as salary and job growth; numbers keep their literal text.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
