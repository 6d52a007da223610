package view_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/careerguide/internal/view"
	"github.com/garnizeh/careerguide/pkg/careerapi"
)

func score(f float64) *float64 { return &f }

func TestResume_ModesKeepBuffers(t *testing.T) {
	v := view.NewResumeView()
	assert.Equal(t, view.ModeFile, v.Mode)
	assert.False(t, v.CanAnalyze())

	v.SelectFile(&view.UploadedFile{Name: "cv.pdf", Size: 2048})
	assert.True(t, v.CanAnalyze())

	v.SetMode(view.ModeText)
	assert.False(t, v.CanAnalyze())
	assert.NotNil(t, v.File, "switching modes keeps the file")

	v.SetText("ten years of Go")
	assert.True(t, v.CanAnalyze())
	sub, ok := v.BeginAnalyze()
	require.True(t, ok)
	assert.Nil(t, sub.File)
	assert.Equal(t, "ten years of Go", sub.Text)
	v.FinishAnalyze(&careerapi.ResumeAnalysis{}, nil)

	v.SetMode(view.ModeFile)
	assert.Equal(t, "ten years of Go", v.Text)
	sub, ok = v.BeginAnalyze()
	require.True(t, ok)
	require.NotNil(t, sub.File)
	assert.Equal(t, "cv.pdf", sub.File.Name)
	assert.Empty(t, sub.Text)
}

func TestResume_SelectReplacesAndRemoveClears(t *testing.T) {
	v := view.NewResumeView()
	v.SelectFile(&view.UploadedFile{Name: "a.pdf"})
	v.SelectFile(&view.UploadedFile{Name: "b.docx", Size: 1536})
	assert.Equal(t, "b.docx", v.File.Name)
	assert.Equal(t, "1.50 KB", v.File.SizeKB())

	v.RemoveFile()
	assert.Nil(t, v.File)
	assert.False(t, v.CanAnalyze())
}

func TestResume_FailureAlertsAndKeepsAnalysis(t *testing.T) {
	prev := &careerapi.ResumeAnalysis{Recommendations: []string{"add metrics"}}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unsuccessful", &careerapi.APIError{Endpoint: "resume", Message: "parse failed"}, view.MsgResumeFailed},
		{"schema", careerapi.ErrSchema, view.MsgResumeFailed},
		{"transport", &careerapi.TransportError{Endpoint: "resume", Err: errors.New("timeout")}, view.MsgResumeErrored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := view.NewResumeView()
			v.Analysis = prev
			v.SetMode(view.ModeText)
			v.SetText("resume")
			_, ok := v.BeginAnalyze()
			require.True(t, ok)

			v.FinishAnalyze(nil, tt.err)
			assert.Same(t, prev, v.Analysis)
			assert.False(t, v.Loading)
			assert.Equal(t, tt.want, v.TakeAlert())
			assert.Empty(t, v.TakeAlert(), "alert shows once")
		})
	}
}

func TestResume_SkillFallbacks(t *testing.T) {
	v := view.NewResumeView()
	v.FinishAnalyze(&careerapi.ResumeAnalysis{
		Skills: careerapi.SkillSet{Soft: []string{"communication"}},
	}, nil)

	tech := v.TechnicalSkills()
	assert.Empty(t, tech.Skills)
	assert.Equal(t, "No technical skills detected", tech.Empty)

	soft := v.SoftSkills()
	assert.Equal(t, []string{"communication"}, soft.Skills)
	assert.Equal(t, "No soft skills detected", soft.Empty)
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		score float64
		want  view.ATSBucket
		label string
		color string
	}{
		{85, view.ATSStrong, "Excellent ATS compatibility", "green"},
		{80, view.ATSStrong, "Excellent ATS compatibility", "green"},
		{79.9, view.ATSModerate, "Good ATS compatibility", "yellow"},
		{65, view.ATSModerate, "Good ATS compatibility", "yellow"},
		{60, view.ATSModerate, "Good ATS compatibility", "yellow"},
		{59, view.ATSWeak, "Needs improvement for ATS", "red"},
		{40, view.ATSWeak, "Needs improvement for ATS", "red"},
	}
	for _, tt := range tests {
		b := view.BucketFor(tt.score)
		assert.Equal(t, tt.want, b, tt.score)
		assert.Equal(t, tt.label, b.Label())
		assert.Equal(t, tt.color, b.Color())
	}
}

func TestResume_ATSPanel(t *testing.T) {
	v := view.NewResumeView()
	assert.Nil(t, v.ATS())

	v.Analysis = &careerapi.ResumeAnalysis{}
	assert.Nil(t, v.ATS(), "no score, no panel")

	v.Analysis.ATSScore = score(72.5)
	ats := v.ATS()
	require.NotNil(t, ats)
	assert.Equal(t, "72.5%", ats.Display())
	assert.Equal(t, 72.5, ats.Width)
	assert.Equal(t, view.ATSModerate, ats.Bucket)

	v.Analysis.ATSScore = score(0)
	ats = v.ATS()
	require.NotNil(t, ats, "zero is still a score")
	assert.Equal(t, "0%", ats.Display())
}
