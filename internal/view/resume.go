package view

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/garnizeh/careerguide/pkg/careerapi"
)

const (
	MsgResumeFailed  = "Failed to analyze resume. Please try again."
	MsgResumeErrored = "An error occurred while analyzing your resume."
	MsgNoTechnical   = "No technical skills detected"
	MsgNoSoft        = "No soft skills detected"
)

// ResumeMode selects how the resume is supplied.
type ResumeMode string

const (
	ModeFile ResumeMode = "file"
	ModeText ResumeMode = "text"
)

// UploadedFile is a resume document buffered until it is analyzed.
type UploadedFile struct {
	Name    string
	Size    int64
	Content []byte
}

// SizeKB renders the file size the way the upload box shows it.
func (f *UploadedFile) SizeKB() string {
	return fmt.Sprintf("%.2f KB", float64(f.Size)/1024)
}

// ResumeView analyzes an uploaded file or pasted resume text.
type ResumeView struct {
	base

	Mode     ResumeMode
	File     *UploadedFile
	Text     string
	Analysis *careerapi.ResumeAnalysis
	Loading  bool

	alert string
}

func NewResumeView() *ResumeView {
	return &ResumeView{base: newBase(), Mode: ModeFile}
}

func (v *ResumeView) Kind() Kind { return KindResume }

// SetMode switches the input mode. The other mode's input is kept.
func (v *ResumeView) SetMode(m ResumeMode) {
	if m == ModeFile || m == ModeText {
		v.Mode = m
	}
}

// SelectFile replaces any buffered file.
func (v *ResumeView) SelectFile(f *UploadedFile) { v.File = f }

func (v *ResumeView) RemoveFile() { v.File = nil }

func (v *ResumeView) SetText(s string) { v.Text = s }

// CanAnalyze reports whether the active mode has input.
func (v *ResumeView) CanAnalyze() bool {
	if v.Loading {
		return false
	}
	if v.Mode == ModeFile {
		return v.File != nil
	}
	return v.Text != ""
}

// ResumeSubmission is the request an analysis will send. Exactly one of File
// and Text is set, chosen by the mode at the time of the call.
type ResumeSubmission struct {
	File *UploadedFile
	Text string
}

func (v *ResumeView) BeginAnalyze() (ResumeSubmission, bool) {
	if !v.CanAnalyze() {
		return ResumeSubmission{}, false
	}
	v.Loading = true
	if v.Mode == ModeFile {
		return ResumeSubmission{File: v.File}, true
	}
	return ResumeSubmission{Text: v.Text}, true
}

// FinishAnalyze stores a successful analysis. A failure raises an alert and
// keeps whatever analysis was shown before.
func (v *ResumeView) FinishAnalyze(a *careerapi.ResumeAnalysis, err error) {
	v.Loading = false
	switch {
	case err == nil && a != nil:
		v.Analysis = a
	case err != nil && (errors.Is(err, careerapi.ErrTransport) || errors.Is(err, careerapi.ErrClosed)):
		v.alert = MsgResumeErrored
	default:
		v.alert = MsgResumeFailed
	}
}

// Alert raises a blocking alert outside the analysis cycle, e.g. for an upload
// that is too large.
func (v *ResumeView) Alert(msg string) { v.alert = msg }

// TakeAlert returns the pending alert and clears it; each alert is shown once.
func (v *ResumeView) TakeAlert() string {
	a := v.alert
	v.alert = ""
	return a
}

// TooLarge formats the upload limit alert.
func TooLarge(limit int64) string {
	return fmt.Sprintf("The selected file is larger than %s.", humanize.IBytes(uint64(limit)))
}

// ATSBucket groups ATS scores for display.
type ATSBucket int

const (
	ATSWeak ATSBucket = iota
	ATSModerate
	ATSStrong
)

// BucketFor places score in its bucket; 80 and 60 belong to the upper side.
func BucketFor(score float64) ATSBucket {
	switch {
	case score >= 80:
		return ATSStrong
	case score >= 60:
		return ATSModerate
	default:
		return ATSWeak
	}
}

func (b ATSBucket) Label() string {
	switch b {
	case ATSStrong:
		return "Excellent ATS compatibility"
	case ATSModerate:
		return "Good ATS compatibility"
	default:
		return "Needs improvement for ATS"
	}
}

// Color is the bar colour class of the bucket.
func (b ATSBucket) Color() string {
	switch b {
	case ATSStrong:
		return "green"
	case ATSModerate:
		return "yellow"
	default:
		return "red"
	}
}

// ATSView is the ATS score panel.
type ATSView struct {
	Score  float64
	Width  float64
	Bucket ATSBucket
}

func (a ATSView) Display() string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", a.Score), "0"), ".") + "%"
}

// ATS returns the score panel, or nil when the analysis carries no score.
func (v *ResumeView) ATS() *ATSView {
	if v.Analysis == nil || v.Analysis.ATSScore == nil {
		return nil
	}
	s := *v.Analysis.ATSScore
	return &ATSView{
		Score:  s,
		Width:  math.Max(0, math.Min(100, s)),
		Bucket: BucketFor(s),
	}
}

// SkillList is a tag list with its empty-state message.
type SkillList struct {
	Skills []string
	Empty  string
}

func (v *ResumeView) TechnicalSkills() SkillList {
	var s []string
	if v.Analysis != nil {
		s = v.Analysis.Skills.Technical
	}
	return SkillList{Skills: s, Empty: MsgNoTechnical}
}

func (v *ResumeView) SoftSkills() SkillList {
	var s []string
	if v.Analysis != nil {
		s = v.Analysis.Skills.Soft
	}
	return SkillList{Skills: s, Empty: MsgNoSoft}
}
