package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/careerguide/internal/session"
	"github.com/garnizeh/careerguide/internal/view"
	"github.com/garnizeh/careerguide/pkg/careerapi"
)

// Backend is the career backend as the page handlers use it.
type Backend interface {
	GenerateRoadmap(ctx context.Context, req careerapi.RoadmapRequest) (*careerapi.Roadmap, error)
	SearchJobs(ctx context.Context, req careerapi.JobSearchRequest) ([]careerapi.JobListing, error)
	LearningResources(ctx context.Context, req careerapi.LearningRequest) (*careerapi.Resources, error)
	AnalyzeResumeFile(ctx context.Context, filename string, content io.Reader) (*careerapi.ResumeAnalysis, error)
	AnalyzeResumeText(ctx context.Context, text string) (*careerapi.ResumeAnalysis, error)
	CareerTrends(ctx context.Context, industry, region string) (*careerapi.Trends, error)
}

// PageHandler serves the five views and their actions.
type PageHandler struct {
	backend   Backend
	renderer  *Renderer
	maxUpload int64
}

func NewPageHandler(backend Backend, renderer *Renderer, maxUpload int64) *PageHandler {
	return &PageHandler{backend: backend, renderer: renderer, maxUpload: maxUpload}
}

var titles = map[view.Kind]string{
	view.KindRoadmap:  "Career Roadmap",
	view.KindJobs:     "Job Search",
	view.KindLearn:    "Learning Hub",
	view.KindResume:   "Resume Analyzer",
	view.KindInsights: "Career Insights",
}

// show mounts k, lets prepare adjust the view and renders it, all under the
// session lock.
func show[T view.Instance](h *PageHandler, w http.ResponseWriter, r *http.Request, k view.Kind, prepare func(T) string) {
	sess := SessionFrom(r.Context())
	if sess == nil {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}

	var (
		page []byte
		err  error
	)
	session.With(sess, k, func(v T) {
		p := Page{
			Title: titles[k],
			Path:  k.Path(),
			Nav:   view.NavItems(k.Path()),
			View:  v,
		}
		if prepare != nil {
			p.Alert = prepare(v)
		}
		var buf bytes.Buffer
		err = h.renderer.Render(&buf, k.String(), p)
		page = buf.Bytes()
	})
	if err != nil {
		logger.Error("render page", slog.String("view", k.String()), slog.Any("err", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// finish writes a late result back to the view instance it was issued for. If
// the user has navigated away in the meantime the result is dropped.
func finish[T view.Instance](sess *session.Session, id, action string, fn func(T)) {
	if !session.Update(sess, id, fn) {
		logger.Debug("discarding result for unmounted view",
			slog.String("session_id", sess.ID),
			slog.String("instance_id", id),
			slog.String("action", action),
		)
	}
}

// backendContext detaches a backend call from the request so a closed browser
// connection does not cancel it.
func backendContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

// Roadmap

func (h *PageHandler) Roadmap(w http.ResponseWriter, r *http.Request) {
	show[*view.RoadmapView](h, w, r, view.KindRoadmap, nil)
}

func (h *PageHandler) GenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	sess := SessionFrom(r.Context())

	var (
		id  string
		req careerapi.RoadmapRequest
		ok  bool
	)
	session.With(sess, view.KindRoadmap, func(v *view.RoadmapView) {
		v.SetInput(r.PostForm.Get("skills"), r.PostForm.Get("goal"), r.PostForm.Get("experienceLevel"))
		req, ok = v.BeginGenerate()
		id = v.ID()
	})
	if ok {
		h.generateRoadmap(backendContext(r), sess, id, req)
	}
	redirect(w, r, view.KindRoadmap.Path())
}

func (h *PageHandler) generateRoadmap(ctx context.Context, sess *session.Session, id string, req careerapi.RoadmapRequest) {
	var (
		rm  *careerapi.Roadmap
		err error
	)
	defer func() {
		finish(sess, id, "generate roadmap", func(v *view.RoadmapView) { v.FinishGenerate(rm, err) })
	}()

	rm, err = h.backend.GenerateRoadmap(ctx, req)
	if err != nil {
		logger.Error("generate roadmap", slog.String("goal", req.Goal), slog.Any("err", err))
	}
}

func (h *PageHandler) TogglePhase(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || i < 0 {
		http.Error(w, "invalid phase", http.StatusBadRequest)
		return
	}
	session.With(SessionFrom(r.Context()), view.KindRoadmap, func(v *view.RoadmapView) {
		v.TogglePhase(i)
	})
	redirect(w, r, view.KindRoadmap.Path()+"#phase-"+strconv.Itoa(i))
}

// Jobs

func (h *PageHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	show[*view.JobSearchView](h, w, r, view.KindJobs, nil)
}

func (h *PageHandler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	sess := SessionFrom(r.Context())

	var (
		id  string
		req careerapi.JobSearchRequest
		ok  bool
	)
	session.With(sess, view.KindJobs, func(v *view.JobSearchView) {
		v.SetInput(r.PostForm.Get("skills"), r.PostForm.Get("location"), r.PostForm.Get("experience"))
		req, ok = v.BeginSearch()
		id = v.ID()
	})
	if ok {
		h.searchJobs(backendContext(r), sess, id, req)
	}
	redirect(w, r, view.KindJobs.Path())
}

func (h *PageHandler) searchJobs(ctx context.Context, sess *session.Session, id string, req careerapi.JobSearchRequest) {
	var (
		jobs []careerapi.JobListing
		err  error
	)
	defer func() {
		finish(sess, id, "search jobs", func(v *view.JobSearchView) { v.FinishSearch(jobs, err) })
	}()

	jobs, err = h.backend.SearchJobs(ctx, req)
	if err != nil {
		logger.Error("search jobs", slog.Any("skills", req.Skills), slog.Any("err", err))
	}
}

// Learning hub

func (h *PageHandler) Learn(w http.ResponseWriter, r *http.Request) {
	tab, hasTab := view.ParseTab(r.URL.Query().Get("tab"))
	show(h, w, r, view.KindLearn, func(v *view.LearningHubView) string {
		if hasTab {
			v.SetTab(tab)
		}
		return ""
	})
}

func (h *PageHandler) SearchResources(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	sess := SessionFrom(r.Context())

	var (
		id  string
		req careerapi.LearningRequest
		ok  bool
	)
	session.With(sess, view.KindLearn, func(v *view.LearningHubView) {
		v.SearchTerm = r.PostForm.Get("q")
		req, ok = v.BeginSearch()
		id = v.ID()
	})
	if ok {
		h.searchResources(backendContext(r), sess, id, req)
	}
	redirect(w, r, view.KindLearn.Path())
}

func (h *PageHandler) searchResources(ctx context.Context, sess *session.Session, id string, req careerapi.LearningRequest) {
	var (
		res *careerapi.Resources
		err error
	)
	defer func() {
		finish(sess, id, "search resources", func(v *view.LearningHubView) { v.FinishSearch(res, err) })
	}()

	res, err = h.backend.LearningResources(ctx, req)
	if err != nil {
		logger.Error("search learning resources", slog.String("term", req.SearchTerm), slog.Any("err", err))
	}
}

// Resume analyzer

func (h *PageHandler) Resume(w http.ResponseWriter, r *http.Request) {
	show(h, w, r, view.KindResume, func(v *view.ResumeView) string {
		return v.TakeAlert()
	})
}

func (h *PageHandler) ResumeMode(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	session.With(SessionFrom(r.Context()), view.KindResume, func(v *view.ResumeView) {
		if text, ok := r.PostForm["text"]; ok && v.Mode == view.ModeText {
			v.SetText(text[0])
		}
		v.SetMode(view.ResumeMode(r.PostForm.Get("mode")))
	})
	redirect(w, r, view.KindResume.Path())
}

func (h *PageHandler) SelectResumeFile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	tooLarge := func() {
		session.With(sess, view.KindResume, func(v *view.ResumeView) { v.Alert(view.TooLarge(h.maxUpload)) })
		redirect(w, r, view.KindResume.Path())
	}

	// leave room for the multipart framing around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+64<<10)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			tooLarge()
			return
		}
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, hdr, err := r.FormFile("resume")
	if err != nil {
		http.Error(w, "missing resume file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	if hdr.Size > h.maxUpload {
		tooLarge()
		return
	}
	content, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	if int64(len(content)) > h.maxUpload {
		tooLarge()
		return
	}

	session.With(sess, view.KindResume, func(v *view.ResumeView) {
		v.SelectFile(&view.UploadedFile{Name: hdr.Filename, Size: int64(len(content)), Content: content})
	})
	redirect(w, r, view.KindResume.Path())
}

func (h *PageHandler) RemoveResumeFile(w http.ResponseWriter, r *http.Request) {
	session.With(SessionFrom(r.Context()), view.KindResume, func(v *view.ResumeView) {
		v.RemoveFile()
	})
	redirect(w, r, view.KindResume.Path())
}

func (h *PageHandler) AnalyzeResume(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	sess := SessionFrom(r.Context())

	var (
		id  string
		sub view.ResumeSubmission
		ok  bool
	)
	session.With(sess, view.KindResume, func(v *view.ResumeView) {
		if text, present := r.PostForm["text"]; present && v.Mode == view.ModeText {
			v.SetText(text[0])
		}
		sub, ok = v.BeginAnalyze()
		id = v.ID()
	})
	if ok {
		h.analyzeResume(backendContext(r), sess, id, sub)
	}
	redirect(w, r, view.KindResume.Path())
}

func (h *PageHandler) analyzeResume(ctx context.Context, sess *session.Session, id string, sub view.ResumeSubmission) {
	var (
		a   *careerapi.ResumeAnalysis
		err error
	)
	defer func() {
		finish(sess, id, "analyze resume", func(v *view.ResumeView) { v.FinishAnalyze(a, err) })
	}()

	if sub.File != nil {
		a, err = h.backend.AnalyzeResumeFile(ctx, sub.File.Name, bytes.NewReader(sub.File.Content))
	} else {
		a, err = h.backend.AnalyzeResumeText(ctx, sub.Text)
	}
	if err != nil {
		logger.Error("analyze resume", slog.Any("err", err))
	}
}

// Insights

// Insights mounts the insights view, fetching when the view is new or the
// industry changed, and renders the outcome.
func (h *PageHandler) Insights(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	industry := r.URL.Query().Get("industry")

	var (
		id    string
		fetch view.FetchRequest
		need  bool
	)
	session.With(sess, view.KindInsights, func(v *view.InsightsView) {
		changed := industry != "" && v.SetIndustry(industry)
		if changed || v.NeedsFetch() {
			fetch = v.BeginFetch()
			need = true
		}
		id = v.ID()
	})
	if need {
		h.fetchInsights(backendContext(r), sess, id, fetch)
	}

	show[*view.InsightsView](h, w, r, view.KindInsights, nil)
}

func (h *PageHandler) fetchInsights(ctx context.Context, sess *session.Session, id string, req view.FetchRequest) {
	var (
		t   *careerapi.Trends
		err error
	)
	defer func() {
		finish(sess, id, "fetch insights", func(v *view.InsightsView) {
			if !v.FinishFetch(req.Seq, t, err) {
				logger.Debug("dropping superseded insights", slog.Uint64("seq", req.Seq), slog.String("industry", req.Industry))
			}
		})
	}()

	t, err = h.backend.CareerTrends(ctx, req.Industry, req.Region)
	if err != nil {
		logger.Error("fetch career insights", slog.String("industry", req.Industry), slog.Any("err", err))
	}
}
