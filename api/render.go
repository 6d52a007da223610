package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/garnizeh/careerguide/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// pages maps a template name to its file; each is parsed together with the layout.
var pages = map[string]string{
	"roadmap":  "templates/roadmap.html",
	"jobs":     "templates/jobs.html",
	"learn":    "templates/learn.html",
	"resume":   "templates/resume.html",
	"insights": "templates/insights.html",
}

var funcs = template.FuncMap{
	"pct": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64) + "%"
	},
	"num": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"experienceLevels": func() []view.Option { return view.ExperienceLevels },
	"jobLocations":     func() []view.Option { return view.JobLocations },
	"jobExperience":    func() []view.Option { return view.JobExperience },
	"industries":       func() []view.Option { return view.Industries },
	"tabs":             func() any { return view.Tabs },
	"growthSectors":    func() []string { return view.GrowthSectors },
	"opportunities":    func() []string { return view.EmergingOpportunities },
	"noJobs":           func() string { return view.MsgNoJobs },
	"noResources":      func() string { return view.MsgNoResources },
	"loadingInsights":  func() string { return view.MsgInsightsLoading },
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	rd := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for name, file := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rd.pages[name] = t
	}
	return rd, nil
}

// Page is what every template receives.
type Page struct {
	Title string
	Path  string
	Nav   []view.NavItem
	Alert string
	View  any
}

// Render writes page name into w. Output is buffered so a template failure
// does not leave half a page behind.
func (rd *Renderer) Render(w io.Writer, name string, p Page) error {
	t, ok := rd.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %s", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
