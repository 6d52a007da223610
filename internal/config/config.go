package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

const insecureSessionSecret = "change-me-session-secret"

type Config struct {
	Addr       string        `yaml:"addr"`
	Env        string        `yaml:"env"`
	LogLevel   string        `yaml:"log_level"`
	APITimeout time.Duration `yaml:"timeout"`
	Backend    BackendConfig `yaml:"backend"`
	Session    SessionConfig `yaml:"session"`
	Resume     ResumeConfig  `yaml:"resume"`
}

// BackendConfig describes the remote career service. Deployments may split the
// endpoints over two hosts, so roadmap generation and resume analysis may point elsewhere.
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RoadmapBaseURL string        `yaml:"roadmap_base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	Paths          EndpointPaths `yaml:"paths"`
}

type EndpointPaths struct {
	Roadmap  string `yaml:"roadmap"`
	Jobs     string `yaml:"jobs"`
	Learning string `yaml:"learning"`
	Resume   string `yaml:"resume"`
	Trends   string `yaml:"trends"`
}

type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	SweepEvery time.Duration `yaml:"sweep_every"`
}

type ResumeConfig struct {
	// MaxUploadSize accepts human readable sizes such as "10MiB" or "512 kB".
	MaxUploadSize  string `yaml:"max_upload_size"`
	MaxUploadBytes int64  `yaml:"-"`
}

// DefaultPaths returns the endpoint paths used by the reference backend.
func DefaultPaths() EndpointPaths {
	return EndpointPaths{
		Roadmap:  "/api/generate-roadmap/",
		Jobs:     "/api/job-matches/",
		Learning: "/api/learning-resources/",
		Resume:   "/api/analyze-resume/",
		Trends:   "/api/career-trends/",
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:       getEnv("CG_ADDR", ":8080"),
		Env:        getEnv("CG_ENV", "development"),
		LogLevel:   getEnv("CG_LOG_LEVEL", "info"),
		APITimeout: 60 * time.Second,
		Backend: BackendConfig{
			BaseURL:        getEnv("CG_BACKEND_URL", "http://localhost:8000"),
			RoadmapBaseURL: os.Getenv("CG_ROADMAP_BACKEND_URL"),
			Paths:          DefaultPaths(),
		},
		Session: SessionConfig{
			Secret:     getEnv("CG_SESSION_SECRET", insecureSessionSecret),
			CookieName: "cg_session",
			TTL:        2 * time.Hour,
		},
		Resume: ResumeConfig{MaxUploadSize: getEnv("CG_RESUME_MAX_UPLOAD", "10MiB")},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs with development defaults allowed.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// Validate fills unset values with defaults and rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.APITimeout <= 0 {
		c.APITimeout = 60 * time.Second
	}

	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if c.Backend.RoadmapBaseURL == "" {
		c.Backend.RoadmapBaseURL = c.Backend.BaseURL
	}
	if _, err := url.ParseRequestURI(c.Backend.RoadmapBaseURL); err != nil {
		return fmt.Errorf("backend.roadmap_base_url: %w", err)
	}
	if c.Backend.Timeout < 0 {
		return errors.New("backend.timeout must not be negative")
	}
	def := DefaultPaths()
	fillPath(&c.Backend.Paths.Roadmap, def.Roadmap)
	fillPath(&c.Backend.Paths.Jobs, def.Jobs)
	fillPath(&c.Backend.Paths.Learning, def.Learning)
	fillPath(&c.Backend.Paths.Resume, def.Resume)
	fillPath(&c.Backend.Paths.Trends, def.Trends)

	if c.Session.Secret == "" {
		return errors.New("session.secret is required")
	}
	if c.Session.Secret == insecureSessionSecret && !c.IsDevelopment() {
		return errors.New("session.secret uses the built-in default; set CG_SESSION_SECRET")
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "cg_session"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 2 * time.Hour
	}
	if c.Session.SweepEvery <= 0 {
		c.Session.SweepEvery = c.Session.TTL / 4
	}

	if c.Resume.MaxUploadSize == "" {
		c.Resume.MaxUploadSize = "10MiB"
	}
	n, err := humanize.ParseBytes(c.Resume.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("resume.max_upload_size: %w", err)
	}
	if n == 0 {
		return errors.New("resume.max_upload_size must be positive")
	}
	c.Resume.MaxUploadBytes = int64(n)

	return nil
}

func fillPath(p *string, def string) {
	if *p == "" {
		*p = def
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
