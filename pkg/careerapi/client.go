package careerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/garnizeh/careerguide/internal/config"
)

// maxResponseBytes bounds how much of a backend reply is read.
const maxResponseBytes = 8 << 20

// Client talks to the career backend. Each call is exactly one HTTP exchange
// and is never retried.
type Client struct {
	cfg        config.BackendConfig
	base       *url.URL
	roadmapURL *url.URL
	client     *http.Client
	schemas    *Validator

	closed int32 // atomic flag for Close()
}

// NewClient creates a backend client. A nil httpClient gets one whose timeout is
// cfg.Timeout (zero leaves the transport defaults in charge).
func NewClient(cfg config.BackendConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	base, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	roadmap := base
	if cfg.RoadmapBaseURL != "" {
		roadmap, err = url.ParseRequestURI(cfg.RoadmapBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid roadmap base url: %w", err)
		}
	}

	def := config.DefaultPaths()
	if cfg.Paths.Roadmap == "" {
		cfg.Paths.Roadmap = def.Roadmap
	}
	if cfg.Paths.Jobs == "" {
		cfg.Paths.Jobs = def.Jobs
	}
	if cfg.Paths.Learning == "" {
		cfg.Paths.Learning = def.Learning
	}
	if cfg.Paths.Resume == "" {
		cfg.Paths.Resume = def.Resume
	}
	if cfg.Paths.Trends == "" {
		cfg.Paths.Trends = def.Trends
	}

	schemas, err := LoadSchemas()
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		base:       base,
		roadmapURL: roadmap,
		client:     httpClient,
		schemas:    schemas,
	}
	logger.Info("careerapi: NewClient created",
		slog.String("base_url", base.String()),
		slog.String("roadmap_base_url", roadmap.String()),
		slog.Duration("timeout", cfg.Timeout),
	)
	return c, nil
}

func NewDefaultClient(cfg config.BackendConfig) (*Client, error) {
	defaultClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close releases idle connections on the underlying transport. Close is
// idempotent; calls made after it fail with ErrClosed.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
			logger.Info("careerapi: client Close() called - CloseIdleConnections invoked")
		}
	}
	return nil
}

// SchemaNames lists the response schemas the client validates against.
func (c *Client) SchemaNames() []string { return c.schemas.Names() }

// package-level logger for pkg/careerapi; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/careerapi. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// GenerateRoadmap requests a roadmap for a goal and the skills already held.
func (c *Client) GenerateRoadmap(ctx context.Context, req RoadmapRequest) (*Roadmap, error) {
	var out struct {
		Roadmap Roadmap `json:"roadmap"`
	}
	if err := c.postJSON(ctx, c.roadmapURL, c.cfg.Paths.Roadmap, SchemaRoadmap, req, &out); err != nil {
		return nil, err
	}
	return &out.Roadmap, nil
}

// SearchJobs returns job matches in server order.
func (c *Client) SearchJobs(ctx context.Context, req JobSearchRequest) ([]JobListing, error) {
	var out struct {
		Jobs []JobListing `json:"jobs"`
	}
	if err := c.postJSON(ctx, c.base, c.cfg.Paths.Jobs, SchemaJobs, req, &out); err != nil {
		return nil, err
	}
	if out.Jobs == nil {
		out.Jobs = []JobListing{}
	}
	return out.Jobs, nil
}

func (c *Client) LearningResources(ctx context.Context, req LearningRequest) (*Resources, error) {
	var out struct {
		Resources Resources `json:"resources"`
	}
	if err := c.postJSON(ctx, c.base, c.cfg.Paths.Learning, SchemaLearning, req, &out); err != nil {
		return nil, err
	}
	return &out.Resources, nil
}

// AnalyzeResumeFile uploads a resume document as multipart field "resume".
func (c *Client) AnalyzeResumeFile(ctx context.Context, filename string, content io.Reader) (*ResumeAnalysis, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreatePart(resumePartHeader(filename))
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy resume: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.roadmapURL.JoinPath(c.cfg.Paths.Resume).String(), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out struct {
		Analysis ResumeAnalysis `json:"analysis"`
	}
	if err := c.do(req, SchemaResume, &out); err != nil {
		return nil, err
	}
	return &out.Analysis, nil
}

// AnalyzeResumeText sends pasted resume content as {"resumeText": ...}.
func (c *Client) AnalyzeResumeText(ctx context.Context, text string) (*ResumeAnalysis, error) {
	var out struct {
		Analysis ResumeAnalysis `json:"analysis"`
	}
	payload := struct {
		ResumeText string `json:"resumeText"`
	}{ResumeText: text}
	if err := c.postJSON(ctx, c.roadmapURL, c.cfg.Paths.Resume, SchemaResume, payload, &out); err != nil {
		return nil, err
	}
	return &out.Analysis, nil
}

// CareerTrends fetches aggregate market data for an industry and region.
func (c *Client) CareerTrends(ctx context.Context, industry, region string) (*Trends, error) {
	u := c.base.JoinPath(c.cfg.Paths.Trends)
	q := u.Query()
	q.Set("industry", industry)
	q.Set("region", region)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var out struct {
		Trends Trends `json:"trends"`
	}
	if err := c.do(req, SchemaTrends, &out); err != nil {
		return nil, err
	}
	return &out.Trends, nil
}

func (c *Client) postJSON(ctx context.Context, base *url.URL, p, schema string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", schema, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base.JoinPath(p).String(), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, schema, out)
}

func (c *Client) do(req *http.Request, schema string, out any) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return ErrClosed
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Endpoint: schema, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Endpoint: schema, StatusCode: resp.StatusCode, Err: err}
	}
	logger.Debug("careerapi: response",
		slog.String("endpoint", schema),
		slog.String("method", req.Method),
		slog.Int("status", resp.StatusCode),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Endpoint: schema, StatusCode: resp.StatusCode, Message: errorField(body)}
	}

	return c.schemas.Decode(req.Context(), schema, body, out)
}

// errorField reads {"error": "..."} from a failed response body, if present.
func errorField(body []byte) string {
	var e struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if s, ok := e.Error.(string); ok {
		return s
	}
	return ""
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func resumePartHeader(filename string) textproto.MIMEHeader {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", ct)
	return h
}
