package visualization

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nvandessel/braintwin/internal/logging"
	"github.com/nvandessel/braintwin/internal/ratelimit"
	"github.com/nvandessel/braintwin/internal/simulation"
)

// ServerOptions configures a Server. Zero values fall back to defaults.
type ServerOptions struct {
	// Addr is the listen address; "localhost:0" when empty.
	Addr string

	// Defaults are the initial slider positions and the values used for
	// parameters missing from a request.
	Defaults simulation.Input

	// RatePerSecond and Burst bound runs per client address.
	RatePerSecond float64
	Burst         int

	Logger *slog.Logger
}

// Server serves the interactive page and handles simulation API requests.
type Server struct {
	engine     *simulation.Engine
	defaults   simulation.Input
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex
	listenAddr string
	addr       string
}

// NewServer creates a new web UI server backed by engine.
func NewServer(engine *simulation.Engine, opts ServerOptions) *Server {
	if opts.Addr == "" {
		opts.Addr = "localhost:0"
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 5
	}
	if opts.Burst < 1 {
		opts.Burst = 10
	}
	if opts.Defaults.Validate() != nil {
		opts.Defaults = simulation.DefaultInput()
	}
	return &Server{
		engine:     engine,
		defaults:   opts.Defaults,
		limiter:    ratelimit.NewLimiter(opts.RatePerSecond, opts.Burst),
		logger:     logging.OrDiscard(opts.Logger),
		listenAddr: opts.Addr,
	}
}

// Addr returns the address the server is listening on (e.g., "localhost:PORT").
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/simulate", s.handleSimulate)
	return mux
}

// ListenAndServe starts the HTTP server and blocks until the context is
// cancelled. Returns nil on clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.addr = ln.Addr().String()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Unlock()

	s.logger.Info("web UI listening", "addr", s.addr)

	// Graceful shutdown when context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	err = s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// indexTemplateData holds data passed to the page template.
type indexTemplateData struct {
	Defaults    simulation.Input
	MaxStress   int
	MaxSleep    int
	MaxActivity int
	Background  string
	Foreground  string
	Accent      string
	Font        string
}

// RenderIndex produces the interactive page with sliders preset to defaults.
func RenderIndex(defaults simulation.Input) ([]byte, error) {
	tmplBytes, err := templates.ReadFile("templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}

	tmpl, err := template.New("index").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	var buf bytes.Buffer
	data := indexTemplateData{
		Defaults:    defaults,
		MaxStress:   simulation.MaxStress,
		MaxSleep:    simulation.MaxSleepQuality,
		MaxActivity: simulation.MaxActivity,
		Background:  BackgroundColor,
		Foreground:  ForegroundColor,
		Accent:      AccentColor,
		Font:        FontFamily,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

// handleIndex serves the page with the sliders and the run button.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html, err := RenderIndex(s.defaults)
	if err != nil {
		s.logger.Error("render index", "err", err)
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// SimulateResponse is the body returned by /api/simulate.
type SimulateResponse struct {
	Input           simulation.Input   `json:"input"`
	Figure          Figure             `json:"figure"`
	SVG             string             `json:"svg"`
	Explanation     string             `json:"explanation"`
	ExplanationHTML string             `json:"explanation_html"`
	Summary         []simulation.Stats `json:"summary"`
}

// BuildResponse renders every artifact of a run.
func BuildResponse(res *simulation.Result) (*SimulateResponse, error) {
	fig := BuildFigure(res)
	svg, err := RenderSVG(fig)
	if err != nil {
		return nil, fmt.Errorf("render SVG: %w", err)
	}
	explanation, err := RenderMarkdownHTML(res.Explanation)
	if err != nil {
		return nil, err
	}
	return &SimulateResponse{
		Input:           res.Input,
		Figure:          fig,
		SVG:             string(svg),
		Explanation:     res.Explanation,
		ExplanationHTML: string(explanation),
		Summary:         res.Summary(),
	}, nil
}

// handleSimulate runs the model once for the query's slider values.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	client := clientKey(r)
	if !s.limiter.Allow(client) {
		if wait := s.limiter.RetryAfter(client); wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		}
		http.Error(w, ratelimit.ErrLimited.Error(), http.StatusTooManyRequests)
		return
	}

	in, err := parseInput(r, s.defaults)
	if err != nil {
		s.logger.Info("rejected simulation request", "client", client, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	res, err := s.engine.Simulate(in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, simulation.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.logger.Info("rejected simulation input", "client", client, "err", err)
		http.Error(w, err.Error(), status)
		return
	}

	resp, err := BuildResponse(res)
	if err != nil {
		s.logger.Error("render simulation", "err", err)
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Debug("simulation run",
		"stress", in.Stress, "sleep", in.SleepQuality, "activity", in.ActivityLevel,
		"duration", time.Since(start))
	logging.Trace(s.logger, "simulation series",
		"cortisol", res.Series.Cortisol, "dopamine", res.Series.Dopamine, "serotonin", res.Series.Serotonin)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// parseInput reads stress, sleep and activity from the query string.
// Missing parameters take the value from defaults.
func parseInput(r *http.Request, defaults simulation.Input) (simulation.Input, error) {
	q := r.URL.Query()
	in := defaults
	params := []struct {
		name string
		dst  *int
	}{
		{"stress", &in.Stress},
		{"sleep", &in.SleepQuality},
		{"activity", &in.ActivityLevel},
	}
	for _, p := range params {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return simulation.Input{}, fmt.Errorf("%w: %s must be an integer, got %q", simulation.ErrInvalidInput, p.name, raw)
		}
		*p.dst = v
	}
	return in, nil
}

// clientKey identifies the caller for rate limiting.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
