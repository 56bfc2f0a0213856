package chatbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"VizChat/internal/cache"
	"VizChat/internal/chart"
	"VizChat/internal/config"
	"VizChat/internal/dataset"
	"VizChat/internal/intent"
	"VizChat/internal/render"
	"VizChat/internal/sample"
	"VizChat/internal/session"
	"VizChat/internal/store"
	"VizChat/internal/telemetry"
)

// ErrNoUpload is returned by data commands before a file has been uploaded
var ErrNoUpload = errors.New("no data uploaded, use /upload <path> first")

// Reply is the assistant's answer to one input
type Reply struct {
	Text      string     `json:"text"`
	ChartPath string     `json:"chart_path,omitempty"`
	Chart     *ChartInfo `json:"chart,omitempty"`
}

// ChartInfo describes a chart produced for a reply
type ChartInfo struct {
	Spec    chart.Spec `json:"spec"`
	Rows    int        `json:"rows"`
	Columns []string   `json:"columns"`
	Path    string     `json:"path"`
	Cached  bool       `json:"cached"`
}

// DataInfo describes the uploaded dataset
type DataInfo struct {
	Name        string             `json:"name"`
	Path        string             `json:"path"`
	Rows        int                `json:"rows"`
	Columns     []string           `json:"columns"`
	Schema      dataset.Schema     `json:"schema"`
	Summary     dataset.Summary    `json:"summary"`
	QuickCharts []chart.QuickChart `json:"quick_charts"`
}

type upload struct {
	path string
	data *dataset.Dataset
}

// ChatBot represents the main application
type ChatBot struct {
	config    config.Config
	store     *store.Store
	cache     cache.Cache
	renderer  *render.Renderer
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *telemetry.Metrics
	chartOpts []chart.Option
	scheme    string
	cleanup   func()

	session *session.Session
	upload  *upload
	mu      sync.Mutex

	in  io.Reader
	out io.Writer
}

// Option customizes a ChatBot built with New
type Option func(*chatOptions)

type chatOptions struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	cleanup func()
	in      io.Reader
	out     io.Writer
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(o *chatOptions) { o.logger = l }
}

// WithTelemetry sets the tracer and meter, and a cleanup run by Close
func WithTelemetry(tracer trace.Tracer, meter metric.Meter, cleanup func()) Option {
	return func(o *chatOptions) {
		o.tracer, o.meter, o.cleanup = tracer, meter, cleanup
	}
}

// WithIO sets the REPL input and output
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *chatOptions) { o.in, o.out = in, out }
}

// NewChatBot creates a ChatBot with file logging, telemetry and the session store
// configured by cfg. opts are applied after the configured logger and telemetry.
func NewChatBot(cfg config.Config, opts ...Option) (*ChatBot, error) {
	logger, err := telemetry.InitLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tracer, meter := telemetry.Noop()
	cleanup := func() {}
	if cfg.Telemetry {
		tracer, meter, cleanup, err = telemetry.InitTelemetry(context.Background(), cfg.LogDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Debug {
		logger.Info("Debug mode enabled")
	}

	opts = append([]Option{WithLogger(logger), WithTelemetry(tracer, meter, cleanup)}, opts...)
	cb, err := New(cfg, st, opts...)
	if err != nil {
		st.Close()
		cleanup()
		return nil, err
	}
	return cb, nil
}

// New creates a ChatBot around an open store. The ChatBot takes ownership of st.
// Without options it logs nowhere, records no telemetry and uses stdin/stdout.
func New(cfg config.Config, st *store.Store, opts ...Option) (*ChatBot, error) {
	o := chatOptions{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = telemetry.DiscardLogger()
	}
	if o.tracer == nil || o.meter == nil {
		o.tracer, o.meter = telemetry.Noop()
	}
	if o.cleanup == nil {
		o.cleanup = func() {}
	}

	metrics, err := telemetry.NewMetrics(o.meter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	chartOpts, err := cfg.ChartOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load chart style: %w", err)
	}

	cb := &ChatBot{
		config:    cfg,
		store:     st,
		renderer:  render.New(),
		logger:    o.logger,
		tracer:    o.tracer,
		metrics:   metrics,
		chartOpts: chartOpts,
		cleanup:   o.cleanup,
		in:        o.in,
		out:       o.out,
	}

	if cfg.SessionID != "" && st != nil {
		sess, err := st.LoadSession(cfg.SessionID)
		if err != nil {
			cb.logger.Warn("failed to load session, creating new one", "error", err)
			cb.session = cb.newSession()
		} else {
			cb.session = sess
			cb.logger.Info("loaded existing session", "session_id", sess.ID)
		}
	} else {
		cb.session = cb.newSession()
	}

	return cb, nil
}

// newSession creates a new session
func (cb *ChatBot) newSession() *session.Session {
	sess := session.New(uuid.NewString(), cb.config.AutoDetect)
	cb.logger.Info("created new session", "session_id", sess.ID, "auto_detect", sess.AutoDetect)
	return sess
}

// saveSession saves the current session. Callers hold cb.mu.
func (cb *ChatBot) saveSession() error {
	if cb.store == nil {
		return nil
	}
	if err := cb.store.SaveSession(cb.session); err != nil {
		return err
	}
	cb.logger.Info("session saved",
		"session_id", cb.session.ID,
		"message_count", len(cb.session.Messages),
		"chart_count", len(cb.session.ChartHistory),
	)
	return nil
}

// Close saves the session, closes the store and flushes telemetry
func (cb *ChatBot) Close() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	var errs []error
	if err := cb.saveSession(); err != nil {
		errs = append(errs, fmt.Errorf("failed to save session: %w", err))
	}
	if cb.store != nil {
		if err := cb.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
		cb.store = nil
	}
	cb.cleanup()
	cb.cleanup = func() {}
	return errors.Join(errs...)
}

// HandleInput processes one line of user input: a slash command or a chat message.
// quit reports whether the user asked to leave.
func (cb *ChatBot) HandleInput(ctx context.Context, text string) (reply Reply, quit bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.handleInput(ctx, text)
}

func (cb *ChatBot) handleInput(ctx context.Context, text string) (Reply, bool, error) {
	text = trimInput(text)
	if text == "" {
		return Reply{}, false, nil
	}

	var (
		reply Reply
		quit  bool
		err   error
	)
	if text[0] == '/' {
		reply, quit, err = cb.handleCommand(ctx, text)
	} else {
		reply = cb.sendMessage(ctx, text)
	}

	if saveErr := cb.saveSession(); saveErr != nil {
		cb.logger.Error("failed to save session", "error", saveErr)
	}
	return reply, quit, err
}

// sendMessage answers a chat message with a sample chart or a canned reply
func (cb *ChatBot) sendMessage(ctx context.Context, text string) Reply {
	_, span := cb.tracer.Start(ctx, "classify")
	in := intent.Classify(text)
	span.SetAttributes(
		attribute.Bool("is_request", in.IsRequest),
		attribute.String("chart_type", string(in.ChartType)),
		attribute.Float64("confidence", in.Confidence),
	)
	span.End()

	cb.metrics.Request(ctx, in.IsRequest)
	cb.session.AddMessage("user", text, "")
	cb.logger.Info("message classified",
		"is_request", in.IsRequest,
		"chart_type", in.ChartType,
		"confidence", in.Confidence,
	)

	var reply Reply
	if in.IsRequest && cb.session.AutoDetect {
		reply = cb.sampleChart(ctx, in.ChartType)
	} else {
		reply = Reply{Text: cannedReply(text)}
	}

	cb.session.AddMessage("assistant", reply.Text, reply.ChartPath)
	return reply
}

// sampleChart charts synthesized data for t
func (cb *ChatBot) sampleChart(ctx context.Context, t chart.Type) Reply {
	ds := sample.Synthesize(t, sample.DefaultSeed)
	info, err := cb.makeChart(ctx, t, ds, sampleTitle(t), session.SourceSample, true)
	if err != nil {
		cb.logger.Error("failed to create sample chart", "chart_type", t, "error", err)
		return Reply{Text: fmt.Sprintf("Sorry, I couldn't create the %s chart: %v", t, err)}
	}
	return Reply{Text: sampleReply(info), ChartPath: info.Path, Chart: &info}
}

// makeChart resolves and renders a chart. An empty title selects a descriptive one.
// When record is set the chart is appended to the session history.
func (cb *ChatBot) makeChart(ctx context.Context, t chart.Type, ds *dataset.Dataset, title, source string, record bool) (ChartInfo, error) {
	_, span := cb.tracer.Start(ctx, "resolve", trace.WithAttributes(attribute.String("chart_type", string(t))))
	res, err := chart.Resolve(t, ds, title, cb.chartOptions()...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return ChartInfo{}, err
	}
	span.End()
	if title == "" {
		res.Spec.Title = chart.QuickTitle(res.Spec)
	}

	path, cached, err := cb.renderChart(ctx, res)
	if err != nil {
		return ChartInfo{}, err
	}

	chartType, rows := res.Entry()
	if record {
		cb.session.AddChart(chartType, rows, res.Spec.Title, source)
		kind := "upload"
		if source == session.SourceSample {
			kind = session.SourceSample
		}
		cb.metrics.ChartCreated(ctx, string(chartType), kind)
	}
	cb.logger.Info("chart created", "chart_type", chartType, "rows", rows, "path", path, "cached", cached)

	return ChartInfo{
		Spec:    res.Spec,
		Rows:    rows,
		Columns: res.Data.Names(),
		Path:    path,
		Cached:  cached,
	}, nil
}

func (cb *ChatBot) chartOptions() []chart.Option {
	opts := append([]chart.Option(nil), cb.chartOpts...)
	if cb.scheme != "" {
		opts = append(opts, chart.WithColorScheme(cb.scheme))
	}
	return opts
}

// renderChart writes the chart page, reusing a cached page for identical spec and data
func (cb *ChatBot) renderChart(ctx context.Context, res chart.Result) (string, bool, error) {
	ctx, span := cb.tracer.Start(ctx, "render", trace.WithAttributes(attribute.String("chart_type", string(res.Spec.Type))))
	defer span.End()

	cacheKey := cache.GenerateCacheKey(res.Spec, res.Data)
	if cached, ok := cb.cache.Load(cacheKey); ok {
		cb.logger.Info("cache hit", "key", cacheKey[:16])
		cb.metrics.CacheHit(ctx)
		span.SetAttributes(attribute.Bool("cached", true))
		return cached.Path, true, nil
	}

	start := time.Now()
	path, err := cb.renderer.RenderFile(cb.config.OutputDir, res.Spec, res.Data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", false, err
	}
	cb.metrics.RenderDuration(ctx, string(res.Spec.Type), float64(time.Since(start).Microseconds())/1000)

	cb.cache.Store(cacheKey, path)
	cb.logger.Info("cached chart", "key", cacheKey[:16])
	return path, false, nil
}

// loadUpload reads a data file and makes it the current upload
func (cb *ChatBot) loadUpload(ctx context.Context, path string) (DataInfo, error) {
	_, span := cb.tracer.Start(ctx, "upload", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	ds, err := dataset.LoadFile(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return DataInfo{}, fmt.Errorf("failed to load %s: %w", path, err)
	}

	cb.upload = &upload{path: path, data: ds}
	info := describe(cb.upload)
	span.SetAttributes(attribute.Int("rows", info.Rows), attribute.Int("columns", len(info.Columns)))
	cb.logger.Info("data uploaded", "path", path, "rows", info.Rows, "columns", len(info.Columns))
	return info, nil
}

func describe(u *upload) DataInfo {
	schema := u.data.Schema()
	return DataInfo{
		Name:        u.data.Name,
		Path:        u.path,
		Rows:        u.data.Rows(),
		Columns:     u.data.Names(),
		Schema:      schema,
		Summary:     dataset.Describe(u.data),
		QuickCharts: chart.QuickCharts(schema),
	}
}

// quickChart charts the uploaded data. Chart types the data cannot support get a
// friendly reply, not an error.
func (cb *ChatBot) quickChart(ctx context.Context, t chart.Type) (Reply, error) {
	if cb.upload == nil {
		return Reply{}, ErrNoUpload
	}

	info, err := cb.makeChart(ctx, t, cb.upload.data, "", cb.upload.path, true)
	var ue *chart.UnavailableError
	if errors.As(err, &ue) {
		cb.logger.Warn("quick chart unavailable", "chart_type", t, "error", err)
		return Reply{Text: unavailableReply(ue, cb.upload.data.Name)}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	text := fmt.Sprintf("Created %s from %s (%d rows).\nSaved to: %s", info.Spec.Title, cb.upload.data.Name, info.Rows, info.Path)
	return Reply{Text: text, ChartPath: info.Path, Chart: &info}, nil
}

// replay re-creates history entry n (1-based) without adding a new entry
func (cb *ChatBot) replay(ctx context.Context, n int) (Reply, error) {
	if n < 1 || n > len(cb.session.ChartHistory) {
		return Reply{}, fmt.Errorf("no chart %d in history (have %d)", n, len(cb.session.ChartHistory))
	}
	entry := cb.session.ChartHistory[n-1]

	var ds *dataset.Dataset
	if entry.Source == session.SourceSample {
		ds = sample.Synthesize(entry.Type, sample.DefaultSeed)
	} else {
		var err error
		ds, err = dataset.LoadFile(entry.Source)
		if err != nil {
			return Reply{}, fmt.Errorf("failed to reload %s: %w", entry.Source, err)
		}
	}

	info, err := cb.makeChart(ctx, entry.Type, ds, entry.Title, entry.Source, false)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to replay chart %d: %w", n, err)
	}

	state := "re-rendered"
	if info.Cached {
		state = "from cache"
	}
	text := fmt.Sprintf("Replayed chart %d: %s (%s)\nSaved to: %s", n, info.Spec.Title, state, info.Path)
	return Reply{Text: text, ChartPath: info.Path, Chart: &info}, nil
}

// SessionID returns the current session id
func (cb *ChatBot) SessionID() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.session.ID
}

// Messages returns a copy of the conversation so far
func (cb *ChatBot) Messages() []session.Message {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return append([]session.Message{}, cb.session.Messages...)
}

// History returns a copy of the chart history
func (cb *ChatBot) History() []session.ChartEntry {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return append([]session.ChartEntry{}, cb.session.ChartHistory...)
}

// Upload loads a data file as the current upload
func (cb *ChatBot) Upload(ctx context.Context, path string) (DataInfo, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.loadUpload(ctx, path)
}

// Data describes the current upload; ok is false when nothing was uploaded
func (cb *ChatBot) Data() (info DataInfo, ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.upload == nil {
		return DataInfo{}, false
	}
	return describe(cb.upload), true
}

// QuickChart charts the uploaded data as t
func (cb *ChatBot) QuickChart(ctx context.Context, t chart.Type) (Reply, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	reply, err := cb.quickChart(ctx, t)
	if err == nil {
		if saveErr := cb.saveSession(); saveErr != nil {
			cb.logger.Error("failed to save session", "error", saveErr)
		}
	}
	return reply, err
}

// Reset saves the current session and starts a new one
func (cb *ChatBot) Reset() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.resetSession()
	return cb.session.ID
}

func (cb *ChatBot) resetSession() {
	if err := cb.saveSession(); err != nil {
		cb.logger.Error("failed to save current session", "error", err)
	}
	cb.session = cb.newSession()
	cb.upload = nil
}
