package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/dataset"
	"github.com/turbolytics/seer/internal/linechart"
)

const maxRequestBytes = 8 << 20

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithDefaults sets the chart defaults requests fall back to.
func WithDefaults(d linechart.Defaults) Option {
	return func(s *Server) {
		s.defaults = d
	}
}

// Server renders line charts over HTTP.
type Server struct {
	logger   *zap.Logger
	defaults linechart.Defaults
}

func New(opts ...Option) *Server {
	s := &Server{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeriesPayload is one series: the owner document its title is read from
// and its data records.
type SeriesPayload struct {
	Owner   map[string]any   `json:"owner"`
	Records []map[string]any `json:"records"`
}

type LineChartRequest struct {
	SeriesLabel   string          `json:"series_label"`
	DataLabel     string          `json:"data_label"`
	DataMethod    string          `json:"data_method"`
	InElement     string          `json:"in_element"`
	RowLabelTitle string          `json:"row_label_title"`
	Placement     string          `json:"placement"`
	ChartOptions  map[string]any  `json:"chart_options"`
	DataSeries    []SeriesPayload `json:"data_series"`
}

type StatementsResponse struct {
	Element    string   `json:"element"`
	Rows       int      `json:"rows"`
	Columns    int      `json:"columns"`
	Statements []string `json:"statements"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.logMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)

	r.Route("/api/v1/charts/line", func(r chi.Router) {
		r.Post("/", s.renderLineChart)
		r.Post("/statements", s.lineChartStatements)
	})

	return r
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("from", r.RemoteAddr),
				zap.String("protocol", r.Proto),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderLineChart(w http.ResponseWriter, r *http.Request) {
	d, ok := s.build(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(d.Script()))
}

func (s *Server) lineChartStatements(w http.ResponseWriter, r *http.Request) {
	d, ok := s.build(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, StatementsResponse{
		Element:    d.Element,
		Rows:       d.Rows,
		Columns:    d.Columns,
		Statements: d.Statements(),
	})
}

// build decodes a request and renders its descriptor. On failure the error
// response has been written and ok is false.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (*linechart.Descriptor, bool) {
	var req LineChartRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}

	chart, err := s.chart(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return nil, false
	}

	d, err := chart.Build(req.series())
	if err != nil {
		s.logger.Debug("render failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeError(w, statusFor(err), err)
		return nil, false
	}
	return d, true
}

func (s *Server) chart(req LineChartRequest) (dataset.Chart, error) {
	if req.DataLabel == "" || req.DataMethod == "" {
		return dataset.Chart{}, errBadRequest("data_label and data_method are required")
	}

	placement, err := linechart.ParsePlacement(req.Placement)
	if err != nil {
		return dataset.Chart{}, errBadRequest(err.Error())
	}

	options, err := linechart.OptionsFromMap(numbersToFloat(req.ChartOptions))
	if err != nil {
		return dataset.Chart{}, err
	}

	return dataset.Chart{
		SeriesLabel:   req.SeriesLabel,
		DataLabel:     req.DataLabel,
		DataMethod:    req.DataMethod,
		InElement:     req.InElement,
		RowLabelTitle: req.RowLabelTitle,
		Placement:     placement,
		Options:       options,
		Defaults:      s.defaults,
	}, nil
}

func (req LineChartRequest) series() []linechart.Series[*internal.Record] {
	series := make([]linechart.Series[*internal.Record], 0, len(req.DataSeries))
	for _, p := range req.DataSeries {
		var owner any
		if p.Owner != nil {
			owner = internal.NewRecordFromMap(p.Owner)
		}
		records := make([]*internal.Record, 0, len(p.Records))
		for _, m := range p.Records {
			records = append(records, internal.NewRecordFromMap(m))
		}
		series = append(series, linechart.Series[*internal.Record]{
			Owner:   owner,
			Records: records,
		})
	}
	return series
}

// numbersToFloat turns decoded json numbers back into plain numbers so
// option values keep their yaml types.
func numbersToFloat(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case json.Number:
			if i, err := t.Int64(); err == nil {
				out[k] = i
			} else if f, err := t.Float64(); err == nil {
				out[k] = f
			} else {
				out[k] = t.String()
			}
		default:
			out[k] = v
		}
	}
	return out
}

type errBadRequest string

func (e errBadRequest) Error() string {
	return string(e)
}

func statusFor(err error) int {
	var bad errBadRequest
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, linechart.ErrAccessor),
		errors.Is(err, linechart.ErrMisalignedSeries),
		errors.Is(err, linechart.ErrInvalidOption):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting chart server", zap.String("addr", addr))

	// cancelled on return, which also ends the shutdown watcher
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down chart server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
