// Package api exposes the remote tables and the controller over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"arcology/catalog"
	"arcology/controller"
	"arcology/ircode"
	"arcology/logging"
	"arcology/receiver"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger     zerolog.Logger
	dispatcher *controller.Dispatcher
	controller *controller.Controller
	waitGroup  *sync.WaitGroup
	httpServer *http.Server
	now        func() time.Time
}

func New(logger zerolog.Logger, addr string, d *controller.Dispatcher, c *controller.Controller, waitGroup *sync.WaitGroup) *Server {
	s := &Server{
		logger:     logging.For(logger, "RestAPI"),
		dispatcher: d,
		controller: c,
		waitGroup:  waitGroup,
		now:        time.Now,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Routes builds the router; exported for tests and embedding.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Post("/press", s.handlePress)
	r.Route("/tables", func(r chi.Router) {
		r.Get("/", s.handleTables)
		r.Get("/{rev}", s.handleTable)
		r.Get("/{rev}/validate", s.handleValidate)
		r.Get("/{rev}/keys/{key}", s.handleKey)
		r.Get("/{rev}/codes/{code}", s.handleCode)
	})
	return r
}

func (s *Server) Start(ctx context.Context) {
	s.waitGroup.Add(2)
	go s.listen()
	go s.waitForCancel(ctx)
}

func (s *Server) listen() {
	defer s.waitGroup.Done()

	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Listening")
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error().Err(err).Msg("HTTP server failed")
		return
	}
	s.logger.Info().Msg("Done")
}

func (s *Server) waitForCancel(ctx context.Context) {
	defer s.waitGroup.Done()
	<-ctx.Done()
	s.logger.Info().Msg("Stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	s.logger.Info().Msg("Finished shutting down")
}

type tableSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Codes       int    `json:"codes"`
	Active      bool   `json:"active"`
}

type tableResponse struct {
	tableSummary
	Bindings []ircode.Binding `json:"bindings"`
}

type validateResponse struct {
	Table    string   `json:"table"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems"`
}

type stateResponse struct {
	Table string           `json:"table"`
	State controller.State `json:"state"`
	Stats controller.Stats `json:"stats"`
}

type pressRequest struct {
	Code   *ircode.Code `json:"code,omitempty"`
	Key    ircode.Key   `json:"key,omitempty"`
	Repeat bool         `json:"repeat,omitempty"`
}

type pressResponse struct {
	ID    string           `json:"id"`
	Key   ircode.Key       `json:"key,omitempty"`
	Code  ircode.Code      `json:"code"`
	Error string           `json:"error,omitempty"`
	State controller.State `json:"state"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Write failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) summary(t *ircode.Table) tableSummary {
	return tableSummary{
		Name:        t.Name(),
		Description: t.Description(),
		Codes:       t.Len(),
		Active:      t.Name() == s.dispatcher.Table().Name(),
	}
}

// table resolves the {rev} parameter, writing a 404 when it is unknown.
func (s *Server) table(w http.ResponseWriter, r *http.Request) (*ircode.Table, bool) {
	t, err := catalog.Get(chi.URLParam(r, "rev"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return t, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	all := catalog.All()
	out := make([]tableSummary, 0, len(all))
	for _, t := range all {
		out = append(out, s.summary(t))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, tableResponse{tableSummary: s.summary(t), Bindings: t.Bindings()})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	resp := validateResponse{Table: t.Name(), Valid: true, Problems: []string{}}
	if err := t.Validate(); err != nil {
		resp.Valid = false
		var verr *ircode.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				resp.Problems = append(resp.Problems, p.Error())
			}
		} else {
			resp.Problems = append(resp.Problems, err.Error())
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// findKey matches IR_BPlus, ir_bplus or bplus.
func findKey(t *ircode.Table, name string) (ircode.Binding, bool) {
	for _, b := range t.Bindings() {
		k := string(b.Key)
		if strings.EqualFold(k, name) || strings.EqualFold(k, "IR_"+name) {
			return b, true
		}
	}
	return ircode.Binding{}, false
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "key")
	b, ok := findKey(t, name)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("key %q not in %s", name, t.Name()))
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	code, err := ircode.ParseCode(chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	b, ok := t.Lookup(code)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("code %s not in %s", code, t.Name()))
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, stateResponse{
		Table: s.dispatcher.Table().Name(),
		State: s.controller.Snapshot(),
		Stats: s.dispatcher.Stats(),
	})
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	var req pressRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode press: %w", err))
		return
	}

	var code ircode.Code
	switch {
	case req.Repeat:
	case req.Code != nil:
		code = *req.Code
	case req.Key != "":
		b, ok := findKey(s.dispatcher.Table(), string(req.Key))
		if !ok {
			s.writeError(w, http.StatusNotFound, fmt.Errorf("key %q not in %s", req.Key, s.dispatcher.Table().Name()))
			return
		}
		code = b.Code
	default:
		s.writeError(w, http.StatusBadRequest, errors.New("press needs a code, a key or repeat"))
		return
	}

	p := receiver.NewPress(code, req.Repeat, s.now())
	key, err := s.dispatcher.Dispatch(p)
	resp := pressResponse{ID: p.ID.String(), Key: key, Code: code}

	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		switch {
		case errors.Is(err, controller.ErrUnknownCode):
			status = http.StatusNotFound
		case errors.Is(err, controller.ErrPoweredOff), errors.Is(err, controller.ErrNotRepeatable):
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
		}
	}
	resp.State = s.controller.Snapshot()
	s.logger.Debug().Str("press", resp.ID).Stringer("code", code).Str("key", string(key)).Int("status", status).Msg("Press from API")
	s.writeJSON(w, status, resp)
}
