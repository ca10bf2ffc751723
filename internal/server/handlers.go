package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/store"
)

// =============================================================================
// Health
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// =============================================================================
// Roster
// =============================================================================

type delimiters struct {
	PersonDelimiter string `json:"person_delimiter,omitempty"`
	NameDelimiter   string `json:"name_delimiter,omitempty"`
	LockTag         string `json:"lock_tag,omitempty"`
}

// apply overrides the delimiters in opts with the ones set in d.
func (d delimiters) apply(opts *pipeline.Options) error {
	person, err := delimiter("person_delimiter", d.PersonDelimiter)
	if err != nil {
		return err
	}
	name, err := delimiter("name_delimiter", d.NameDelimiter)
	if err != nil {
		return err
	}
	if person != 0 {
		opts.PersonDelimiter = person
	}
	if name != 0 {
		opts.NameDelimiter = name
	}
	if d.LockTag != "" {
		opts.LockTag = d.LockTag
	}
	return nil
}

type parseRequest struct {
	Names string `json:"names"`
	delimiters
}

type parseResponse struct {
	Entries   roster.Roster `json:"entries"`
	People    int           `json:"people"`
	Groups    int           `json:"groups"`
	Locked    int           `json:"locked"`
	Formatted string        `json:"formatted"`
}

func (s *Server) handleParseRoster(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.defaults
	if err := req.apply(&opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	ros, err := pipeline.ParseRoster(req.Names, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ros == nil {
		ros = roster.Roster{}
	}
	writeJSON(w, http.StatusOK, parseResponse{
		Entries:   ros,
		People:    ros.Len(),
		Groups:    ros.GroupCount(),
		Locked:    ros.LockedCount(),
		Formatted: roster.Format(ros, opts.RosterOptions()),
	})
}

// =============================================================================
// Assignments
// =============================================================================

type assignRequest struct {
	Chart          json.RawMessage `json:"chart,omitempty"`
	Names          string          `json:"names"`
	AllowUnderfill bool            `json:"allow_underfill"`
	KeepOrder      bool            `json:"keep_order"`
	Seed           uint64          `json:"seed"`
	delimiters
}

func (req assignRequest) options(defaults pipeline.Options) (pipeline.Options, error) {
	opts := defaults
	opts.Names = req.Names
	opts.AllowUnderfill = req.AllowUnderfill
	opts.KeepOrder = req.KeepOrder
	opts.Seed = req.Seed
	if err := req.apply(&opts); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Chart) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidChart, "request has no chart"))
		return
	}
	ch, err := chart.ReadJSON(bytes.NewReader(req.Chart))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.assign(w, r, ch, req)
}

func (s *Server) handleAssignChart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.chartStore(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Chart) != 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "chart is taken from the URL, not the body"))
		return
	}
	ch, err := st.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.assign(w, r, ch, req)
}

func (s *Server) assign(w http.ResponseWriter, r *http.Request, ch *chart.Chart, req assignRequest) {
	opts, err := req.options(s.defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Assign(r.Context(), ch, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Lookup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Charts
// =============================================================================

type chartListResponse struct {
	Charts []store.Summary `json:"charts"`
}

// chartStore answers UNSUPPORTED when the server runs without a store.
func (s *Server) chartStore(w http.ResponseWriter, r *http.Request) (store.Store, bool) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no chart store configured"))
		return nil, false
	}
	return s.store, true
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	st, ok := s.chartStore(w, r)
	if !ok {
		return
	}
	charts, err := st.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if charts == nil {
		charts = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, chartListResponse{Charts: charts})
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.chartStore(w, r)
	if !ok {
		return
	}
	ch, err := readChart(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ch.ID = ""
	if err := st.Put(r.Context(), ch); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/charts/"+ch.ID)
	writeJSON(w, http.StatusCreated, ch)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.chartStore(w, r)
	if !ok {
		return
	}
	ch, err := st.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *Server) handlePutChart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.chartStore(w, r)
	if !ok {
		return
	}
	ch, err := readChart(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if ch.ID != "" && ch.ID != id {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "chart id %q does not match URL id %q", ch.ID, id))
		return
	}
	ch.ID = id
	if err := st.Put(r.Context(), ch); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.chartStore(w, r)
	if !ok {
		return
	}
	if err := st.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readChart decodes and validates a chart from the request body.
func readChart(r *http.Request) (*chart.Chart, error) {
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		return nil, err
	}
	ch, err := chart.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if ch.Name != "" {
		if err := errors.ValidateChartName(ch.Name); err != nil {
			return nil, err
		}
	}
	return ch, nil
}
