package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.FileStore) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := New(Config{
		Runner: pipeline.NewRunner(fc, nil, logger),
		Store:  fs,
		Logger: logger,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, fs
}

func testChart(t *testing.T, seats int, connections ...[2]int) *chart.Chart {
	t.Helper()
	c := chart.New("room")
	c.AddSeats(seats)
	for _, e := range connections {
		if err := c.Connect(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, want, body)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, ts, http.MethodGet, "/healthz", nil)
	expectStatus(t, resp, http.StatusOK)

	got := decode[healthResponse](t, resp)
	if got.Status != "ok" || got.Build.Version == "" {
		t.Errorf("health = %+v", got)
	}
}

func TestParseRoster(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, ts, http.MethodPost, "/api/v1/roster/parse", map[string]string{
		"names": "Muster, Anna; [Doe, Ben; Doe, Cara]; Smith, Dan#",
	})
	expectStatus(t, resp, http.StatusOK)
	got := decode[parseResponse](t, resp)
	if got.People != 4 || got.Groups != 1 || got.Locked != 1 || len(got.Entries) != 3 {
		t.Errorf("parse = %+v", got)
	}

	resp = do(t, ts, http.MethodPost, "/api/v1/roster/parse", map[string]string{
		"names":            "Muster| Anna/ Doe| Ben",
		"person_delimiter": "/",
		"name_delimiter":   "|",
	})
	expectStatus(t, resp, http.StatusOK)
	got = decode[parseResponse](t, resp)
	if got.People != 2 || got.Entries[0].Members[0].FirstName != "Anna" {
		t.Errorf("custom delimiters: %+v", got)
	}
}

func TestParseRosterErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   errors.Code
	}{
		{"group of three", map[string]string{"names": "[A; B; C]"}, http.StatusBadRequest, errors.ErrCodeInvalidGroup},
		{"long delimiter", map[string]string{"names": "A", "person_delimiter": ";;"}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"same delimiters", map[string]string{"names": "A", "person_delimiter": ","}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", map[string]string{"nams": "A"}, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, ts, http.MethodPost, "/api/v1/roster/parse", tt.body)
			expectStatus(t, resp, tt.status)
			got := decode[errorBody](t, resp)
			if got.Error.Code != tt.code || got.Error.Message == "" {
				t.Errorf("error = %+v, want code %s", got.Error, tt.code)
			}
		})
	}
}

func TestAssign(t *testing.T) {
	ts, _ := newTestServer(t)
	ch := testChart(t, 4, [2]int{1, 3}, [2]int{2, 3})

	resp := do(t, ts, http.MethodPost, "/api/v1/assign", map[string]any{
		"chart": ch,
		"names": "A; [B; C]; D",
		"seed":  42,
	})
	expectStatus(t, resp, http.StatusOK)
	result := decode[pipeline.Result](t, resp)

	if result.Mode != pipeline.ModeSolve || result.Seed != 42 || len(result.Seats) != 4 {
		t.Fatalf("result = %+v", result)
	}
	var b, c int
	for _, s := range result.Seats {
		switch s.Person.FirstName {
		case "B":
			b = s.SeatID
		case "C":
			c = s.SeatID
		}
	}
	if !ch.IsConnected(b, c) {
		t.Errorf("B on seat %d and C on seat %d are not neighbors", b, c)
	}

	resp = do(t, ts, http.MethodGet, "/api/v1/assignments/"+result.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[pipeline.Result](t, resp); got.ID != result.ID {
		t.Errorf("lookup id = %s, want %s", got.ID, result.ID)
	}
}

func TestAssignErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	ch := testChart(t, 4)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   errors.Code
	}{
		{"no chart", map[string]any{"names": "A"}, http.StatusBadRequest, errors.ErrCodeInvalidChart},
		{"underfill", map[string]any{"chart": ch, "names": "A; B"}, http.StatusUnprocessableEntity, errors.ErrCodeCountMismatch},
		{"overfill", map[string]any{"chart": ch, "names": "A; B; C; D; E"}, http.StatusUnprocessableEntity, errors.ErrCodeCountMismatch},
		{"infeasible", map[string]any{"chart": ch, "names": "[A; B]; C; D"}, http.StatusUnprocessableEntity, errors.ErrCodeInfeasible},
		{"empty names", map[string]any{"chart": ch, "names": ""}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, ts, http.MethodPost, "/api/v1/assign", tt.body)
			expectStatus(t, resp, tt.status)
			if got := decode[errorBody](t, resp); got.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Error.Code, tt.code)
			}
		})
	}

	t.Run("underfill allowed", func(t *testing.T) {
		resp := do(t, ts, http.MethodPost, "/api/v1/assign", map[string]any{
			"chart": ch, "names": "A; B", "allow_underfill": true,
		})
		expectStatus(t, resp, http.StatusOK)
		if got := decode[pipeline.Result](t, resp); got.Occupied() != 2 {
			t.Errorf("occupied = %d, want 2", got.Occupied())
		}
	})
}

func TestGetAssignmentNotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, ts, http.MethodGet, "/api/v1/assignments/missing", nil)
	expectStatus(t, resp, http.StatusNotFound)
	if got := decode[errorBody](t, resp); got.Error.Code != errors.ErrCodeNotFound {
		t.Errorf("code = %s", got.Error.Code)
	}
}

func TestChartCRUD(t *testing.T) {
	ts, _ := newTestServer(t)
	ch := testChart(t, 3, [2]int{1, 2})
	ch.Names = "A; [B; C]"

	resp := do(t, ts, http.MethodPost, "/api/v1/charts", ch)
	expectStatus(t, resp, http.StatusCreated)
	created := decode[chart.Chart](t, resp)
	if created.ID == "" || created.ID == ch.ID {
		t.Fatalf("created id = %q, want a fresh id", created.ID)
	}
	if loc := resp.Header.Get("Location"); !strings.HasSuffix(loc, created.ID) {
		t.Errorf("Location = %q", loc)
	}

	resp = do(t, ts, http.MethodGet, "/api/v1/charts/"+created.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[chart.Chart](t, resp); got.SeatCount() != 3 || !got.IsConnected(1, 2) {
		t.Errorf("get = %+v", got)
	}

	resp = do(t, ts, http.MethodGet, "/api/v1/charts", nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[chartListResponse](t, resp); len(got.Charts) != 1 || got.Charts[0].Connections != 1 {
		t.Errorf("list = %+v", got)
	}

	resp = do(t, ts, http.MethodPost, "/api/v1/charts/"+created.ID+"/assign", map[string]any{"seed": 7})
	expectStatus(t, resp, http.StatusOK)
	if got := decode[pipeline.Result](t, resp); got.ChartID != created.ID || got.Mode != pipeline.ModeSolve {
		t.Errorf("assign stored chart = %+v", got)
	}

	created.AddSeat(0, 0, 0)
	resp = do(t, ts, http.MethodPut, "/api/v1/charts/"+created.ID, created)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[chart.Chart](t, resp); got.SeatCount() != 4 {
		t.Errorf("put seats = %d, want 4", got.SeatCount())
	}

	resp = do(t, ts, http.MethodPut, "/api/v1/charts/other-id", created)
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, ts, http.MethodDelete, "/api/v1/charts/"+created.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = do(t, ts, http.MethodGet, "/api/v1/charts/"+created.ID, nil)
	expectStatus(t, resp, http.StatusNotFound)
	if got := decode[errorBody](t, resp); got.Error.Code != errors.ErrCodeChartNotFound {
		t.Errorf("code = %s", got.Error.Code)
	}
}

func TestChartsWithoutStore(t *testing.T) {
	srv := New(Config{Logger: log.New(io.Discard)})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := do(t, ts, http.MethodGet, "/api/v1/charts", nil)
	expectStatus(t, resp, http.StatusNotImplemented)
}
