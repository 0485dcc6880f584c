package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"routined/pkg/types"
)

type mockRegistry struct {
	routines []types.RoutineInfo
}

func (m *mockRegistry) List() []types.RoutineInfo {
	return append([]types.RoutineInfo(nil), m.routines...)
}

type mockJobs struct {
	jobs      []types.JobStatus
	cancelled []string
}

func (m *mockJobs) List() []types.JobStatus { return append([]types.JobStatus(nil), m.jobs...) }

func (m *mockJobs) Status(id string) (types.JobStatus, bool) {
	for _, j := range m.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return types.JobStatus{}, false
}

func (m *mockJobs) CancelJob(id string) bool {
	if _, ok := m.Status(id); !ok {
		return false
	}
	m.cancelled = append(m.cancelled, id)
	return true
}

func TestRoutinesHandler(t *testing.T) {
	reg := &mockRegistry{routines: []types.RoutineInfo{
		{Name: "train", Params: []string{"cancel_token", "state"}},
		{Name: "predict", Params: []string{"model_accessor"}},
	}}
	r := NewMux(reg, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/routines", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.RoutinesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Routines) != 2 {
		t.Fatalf("routines len=%d", len(body.Routines))
	}
	if body.Routines[0].Name != "train" || len(body.Routines[0].Params) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestJobsHandler(t *testing.T) {
	jobs := &mockJobs{jobs: []types.JobStatus{
		{ID: "a", Routine: "train", State: types.JobRunning},
		{ID: "b", Routine: "train", State: types.JobFailed, Error: "boom"},
	}}
	r := NewMux(&mockRegistry{}, jobs)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.JobsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Jobs) != 2 {
		t.Fatalf("jobs len=%d", len(body.Jobs))
	}
	if body.Jobs[1].Error != "boom" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestJobByID(t *testing.T) {
	jobs := &mockJobs{jobs: []types.JobStatus{{ID: "a", Routine: "train", State: types.JobCompleted}}}
	r := NewMux(&mockRegistry{}, jobs)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/a", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.JobStatus
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Routine != "train" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestJobByID_NotFound(t *testing.T) {
	r := NewMux(&mockRegistry{}, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Code != http.StatusNotFound {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCancelJob(t *testing.T) {
	jobs := &mockJobs{jobs: []types.JobStatus{{ID: "a", Routine: "train", State: types.JobRunning}}}
	r := NewMux(&mockRegistry{}, jobs)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs/a/cancel", nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d", w.Code)
	}
	if len(jobs.cancelled) != 1 || jobs.cancelled[0] != "a" {
		t.Fatalf("cancelled=%v", jobs.cancelled)
	}
}

func TestCancelJob_UnknownID(t *testing.T) {
	r := NewMux(&mockRegistry{}, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs/missing/cancel", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockRegistry{}, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewMux(&mockRegistry{}, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestNosniffHeader(t *testing.T) {
	r := NewMux(&mockRegistry{}, &mockJobs{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/routines", nil))
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("nosniff header=%q", got)
	}
}
