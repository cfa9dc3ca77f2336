package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/infra/taskwarrior"
	"github.com/runoshun/twgate/internal/testutil"
	"github.com/runoshun/twgate/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, store domain.TaskStore) *Server {
	t.Helper()
	return NewServer(usecase.NewListTasks(store, 0), nil)
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Message
}

// seededStore returns a gateway over a fake taskwarrior holding n pending tasks.
func seededStore(t *testing.T, n int) (*taskwarrior.Store, []*domain.Task) {
	t.Helper()
	store := taskwarrior.New(testutil.NewFakeTaskwarrior(nil))
	created := make([]*domain.Task, 0, n)
	for i := range n {
		p := domain.NewProperties()
		p.Set(domain.FieldDescription, fmt.Sprintf("task %d", i))
		task, err := store.Create(t.Context(), domain.NewTask(p))
		require.NoError(t, err)
		created = append(created, task)
	}
	return store, created
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, testutil.NewMockTaskStore())

	w := do(t, s, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleTasks_DefaultFilterIsActive(t *testing.T) {
	store, _ := seededStore(t, 2)
	s := newTestServer(t, store)

	w := do(t, s, http.MethodGet, "/api/v1/tasks")

	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeList(t, w)
	require.Len(t, tasks, 2)
	assert.Equal(t, "task 0", tasks[0]["description"])
	assert.Equal(t, "pending", tasks[0]["status"])
	assert.Equal(t, "20240102T030405Z", tasks[0]["entry"])
	assert.NotEmpty(t, tasks[0]["uuid"])
}

func TestHandleTasks_AllMethodsRead(t *testing.T) {
	store, _ := seededStore(t, 1)
	s := newTestServer(t, store)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			w := do(t, s, method, "/api/v1/tasks?filter=all")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decodeList(t, w), 1)
		})
	}
	// Reads must not have changed anything.
	w := do(t, s, http.MethodGet, "/api/v1/tasks")
	assert.Len(t, decodeList(t, w), 1)
}

func TestHandleTasks_UnsupportedMethod(t *testing.T) {
	s := newTestServer(t, testutil.NewMockTaskStore())

	w := do(t, s, http.MethodPatch, "/api/v1/tasks")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Can't handle request: PATCH", decodeMessage(t, w))
}

func TestHandleTasks_Some(t *testing.T) {
	store, created := seededStore(t, 3)
	s := newTestServer(t, store)

	target := fmt.Sprintf("/api/v1/tasks?filter=some&uuids=%s,%%20%s", created[0].UUID, created[2].UUID)
	w := do(t, s, http.MethodGet, target)

	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeList(t, w)
	require.Len(t, tasks, 2)
	assert.Equal(t, created[0].UUID, tasks[0]["uuid"])
	assert.Equal(t, created[2].UUID, tasks[1]["uuid"])
}

func TestHandleTasks_Latest(t *testing.T) {
	store, created := seededStore(t, 2)
	s := newTestServer(t, store)

	w := do(t, s, http.MethodGet, "/api/v1/tasks?filter=latest")

	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeList(t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, created[1].UUID, tasks[0]["uuid"])
}

func TestHandleTasks_Paging(t *testing.T) {
	store, _ := seededStore(t, 12)
	s := newTestServer(t, store)

	w := do(t, s, http.MethodGet, "/api/v1/tasks?page=0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 10)

	w = do(t, s, http.MethodGet, "/api/v1/tasks?page=1")
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeList(t, w)
	require.Len(t, page, 2)
	assert.Equal(t, "task 10", page[0]["description"])

	w = do(t, s, http.MethodGet, "/api/v1/tasks")
	assert.Len(t, decodeList(t, w), 12)
}

func TestHandleTasks_PageFarPastEnd(t *testing.T) {
	store, _ := seededStore(t, 11)
	s := newTestServer(t, store)

	w := do(t, s, http.MethodGet, "/api/v1/tasks?page=922337203685477581")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func TestHandleTasks_ClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"unknown filter", "/api/v1/tasks?filter=overdue", "unknown filter: overdue"},
		{"some without uuids", "/api/v1/tasks?filter=some", "No tasks could be read"},
		{"some with bad uuid", "/api/v1/tasks?filter=some&uuids=1,2", "invalid uuid: 1"},
		{"page not a number", "/api/v1/tasks?page=x", "page must be an unsigned integer, got: x"},
		{"negative page", "/api/v1/tasks?page=-1", "page=0 for the first page"},
		{"empty page", "/api/v1/tasks?page=", "page must be an unsigned integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := testutil.NewMockRunner()
			s := newTestServer(t, taskwarrior.New(runner))

			w := do(t, s, http.MethodGet, tt.target)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeMessage(t, w), tt.message)
			assert.Empty(t, runner.Calls)
		})
	}
}

func TestHandleTasks_GatewayErrors(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		exit   int
		expect string
	}{
		{"execution failure", "", 2, "failed with exit code 2"},
		{"malformed export", "not json", 0, "decode export"},
		{"bad timestamp", `[{"uuid":"a","entry":"yesterday"}]`, 0, `"entry"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &testutil.MockRunner{Results: []*domain.ExecResult{{Stdout: tt.stdout, ExitCode: tt.exit, Stderr: "boom"}}}
			s := newTestServer(t, taskwarrior.New(runner))

			w := do(t, s, http.MethodGet, "/api/v1/tasks")

			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Contains(t, decodeMessage(t, w), tt.expect)
		})
	}
}

func TestHandleTasks_LatestProtocolError(t *testing.T) {
	s := newTestServer(t, taskwarrior.New(testutil.NewMockRunner()))

	w := do(t, s, http.MethodGet, "/api/v1/tasks?filter=latest")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.True(t, strings.Contains(decodeMessage(t, w), "expected exactly 1 task, got 0"))
}
