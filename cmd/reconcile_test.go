package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves a fixed current map and goal map and records mutations.
type fakeAPI struct {
	mu      sync.Mutex
	current string
	goal    string
	calls   []string
}

func newFakeAPI(t *testing.T, current, goal string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{current: current, goal: goal}
	srv := httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/goal"):
		_, _ = io.WriteString(w, `{"goal":`+f.goal+`}`)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/map/"):
		_, _ = io.WriteString(w, `{"map":{"content":`+f.current+`}}`)
	default:
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(body, &payload)
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		if payload["candidateId"] != "cand-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = io.WriteString(w, `{}`)
	}
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--config-path", t.TempDir()))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

const (
	emptyMap   = `[[null,null],[null,null]]`
	sampleGoal = `[["SPACE","POLYANET"],["RED_SOLOON","UP_COMETH"]]`
)

func TestPlanCommand_JSON(t *testing.T) {
	api, srv := newFakeAPI(t, emptyMap, sampleGoal)

	out, err := runCLI(t, "plan", "cand-1", "--url", srv.URL, "-o", "json", "-q")
	require.NoError(t, err)

	var plan struct {
		Reconciled int `json:"reconciled"`
		Actions    []struct {
			Type string `json:"type"`
			Goal string `json:"goal"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 1, plan.Reconciled)
	require.Len(t, plan.Actions, 3)
	assert.Equal(t, "POLYANET", plan.Actions[0].Goal)
	assert.Equal(t, "RED_SOLOON", plan.Actions[1].Goal)
	assert.Equal(t, "UP_COMETH", plan.Actions[2].Goal)

	assert.Empty(t, api.Calls(), "plan must not mutate the map")
}

func TestReconcileCommand(t *testing.T) {
	api, srv := newFakeAPI(t, emptyMap, sampleGoal)

	out, err := runCLI(t, "reconcile", "cand-1", "--url", srv.URL, "-o", "json", "-q")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/polyanets",
		"POST /api/soloons",
		"POST /api/comeths",
	}, api.Calls())

	var report struct {
		Summary struct {
			RunID string `json:"runId"`
			Sets  int    `json:"sets"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.Summary.RunID)
	assert.Equal(t, 3, report.Summary.Sets)
}

func TestReconcileCommand_CandidateFromEnv(t *testing.T) {
	t.Setenv("MEGAVERSE_CANDIDATE_ID", "cand-1")
	api, srv := newFakeAPI(t, `[[null]]`, `[["POLYANET"]]`)

	_, err := runCLI(t, "reconcile", "--url", srv.URL, "-o", "json", "-q")
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /api/polyanets"}, api.Calls())
}

func TestReconcileCommand_InvalidGoalMakesNoCalls(t *testing.T) {
	api, srv := newFakeAPI(t, emptyMap, `[["SPACE","POLYANET"],["GREEN_SOLOON","UP_COMETH"]]`)

	_, err := runCLI(t, "reconcile", "cand-1", "--url", srv.URL, "-o", "json", "-q")
	require.Error(t, err)
	assert.Equal(t, ExitCodeValidation, getExitCode(err))
	assert.Empty(t, api.Calls())
}

func TestReconcileCommand_DimensionMismatch(t *testing.T) {
	api, srv := newFakeAPI(t, `[[null]]`, sampleGoal)

	_, err := runCLI(t, "reconcile", "cand-1", "--url", srv.URL, "-o", "json", "-q")
	require.Error(t, err)
	assert.Equal(t, ExitCodeValidation, getExitCode(err))
	assert.Empty(t, api.Calls())
}

func TestReconcileCommand_ConfigFile(t *testing.T) {
	api, srv := newFakeAPI(t, `[[null]]`, `[["POLYANET"]]`)

	dir := t.TempDir()
	cfg := "candidateId: cand-1\nbaseURL: " + srv.URL + "\nlogLevel: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(io.Discard)
	// --url is set explicitly empty so an earlier test's value is not reused.
	rootCmd.SetArgs([]string{"reconcile", "--url", "", "-o", "json", "-q", "--config-path", dir})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	t.Setenv("MEGAVERSE_CANDIDATE_ID", "")

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, []string{"POST /api/polyanets"}, api.Calls())
}

func TestPlanCommand_UnsupportedOutput(t *testing.T) {
	_, srv := newFakeAPI(t, emptyMap, sampleGoal)

	_, err := runCLI(t, "plan", "cand-1", "--url", srv.URL, "-o", "xml", "-q")
	require.Error(t, err)
	assert.Equal(t, ExitCodeError, getExitCode(err))
}
