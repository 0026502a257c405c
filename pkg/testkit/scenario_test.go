package testkit_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/offerdesk/pkg/testkit"
)

// counter is a tiny stateful handler: POST /count increments, GET reads.
func counter(*testing.T) http.Handler {
	var (
		mu sync.Mutex
		n  int
	)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.URL.Path != "/count":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost:
			n++
			w.WriteHeader(http.StatusCreated)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count":` + strconv.Itoa(n) + `,"unit":"hits"}`)) //nolint:errcheck
		}
	})
}

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadScenarioDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeScenario(t, dir, "one.json", `{"name":"one","requestUrl":"/count","expectedCode":200}`)

	s, err := testkit.LoadScenario(p)
	require.NoError(t, err)
	plan := s.Plan()
	require.Len(t, plan, 1)
	assert.Equal(t, http.MethodGet, plan[0].RequestMethod)
}

func TestLoadScenarioRejectsMissingFields(t *testing.T) {
	dir := t.TempDir()

	_, err := testkit.LoadScenario(writeScenario(t, dir, "a.json", `{"requestUrl":"/x","expectedCode":200}`))
	assert.ErrorContains(t, err, "name is required")

	_, err = testkit.LoadScenario(writeScenario(t, dir, "b.json", `{"name":"b","steps":[{"requestUrl":"/x"}]}`))
	assert.ErrorContains(t, err, "expectedCode is required")
}

func TestStepsShareHandler(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "count.json", `{
		"name": "post twice then read",
		"steps": [
			{"requestMethod": "post", "requestUrl": "/count", "expectedCode": 201, "emptyBody": true},
			{"requestMethod": "POST", "requestUrl": "/count", "expectedCode": 201},
			{"requestUrl": "/count", "expectedCode": 200, "responseBody": {"count": 2}, "partial": true},
			{"requestUrl": "/count", "expectedCode": 200, "responseBody": {"count": 2, "unit": "hits"}}
		]
	}`)

	testkit.RunDir(t, counter, dir)
}

func TestResponseFile(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "expected.txt", `{"unit":"hits","count":0}`)
	p := writeScenario(t, dir, "read.json",
		`{"name":"read","requestUrl":"/count","expectedCode":200,"responseFileName":"expected.txt"}`)

	testkit.Run(t, counter, p)
}

func TestDiffJSON(t *testing.T) {
	exp := map[string]interface{}{"id": 1.0, "tags": []interface{}{"a"}}
	act := map[string]interface{}{"id": 2.0, "extra": true, "tags": []interface{}{"a", "b"}}

	diffs := testkit.DiffJSON("", exp, act)
	assert.Len(t, diffs, 2)
	assert.Empty(t, testkit.DiffJSON("", map[string]interface{}{"id": 1.0}, map[string]interface{}{"id": 1.0, "x": 1.0}))
}
