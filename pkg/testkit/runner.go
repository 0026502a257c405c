package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// HandlerFactory builds a fresh handler, and with it a fresh store, for one
// scenario.
type HandlerFactory func(t *testing.T) http.Handler

// Run executes the scenario in the JSON file at path as a subtest.
func Run(t *testing.T, newHandler HandlerFactory, path string) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		RunScenario(t, newHandler(t), s)
	})
}

// RunDir runs every *.json file in dir as a subtest, each against its own
// handler. Files that fail to parse are reported as test failures.
func RunDir(t *testing.T, newHandler HandlerFactory, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Error(err)
	}

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			RunScenario(t, newHandler(t), s)
		})
	}
}

// RunScenario fires every step of s against handler in order.
func RunScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	for i, st := range s.Plan() {
		label := fmt.Sprintf("%s#%d %s %s", s.Name, i, st.RequestMethod, st.RequestURL)

		body, err := requestBody(s, st)
		if err != nil {
			t.Fatalf("[%s] %v", label, err)
		}

		req := httptest.NewRequest(st.RequestMethod, st.RequestURL, body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		for k, v := range st.Headers {
			req.Header.Set(k, v)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if !AssertStatusCode(t, label, st.ExpectedCode, rec.Code) {
			t.Logf("[%s] body: %s", label, rec.Body.String())
		}

		switch {
		case st.EmptyBody:
			AssertEmptyBody(t, label, rec.Body.Bytes())
		case len(st.ResponseBody) > 0:
			AssertJSONBody(t, label, st.ResponseBody, rec.Body.Bytes(), st.Partial)
		case st.ResponseFileName != "":
			expected, err := os.ReadFile(s.resolve(st.ResponseFileName))
			if err != nil {
				t.Errorf("[%s] read response file: %v", label, err)
				continue
			}
			AssertJSONBody(t, label, expected, rec.Body.Bytes(), st.Partial)
		}
	}
}

func requestBody(s *Scenario, st Step) (io.Reader, error) {
	switch {
	case st.RawBody != nil:
		return bytes.NewReader([]byte(*st.RawBody)), nil
	case len(st.RequestBody) > 0:
		return bytes.NewReader(st.RequestBody), nil
	case st.RequestFileName != "":
		data, err := os.ReadFile(s.resolve(st.RequestFileName))
		if err != nil {
			return nil, fmt.Errorf("read request file: %w", err)
		}
		return bytes.NewReader(data), nil
	}
	return nil, nil
}
