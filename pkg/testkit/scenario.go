// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario is one request, or an ordered list of steps that share one
// handler so later steps observe earlier writes:
//
//	{
//	  "name": "create then show",
//	  "steps": [
//	    {"requestMethod": "POST", "requestUrl": "/users", "requestBody": {...}, "expectedCode": 201, "emptyBody": true},
//	    {"requestUrl": "/users/6", "expectedCode": 200, "responseBody": {"id": 6}, "partial": true}
//	  ]
//	}
//
// Scenario files live next to the *_test.go files that run them:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, newHandler, "testdata/scenarios")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Step is one request and the assertions on its response.
type Step struct {
	// Request
	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /users/1
	RequestFileName string            `json:"requestFileName"` // request body file, relative to the scenario dir
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline request body; wins over requestFileName
	RawBody         *string           `json:"rawBody"`         // sent verbatim, for malformed-JSON cases
	Headers         map[string]string `json:"headers"`

	// Response assertions
	ExpectedCode     int             `json:"expectedCode"`
	ResponseFileName string          `json:"responseFileName"` // expected body file
	ResponseBody     json.RawMessage `json:"responseBody"`     // inline expected body
	Partial          bool            `json:"partial"`          // only keys present in the expectation are compared
	EmptyBody        bool            `json:"emptyBody"`        // the response must have no body
}

// Scenario describes one test case loaded from a JSON file. The embedded
// Step is used when Steps is empty.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Step
	Steps []Step `json:"steps"`

	// resolved at load time
	dir string
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

// Plan returns the steps to execute, in order.
func (s *Scenario) Plan() []Step {
	if len(s.Steps) > 0 {
		return s.Steps
	}
	return []Step{s.Step}
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	plan := s.Plan()
	for i := range plan {
		st := &plan[i]
		if st.RequestURL == "" {
			return fmt.Errorf("step %d: requestUrl is required", i)
		}
		if st.ExpectedCode == 0 {
			return fmt.Errorf("step %d: expectedCode is required", i)
		}
		if st.RequestMethod == "" {
			st.RequestMethod = http.MethodGet
		}
		st.RequestMethod = strings.ToUpper(st.RequestMethod)
	}
	if len(s.Steps) == 0 {
		s.Step = plan[0]
	}
	return nil
}

// resolve makes name absolute relative to the scenario directory.
func (s *Scenario) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadAllFromDir loads every *.json file in dir as a Scenario. Files that
// fail to parse are collected as errors.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}
