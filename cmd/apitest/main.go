// Command apitest runs a smoke test against a running Arvelie API server.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
//
// Without -key the entry write checks are skipped.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zapponejosh/arvelie/internal/api"
	"github.com/zapponejosh/arvelie/internal/database"
	"github.com/zapponejosh/arvelie/internal/view"
)

// APIResponse is api.Response with the data left raw.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *api.ErrorInfo  `json:"error,omitempty"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Arvelie API Test Suite")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testToday()
	tr.testConvert()
	tr.testEdgeCases()
	tr.testSeason()
	if tr.apiKey != "" {
		tr.testEntries()
	}

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health map[string]string
	if _, err := tr.do("GET", "/health", nil, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}
	if health["status"] != "healthy" {
		tr.recordError("Health", fmt.Sprintf("status = %q", health["status"]))
		return
	}
	tr.recordSuccess("server is healthy")
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var today view.Today
	if _, err := tr.do("GET", "/api/v1/today", nil, &today); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("%s = %s (%s %s)",
		today.Date.ISO, today.Date.Arvelie, today.Season.Season, today.Season.Period))
}

// knownDates pairs ISO dates with their Arvelie form at offset 2000.
var knownDates = []struct{ iso, arvelie string }{
	{"2025-01-01", "25A00"},
	{"2025-06-21", "25M03"},
	{"2025-12-30", "25Z13"},
	{"2025-12-31", "25+00"},
	{"2024-12-31", "24+01"},
	{"2000-02-29", "00E03"},
}

func (tr *TestRunner) testConvert() {
	tr.printSection("Conversions")

	for _, kd := range knownDates {
		for _, in := range []struct{ from, want string }{
			{kd.iso, kd.arvelie},
			{kd.arvelie, kd.iso},
		} {
			var d view.Date
			if _, err := tr.do("GET", "/api/v1/convert/"+in.from+"?offset=2000", nil, &d); err != nil {
				tr.recordError("Convert "+in.from, err.Error())
				continue
			}
			if d.ISO != kd.iso || d.Arvelie != kd.arvelie {
				tr.recordError("Convert "+in.from, fmt.Sprintf("got %s/%s, want %s/%s", d.ISO, d.Arvelie, kd.iso, kd.arvelie))
				continue
			}
			tr.recordSuccess(fmt.Sprintf("%s -> %s", in.from, in.want))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	for _, bad := range []string{"not-a-date", "99Z99", "2025-6-21", "25+01", "2025-02-29"} {
		status, err := tr.do("GET", "/api/v1/convert/"+bad+"?offset=2000", nil, nil)
		if status != http.StatusBadRequest {
			tr.recordError("Reject "+bad, fmt.Sprintf("status %d (%v), want 400", status, err))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s rejected", bad))
	}
}

func (tr *TestRunner) testSeason() {
	tr.printSection("Seasons")

	cases := []struct {
		query string
		want  string
	}{
		{"date=2025-06-21&hour=20&traditional=true", "summer evening"},
		{"date=2025-07-04&hour=20&traditional=true", "autumn night"},
		{"date=2025-01-15&hour=12&traditional=false", "spring day"},
	}

	for _, c := range cases {
		var s view.Season
		if _, err := tr.do("GET", "/api/v1/season?"+c.query, nil, &s); err != nil {
			tr.recordError("Season "+c.query, err.Error())
			continue
		}
		if got := s.Season + " " + s.Period; got != c.want {
			tr.recordError("Season "+c.query, fmt.Sprintf("got %q, want %q", got, c.want))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s -> %s", c.query, c.want))
	}
}

func (tr *TestRunner) testEntries() {
	tr.printSection("Entries")

	note := "apitest " + uuid.NewString()
	var created database.Entry
	status, err := tr.do("POST", "/api/v1/entries", map[string]string{
		"date": "2024-12-31",
		"note": note,
	}, &created)
	if err != nil || status != http.StatusCreated {
		tr.recordError("Create entry", fmt.Sprintf("status %d: %v", status, err))
		return
	}
	tr.recordSuccess(fmt.Sprintf("created entry %d on %s", created.ID, created.Arvelie))

	path := "/api/v1/entries/" + strconv.FormatInt(created.ID, 10)

	var got database.Entry
	if _, err := tr.do("GET", path, nil, &got); err != nil || got.Note != note {
		tr.recordError("Get entry", fmt.Sprintf("note %q: %v", got.Note, err))
	} else {
		tr.recordSuccess("read entry back")
	}

	if _, err := tr.do("DELETE", path, nil, nil); err != nil {
		tr.recordError("Delete entry", err.Error())
		return
	}
	if status, _ := tr.do("GET", path, nil, nil); status != http.StatusNotFound {
		tr.recordError("Delete entry", fmt.Sprintf("GET after delete status %d, want 404", status))
		return
	}
	tr.recordSuccess("deleted entry")
}

// =============================================================================
// Helper Methods
// =============================================================================

// do sends a request, decodes the envelope into target when the call
// succeeded, and returns the HTTP status.
func (tr *TestRunner) do(method, path string, body, target any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.RequestIDHeader, uuid.NewString())
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return resp.StatusCode, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return resp.StatusCode, fmt.Errorf("API error: %s", errMsg)
	}

	if target != nil {
		if err := json.Unmarshal(apiResp.Data, target); err != nil {
			return resp.StatusCode, fmt.Errorf("decode data: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	if tr.verbose {
		fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
	}
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Summary")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)
	fmt.Fprintln(tr.out)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "Failures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
		fmt.Fprintln(tr.out)
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}

	fmt.Fprintln(tr.out, "All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for entry write checks")
	verbose := flag.Bool("v", false, "Verbose output (show passing checks)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, os.Stdout, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
