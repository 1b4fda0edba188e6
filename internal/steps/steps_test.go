package steps

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shaiso/ritm-launch/internal/config"
	"github.com/shaiso/ritm-launch/internal/domain"
	"github.com/shaiso/ritm-launch/internal/telemetry"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVars() domain.OrchestrationVariables {
	return domain.DeriveVariables(domain.CatalogVariables{domain.VarProjectName: "foo"}, domain.ChangeRequestRecord{
		Request: domain.RequestRef{Number: "REQ0010051", RequestedFor: domain.UserRef{UserName: "admin"}},
	})
}

// --- Probe Tests ---

func TestProbe_OK(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	p := NewProbe(config.ProbeConfig{URL: server.URL}, discardLogger())
	if err := p.Check(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userAgent != config.DefaultProbeUserAgent {
		t.Errorf("expected default user agent, got %q", userAgent)
	}
}

func TestProbe_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewProbe(config.ProbeConfig{URL: server.URL}, discardLogger())
	err := p.Check(context.Background())
	if !errors.Is(err, ErrProbeStatus) {
		t.Fatalf("expected ErrProbeStatus, got %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestProbe_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	p := NewProbe(config.ProbeConfig{URL: url}, discardLogger())
	if err := p.Check(context.Background()); !errors.Is(err, ErrProbeTransport) {
		t.Fatalf("expected ErrProbeTransport, got %v", err)
	}
}

func TestProbe_AlwaysVerifiesTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	p := NewProbe(config.ProbeConfig{URL: server.URL}, discardLogger())
	if err := p.Check(context.Background()); !errors.Is(err, ErrProbeTransport) {
		t.Fatalf("expected ErrProbeTransport for self-signed cert, got %v", err)
	}
}

func TestProbe_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	p := NewProbe(config.ProbeConfig{URL: server.URL, Timeout: 50 * time.Millisecond}, discardLogger())

	start := time.Now()
	err := p.Check(context.Background())
	if !errors.Is(err, ErrProbeTransport) {
		t.Fatalf("expected ErrProbeTransport, got %v", err)
	}
	if time.Since(start) > 250*time.Millisecond {
		t.Errorf("timeout took too long: %v", time.Since(start))
	}
}

func TestProbe_MissingURL(t *testing.T) {
	p := NewProbe(config.ProbeConfig{}, discardLogger())
	if err := p.Check(context.Background()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

// --- Launcher Tests ---

func newController(t *testing.T, status int, body string) (*httptest.Server, *capturedLaunch) {
	t.Helper()
	captured := &capturedLaunch{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.calls++
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&captured.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

type capturedLaunch struct {
	calls       int
	method      string
	path        string
	auth        string
	contentType string
	body        map[string]map[string]string
}

func controllerConfig(url string) config.ControllerConfig {
	return config.ControllerConfig{BaseURL: url + "/", Token: "secret123", JobTemplateID: "9"}
}

func TestLauncher_Succeeded(t *testing.T) {
	server, captured := newController(t, http.StatusCreated, `{"job": 42, "status": "pending"}`)

	l := NewLauncher(controllerConfig(server.URL), discardLogger())
	res := l.Launch(context.Background(), testVars())

	if res.Kind != LaunchSucceeded {
		t.Fatalf("expected succeeded, got %s (%v)", res.Kind, res.Err)
	}
	if res.JobID != "42" {
		t.Errorf("expected job 42, got %s", res.JobID)
	}

	if captured.method != http.MethodPost {
		t.Errorf("expected POST, got %s", captured.method)
	}
	if captured.path != "/api/v2/job_templates/9/launch/" {
		t.Errorf("unexpected path: %s", captured.path)
	}
	if captured.auth != "Bearer secret123" {
		t.Errorf("unexpected auth header: %s", captured.auth)
	}
	if captured.contentType != "application/json" {
		t.Errorf("unexpected content type: %s", captured.contentType)
	}

	extra, ok := captured.body["extra_vars"]
	if !ok {
		t.Fatal("payload should contain extra_vars")
	}
	if extra["project_name"] != "foo" || extra["display_name"] != "foo" {
		t.Errorf("unexpected extra_vars: %v", extra)
	}
	if extra["servicenow_request_number"] != "REQ0010051" || extra["requestor"] != "admin" {
		t.Errorf("record fields missing from extra_vars: %v", extra)
	}
}

func TestLauncher_StringJobID(t *testing.T) {
	server, _ := newController(t, http.StatusCreated, `{"job": "abc-1"}`)

	res := NewLauncher(controllerConfig(server.URL), discardLogger()).Launch(context.Background(), testVars())
	if res.Kind != LaunchSucceeded || res.JobID != "abc-1" {
		t.Fatalf("expected succeeded abc-1, got %s %s", res.Kind, res.JobID)
	}
}

func TestLauncher_Rejected(t *testing.T) {
	server, _ := newController(t, http.StatusBadRequest, `{"detail": "bad vars"}`)

	res := NewLauncher(controllerConfig(server.URL), discardLogger()).Launch(context.Background(), testVars())
	if res.Kind != LaunchRejected {
		t.Fatalf("expected rejected, got %s", res.Kind)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", res.StatusCode)
	}
	if res.Body != `{"detail": "bad vars"}` {
		t.Errorf("unexpected body: %s", res.Body)
	}
}

func TestLauncher_OversizedBodyIsMarked(t *testing.T) {
	prev := maxResponseBody
	maxResponseBody = 16
	t.Cleanup(func() { maxResponseBody = prev })

	server, _ := newController(t, http.StatusBadRequest, strings.Repeat("x", 40))

	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	res := NewLauncher(controllerConfig(server.URL), logger).Launch(context.Background(), testVars())
	if res.Kind != LaunchRejected {
		t.Fatalf("expected rejected, got %s", res.Kind)
	}

	want := strings.Repeat("x", 16) + "...[truncated: response exceeded 16 bytes]"
	if res.Body != want {
		t.Errorf("body = %q, want %q", res.Body, want)
	}
	if !strings.Contains(buf.String(), "response body truncated") {
		t.Errorf("expected truncation warning, got %q", buf.String())
	}
}

func TestLauncher_BodyAtLimitIsNotMarked(t *testing.T) {
	prev := maxResponseBody
	maxResponseBody = 16
	t.Cleanup(func() { maxResponseBody = prev })

	server, _ := newController(t, http.StatusBadRequest, strings.Repeat("x", 16))

	res := NewLauncher(controllerConfig(server.URL), discardLogger()).Launch(context.Background(), testVars())
	if res.Body != strings.Repeat("x", 16) {
		t.Errorf("unexpected body: %q", res.Body)
	}
}

func TestLauncher_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"no job field", `{"id": 1}`},
		{"job is object", `{"job": {"id": 1}}`},
		{"empty", ``},
		{"trailing data", `{"job": 1} {"job": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newController(t, http.StatusCreated, tt.body)

			res := NewLauncher(controllerConfig(server.URL), discardLogger()).Launch(context.Background(), testVars())
			if res.Kind != LaunchMalformed {
				t.Fatalf("expected malformed, got %s", res.Kind)
			}
			if res.Err == nil {
				t.Error("malformed result should carry parse error")
			}
		})
	}
}

func TestLauncher_TransportFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	res := NewLauncher(controllerConfig(url), discardLogger()).Launch(context.Background(), testVars())
	if res.Kind != LaunchTransportFailed {
		t.Fatalf("expected transport_failed, got %s", res.Kind)
	}
	if res.Err == nil {
		t.Error("transport failure should carry error")
	}
}

func TestLauncher_SelfSignedCertificate(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"job": 7}`))
	}))
	defer server.Close()

	cfg := controllerConfig(server.URL)

	res := NewLauncher(cfg, discardLogger()).Launch(context.Background(), testVars())
	if res.Kind != LaunchTransportFailed {
		t.Fatalf("expected verification failure by default, got %s", res.Kind)
	}

	cfg.InsecureSkipVerify = true
	res = NewLauncher(cfg, discardLogger()).Launch(context.Background(), testVars())
	if res.Kind != LaunchSucceeded || res.JobID != "7" {
		t.Fatalf("expected succeeded with opt-in, got %s (%v)", res.Kind, res.Err)
	}
}

func TestLauncher_InsecureLogsWarning(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	NewLauncher(config.ControllerConfig{BaseURL: "https://aap.internal", InsecureSkipVerify: true}, logger)

	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected WARN log, got %q", buf.String())
	}
}

func TestLauncher_JobURL(t *testing.T) {
	l := NewLauncher(config.ControllerConfig{BaseURL: "https://aap.example.com/"}, discardLogger())
	if got := l.JobURL("42"); got != "https://aap.example.com/#/jobs/playbook/42" {
		t.Errorf("unexpected job url: %s", got)
	}
}

func TestParseJobID(t *testing.T) {
	tests := []struct {
		body    string
		want    string
		wantErr bool
	}{
		{`{"job": 42}`, "42", false},
		{`{"job": "42"}`, "42", false},
		{`{"job": 4.2e1}`, "42", false},
		{`{"job": 42.0}`, "42", false},
		{`{"job": -7}`, "-7", false},
		{`{"job": 12345678901234567890}`, "12345678901234567890", false},
		{`{"job": 4.5}`, "", true},
		{`{"job": ""}`, "", true},
		{`[]`, "", true},
		{`null`, "", true},
	}

	for _, tt := range tests {
		got, err := parseJobID([]byte(tt.body))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseJobID(%s) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseJobID(%s) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf strings.Builder
	ctxLogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).With("run_id", "r1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx := telemetry.WithLogger(context.Background(), ctxLogger)
	if err := NewProbe(config.ProbeConfig{URL: server.URL}, discardLogger()).Check(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "run_id=r1") {
		t.Errorf("expected context logger to be used, got %q", buf.String())
	}
}
