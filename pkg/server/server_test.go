package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"srs-hq/rulediff/pkg/comparator"
	"srs-hq/rulediff/pkg/config"
	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/store"
	"srs-hq/rulediff/pkg/telemetry"
)

const (
	oldXML = `<rules><rule><name>R1</name></rule><rule><name>R2</name></rule></rules>`
	newXML = `<rules><rule><name>R2</name></rule><rule><name>R3</name></rule></rules>`
	creds  = `{"username":"srs","password":"secret","host":"db.example.com","port":1521,"serviceName":"ORCL"}`
)

func newTestServer(t *testing.T, rules lookup.Lookuper) *Server {
	t.Helper()
	return newTestServerWithConfig(t, config.NewDefaultConfig(), rules)
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config, rules lookup.Lookuper) *Server {
	t.Helper()

	tel, err := telemetry.NewWithWriter(&cfg.Telemetry, telemetry.BuildInfo{Version: "test"}, io.Discard)
	if err != nil {
		t.Fatalf("telemetry: %v", err)
	}

	enricher := enrich.New(rules, enrich.Options{Backend: "test", Metrics: tel.Metrics(), Logger: tel.Logger()})
	svc := comparator.New(enricher, comparator.Options{Metrics: tel.Metrics(), Logger: tel.Logger()})

	return New(&cfg.Server, &cfg.Telemetry.Metrics, Deps{
		Rules:      rules,
		Comparator: svc,
		Telemetry:  tel,
	})
}

func rulesFunc(f func(context.Context, lookup.Request) (lookup.Result, error)) lookup.Lookuper {
	return lookup.Func(f)
}

func notConfigured(context.Context, lookup.Request) (lookup.Result, error) {
	return lookup.StatusResult(lookup.StatusNotConfigured), nil
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRuleEndpoint(t *testing.T) {
	backend := rulesFunc(func(_ context.Context, req lookup.Request) (lookup.Result, error) {
		switch req.Name {
		case "DiskUsage":
			return lookup.FieldsResult([]lookup.Field{
				{Key: "RULE_NAME", Value: "DiskUsage"},
				{Key: "THRESHOLD", Value: int64(90)},
			}), nil
		case "Broken":
			return lookup.Result{}, errors.New("ORA-01017: invalid username/password")
		default:
			return lookup.StatusResult(lookup.StatusNotConfigured), nil
		}
	})
	h := newTestServer(t, backend).Handler()

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "found row",
			body:     `{"displayName":"DiskUsage","dbCreds":` + creds + `}`,
			wantCode: http.StatusOK,
			wantBody: `{"RULE_NAME":"DiskUsage","THRESHOLD":90}`,
		},
		{
			name:     "name preferred over displayName",
			body:     `{"name":"DiskUsage","displayName":"Disk usage","dbCreds":` + creds + `}`,
			wantCode: http.StatusOK,
			wantBody: `{"RULE_NAME":"DiskUsage","THRESHOLD":90}`,
		},
		{
			name:     "not configured",
			body:     `{"displayName":"Unknown","dbCreds":` + creds + `}`,
			wantCode: http.StatusOK,
			wantBody: `{"status":"Not Configured in DB"}`,
		},
		{
			name:     "db error",
			body:     `{"displayName":"Broken","dbCreds":` + creds + `}`,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"status":"DB error","error":"ORA-01017: invalid username/password"}`,
		},
		{
			name:     "missing name",
			body:     `{"dbCreds":` + creds + `}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"Invalid request: missing parameters"}`,
		},
		{
			name:     "missing credentials",
			body:     `{"displayName":"DiskUsage"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"Invalid request: missing parameters"}`,
		},
		{
			name:     "missing password",
			body:     `{"displayName":"DiskUsage","dbCreds":{"username":"srs","host":"h","port":"1521","serviceName":"S"}}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"Invalid request: missing parameters"}`,
		},
		{
			name:     "malformed body",
			body:     `{"displayName":`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"Invalid request: missing parameters"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(h, RouteRule, tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestRuleEndpoint_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, rulesFunc(notConfigured)).Handler()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, RouteRule, nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("code = %d, want 405", w.Code)
	}
}

func TestCompareEndpoint_JSON(t *testing.T) {
	h := newTestServer(t, rulesFunc(notConfigured)).Handler()

	body, _ := json.Marshal(map[string]any{
		"oldXml":  oldXML,
		"newXml":  newXML,
		"dbCreds": json.RawMessage(creds),
	})
	w := postJSON(h, RouteCompare, string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}

	var rep struct {
		ID      string `json:"id"`
		Dropped []struct {
			Name     string         `json:"name"`
			External map[string]any `json:"external"`
		} `json:"dropped"`
		Added    []struct{ Name string } `json:"added"`
		Retained []struct{ Name string } `json:"retained"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.ID == "" {
		t.Error("report ID missing")
	}
	if len(rep.Dropped) != 1 || rep.Dropped[0].Name != "R1" {
		t.Fatalf("dropped = %+v", rep.Dropped)
	}
	if rep.Dropped[0].External["status"] != lookup.StatusNotConfigured {
		t.Errorf("dropped external = %v", rep.Dropped[0].External)
	}
	if len(rep.Added) != 1 || rep.Added[0].Name != "R3" {
		t.Errorf("added = %+v", rep.Added)
	}
	if len(rep.Retained) != 1 || rep.Retained[0].Name != "R2" {
		t.Errorf("retained = %+v", rep.Retained)
	}
}

func TestCompareEndpoint_CSV(t *testing.T) {
	h := newTestServer(t, rulesFunc(notConfigured)).Handler()
	body, _ := json.Marshal(map[string]any{"oldXml": oldXML, "newXml": newXML, "skipEnrichment": true})

	w := postJSON(h, RouteCompare+"?format=csv&partition=new", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "new_rules.csv") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if want := "Rule Name,Description\n\"R3\",\"\"\n"; w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}

	w = postJSON(h, RouteCompare+"?format=csv&partition=everything", string(body))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown partition code = %d, want 400", w.Code)
	}
}

func TestCompareEndpoint_Preconditions(t *testing.T) {
	called := false
	h := newTestServer(t, rulesFunc(func(context.Context, lookup.Request) (lookup.Result, error) {
		called = true
		return lookup.Result{}, nil
	})).Handler()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing old", map[string]any{"newXml": newXML, "dbCreds": json.RawMessage(creds)}},
		{"missing credentials", map[string]any{"oldXml": oldXML, "newXml": newXML}},
		{"unreadable", map[string]any{"oldXml": "<rules></x>", "newXml": newXML, "skipEnrichment": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			w := postJSON(h, RouteCompare, string(body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("code = %d, want 400 (%s)", w.Code, w.Body.String())
			}
		})
	}
	if called {
		t.Error("no lookup may run when a precondition fails")
	}
}

func TestCompareEndpoint_BodyLimit(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Server.MaxBodyBytes = 64
	h := newTestServerWithConfig(t, cfg, rulesFunc(notConfigured)).Handler()

	body, _ := json.Marshal(map[string]any{"oldXml": oldXML, "newXml": newXML, "skipEnrichment": true})
	w := postJSON(h, RouteCompare, string(body))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("code = %d, want 413", w.Code)
	}
}

func TestCompareEndpoint_Multipart(t *testing.T) {
	h := newTestServer(t, rulesFunc(notConfigured)).Handler()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, content := range map[string]string{"old": oldXML, "new": newXML} {
		fw, err := mw.CreateFormFile(field, field+".xml")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write([]byte(content))
	}
	_ = mw.WriteField("skipEnrichment", "true")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, RouteCompare, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}
	var rep struct {
		Sources struct{ Old, New string } `json:"sources"`
		Summary struct{ Dropped, Added int } `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Sources.Old != "old.xml" || rep.Summary.Dropped != 1 || rep.Summary.Added != 1 {
		t.Errorf("report = %+v", rep)
	}
}

func TestCompareEndpoint_WithStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, stmt := range []string{
		`CREATE TABLE SRS_RULES (RULE_NAME TEXT, SEVERITY INTEGER)`,
		`INSERT INTO SRS_RULES VALUES ('R2', 3)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	cfg := store.DefaultConfig()
	cfg.Driver = store.DriverSQLite
	cfg.Path = path
	st, err := store.New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	h := newTestServer(t, st).Handler()
	body, _ := json.Marshal(map[string]any{"oldXml": oldXML, "newXml": newXML, "dbCreds": json.RawMessage(creds)})

	w := postJSON(h, RouteCompare+"?format=csv&partition=matched", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}
	want := "Rule Name,Description,DB Data\n\"R2\",\"\",\"RULE_NAME: R2 SEVERITY: 3\"\n"
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, rulesFunc(notConfigured))
	h := s.Handler()

	for _, path := range []string{"/health", "/ready", "/version", "/metrics"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "rulediff_http_requests_total") {
		t.Error("metrics output should include request counters")
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := newTestServer(t, rulesFunc(notConfigured))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	deadline := time.Now().Add(2 * time.Second)
	for !s.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Serve() error: %v", err)
	}
	if s.IsRunning() {
		t.Error("server still running after shutdown")
	}
}
