package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/erx/erx/internal/config"
	"github.com/erx/erx/internal/domain/analysis"
	"github.com/erx/erx/internal/domain/diagnosis"
	"github.com/erx/erx/internal/platform/auth"
	"github.com/erx/erx/internal/platform/db"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func testConfig() *config.Config {
	return &config.Config{
		Port:                   "0",
		Env:                    "development",
		SeedDemoData:           true,
		AuthIssuer:             "erx",
		CORSOrigins:            []string{"http://localhost:3000"},
		RateLimitRPS:           1000,
		RateLimitBurst:         1000,
		RequestTimeout:         5 * time.Second,
		BodyLimit:              "1M",
		MatchKeywordWeight:     10,
		MatchDescriptionWeight: 20,
		MatchCodeWeight:        50,
		MatchLimit:             5,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()
	a, err := newApp(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(a.close)
	return a.routes()
}

func request(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t, testConfig())
	rec := request(e, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
	if rec := request(e, http.MethodGet, "/health/db", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("/health/db without a database: expected 404, got %d", rec.Code)
	}
}

func TestServer_Match(t *testing.T) {
	e := newTestServer(t, testConfig())
	rec := request(e, http.MethodPost, "/api/v1/diagnoses/match",
		`{"text":"Patient has diabetes and high blood pressure"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp diagnosis.MatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	codes := map[string]bool{}
	for _, m := range resp.Matches {
		codes[m.Entry.Code] = true
	}
	if !codes["E11.9"] || !codes["I10"] {
		t.Errorf("expected E11.9 and I10, got %v", codes)
	}
}

func TestServer_AnalysisRoles(t *testing.T) {
	e := newTestServer(t, testConfig())
	body := `{"notes":[{"type":"text","content":"Persistent cough with fever","timestamp":"2026-02-14T10:00:00Z"}]}`

	rec := request(e, http.MethodPost, "/api/v1/analysis", body, map[string]string{auth.DevRoleHeader: auth.RolePharmacist})
	if rec.Code != http.StatusForbidden {
		t.Errorf("pharmacist: expected 403, got %d", rec.Code)
	}

	rec = request(e, http.MethodPost, "/api/v1/analysis", body, map[string]string{auth.DevRoleHeader: auth.RoleDoctor})
	if rec.Code != http.StatusOK {
		t.Fatalf("doctor: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res analysis.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ChiefComplaint != "Respiratory symptoms" {
		t.Errorf("chief complaint = %q", res.ChiefComplaint)
	}
}

func TestServer_SeededPrescriptions(t *testing.T) {
	e := newTestServer(t, testConfig())
	rec := request(e, http.MethodGet, "/api/v1/reports/prescriptions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sum struct {
		Total          int `json:"total"`
		PendingRefills int `json:"pending_refills"`
	}
	json.Unmarshal(rec.Body.Bytes(), &sum)
	if sum.Total != 10 || sum.PendingRefills != 5 {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestServer_PatientRecords(t *testing.T) {
	e := newTestServer(t, testConfig())
	doctor := map[string]string{auth.DevRoleHeader: auth.RoleDoctor}

	rec := request(e, http.MethodGet, "/api/v1/patients/P005", "", doctor)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var p struct {
		Name      string   `json:"name"`
		Allergies []string `json:"allergies"`
	}
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Name != "Anil Joshi" {
		t.Errorf("name = %q", p.Name)
	}

	rec = request(e, http.MethodGet, "/api/v1/pharmacies?q=walgreens", "", doctor)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Walgreens #5678") {
		t.Errorf("pharmacy search: %d %s", rec.Code, rec.Body.String())
	}
}

func TestServer_AnalysisWithPatientID(t *testing.T) {
	e := newTestServer(t, testConfig())
	doctor := map[string]string{auth.DevRoleHeader: auth.RoleDoctor}

	rec := request(e, http.MethodPost, "/api/v1/analysis/quick", `{"patient_id":"P005","chief_complaint":"chronic low back pain"}`, doctor)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Elderly patient") {
		t.Errorf("expected the stored age to add the elderly warning: %s", rec.Body.String())
	}

	rec = request(e, http.MethodPost, "/api/v1/analysis/quick", `{"patient_id":"P404","chief_complaint":"cough"}`, doctor)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown patient: expected 404, got %d", rec.Code)
	}
}

func TestServer_PrescriptionUsesDirectories(t *testing.T) {
	e := newTestServer(t, testConfig())
	doctor := map[string]string{auth.DevRoleHeader: auth.RoleDoctor}
	body := `{"patient_id":"P003","medication":"Lisinopril 10mg","strength":"10mg","quantity":30,"refills":1,"sig":"Take 1 tablet daily","pharmacy":"Walgreens"}`

	rec := request(e, http.MethodPost, "/api/v1/prescriptions", body, doctor)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var p struct {
		PatientName string `json:"patient_name"`
		Pharmacy    string `json:"pharmacy"`
	}
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Pharmacy != "Walgreens #5678" || p.PatientName == "" {
		t.Errorf("got %+v", p)
	}

	body = strings.Replace(body, "Walgreens", "Corner Drugstore", 1)
	if rec := request(e, http.MethodPost, "/api/v1/prescriptions", body, doctor); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown pharmacy: expected 400, got %d", rec.Code)
	}
}

func TestServer_NoSeed(t *testing.T) {
	cfg := testConfig()
	cfg.SeedDemoData = false
	e := newTestServer(t, cfg)
	rec := request(e, http.MethodGet, "/api/v1/prescriptions", "", nil)
	var page struct {
		Total int `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &page)
	if rec.Code != http.StatusOK || page.Total != 0 {
		t.Errorf("expected empty list, got %d with %d items", rec.Code, page.Total)
	}
}

func TestServer_JWTOutsideDevelopment(t *testing.T) {
	cfg := testConfig()
	cfg.Env = "production"
	cfg.AuthSigningKey = testSigningKey
	e := newTestServer(t, cfg)

	if rec := request(e, http.MethodGet, "/api/v1/drugs", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", rec.Code)
	}
	if rec := request(e, http.MethodGet, "/api/v1/drugs", "", map[string]string{auth.DevRoleHeader: auth.RoleAdmin}); rec.Code != http.StatusUnauthorized {
		t.Errorf("dev header must not authenticate: got %d", rec.Code)
	}

	tok, err := auth.IssueToken(jwtConfig(cfg), "ph-1", "Pat Pharmacist", []string{auth.RolePharmacist}, time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	bearer := map[string]string{"Authorization": "Bearer " + tok}
	if rec := request(e, http.MethodGet, "/api/v1/drugs?q=statin", "", bearer); rec.Code != http.StatusOK {
		t.Errorf("pharmacist drugs: expected 200, got %d", rec.Code)
	}
	if rec := request(e, http.MethodPost, "/api/v1/analysis/quick", `{"chief_complaint":"back pain"}`, bearer); rec.Code != http.StatusForbidden {
		t.Errorf("pharmacist analysis: expected 403, got %d", rec.Code)
	}
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewProducers_OwnDelay(t *testing.T) {
	cfg := testConfig()
	cfg.AnalysisDelay = 2 * time.Second
	transcriber, images := newProducers(cfg)
	if transcriber.Delay != 0 || images.Delay != 0 {
		t.Errorf("producers should not inherit ANALYSIS_DELAY, got %s/%s", transcriber.Delay, images.Delay)
	}

	cfg.ProducerDelay = 250 * time.Millisecond
	transcriber, images = newProducers(cfg)
	if transcriber.Delay != cfg.ProducerDelay || images.Delay != cfg.ProducerDelay {
		t.Errorf("expected producer delay %s, got %s/%s", cfg.ProducerDelay, transcriber.Delay, images.Delay)
	}
}

func TestMatchWeights(t *testing.T) {
	cfg := testConfig()
	cfg.MatchCodeWeight = 75
	w := matchWeights(cfg)
	if w.Keyword != 10 || w.Description != 20 || w.Code != 75 || w.Limit != 5 {
		t.Errorf("unexpected weights %+v", w)
	}
}

func TestMatchCmd(t *testing.T) {
	out, err := runCmd(t, "", "match", "chronic", "low", "back", "pain")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var resp diagnosis.MatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp.Total == 0 || resp.Matches[0].Entry.Code != "M54.5" {
		t.Errorf("expected M54.5 first, got %+v", resp.Matches)
	}
}

func TestMatchCmd_RequiresText(t *testing.T) {
	if _, err := runCmd(t, "", "match"); err == nil {
		t.Error("expected error without text")
	}
}

func TestAnalyzeCmd_Stdin(t *testing.T) {
	out, err := runCmd(t, "cough and fever for three days\n", "analyze")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var res analysis.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ChiefComplaint != "Respiratory symptoms" {
		t.Errorf("chief complaint = %q", res.ChiefComplaint)
	}
	if len(res.Symptoms) != 2 || res.Symptoms[0] != "Cough" || res.Symptoms[1] != "Fever" {
		t.Errorf("symptoms = %v", res.Symptoms)
	}
}

func TestAnalyzeCmd_Empty(t *testing.T) {
	out, err := runCmd(t, "", "analyze")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var res analysis.Result
	json.Unmarshal([]byte(out), &res)
	if res.ChiefComplaint != "" || len(res.SuggestedDiagnoses) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestAnalyzeCmd_ElderlyFlag(t *testing.T) {
	out, err := runCmd(t, "", "analyze", "--age", "70", "headache")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "Elderly patient") {
		t.Errorf("expected elderly warning in %s", out)
	}
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("AUTH_SIGNING_KEY", testSigningKey)
	out, err := runCmd(t, "", "token", "--sub", "dr-1", "--role", "doctor")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if parts := strings.Split(strings.TrimSpace(out), "."); len(parts) != 3 {
		t.Errorf("expected a compact JWT, got %q", out)
	}
}

func TestTokenCmd_RequiresKey(t *testing.T) {
	t.Setenv("AUTH_SIGNING_KEY", "")
	if _, err := runCmd(t, "", "token"); err == nil {
		t.Error("expected error without a signing key")
	}
}

func TestMigrateCmd_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ENV", "development")
	_, err := runCmd(t, "", "migrate", "status")
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("expected DATABASE_URL error, got %v", err)
	}
}

func TestPrintStatuses(t *testing.T) {
	at := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	printStatuses(&buf, []db.MigrationStatus{
		{Version: 1, Name: "prescriptions", Applied: true, AppliedAt: &at},
		{Version: 2, Name: "audit", Applied: false},
	})
	out := buf.String()
	if !strings.Contains(out, "applied") || !strings.Contains(out, "2026-02-01 08:30:00") {
		t.Errorf("missing applied row: %s", out)
	}
	if !strings.Contains(out, "pending") {
		t.Errorf("missing pending row: %s", out)
	}
}
