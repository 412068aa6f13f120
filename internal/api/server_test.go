package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gatecheck/internal/config"
	"gatecheck/internal/pipeline"
)

func testServer() *Server {
	cfg := config.Default()
	cfg.Feed.Columns.Flight = 0
	cfg.Feed.Columns.Date = 1
	cfg.Feed.Columns.Gate = 2
	cfg.Feed.Columns.Aircraft = 3
	cfg.Feed.Columns.Airport = 4
	return New(pipeline.New(cfg, nil), nil, Config{Port: 8080})
}

// multipartBody builds a multipart form with file fields and values.
func multipartBody(t *testing.T, files map[string]string, values map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for field, v := range values {
		if err := mw.WriteField(field, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	router := testServer().Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestGateCheckEndpoint(t *testing.T) {
	router := testServer().Router()

	body, contentType := multipartBody(t,
		map[string]string{
			"plan": "Arr,Dep,Gate\nACA100,ACA101,12",
			"feed": "Flight,Date,Gate,Type,Airport\nQK100,2026-08-31,14,DH4,YUL",
		},
		map[string]string{"date": "2026-08-31"},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gatecheck", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp runResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("missing request_id")
	}
	if len(resp.Sections) == 0 || resp.Sections[0].Count != 1 {
		t.Errorf("sections = %+v, want one mismatch", resp.Sections)
	}
}

func TestGateCheckEndpoint_MissingFile(t *testing.T) {
	router := testServer().Router()

	body, contentType := multipartBody(t,
		map[string]string{"plan": "Arr,Dep,Gate\nACA100,ACA101,12"},
		map[string]string{"date": "2026-08-31"},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gatecheck", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestGateCheckEndpoint_BadDate(t *testing.T) {
	router := testServer().Router()

	body, contentType := multipartBody(t,
		map[string]string{"plan": "x", "feed": "y"},
		map[string]string{"date": "31/08/2026"},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gatecheck", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestTowSheetEndpoint_CSVDownload(t *testing.T) {
	router := testServer().Router()

	schedule := strings.Join([]string{
		"Tail,ArrFlight,ArrTime,ArrGate,DepFlight,DepTime,DepGate,Turn",
		"802,QK 100,0900/19,5,QK 101,1030/19,7,1:30",
	}, "\n")

	body, contentType := multipartBody(t, map[string]string{"schedule": schedule}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/towsheet?format=csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "Arrival Flight,Tail,Tow From,Tow To,") {
		t.Errorf("body = %q, want tow sheet header", rec.Body.String())
	}
}
