package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Werneck0live/painel-contabil/internal/dashboard"
)

func TestPing_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Fatalf("path inesperado: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer srv.Close()

	if _, err := New(srv.URL + "/").Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestImport_SendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/companies/import" {
			t.Fatalf("rota inesperada: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("multipart: %v", err)
		}
		if r.FormValue("updateExisting") != "true" {
			t.Fatalf("updateExisting=%q", r.FormValue("updateExisting"))
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "empresas.csv" || string(data) != "Nome\nACME\n" {
			t.Fatalf("arquivo inesperado: %s %q", hdr.Filename, data)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"importedCount":1,"updatedCount":0,"skippedCount":0,"errors":[],"encoding":"utf-8"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Import(context.Background(), "empresas.csv", strings.NewReader("Nome\nACME\n"), true)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.ImportedCount != 1 || res.Encoding != "utf-8" {
		t.Fatalf("resultado inesperado: %#v", res)
	}
}

// erro da API vira *APIError com a mensagem do corpo
func TestImport_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"an import is already running"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Import(context.Background(), "x.csv", strings.NewReader("Nome\nA\n"), false)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err=%v; esperava *APIError", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "an import is already running" {
		t.Fatalf("APIError inesperado: %#v", apiErr)
	}
}

// corpo que não é JSON aparece cru na mensagem
func TestAPIError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Dashboard(context.Background(), dashboard.Viewer{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "bad gateway" {
		t.Fatalf("err=%v", err)
	}
}

func TestExportCSV_Encoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/companies/export.csv" || r.URL.Query().Get("encoding") != "windows-1252" {
			t.Fatalf("url inesperada: %s", r.URL.String())
		}
		_, _ = w.Write([]byte("Nome;CNPJ\r\n"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	n, err := New(srv.URL).ExportCSV(context.Background(), &buf, "windows-1252")
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if n != int64(buf.Len()) || buf.String() != "Nome;CNPJ\r\n" {
		t.Fatalf("n=%d body=%q", n, buf.String())
	}
}

func TestDashboard_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(dashboard.HeaderUserRole) != dashboard.RoleManager || r.Header.Get(dashboard.HeaderUserID) != "u-1" {
			t.Fatalf("headers do viewer ausentes: %v", r.Header)
		}
		_, _ = w.Write([]byte(`{"totalCompanies":7,"highComplexityCompanies":2,"taxRegimeChartData":[{"name":"LUCRO REAL","count":3}]}`))
	}))
	defer srv.Close()

	ch, err := New(srv.URL).Dashboard(context.Background(), dashboard.Viewer{ID: "u-1", Role: dashboard.RoleManager})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if ch.TotalCompanies != 7 || len(ch.TaxRegime) != 1 || ch.TaxRegime[0].Count != 3 {
		t.Fatalf("charts inesperado: %#v", ch)
	}
}
