package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(&out)
	root.SetArgs(append([]string{"--server", srvURL}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestPingCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy","message":"ok"}`))
	}))
	defer srv.Close()

	out, err := run(t, srv.URL, "ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if !strings.HasPrefix(out, "ok "+srv.URL) {
		t.Fatalf("saída inesperada: %q", out)
	}
}

func TestImportCmd_PrintsSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("updateExisting") != "true" {
			t.Fatalf("updateExisting=%q", r.FormValue("updateExisting"))
		}
		_, _ = w.Write([]byte(`{"importedCount":2,"updatedCount":1,"skippedCount":0,"errors":["row 4: failed to create \"X\": boom"],"encoding":"iso-8859-1"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "empresas.csv")
	if err := os.WriteFile(path, []byte("Nome\nA\nB\nC\nX\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, srv.URL, "import", path, "--update-existing")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	for _, want := range []string{"encoding: iso-8859-1", "importadas: 2", "atualizadas: 1", "row 4:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("saída sem %q: %s", want, out)
		}
	}
}

func TestImportCmd_Preview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/companies/import/preview" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"encoding":"utf-8","headers":[{"header":"Nome","field":"name"},{"header":"Munic","suggestion":"Município"}],"totalRows":3,"validRows":2}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "x.csv")
	if err := os.WriteFile(path, []byte("Nome;Munic\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, srv.URL, "import", "--preview", path)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "válidas: 2") || !strings.Contains(out, "parecido com Município") {
		t.Fatalf("saída inesperada: %s", out)
	}
}

func TestImportCmd_APIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"could not read the file"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "x.csv")
	if err := os.WriteFile(path, []byte("foo\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, srv.URL, "import", path)
	if err == nil || !strings.Contains(err.Error(), "could not read the file") {
		t.Fatalf("err=%v", err)
	}
}

func TestExportCmd_WritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reports/financial.xlsx" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		_, _ = w.Write([]byte("PK-fake-xlsx"))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "rel.xlsx")
	if _, err := run(t, srv.URL, "export", "xlsx", "-o", dst); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "PK-fake-xlsx" {
		t.Fatalf("arquivo=%q err=%v", got, err)
	}
}

func TestExportCmd_Validation(t *testing.T) {
	if _, err := run(t, "http://127.0.0.1:1", "export", "pdf", "-o", "x"); err == nil {
		t.Fatal("formato inválido deveria falhar")
	}
	if _, err := run(t, "http://127.0.0.1:1", "export", "csv"); err == nil {
		t.Fatal("sem -o deveria falhar")
	}
}

func TestDashboardCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// sem --role, o comando se identifica como manager
		if got := r.Header.Get("X-User-Role"); got != "manager" {
			t.Fatalf("X-User-Role=%q", got)
		}
		_, _ = w.Write([]byte(`{"totalCompanies":5,"lucroRealCompanies":2,"clientClassChartData":[{"name":"VIP","count":3}]}`))
	}))
	defer srv.Close()

	out, err := run(t, srv.URL, "dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !strings.Contains(out, "empresas:           5") || !strings.Contains(out, "classe VIP:") {
		t.Fatalf("saída inesperada: %s", out)
	}
}

func TestDashboardCmd_ViewerFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-Role") != "collaborator" || r.Header.Get("X-User-Id") != "u-7" {
			t.Fatalf("headers=%v", r.Header)
		}
		_, _ = w.Write([]byte(`{"totalCompanies":1}`))
	}))
	defer srv.Close()

	out, err := run(t, srv.URL, "dashboard", "--role", "collaborator", "--user-id", "u-7")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !strings.Contains(out, "empresas:           1") {
		t.Fatalf("saída inesperada: %s", out)
	}
}
