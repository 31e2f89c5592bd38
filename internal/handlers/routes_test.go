package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// export.csv não pode cair na rota /companies/{id}
func TestRouter_ExportBeatsID(t *testing.T) {
	rm := &repoMock{
		FindFn: func(_ context.Context, _ models.CompanyFilter, _, _ int64) ([]models.Company, error) {
			return []models.Company{}, nil
		},
		GetByIDFn: func(_ context.Context, id string) (*models.Company, error) {
			t.Fatalf("GetByID chamado com id=%q", id)
			return nil, nil
		},
	}
	srv := httptest.NewServer(NewRouter(&CompanyHandler{Repo: rm}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/companies/export.csv")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d want=%d", resp.StatusCode, http.StatusOK)
	}
	if resp.Header.Get("Content-Disposition") == "" {
		t.Fatal("export sem Content-Disposition")
	}
}

func TestRouter_CompanyByIDParam(t *testing.T) {
	rm := &repoMock{
		GetByIDFn: func(_ context.Context, id string) (*models.Company, error) {
			if id != testID {
				t.Fatalf("id inesperado: %q", id)
			}
			return &models.Company{ID: id, Name: "ACME"}, nil
		},
	}
	srv := httptest.NewServer(NewRouter(&CompanyHandler{Repo: rm}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/companies/" + testID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d want=%d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestRouter_Healthz(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&CompanyHandler{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d want=%d", resp.StatusCode, http.StatusOK)
	}
}
