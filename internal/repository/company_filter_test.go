package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

func TestBuildFilter_Empty(t *testing.T) {
	q := BuildFilter(models.CompanyFilter{CompanySector: "all", Municipality: "  "})
	if len(q) != 0 {
		t.Fatalf("esperava filtro vazio, got=%v", q)
	}
}

func TestBuildFilter_SearchIsQuoted(t *testing.T) {
	q := BuildFilter(models.CompanyFilter{Search: "a.b (x)"})
	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("$or=%v", q["$or"])
	}
	re := or[0].(bson.M)["name"].(primitive.Regex)
	if re.Pattern != `a\.b \(x\)` || re.Options != "i" {
		t.Fatalf("regex=%+v", re)
	}
}

func TestBuildFilter_EqualityAndResponsible(t *testing.T) {
	q := BuildFilter(models.CompanyFilter{
		CompanySector:   "Comércio",
		NewTaxRegime:    "Lucro Real",
		ComplexityLevel: "High",
		Classification:  "A",
		Situation:       "Ativa",
		Sector:          "fiscal",
		ResponsibleID:   "u1",
	})
	want := map[string]string{
		"company_sector":             "Comércio",
		"new_tax_regime":             "Lucro Real",
		"complexity_level":           "High",
		"classification":             "A",
		"situation":                  "Ativa",
		"sector_responsibles.fiscal": "u1",
	}
	for k, v := range want {
		if q[k] != v {
			t.Fatalf("%s=%v want=%v", k, q[k], v)
		}
	}
	if len(q) != len(want) {
		t.Fatalf("chaves extras: %v", q)
	}
}

func TestBuildFilter_ResponsibleNeedsBoth(t *testing.T) {
	if q := BuildFilter(models.CompanyFilter{Sector: "fiscal"}); len(q) != 0 {
		t.Fatalf("got=%v", q)
	}
}

func TestBuildFilter_CompanyNameIsSubstring(t *testing.T) {
	q := BuildFilter(models.CompanyFilter{CompanyName: "Padaria", Search: "x"})
	re, ok := q["name"].(primitive.Regex)
	if !ok || re.Pattern != "Padaria" || re.Options != "i" {
		t.Fatalf("name=%v", q["name"])
	}
	if _, ok := q["$or"]; !ok {
		t.Fatal("search deveria continuar no $or")
	}
}
