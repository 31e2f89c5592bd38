package repository

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// BuildFilter traduz os filtros da tabela para BSON.
// "" e "all" não filtram; search (nome ou CNPJ) e companyName são substring case-insensitive.
func BuildFilter(f models.CompanyFilter) bson.M {
	q := bson.M{}

	if s := strings.TrimSpace(f.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"tax_id": re},
		}
	}

	eq := func(key, v string) {
		v = strings.TrimSpace(v)
		if v == "" || v == "all" {
			return
		}
		q[key] = v
	}
	if s := strings.TrimSpace(f.CompanyName); s != "" {
		q["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
	}
	eq("company_sector", f.CompanySector)
	eq("new_tax_regime", f.NewTaxRegime)
	eq("municipality", f.Municipality)
	eq("situation", f.Situation)
	eq("complexity_level", f.ComplexityLevel)
	eq("classification", f.Classification)

	if f.Sector != "" && f.ResponsibleID != "" {
		q["sector_responsibles."+f.Sector] = f.ResponsibleID
	}
	return q
}
