package importer

import (
	"strings"

	"github.com/Werneck0live/painel-contabil/internal/models"
	"github.com/Werneck0live/painel-contabil/internal/utils"
)

// MapRow converte as colunas descritivas da linha em um patch.
// Nome, CNPJ e regime base ficam de fora (tratados pelo Reconciler).
// Células vazias, valores ilegíveis e honorário negativo são omitidos.
func MapRow(row Row, fv FieldVariations) models.CompanyPatch {
	var p models.CompanyPatch

	str := func(field string) *string {
		v := strings.TrimSpace(fv.Lookup(row, field))
		if v == "" {
			return nil
		}
		return &v
	}

	p.NewTaxRegime = str(FieldNewTaxRegime)
	p.ComplexityLevel = str(FieldComplexityLevel)
	p.ClientClass = str(FieldClientClass)
	p.Segment = str(FieldSegment)
	p.CompanySector = str(FieldCompanySector)
	p.Classification = str(FieldClassification)
	p.Municipality = str(FieldMunicipality)
	p.Situation = str(FieldSituation)
	p.Group = str(FieldGroup)

	p.ResponsibleFiscal = str(FieldResponsibleFiscal)
	p.ResponsiblePessoal = str(FieldResponsiblePessoal)
	p.ResponsibleContabil = str(FieldResponsibleContabil)
	p.ResponsibleFinanceiro = str(FieldResponsibleFinanceiro)

	if raw := str(FieldHonoraryValue); raw != nil {
		// negativo é descartado, como na API
		if d, ok := utils.ParseBRL(*raw); ok && !d.IsNegative() {
			f := d.Round(2).InexactFloat64()
			p.HonoraryValue = &f
		}
	}
	return p
}

// basicFields extrai nome, CNPJ e regime (coluna de regime, senão Simples Nacional).
func basicFields(row Row, fv FieldVariations) (name, taxID, taxRegime string) {
	name = strings.TrimSpace(fv.Lookup(row, FieldName))
	taxID = strings.TrimSpace(fv.Lookup(row, FieldCNPJ))
	taxRegime = strings.TrimSpace(fv.Lookup(row, FieldNewTaxRegime))
	if taxRegime == "" {
		taxRegime = models.RegimeSimplesNacional
	}
	return name, taxID, taxRegime
}

// newCompany monta a empresa criada na importação.
func newCompany(row Row, fv FieldVariations) *models.Company {
	name, taxID, taxRegime := basicFields(row, fv)
	c := &models.Company{
		Name:            name,
		TaxID:           taxID,
		TaxRegime:       taxRegime,
		CollaboratorIDs: []string{},
	}
	patch := MapRow(row, fv)
	patch.Apply(c)
	return c
}
