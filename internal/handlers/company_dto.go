package handlers

import (
	"strings"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// somente os campos do contrato; id e datas são do servidor
type CompanyCreateDTO struct {
	Name               string                    `json:"name"`
	TaxID              string                    `json:"taxId"`
	TaxRegime          string                    `json:"taxRegime"`
	NewTaxRegime       string                    `json:"newTaxRegime"`
	ComplexityLevel    string                    `json:"complexityLevel"`
	ClientClass        string                    `json:"clientClass"`
	Segment            string                    `json:"segment"`
	CompanySector      string                    `json:"companySector"`
	Classification     string                    `json:"classification"`
	Municipality       string                    `json:"municipality"`
	Situation          string                    `json:"situation"`
	Group              string                    `json:"group"`
	HonoraryValue      float64                   `json:"honoraryValue"`
	CollaboratorIDs    []string                  `json:"collaboratorIds"`
	SectorResponsibles models.SectorResponsibles `json:"sectorResponsibles"`
}

// PUT substitui o documento inteiro: mesmo contrato do create.
type CompanyPutDTO = CompanyCreateDTO

type SectorResponsiblesPatchDTO struct {
	Fiscal     *string `json:"fiscal,omitempty"`
	Pessoal    *string `json:"pessoal,omitempty"`
	Contabil   *string `json:"contabil,omitempty"`
	Financeiro *string `json:"financeiro,omitempty"`
}

// Update parcial; ponteiros distinguem "omitido" de "informado".
type CompanyPatchDTO struct {
	Name               *string                     `json:"name,omitempty"`
	TaxID              *string                     `json:"taxId,omitempty"`
	TaxRegime          *string                     `json:"taxRegime,omitempty"`
	NewTaxRegime       *string                     `json:"newTaxRegime,omitempty"`
	ComplexityLevel    *string                     `json:"complexityLevel,omitempty"`
	ClientClass        *string                     `json:"clientClass,omitempty"`
	Segment            *string                     `json:"segment,omitempty"`
	CompanySector      *string                     `json:"companySector,omitempty"`
	Classification     *string                     `json:"classification,omitempty"`
	Municipality       *string                     `json:"municipality,omitempty"`
	Situation          *string                     `json:"situation,omitempty"`
	Group              *string                     `json:"group,omitempty"`
	HonoraryValue      *float64                    `json:"honoraryValue,omitempty"`
	CollaboratorIDs    *[]string                   `json:"collaboratorIds,omitempty"`
	SectorResponsibles *SectorResponsiblesPatchDTO `json:"sectorResponsibles,omitempty"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// toCompany monta o documento a partir do create/put. Regime vazio vira Simples Nacional.
func (d CompanyCreateDTO) toCompany() models.Company {
	c := models.Company{
		Name:               strings.TrimSpace(d.Name),
		TaxID:              strings.TrimSpace(d.TaxID),
		TaxRegime:          strings.TrimSpace(d.TaxRegime),
		NewTaxRegime:       d.NewTaxRegime,
		ComplexityLevel:    d.ComplexityLevel,
		ClientClass:        d.ClientClass,
		Segment:            d.Segment,
		CompanySector:      d.CompanySector,
		Classification:     d.Classification,
		Municipality:       d.Municipality,
		Situation:          d.Situation,
		Group:              d.Group,
		HonoraryValue:      d.HonoraryValue,
		CollaboratorIDs:    d.CollaboratorIDs,
		SectorResponsibles: d.SectorResponsibles,
	}
	if c.TaxRegime == "" {
		c.TaxRegime = models.RegimeSimplesNacional
	}
	if c.CollaboratorIDs == nil {
		c.CollaboratorIDs = []string{}
	}
	return c
}

func (d CompanyPatchDTO) toPatch() *models.CompanyPatch {
	p := &models.CompanyPatch{
		Name:            trimPtr(d.Name),
		TaxID:           trimPtr(d.TaxID),
		TaxRegime:       d.TaxRegime,
		NewTaxRegime:    d.NewTaxRegime,
		ComplexityLevel: d.ComplexityLevel,
		ClientClass:     d.ClientClass,
		Segment:         d.Segment,
		CompanySector:   d.CompanySector,
		Classification:  d.Classification,
		Municipality:    d.Municipality,
		Situation:       d.Situation,
		Group:           d.Group,
		HonoraryValue:   d.HonoraryValue,
		CollaboratorIDs: d.CollaboratorIDs,
	}
	if sr := d.SectorResponsibles; sr != nil {
		p.ResponsibleFiscal = sr.Fiscal
		p.ResponsiblePessoal = sr.Pessoal
		p.ResponsibleContabil = sr.Contabil
		p.ResponsibleFinanceiro = sr.Financeiro
	}
	return p
}
