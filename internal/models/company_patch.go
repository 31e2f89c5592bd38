package models

// CompanyPatch é uma atualização parcial; ponteiros distinguem "omitido" de "informado".
type CompanyPatch struct {
	Name            *string   `json:"name,omitempty"`
	TaxID           *string   `json:"taxId,omitempty"`
	TaxRegime       *string   `json:"taxRegime,omitempty"`
	NewTaxRegime    *string   `json:"newTaxRegime,omitempty"`
	ComplexityLevel *string   `json:"complexityLevel,omitempty"`
	ClientClass     *string   `json:"clientClass,omitempty"`
	Segment         *string   `json:"segment,omitempty"`
	CompanySector   *string   `json:"companySector,omitempty"`
	Classification  *string   `json:"classification,omitempty"`
	Municipality    *string   `json:"municipality,omitempty"`
	Situation       *string   `json:"situation,omitempty"`
	Group           *string   `json:"group,omitempty"`
	HonoraryValue   *float64  `json:"honoraryValue,omitempty"`
	CollaboratorIDs *[]string `json:"collaboratorIds,omitempty"`

	ResponsibleFiscal     *string `json:"responsibleFiscal,omitempty"`
	ResponsiblePessoal    *string `json:"responsiblePessoal,omitempty"`
	ResponsibleContabil   *string `json:"responsibleContabil,omitempty"`
	ResponsibleFinanceiro *string `json:"responsibleFinanceiro,omitempty"`
}

// IsEmpty informa se nenhum campo foi informado.
func (p *CompanyPatch) IsEmpty() bool {
	return p == nil || len(p.Fields()) == 0
}

// Fields devolve os campos presentes, indexados pelo nome persistido (bson).
// Responsáveis usam a notação de ponto do subdocumento.
func (p *CompanyPatch) Fields() map[string]any {
	out := map[string]any{}
	if p == nil {
		return out
	}
	str := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	str("name", p.Name)
	str("tax_id", p.TaxID)
	str("tax_regime", p.TaxRegime)
	str("new_tax_regime", p.NewTaxRegime)
	str("complexity_level", p.ComplexityLevel)
	str("client_class", p.ClientClass)
	str("segment", p.Segment)
	str("company_sector", p.CompanySector)
	str("classification", p.Classification)
	str("municipality", p.Municipality)
	str("situation", p.Situation)
	str("group", p.Group)
	str("sector_responsibles.fiscal", p.ResponsibleFiscal)
	str("sector_responsibles.pessoal", p.ResponsiblePessoal)
	str("sector_responsibles.contabil", p.ResponsibleContabil)
	str("sector_responsibles.financeiro", p.ResponsibleFinanceiro)
	if p.HonoraryValue != nil {
		out["honorary_value"] = *p.HonoraryValue
	}
	if p.CollaboratorIDs != nil {
		ids := *p.CollaboratorIDs
		if ids == nil {
			ids = []string{}
		}
		out["collaborator_ids"] = ids
	}
	return out
}

// Apply aplica o patch sobre c (cópia em memória; não persiste).
func (p *CompanyPatch) Apply(c *Company) {
	if p == nil || c == nil {
		return
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Name, p.Name)
	set(&c.TaxID, p.TaxID)
	set(&c.TaxRegime, p.TaxRegime)
	set(&c.NewTaxRegime, p.NewTaxRegime)
	set(&c.ComplexityLevel, p.ComplexityLevel)
	set(&c.ClientClass, p.ClientClass)
	set(&c.Segment, p.Segment)
	set(&c.CompanySector, p.CompanySector)
	set(&c.Classification, p.Classification)
	set(&c.Municipality, p.Municipality)
	set(&c.Situation, p.Situation)
	set(&c.Group, p.Group)
	set(&c.SectorResponsibles.Fiscal, p.ResponsibleFiscal)
	set(&c.SectorResponsibles.Pessoal, p.ResponsiblePessoal)
	set(&c.SectorResponsibles.Contabil, p.ResponsibleContabil)
	set(&c.SectorResponsibles.Financeiro, p.ResponsibleFinanceiro)
	if p.HonoraryValue != nil {
		c.HonoraryValue = *p.HonoraryValue
	}
	if p.CollaboratorIDs != nil {
		c.CollaboratorIDs = append([]string{}, (*p.CollaboratorIDs)...)
	}
}
