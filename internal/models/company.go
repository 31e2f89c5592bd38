package models

import "time"

// Valores de regime tributário usados como default e nos gráficos.
const (
	RegimeSimplesNacional = "Simples Nacional"

	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

// Responsáveis por setor (ids de colaboradores).
type SectorResponsibles struct {
	Fiscal     string `bson:"fiscal,omitempty" json:"fiscal,omitempty"`
	Pessoal    string `bson:"pessoal,omitempty" json:"pessoal,omitempty"`
	Contabil   string `bson:"contabil,omitempty" json:"contabil,omitempty"`
	Financeiro string `bson:"financeiro,omitempty" json:"financeiro,omitempty"`
}

// Sectors lista os setores na ordem usada pelos relatórios.
var Sectors = []string{"fiscal", "pessoal", "contabil", "financeiro"}

// Get retorna o responsável de um setor pelo nome ("fiscal", "pessoal", ...).
func (s SectorResponsibles) Get(sector string) string {
	switch sector {
	case "fiscal":
		return s.Fiscal
	case "pessoal":
		return s.Pessoal
	case "contabil":
		return s.Contabil
	case "financeiro":
		return s.Financeiro
	}
	return ""
}

type Company struct {
	ID                 string             `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	TaxID              string             `bson:"tax_id" json:"taxId"` // CNPJ/CPF como informado (sem normalizar)
	TaxRegime          string             `bson:"tax_regime" json:"taxRegime"`
	NewTaxRegime       string             `bson:"new_tax_regime,omitempty" json:"newTaxRegime,omitempty"`
	ComplexityLevel    string             `bson:"complexity_level,omitempty" json:"complexityLevel,omitempty"`
	ClientClass        string             `bson:"client_class,omitempty" json:"clientClass,omitempty"`
	Segment            string             `bson:"segment,omitempty" json:"segment,omitempty"`
	CompanySector      string             `bson:"company_sector,omitempty" json:"companySector,omitempty"`
	Classification     string             `bson:"classification,omitempty" json:"classification,omitempty"`
	Municipality       string             `bson:"municipality,omitempty" json:"municipality,omitempty"`
	Situation          string             `bson:"situation,omitempty" json:"situation,omitempty"`
	Group              string             `bson:"group,omitempty" json:"group,omitempty"`
	HonoraryValue      float64            `bson:"honorary_value,omitempty" json:"honoraryValue,omitempty"`
	CollaboratorIDs    []string           `bson:"collaborator_ids" json:"collaboratorIds"`
	SectorResponsibles SectorResponsibles `bson:"sector_responsibles" json:"sectorResponsibles"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasCollaborator informa se o colaborador está vinculado à empresa.
func (c *Company) HasCollaborator(id string) bool {
	for _, v := range c.CollaboratorIDs {
		if v == id {
			return true
		}
	}
	return false
}

// DisplayName escolhe o nome exibido em eventos e logs.
func (c *Company) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.TaxID != "" {
		return c.TaxID
	}
	return c.ID
}
