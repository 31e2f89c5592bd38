package models

// CompanyFilter espelha os filtros da tabela de empresas.
// Campos vazios ou "all" não filtram.
type CompanyFilter struct {
	Search          string
	CompanyName     string
	CompanySector   string
	NewTaxRegime    string
	Municipality    string
	Situation       string
	ComplexityLevel string
	Classification  string

	// Restrição de colaborador: só empresas onde SectorResponsibles[Sector] == ResponsibleID.
	Sector        string
	ResponsibleID string
}
