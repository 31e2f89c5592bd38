package dashboard

import (
	"sort"
	"strings"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// Rótulos de regime como aparecem nas planilhas do escritório.
const (
	RegimeSimples    = "SIMPLES NACIONAL"
	RegimePresumido  = "LUCRO PRESUMIDO"
	RegimeReal       = "LUCRO REAL"
	LabelNotInformed = "Não informado"
	LabelNoGroup     = "Sem grupo"

	ClassExecutive = "Executive"
	ClassVIP       = "VIP"
	ClassDiamond   = "Diamond"
)

// Bucket é uma fatia de gráfico.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SectorClientRow é uma linha da matriz setor x classe do cliente.
type SectorClientRow struct {
	Sector    string `json:"name"`
	Executive int    `json:"Executive"`
	VIP       int    `json:"VIP"`
	Diamond   int    `json:"Diamond"`
}

// Charts agrega tudo o que o dashboard mostra.
type Charts struct {
	TotalCompanies           int               `json:"totalCompanies"`
	HighComplexityCompanies  int               `json:"highComplexityCompanies"`
	SimplesNacionalCompanies int               `json:"simplesNacionalCompanies"`
	LucroPresumidoCompanies  int               `json:"lucroPresumidoCompanies"`
	LucroRealCompanies       int               `json:"lucroRealCompanies"`
	TaxRegime                []Bucket          `json:"taxRegimeChartData"`
	Complexity               []Bucket          `json:"complexityChartData"`
	ClientClass              []Bucket          `json:"clientClassChartData"`
	SectorVsClient           []SectorClientRow `json:"sectorVsClientData"`
	NewTaxRegime             []Bucket          `json:"newTaxRegimeChartData"`
	CompanySector            []Bucket          `json:"companySectorChartData"`
	Municipality             []Bucket          `json:"municipalityChartData"`
	Classification           []Bucket          `json:"classificationChartData"`
	Situation                []Bucket          `json:"situationChartData"`
	Group                    []Bucket          `json:"groupChartData"`
}

// BuildCharts calcula os gráficos sobre as empresas visíveis para o viewer.
func BuildCharts(all []models.Company, v Viewer) Charts {
	companies := v.ChartScope(all)

	ch := Charts{TotalCompanies: len(companies)}
	for i := range companies {
		c := &companies[i]
		if c.ComplexityLevel == models.ComplexityHigh {
			ch.HighComplexityCompanies++
		}
		switch strings.ToUpper(c.TaxRegime) {
		case RegimeSimples:
			ch.SimplesNacionalCompanies++
		case RegimePresumido:
			ch.LucroPresumidoCompanies++
		case RegimeReal:
			ch.LucroRealCompanies++
		}
	}

	ch.TaxRegime = sortTaxRegimes(groupBy(companies, LabelNotInformed, func(c *models.Company) string { return c.TaxRegime }))
	ch.Complexity = groupBy(companies, models.ComplexityLow, func(c *models.Company) string { return c.ComplexityLevel })
	ch.ClientClass = groupBy(companies, ClassExecutive, func(c *models.Company) string { return c.ClientClass })
	ch.SectorVsClient = sectorVsClient(companies)
	ch.NewTaxRegime = groupBy(companies, LabelNotInformed, func(c *models.Company) string { return c.NewTaxRegime })
	ch.CompanySector = groupBy(companies, LabelNotInformed, func(c *models.Company) string { return c.CompanySector })
	ch.Municipality = groupBy(companies, LabelNotInformed, func(c *models.Company) string { return c.Municipality })
	ch.Classification = groupBy(companies, LabelNotInformed, func(c *models.Company) string { return c.Classification })
	ch.Situation = groupBy(companies, LabelNotInformed, func(c *models.Company) string { return c.Situation })
	ch.Group = groupBy(companies, LabelNoGroup, func(c *models.Company) string { return c.Group })
	return ch
}

// groupBy conta por chave, na ordem em que cada chave aparece pela primeira vez.
func groupBy(companies []models.Company, fallback string, key func(*models.Company) string) []Bucket {
	out := []Bucket{}
	idx := map[string]int{}
	for i := range companies {
		k := key(&companies[i])
		if k == "" {
			k = fallback
		}
		if j, ok := idx[k]; ok {
			out[j].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, Bucket{Name: k, Count: 1})
	}
	return out
}

var regimeOrder = map[string]int{
	RegimeSimples:    1,
	RegimePresumido:  2,
	RegimeReal:       3,
	LabelNotInformed: 4,
}

// Regimes desconhecidos (peso 0) vêm antes dos conhecidos, mantendo a ordem original.
// A comparação ignora caixa: "Simples Nacional" (default da importação) ordena como SIMPLES NACIONAL.
func sortTaxRegimes(b []Bucket) []Bucket {
	weight := func(name string) int {
		if name == LabelNotInformed {
			return regimeOrder[name]
		}
		return regimeOrder[strings.ToUpper(name)]
	}
	sort.SliceStable(b, func(i, j int) bool {
		return weight(b[i].Name) < weight(b[j].Name)
	})
	return b
}

// sectorVsClient conta, por setor, empresas com responsável definido em cada classe.
// Classe vazia conta como Executive.
func sectorVsClient(companies []models.Company) []SectorClientRow {
	rows := make([]SectorClientRow, 0, len(models.Sectors))
	for _, sector := range models.Sectors {
		row := SectorClientRow{Sector: sector}
		for i := range companies {
			c := &companies[i]
			if c.SectorResponsibles.Get(sector) == "" {
				continue
			}
			class := c.ClientClass
			if class == "" {
				class = ClassExecutive
			}
			switch class {
			case ClassExecutive:
				row.Executive++
			case ClassVIP:
				row.VIP++
			case ClassDiamond:
				row.Diamond++
			}
		}
		rows = append(rows, row)
	}
	return rows
}
