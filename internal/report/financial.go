package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

const (
	labelNoGroup     = "Sem grupo"
	labelNotInformed = "Não informado"
	defaultTopN      = 10
)

// Projeção mensal sobre a receita atual (Jan..Jun).
var monthlyFactors = []struct {
	Month  string
	Factor decimal.Decimal
}{
	{"Jan", decimal.RequireFromString("0.8")},
	{"Fev", decimal.RequireFromString("0.85")},
	{"Mar", decimal.RequireFromString("0.9")},
	{"Abr", decimal.RequireFromString("0.95")},
	{"Mai", decimal.RequireFromString("1")},
	{"Jun", decimal.RequireFromString("1.05")},
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type CompanyValue struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TaxID         string  `json:"taxId"`
	HonoraryValue float64 `json:"honoraryValue"`
}

type RevenueBucket struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// Financial é o relatório de honorários.
type Financial struct {
	TotalRevenue    float64          `json:"totalRevenue"`
	AverageValue    float64          `json:"averageValue"`
	HighestValue    float64          `json:"highestValue"`
	ActiveCompanies int              `json:"activeCompanies"`
	Monthly         []MonthlyRevenue `json:"monthlyRevenue"`
	TopCompanies    []CompanyValue   `json:"topCompanies"`
	ByGroup         []RevenueBucket  `json:"revenueByGroup"`
	ByRegime        []RevenueBucket  `json:"revenueByRegime"`
	BySegment       []RevenueBucket  `json:"revenueBySegment"`
	ByCompanySector []RevenueBucket  `json:"revenueByCompanySector"`
}

// WithHonorary filtra as empresas com honorário positivo, preservando a ordem.
func WithHonorary(companies []models.Company) []models.Company {
	out := make([]models.Company, 0, len(companies))
	for _, c := range companies {
		if c.HonoraryValue > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Regime usado nos relatórios: o novo regime, senão o regime base.
func regimeOf(c *models.Company) string {
	if c.NewTaxRegime != "" {
		return c.NewTaxRegime
	}
	return c.TaxRegime
}

func money(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

// TotalRevenue soma os honorários (só valores positivos).
func TotalRevenue(companies []models.Company) decimal.Decimal {
	total := decimal.Zero
	for _, c := range companies {
		if c.HonoraryValue > 0 {
			total = total.Add(decimal.NewFromFloat(c.HonoraryValue))
		}
	}
	return total
}

// BuildFinancial calcula o relatório; topN <= 0 usa 10.
func BuildFinancial(all []models.Company, topN int) Financial {
	if topN <= 0 {
		topN = defaultTopN
	}
	companies := WithHonorary(all)

	total := TotalRevenue(companies)
	highest := decimal.Zero
	for _, c := range companies {
		highest = decimal.Max(highest, decimal.NewFromFloat(c.HonoraryValue))
	}
	n := len(companies)
	if n == 0 {
		n = 1
	}
	avg := total.Div(decimal.NewFromInt(int64(n)))

	f := Financial{
		TotalRevenue:    money(total),
		AverageValue:    money(avg),
		HighestValue:    money(highest),
		ActiveCompanies: len(companies),
		Monthly:         make([]MonthlyRevenue, 0, len(monthlyFactors)),
	}
	for _, m := range monthlyFactors {
		f.Monthly = append(f.Monthly, MonthlyRevenue{Month: m.Month, Revenue: money(total.Mul(m.Factor))})
	}

	f.TopCompanies = topCompanies(companies, topN)
	f.ByGroup = revenueBy(companies, labelNoGroup, func(c *models.Company) string { return c.Group })
	f.ByRegime = revenueBy(companies, labelNotInformed, regimeOf)
	f.BySegment = revenueBy(companies, labelNotInformed, func(c *models.Company) string { return c.Segment })
	f.ByCompanySector = revenueBy(companies, labelNotInformed, func(c *models.Company) string { return c.CompanySector })
	return f
}

func topCompanies(companies []models.Company, n int) []CompanyValue {
	sorted := make([]models.Company, len(companies))
	copy(sorted, companies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HonoraryValue > sorted[j].HonoraryValue
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]CompanyValue, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, CompanyValue{ID: c.ID, Name: c.Name, TaxID: c.TaxID, HonoraryValue: c.HonoraryValue})
	}
	return out
}

// revenueBy agrupa receita por chave; maior receita primeiro, empate pelo nome.
func revenueBy(companies []models.Company, fallback string, key func(*models.Company) string) []RevenueBucket {
	type acc struct {
		count int
		sum   decimal.Decimal
	}
	groups := map[string]*acc{}
	for i := range companies {
		k := key(&companies[i])
		if k == "" {
			k = fallback
		}
		a, ok := groups[k]
		if !ok {
			a = &acc{sum: decimal.Zero}
			groups[k] = a
		}
		a.count++
		a.sum = a.sum.Add(decimal.NewFromFloat(companies[i].HonoraryValue))
	}

	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := groups[names[i]], groups[names[j]]
		if c := a.sum.Cmp(b.sum); c != 0 {
			return c > 0
		}
		return names[i] < names[j]
	})

	out := make([]RevenueBucket, 0, len(names))
	for _, k := range names {
		out = append(out, RevenueBucket{Name: k, Count: groups[k].count, Revenue: money(groups[k].sum)})
	}
	return out
}
