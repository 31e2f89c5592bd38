package dashboard

import (
	"net/http"
	"strings"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// Papéis aceitos no header X-User-Role.
const (
	RoleRoot         = "root"
	RoleManager      = "manager"
	RoleCollaborator = "collaborator"

	HeaderUserID     = "X-User-Id"
	HeaderUserRole   = "X-User-Role"
	HeaderUserSector = "X-User-Sector"
)

// Viewer é quem está olhando o painel. A autenticação fica no gateway;
// aqui só lemos o que ele repassa nos headers.
type Viewer struct {
	ID     string
	Role   string
	Sector string
}

// ViewerFromRequest lê os headers; sem headers, o viewer é anônimo
// (vê tudo na tabela e nenhuma empresa nos gráficos).
// Setor fora da lista conhecida é descartado.
func ViewerFromRequest(r *http.Request) Viewer {
	v := Viewer{
		ID:     strings.TrimSpace(r.Header.Get(HeaderUserID)),
		Role:   strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))),
		Sector: strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserSector))),
	}
	if !knownSector(v.Sector) {
		v.Sector = ""
	}
	return v
}

func knownSector(s string) bool {
	for _, k := range models.Sectors {
		if k == s {
			return true
		}
	}
	return false
}

// SeesAllCharts: root e manager veem todas as empresas nos gráficos.
func (v Viewer) SeesAllCharts() bool {
	return v.Role == RoleRoot || v.Role == RoleManager
}

// ApplyTableScope restringe a listagem: colaborador com setor só vê as empresas
// em que é o responsável daquele setor.
func (v Viewer) ApplyTableScope(f *models.CompanyFilter) {
	if v.Role == RoleCollaborator && v.Sector != "" {
		f.Sector = v.Sector
		f.ResponsibleID = v.ID
	}
}

// ChartScope filtra as empresas visíveis nos gráficos.
func (v Viewer) ChartScope(companies []models.Company) []models.Company {
	if v.SeesAllCharts() {
		return companies
	}
	out := make([]models.Company, 0, len(companies))
	if v.ID == "" {
		return out
	}
	for i := range companies {
		if companies[i].HasCollaborator(v.ID) {
			out = append(out, companies[i])
		}
	}
	return out
}
