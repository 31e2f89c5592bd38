package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// memStore guarda empresas em memória e conta chamadas.
type memStore struct {
	companies []models.Company
	nextID    int

	creates int
	updates int

	CreateFn func(ctx context.Context, c *models.Company) (string, error)
}

func (m *memStore) All(ctx context.Context) ([]models.Company, error) {
	out := make([]models.Company, len(m.companies))
	copy(out, m.companies)
	return out, nil
}

func (m *memStore) Create(ctx context.Context, c *models.Company) (string, error) {
	m.creates++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	m.nextID++
	cp := *c
	cp.ID = fmt.Sprintf("id-%d", m.nextID)
	m.companies = append(m.companies, cp)
	return cp.ID, nil
}

func (m *memStore) Update(ctx context.Context, id string, p *models.CompanyPatch) error {
	m.updates++
	for i := range m.companies {
		if m.companies[i].ID == id {
			p.Apply(&m.companies[i])
			return nil
		}
	}
	return errors.New("not found")
}

// createOnly não implementa Updater.
type createOnly struct {
	inner *memStore
}

func (c createOnly) All(ctx context.Context) ([]models.Company, error) { return c.inner.All(ctx) }
func (c createOnly) Create(ctx context.Context, co *models.Company) (string, error) {
	return c.inner.Create(ctx, co)
}
