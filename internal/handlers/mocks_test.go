package handlers

import (
	"context"
	"errors"

	"github.com/Werneck0live/painel-contabil/internal/broker"
	"github.com/Werneck0live/painel-contabil/internal/importer"
	"github.com/Werneck0live/painel-contabil/internal/models"
)

type repoMock struct {
	FindFn    func(ctx context.Context, f models.CompanyFilter, limit, skip int64) ([]models.Company, error)
	AllFn     func(ctx context.Context) ([]models.Company, error)
	CreateFn  func(ctx context.Context, c *models.Company) (string, error)
	GetByIDFn func(ctx context.Context, id string) (*models.Company, error)
	UpdateFn  func(ctx context.Context, id string, p *models.CompanyPatch) error
	ReplaceFn func(ctx context.Context, id string, doc *models.Company) error
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *repoMock) Find(ctx context.Context, f models.CompanyFilter, limit, skip int64) ([]models.Company, error) {
	if m.FindFn == nil {
		return nil, errors.New("FindFn not set")
	}
	return m.FindFn(ctx, f, limit, skip)
}
func (m *repoMock) All(ctx context.Context) ([]models.Company, error) {
	if m.AllFn == nil {
		return nil, errors.New("AllFn not set")
	}
	return m.AllFn(ctx)
}
func (m *repoMock) Create(ctx context.Context, c *models.Company) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, c)
}
func (m *repoMock) GetByID(ctx context.Context, id string) (*models.Company, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, id string, p *models.CompanyPatch) error {
	if m.UpdateFn == nil {
		return errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, p)
}
func (m *repoMock) Replace(ctx context.Context, id string, doc *models.Company) error {
	if m.ReplaceFn == nil {
		return errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, doc)
}
func (m *repoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type pubMock struct {
	PublishEventFn func(ctx context.Context, e broker.Event) error
	CloseFn        func() error

	events []broker.Event
}

func (p *pubMock) PublishEvent(ctx context.Context, e broker.Event) error {
	p.events = append(p.events, e)
	if p.PublishEventFn == nil {
		return nil
	}
	return p.PublishEventFn(ctx, e)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

type importerMock struct {
	ImportFn func(ctx context.Context, data []byte, opts importer.Options) (*importer.Result, error)
}

func (m *importerMock) Import(ctx context.Context, data []byte, opts importer.Options) (*importer.Result, error) {
	if m.ImportFn == nil {
		return nil, errors.New("ImportFn not set")
	}
	return m.ImportFn(ctx, data, opts)
}
