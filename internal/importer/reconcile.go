package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// Store é o mínimo que a importação precisa do repositório de empresas.
type Store interface {
	All(ctx context.Context) ([]models.Company, error)
	Create(ctx context.Context, c *models.Company) (string, error)
}

// Updater é opcional: sem ele, duplicatas são sempre puladas.
type Updater interface {
	Update(ctx context.Context, id string, p *models.CompanyPatch) error
}

// Outcome é o desfecho de uma linha.
type Outcome int

const (
	OutcomeImported Outcome = iota + 1
	OutcomeUpdated
	OutcomeSkipped
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeImported:
		return "imported"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// RowResult é o resultado de uma linha; Message só é preenchida em OutcomeError.
type RowResult struct {
	Position  int
	Outcome   Outcome
	CompanyID string
	Message   string
}

// Reconciler decide criar, atualizar ou pular cada linha contra o snapshot da execução.
// Não é seguro para uso concorrente: uma instância por importação.
type Reconciler struct {
	store          Store
	updater        Updater
	fields         FieldVariations
	updateExisting bool
	rowTimeout     time.Duration

	snapshot []models.Company
}

// NewReconciler recebe o snapshot inicial; criações e atualizações são refletidas nele.
func NewReconciler(store Store, fv FieldVariations, snapshot []models.Company, updateExisting bool, rowTimeout time.Duration) *Reconciler {
	r := &Reconciler{
		store:          store,
		fields:         fv,
		updateExisting: updateExisting,
		rowTimeout:     rowTimeout,
		snapshot:       snapshot,
	}
	if u, ok := store.(Updater); ok {
		r.updater = u
	}
	return r
}

// Snapshot devolve o estado de trabalho atual.
func (r *Reconciler) Snapshot() []models.Company { return r.snapshot }

// Reconcile processa uma linha validada.
func (r *Reconciler) Reconcile(ctx context.Context, vr ValidRow) RowResult {
	res := RowResult{Position: vr.Position}

	name, taxID, _ := basicFields(vr.Row, r.fields)
	if name == "" {
		res.Outcome = OutcomeError
		res.Message = fmt.Sprintf("row %d: company name is required", vr.Position)
		return res
	}

	if idx := r.match(name, taxID); idx >= 0 {
		existing := &r.snapshot[idx]
		res.CompanyID = existing.ID
		if !r.updateExisting || r.updater == nil {
			res.Outcome = OutcomeSkipped
			return res
		}
		patch := MapRow(vr.Row, r.fields)
		if err := r.update(ctx, existing.ID, &patch); err != nil {
			res.Outcome = OutcomeError
			res.Message = fmt.Sprintf("row %d: failed to update %q: %v", vr.Position, existing.DisplayName(), err)
			return res
		}
		patch.Apply(existing)
		res.Outcome = OutcomeUpdated
		return res
	}

	c := newCompany(vr.Row, r.fields)
	id, err := r.create(ctx, c)
	if err != nil {
		res.Outcome = OutcomeError
		res.Message = fmt.Sprintf("row %d: failed to create %q: %v", vr.Position, name, err)
		return res
	}
	c.ID = id
	r.snapshot = append(r.snapshot, *c)
	res.CompanyID = id
	res.Outcome = OutcomeImported
	return res
}

// match: por CNPJ quando a linha traz um, senão por nome (case-insensitive, exato).
// Primeira ocorrência no snapshot vence.
func (r *Reconciler) match(name, taxID string) int {
	for i := range r.snapshot {
		c := &r.snapshot[i]
		if taxID != "" {
			if c.TaxID == taxID {
				return i
			}
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

func (r *Reconciler) create(ctx context.Context, c *models.Company) (string, error) {
	ctx, cancel := r.rowContext(ctx)
	defer cancel()
	return r.store.Create(ctx, c)
}

func (r *Reconciler) update(ctx context.Context, id string, p *models.CompanyPatch) error {
	ctx, cancel := r.rowContext(ctx)
	defer cancel()
	return r.updater.Update(ctx, id, p)
}

func (r *Reconciler) rowContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.rowTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.rowTimeout)
}
