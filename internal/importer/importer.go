package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrImportRunning: já existe uma importação em andamento nesta instância.
var ErrImportRunning = errors.New("another import is already running")

// Options controla a reconciliação.
type Options struct {
	UpdateExisting bool
}

// Result é o resumo devolvido ao cliente.
type Result struct {
	ImportedCount int      `json:"importedCount"`
	UpdatedCount  int      `json:"updatedCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors"`
	Encoding      string   `json:"encoding,omitempty"`
}

// Importer orquestra probe -> validação -> reconciliação.
// Uma importação por vez; chamadas concorrentes recebem ErrImportRunning.
type Importer struct {
	store      Store
	fields     FieldVariations
	rowTimeout time.Duration
	log        *slog.Logger

	running atomic.Bool
}

func New(store Store, rowTimeout time.Duration, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		store:      store,
		fields:     Variations(),
		rowTimeout: rowTimeout,
		log:        log,
	}
}

// WithFields troca a tabela de variações (testes e tabelas customizadas).
func (im *Importer) WithFields(fv FieldVariations) *Importer {
	im.fields = fv
	return im
}

// Running informa se há importação em andamento.
func (im *Importer) Running() bool { return im.running.Load() }

// Import detecta a codificação do arquivo e importa suas linhas.
// ErrNoValidEncoding aborta antes de qualquer escrita.
func (im *Importer) Import(ctx context.Context, data []byte, opts Options) (*Result, error) {
	parsed, err := Probe(data)
	if err != nil {
		return nil, err
	}
	im.log.Info("import_encoding_detected",
		"encoding", parsed.Encoding,
		"headers", len(parsed.Headers),
		"rows", len(parsed.Rows),
	)
	res, err := im.importValid(ctx, ValidateParsed(parsed, im.fields), len(parsed.Rows), opts)
	if res != nil {
		res.Encoding = parsed.Encoding
	}
	return res, err
}

// ImportRows processa linhas já lidas, em ordem, uma chamada ao store por vez.
// Não há rollback: o que já foi gravado permanece se linhas seguintes falharem.
// As posições nas mensagens de erro são o índice da linha + 1.
func (im *Importer) ImportRows(ctx context.Context, rows []Row, opts Options) (*Result, error) {
	return im.importValid(ctx, ValidateRows(rows, im.fields), len(rows), opts)
}

func (im *Importer) importValid(ctx context.Context, valid []ValidRow, total int, opts Options) (*Result, error) {
	if !im.running.CompareAndSwap(false, true) {
		return nil, ErrImportRunning
	}
	defer im.running.Store(false)

	start := time.Now()
	snapshot, err := im.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load companies snapshot: %w", err)
	}

	rec := NewReconciler(im.store, im.fields, snapshot, opts.UpdateExisting, im.rowTimeout)

	res := &Result{Errors: []string{}}
	for _, vr := range valid {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("import interrupted at row %d: %w", vr.Position, err)
		}
		rr := rec.Reconcile(ctx, vr)
		switch rr.Outcome {
		case OutcomeImported:
			res.ImportedCount++
		case OutcomeUpdated:
			res.UpdatedCount++
		case OutcomeSkipped:
			res.SkippedCount++
		case OutcomeError:
			res.Errors = append(res.Errors, rr.Message)
			im.log.Warn("import_row_failed", "row", rr.Position, "err", rr.Message)
		}
	}

	im.log.Info("import_done",
		"rows", total,
		"valid", len(valid),
		"imported", res.ImportedCount,
		"updated", res.UpdatedCount,
		"skipped", res.SkippedCount,
		"errors", len(res.Errors),
		"update_existing", opts.UpdateExisting,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
