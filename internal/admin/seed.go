package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Werneck0live/painel-contabil/internal/models"
	"github.com/Werneck0live/painel-contabil/internal/repository"
)

//go:embed seeds/companies.json
var companiesJSON []byte

// Store é o mínimo que o seed precisa do repositório.
type Store interface {
	All(ctx context.Context) ([]models.Company, error)
	Create(ctx context.Context, c *models.Company) (string, error)
}

// SeedResult resume a execução.
type SeedResult struct {
	Created int
	Skipped int
}

// LoadSeed lê as empresas de exemplo embutidas no binário.
func LoadSeed() ([]models.Company, error) {
	var items []models.Company
	if err := json.Unmarshal(companiesJSON, &items); err != nil {
		return nil, fmt.Errorf("seed json: %w", err)
	}
	return items, nil
}

// Idempotente: empresa que já existe (mesmo taxId, ou mesmo nome quando não há taxId) é ignorada.
func SeedCompanies(ctx context.Context, store Store, items []models.Company, log *slog.Logger) (SeedResult, error) {
	var res SeedResult

	lctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	existing, err := store.All(lctx)
	cancel()
	if err != nil {
		return res, fmt.Errorf("load existing companies: %w", err)
	}
	byTaxID := make(map[string]bool, len(existing))
	byName := make(map[string]bool, len(existing))
	for _, c := range existing {
		if c.TaxID != "" {
			byTaxID[c.TaxID] = true
		}
		byName[strings.ToLower(c.Name)] = true
	}

	for i := range items {
		c := items[i]
		c.Name = strings.TrimSpace(c.Name)
		c.TaxID = strings.TrimSpace(c.TaxID)
		if c.Name == "" {
			log.Warn("seed_skip_without_name", "index", i)
			res.Skipped++
			continue
		}
		if (c.TaxID != "" && byTaxID[c.TaxID]) || (c.TaxID == "" && byName[strings.ToLower(c.Name)]) {
			log.Info("seed_company_exists", "name", c.Name, "tax_id", c.TaxID)
			res.Skipped++
			continue
		}
		if c.TaxRegime == "" {
			c.TaxRegime = models.RegimeSimplesNacional
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		id, err := store.Create(ictx, &c)
		cancel()

		if err != nil {
			if errors.Is(err, repository.ErrDuplicateTaxID) {
				log.Info("seed_company_exists", "name", c.Name, "tax_id", c.TaxID)
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("seed %q: %w", c.Name, err)
		}
		if c.TaxID != "" {
			byTaxID[c.TaxID] = true
		}
		byName[strings.ToLower(c.Name)] = true
		res.Created++
		log.Info("seed_company_created", "id", id, "name", c.Name)
	}

	log.Info("seed_companies_done", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}
