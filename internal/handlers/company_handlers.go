package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Werneck0live/painel-contabil/internal/broker"
	"github.com/Werneck0live/painel-contabil/internal/dashboard"
	"github.com/Werneck0live/painel-contabil/internal/importer"
	"github.com/Werneck0live/painel-contabil/internal/logging"
	"github.com/Werneck0live/painel-contabil/internal/models"
	"github.com/Werneck0live/painel-contabil/internal/repository"
	"github.com/Werneck0live/painel-contabil/internal/utils"
)

const (
	defaultLimit   = 50
	maxLimit       = 200
	defaultTimeout = 5 * time.Second
)

type Repository interface {
	Find(ctx context.Context, f models.CompanyFilter, limit, skip int64) ([]models.Company, error)
	All(ctx context.Context) ([]models.Company, error)
	Create(ctx context.Context, c *models.Company) (string, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, id string, p *models.CompanyPatch) error
	Replace(ctx context.Context, id string, doc *models.Company) error
	Delete(ctx context.Context, id string) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, e broker.Event) error
	Close() error
}

// Importer é o orquestrador de importação de CSV.
type Importer interface {
	Import(ctx context.Context, data []byte, opts importer.Options) (*importer.Result, error)
}

type CompanyHandler struct {
	Repo     Repository
	Pub      Publisher
	Importer Importer

	Timeout        time.Duration // por requisição de CRUD/relatório
	ImportTimeout  time.Duration
	ImportMaxBytes int64
}

func NewCompanyHandler(repo Repository, pub Publisher, imp Importer) *CompanyHandler {
	return &CompanyHandler{
		Repo:           repo,
		Pub:            pub,
		Importer:       imp,
		Timeout:        defaultTimeout,
		ImportTimeout:  5 * time.Minute,
		ImportMaxBytes: 10 << 20,
	}
}

func (h *CompanyHandler) timeout() time.Duration {
	if h.Timeout > 0 {
		return h.Timeout
	}
	return defaultTimeout
}

// id vem do chi ({id}); sem roteador, garante o padrão /api/companies/{id_company}
func companyID(r *http.Request) (string, bool) {
	if id := chi.URLParam(r, "id"); id != "" {
		return id, true
	}
	return parseIDFromPath(r.URL.Path)
}

func parseIDFromPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] == "companies" && parts[2] != "" {
		return parts[2], true
	}
	return "", false
}

func (h *CompanyHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Backend está funcionando!",
	})
}

// writeRepoError traduz os sentinelas do repositório para status HTTP.
func writeRepoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrDuplicateTaxID):
		utils.WriteError(w, http.StatusConflict, "taxId already exists")
	default:
		logging.FromContext(r.Context()).Error("repository_error", "err", err, "path", r.URL.Path)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// filterFromQuery lê os filtros da tabela e aplica o escopo do viewer.
func filterFromQuery(r *http.Request) models.CompanyFilter {
	q := r.URL.Query()
	f := models.CompanyFilter{
		Search:          q.Get("search"),
		CompanyName:     q.Get("companyName"),
		CompanySector:   q.Get("companySector"),
		NewTaxRegime:    q.Get("newTaxRegime"),
		Municipality:    q.Get("municipality"),
		Situation:       q.Get("situation"),
		ComplexityLevel: q.Get("complexityLevel"),
		Classification:  q.Get("classification"),
	}
	dashboard.ViewerFromRequest(r).ApplyTableScope(&f)
	return f
}

func (h *CompanyHandler) Companies(w http.ResponseWriter, r *http.Request) {

	switch r.Method {

	// "getAll", "getAll-pagination"(skip, limit) + filtros
	case http.MethodGet:
		q := r.URL.Query()
		limit := int64(defaultLimit)
		skip := int64(0)
		if l := q.Get("limit"); l != "" {
			if v, err := strconv.ParseInt(l, 10, 64); err == nil && v > 0 && v <= maxLimit {
				limit = v
			}
		}
		if s := q.Get("skip"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil && v >= 0 {
				skip = v
			}
		}
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
		defer cancel()
		list, err := h.Repo.Find(ctx, filterFromQuery(r), limit, skip)
		if err != nil {
			writeRepoError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	// create
	case http.MethodPost:
		var dto CompanyCreateDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if err := validateCreateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		c := dto.toCompany()

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
		defer cancel()
		id, err := h.Repo.Create(ctx, &c)
		if err != nil {
			writeRepoError(w, r, err)
			return
		}
		c.ID = id

		h.publishEvent(r.Context(), broker.ActionCreate, &c)
		utils.WriteJSON(w, http.StatusCreated, c)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CompanyHandler) CompanyByID(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(r)
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			writeRepoError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, c)

	case http.MethodPatch:
		var dto CompanyPatchDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if err := validateUpdateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		if err := h.Repo.Update(ctx, id, dto.toPatch()); err != nil {
			writeRepoError(w, r, err)
			return
		}

		// Retorna o doc atualizado
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			writeRepoError(w, r, err)
			return
		}
		h.publishEvent(r.Context(), broker.ActionUpdate, c)
		utils.WriteJSON(w, http.StatusOK, c)

	case http.MethodPut:
		var dto CompanyPutDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if err := validatePutDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		current, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			writeRepoError(w, r, err)
			return
		}

		// documento COMPLETO que substituirá o atual (PUT = replace)
		newDoc := dto.toCompany()
		newDoc.ID = id
		newDoc.CreatedAt = current.CreatedAt // preserva criação

		if err := h.Repo.Replace(ctx, id, &newDoc); err != nil {
			writeRepoError(w, r, err)
			return
		}

		h.publishEvent(r.Context(), broker.ActionUpdate, &newDoc)
		utils.WriteJSON(w, http.StatusOK, newDoc)

	case http.MethodDelete:
		// Busca antes de deletar para publicar o nome
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			writeRepoError(w, r, err)
			return
		}

		if err := h.Repo.Delete(ctx, id); err != nil {
			writeRepoError(w, r, err)
			return
		}

		h.publishEvent(r.Context(), broker.ActionDelete, c)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CompanyHandler) publishEvent(ctx context.Context, action string, c *models.Company) {
	if c == nil {
		return
	}
	h.publish(ctx, broker.CompanyEvent(action, c))
}

// publish nunca falha a requisição; erro só vai para o log.
func (h *CompanyHandler) publish(ctx context.Context, e broker.Event) {
	if h.Pub == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := h.Pub.PublishEvent(pctx, e); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "action", e.Action, "company_id", e.CompanyID, "err", err)
	}
}
