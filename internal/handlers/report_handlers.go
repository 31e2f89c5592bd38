package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Werneck0live/painel-contabil/internal/dashboard"
	"github.com/Werneck0live/painel-contabil/internal/report"
	"github.com/Werneck0live/painel-contabil/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *CompanyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	all, err := h.Repo.All(ctx)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, dashboard.BuildCharts(all, dashboard.ViewerFromRequest(r)))
}

func (h *CompanyHandler) Financial(w http.ResponseWriter, r *http.Request) {
	top, _ := strconv.Atoi(r.URL.Query().Get("top"))

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	all, err := h.Repo.All(ctx)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, report.BuildFinancial(all, top))
}

func (h *CompanyHandler) FinancialXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	all, err := h.Repo.All(ctx)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteFinancialXLSX(&buf, all); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filename := fmt.Sprintf("relatorio-financeiro_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
