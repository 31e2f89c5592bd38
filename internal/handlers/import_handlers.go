package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/painel-contabil/internal/broker"
	"github.com/Werneck0live/painel-contabil/internal/importer"
	"github.com/Werneck0live/painel-contabil/internal/logging"
	"github.com/Werneck0live/painel-contabil/internal/report"
	"github.com/Werneck0live/painel-contabil/internal/utils"
)

const multipartMemory = 8 << 20

var errUploadTooLarge = errors.New("file too large")

// readUpload lê o campo "file" do multipart respeitando ImportMaxBytes.
func (h *CompanyHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.ImportMaxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New(`missing "file" field`)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	return data, nil
}

func writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUploadTooLarge) {
		utils.WriteError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	utils.BadRequest(w, err.Error())
}

// Import recebe o CSV (multipart "file") e a flag updateExisting.
func (h *CompanyHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logging.FromContext(r.Context())

	data, err := h.readUpload(w, r)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	updateExisting, _ := strconv.ParseBool(r.FormValue("updateExisting"))

	timeout := h.ImportTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	res, err := h.Importer.Import(ctx, data, importer.Options{UpdateExisting: updateExisting})
	switch {
	case errors.Is(err, importer.ErrNoValidEncoding):
		utils.WriteError(w, http.StatusUnprocessableEntity,
			"could not read the file with any supported encoding; expected a ';' separated CSV with a name column")
		return
	case errors.Is(err, importer.ErrImportRunning):
		utils.WriteError(w, http.StatusConflict, err.Error())
		return
	case err != nil && res == nil:
		log.Error("import_failed", "err", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	case err != nil:
		// interrompida no meio: o que já foi gravado fica, o resumo parcial volta ao cliente
		log.Warn("import_interrupted", "err", err)
		res.Errors = append(res.Errors, err.Error())
	}

	h.publish(r.Context(), broker.ImportEvent(broker.ImportSummary{
		Imported: res.ImportedCount,
		Updated:  res.UpdatedCount,
		Skipped:  res.SkippedCount,
		Errors:   len(res.Errors),
		Encoding: res.Encoding,
	}))
	utils.WriteJSON(w, http.StatusOK, res)
}

// ImportPreview mostra encoding, colunas reconhecidas e sugestões, sem gravar nada.
func (h *CompanyHandler) ImportPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, err := h.readUpload(w, r)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	p, err := importer.BuildPreview(data, importer.Variations())
	if errors.Is(err, importer.ErrNoValidEncoding) {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

// ExportCSV exporta a tabela (com os mesmos filtros da listagem) em CSV reimportável.
func (h *CompanyHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	enc := r.URL.Query().Get("encoding")
	if enc == "" {
		enc = report.EncodingUTF8
	}
	if enc != report.EncodingUTF8 && enc != report.EncodingWindows1252 {
		utils.BadRequest(w, "encoding must be utf-8 or windows-1252")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()
	list, err := h.Repo.Find(ctx, filterFromQuery(r), 0, 0)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCompaniesCSV(&buf, list, enc); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filename := fmt.Sprintf("empresas_export_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset="+enc)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
