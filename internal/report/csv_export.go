package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

// Codificações aceitas na exportação.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// Colunas da exportação; os nomes batem com a tabela de variações da importação.
var companyCSVHeaders = []string{
	"Nome", "CNPJ", "Regime Tributário", "Nível de Complexidade", "Classe do Cliente",
	"Responsável Fiscal", "Responsável Pessoal", "Responsável Contábil", "Responsável Financeiro",
}

// WriteCompaniesCSV grava as empresas separadas por ';'.
// UTF-8 sai com BOM (Excel brasileiro); windows-1252 sai sem BOM, com caracteres
// fora do charset substituídos.
func WriteCompaniesCSV(w io.Writer, companies []models.Company, enc string) error {
	var closer io.Closer
	switch strings.ToLower(enc) {
	case "", EncodingUTF8:
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return err
		}
	case EncodingWindows1252:
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		w, closer = tw, tw
	default:
		return fmt.Errorf("unsupported export encoding %q", enc)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	cw.UseCRLF = true

	if err := cw.Write(companyCSVHeaders); err != nil {
		return err
	}
	for _, c := range companies {
		rec := []string{
			c.Name,
			c.TaxID,
			c.TaxRegime,
			c.ComplexityLevel,
			c.ClientClass,
			c.SectorResponsibles.Fiscal,
			c.SectorResponsibles.Pessoal,
			c.SectorResponsibles.Contabil,
			c.SectorResponsibles.Financeiro,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if closer != nil {
		return closer.Close()
	}
	return nil
}
