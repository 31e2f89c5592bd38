package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

const FinancialSheet = "Relatório Financeiro"

var financialHeaders = []string{
	"Nome da Empresa", "CNPJ", "Valor Honorário", "Grupo",
	"Classificação", "Regime Tributário", "Município", "Situação",
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// WriteFinancialXLSX grava a planilha do relatório financeiro: uma linha por empresa
// com honorário positivo e uma linha TOTAL no final.
func WriteFinancialXLSX(w io.Writer, all []models.Company) error {
	companies := WithHonorary(all)

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	// Excelize cria "Sheet1" por padrão; renomeia em vez de criar outra aba.
	if err := xlsx.SetSheetName(xlsx.GetSheetName(0), FinancialSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := xlsx.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A659E"}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := xlsx.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}

	for col, h := range financialHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := xlsx.SetCellValue(FinancialSheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(financialHeaders), 1)
	if err := xlsx.SetCellStyle(FinancialSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, c := range companies {
		values := []any{
			c.Name,
			c.TaxID,
			c.HonoraryValue,
			orDefault(c.Group, labelNoGroup),
			orDefault(c.Classification, labelNotInformed),
			regimeOf(&c),
			orDefault(c.Municipality, labelNotInformed),
			orDefault(c.Situation, labelNotInformed),
		}
		if err := setRow(xlsx, row, values); err != nil {
			return err
		}
		row++
	}
	total := []any{"TOTAL", "-", money(TotalRevenue(companies)), "-", "-", "-", "-", "-"}
	if err := setRow(xlsx, row, total); err != nil {
		return err
	}

	if err := xlsx.SetCellStyle(FinancialSheet, "C2", fmt.Sprintf("C%d", row), moneyStyle); err != nil {
		return err
	}
	if err := xlsx.SetColWidth(FinancialSheet, "A", "A", 40); err != nil {
		return err
	}
	if err := xlsx.SetColWidth(FinancialSheet, "B", "H", 20); err != nil {
		return err
	}

	if _, err := xlsx.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(xlsx *excelize.File, row int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	return xlsx.SetSheetRow(FinancialSheet, cell, &values)
}
