package importer

import "strings"

// ValidRow é uma linha aceita, com a posição (1-based) da linha no arquivo, sem o cabeçalho.
type ValidRow struct {
	Position int
	Row      Row
}

// ValidateRows mantém apenas linhas cujo campo de nome não é vazio após trim.
// Linhas rejeitadas somem sem contagem nem mensagem. A posição é o índice + 1.
func ValidateRows(rows []Row, fv FieldVariations) []ValidRow {
	return validateAt(rows, nil, fv)
}

// ValidateParsed valida as linhas do probe usando as posições reais do arquivo.
func ValidateParsed(p *Parsed, fv FieldVariations) []ValidRow {
	return validateAt(p.Rows, p.Lines, fv)
}

func validateAt(rows []Row, lines []int, fv FieldVariations) []ValidRow {
	out := make([]ValidRow, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(fv.Lookup(row, FieldName)) == "" {
			continue
		}
		pos := i + 1
		if i < len(lines) {
			pos = lines[i]
		}
		out = append(out, ValidRow{Position: pos, Row: row})
	}
	return out
}
