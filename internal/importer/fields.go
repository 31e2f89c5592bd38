package importer

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Campos canônicos da tabela de variações.
const (
	FieldName                  = "name"
	FieldCNPJ                  = "cnpj"
	FieldNewTaxRegime          = "newTaxRegime"
	FieldComplexityLevel       = "complexityLevel"
	FieldClientClass           = "clientClass"
	FieldSegment               = "segment"
	FieldCompanySector         = "companySector"
	FieldClassification        = "classification"
	FieldMunicipality          = "municipality"
	FieldSituation             = "situation"
	FieldGroup                 = "group"
	FieldHonoraryValue         = "honoraryValue"
	FieldResponsibleFiscal     = "responsibleFiscal"
	FieldResponsiblePessoal    = "responsiblePessoal"
	FieldResponsibleContabil   = "responsibleContabil"
	FieldResponsibleFinanceiro = "responsibleFinanceiro"
)

// Row é uma linha do CSV: cabeçalho -> valor bruto.
type Row map[string]string

// FieldVariations mapeia campo canônico -> cabeçalhos aceitos, em ordem de prioridade.
type FieldVariations map[string][]string

//go:embed fields.yaml
var fieldsYAML []byte

var (
	variationsOnce sync.Once
	variations     FieldVariations
	variationsErr  error
)

// Variations devolve a tabela embutida, carregada uma única vez.
// Panica se o YAML embutido estiver inválido (erro de build, não de runtime).
func Variations() FieldVariations {
	variationsOnce.Do(func() {
		variations, variationsErr = ParseVariations(fieldsYAML)
	})
	if variationsErr != nil {
		panic(fmt.Sprintf("importer: invalid embedded fields.yaml: %v", variationsErr))
	}
	return variations
}

// ParseVariations lê uma tabela de variações em YAML. O campo "name" é obrigatório.
func ParseVariations(b []byte) (FieldVariations, error) {
	var fv FieldVariations
	if err := yaml.Unmarshal(b, &fv); err != nil {
		return nil, fmt.Errorf("parse field variations: %w", err)
	}
	if len(fv[FieldName]) == 0 {
		return nil, fmt.Errorf("field variations: %q has no header variants", FieldName)
	}
	return fv, nil
}

// Of devolve as variações de um campo (nil se desconhecido).
func (fv FieldVariations) Of(field string) []string { return fv[field] }

// Fields lista os campos canônicos em ordem alfabética.
func (fv FieldVariations) Fields() []string {
	out := make([]string, 0, len(fv))
	for k := range fv {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FieldForHeader devolve o campo canônico cujo conjunto de variações contém o cabeçalho exato.
func (fv FieldVariations) FieldForHeader(header string) (string, bool) {
	for _, field := range fv.Fields() {
		for _, v := range fv[field] {
			if v == header {
				return field, true
			}
		}
	}
	return "", false
}

// FindFieldValue devolve o valor da primeira variação presente como chave na linha.
// Comparação exata; a ordem de variants desempata linhas com cabeçalhos repetidos.
func FindFieldValue(row Row, variants []string) string {
	for _, v := range variants {
		if val, ok := row[v]; ok {
			return val
		}
	}
	return ""
}

// Lookup é FindFieldValue sobre um campo canônico da tabela.
func (fv FieldVariations) Lookup(row Row, field string) string {
	return FindFieldValue(row, fv[field])
}
