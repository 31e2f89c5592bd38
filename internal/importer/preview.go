package importer

import (
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// HeaderInfo descreve uma coluna do arquivo.
type HeaderInfo struct {
	Header     string `json:"header"`
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Preview é o diagnóstico de um arquivo, sem gravar nada.
type Preview struct {
	Encoding  string       `json:"encoding"`
	Headers   []HeaderInfo `json:"headers"`
	TotalRows int          `json:"totalRows"`
	ValidRows int          `json:"validRows"`
}

// BuildPreview detecta a codificação e classifica cada cabeçalho.
// Cabeçalhos fora da tabela recebem o campo mais parecido (sem acento, minúsculo) como sugestão.
func BuildPreview(data []byte, fv FieldVariations) (*Preview, error) {
	parsed, err := Probe(data)
	if err != nil {
		return nil, err
	}

	s := newSuggester(fv)
	p := &Preview{
		Encoding:  parsed.Encoding,
		Headers:   make([]HeaderInfo, 0, len(parsed.Headers)),
		TotalRows: len(parsed.Rows),
		ValidRows: len(ValidateParsed(parsed, fv)),
	}
	for _, h := range parsed.Headers {
		info := HeaderInfo{Header: h}
		if field, ok := fv.FieldForHeader(h); ok {
			info.Field = field
		} else if h != "" {
			info.Suggestion = s.suggest(h)
		}
		p.Headers = append(p.Headers, info)
	}
	return p, nil
}

type suggester struct {
	cm      *closestmatch.ClosestMatch
	byFold  map[string]string
	enabled bool
}

func newSuggester(fv FieldVariations) *suggester {
	s := &suggester{byFold: map[string]string{}}
	var words []string
	for _, field := range fv.Fields() {
		for _, v := range fv[field] {
			k := foldHeader(v)
			if _, seen := s.byFold[k]; seen {
				continue
			}
			s.byFold[k] = field
			words = append(words, k)
		}
	}
	if len(words) > 0 {
		s.cm = closestmatch.New(words, []int{2, 3})
		s.enabled = true
	}
	return s
}

func (s *suggester) suggest(header string) string {
	k := foldHeader(header)
	if field, ok := s.byFold[k]; ok {
		return field
	}
	if !s.enabled {
		return ""
	}
	best := s.cm.Closest(k)
	return s.byFold[best]
}

// foldHeader remove acentos, espaços extras e caixa.
func foldHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}
