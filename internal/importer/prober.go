package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrNoValidEncoding: nenhuma codificação produziu um cabeçalho com coluna de nome.
var ErrNoValidEncoding = errors.New("no encoding produced valid data")

// Nomes das codificações tentadas, na ordem do probe.
const (
	EncodingUTF8        = "utf-8"
	EncodingISO88591    = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

// Fragmentos que identificam a coluna de nome no cabeçalho (substring, case-sensitive).
var nameFragments = []string{"RAZÃO", "RAZ", "Empresas", "Nome"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder converte os bytes brutos para UTF-8.
type Decoder func([]byte) ([]byte, error)

// Encoding é uma tentativa do probe.
type Encoding struct {
	Name   string
	Decode Decoder
}

// DefaultEncodings: UTF-8 estrito, depois ISO-8859-1, depois Windows-1252.
var DefaultEncodings = []Encoding{
	{Name: EncodingUTF8, Decode: decodeUTF8},
	{Name: EncodingISO88591, Decode: charmapDecoder(charmap.ISO8859_1)},
	{Name: EncodingWindows1252, Decode: charmapDecoder(charmap.Windows1252)},
}

func decodeUTF8(b []byte) ([]byte, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if !utf8.Valid(b) {
		return nil, errors.New("invalid utf-8 sequence")
	}
	return b, nil
}

func charmapDecoder(cm *charmap.Charmap) Decoder {
	return func(b []byte) ([]byte, error) {
		out, _, err := transform.Bytes(cm.NewDecoder(), b)
		return out, err
	}
}

// Parsed é o resultado de um probe bem-sucedido.
type Parsed struct {
	Encoding string
	Headers  []string
	Rows     []Row
	// Lines[i] é a posição (1-based, sem o cabeçalho) de Rows[i] no arquivo,
	// contando linhas vazias e registros em branco.
	Lines []int
}

// Probe tenta as codificações padrão em ordem.
func Probe(data []byte) (*Parsed, error) {
	return ProbeWith(data, DefaultEncodings)
}

// ProbeWith tenta cada codificação em ordem; a primeira cujo cabeçalho contém um
// fragmento de nome vence. Falhas de decode/parse apenas passam para a próxima.
func ProbeWith(data []byte, encodings []Encoding) (*Parsed, error) {
	for _, enc := range encodings {
		text, err := enc.Decode(data)
		if err != nil {
			continue
		}
		headers, rows, lines, err := ParseCSV(text)
		if err != nil {
			continue
		}
		if !hasNameHeader(headers) {
			continue
		}
		return &Parsed{Encoding: enc.Name, Headers: headers, Rows: rows, Lines: lines}, nil
	}
	return nil, ErrNoValidEncoding
}

func hasNameHeader(headers []string) bool {
	for _, h := range headers {
		for _, f := range nameFragments {
			if strings.Contains(h, f) {
				return true
			}
		}
	}
	return false
}

// ParseCSV lê texto UTF-8 separado por ';' com linha de cabeçalho.
// Células ausentes não viram chave na linha; cabeçalho repetido mantém a primeira coluna.
// Registros em branco são descartados, mas continuam contando na posição (lines)
// das linhas seguintes, assim como as linhas vazias que o csv.Reader pula.
func ParseCSV(text []byte) (headers []string, rows []Row, lines []int, err error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(text, utf8BOM)))
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil, errors.New("empty file")
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read header: %w", err)
	}
	headers = make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	prevEnd := endLine(r, header)
	pos := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read row %d: %w", pos+1, err)
		}
		start, _ := r.FieldPos(0)
		pos += start - prevEnd
		prevEnd = endLine(r, rec)

		if blankRecord(rec) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i >= len(rec) || h == "" {
				continue
			}
			if _, dup := row[h]; dup {
				continue
			}
			row[h] = rec[i]
		}
		rows = append(rows, row)
		lines = append(lines, pos)
	}
	return headers, rows, lines, nil
}

// endLine devolve a última linha física do registro recém-lido
// (campo entre aspas pode ocupar várias linhas).
func endLine(r *csv.Reader, rec []string) int {
	last := len(rec) - 1
	line, _ := r.FieldPos(last)
	return line + strings.Count(rec[last], "\n")
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
