package importer

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestProbe_UTF8First(t *testing.T) {
	data := []byte("Nome;CNPJ\nAcme;11222333000181\n")
	p, err := Probe(data)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if p.Encoding != EncodingUTF8 {
		t.Fatalf("encoding=%s want=%s", p.Encoding, EncodingUTF8)
	}
	if len(p.Rows) != 1 || p.Rows[0]["Nome"] != "Acme" || p.Rows[0]["CNPJ"] != "11222333000181" {
		t.Fatalf("rows=%v", p.Rows)
	}
}

func TestProbe_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nome;Regime\nAcme;Lucro Real\n")...)
	p, err := Probe(data)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if p.Headers[0] != "Nome" {
		t.Fatalf("headers=%q", p.Headers)
	}
}

func TestProbe_Latin1Fallback(t *testing.T) {
	src := "RAZÃO SOCIAL;Município\nPadaria São João;Goiânia\n"
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(src))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p, err := Probe(data)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if p.Encoding != EncodingISO88591 {
		t.Fatalf("encoding=%s want=%s", p.Encoding, EncodingISO88591)
	}
	if got := p.Rows[0]["RAZÃO SOCIAL"]; got != "Padaria São João" {
		t.Fatalf("got=%q", got)
	}
}

func TestProbe_NoNameHeader(t *testing.T) {
	_, err := Probe([]byte("Foo;Bar\n1;2\n"))
	if !errors.Is(err, ErrNoValidEncoding) {
		t.Fatalf("err=%v want=ErrNoValidEncoding", err)
	}
	_, err = Probe(nil)
	if !errors.Is(err, ErrNoValidEncoding) {
		t.Fatalf("arquivo vazio: err=%v", err)
	}
}

func TestProbeWith_OrderAndFailures(t *testing.T) {
	calls := []string{}
	fail := func(name string) Encoding {
		return Encoding{Name: name, Decode: func(b []byte) ([]byte, error) {
			calls = append(calls, name)
			return nil, errors.New("boom")
		}}
	}
	ok := Encoding{Name: "ok", Decode: func(b []byte) ([]byte, error) {
		calls = append(calls, "ok")
		return b, nil
	}}
	p, err := ProbeWith([]byte("Nome\nA\n"), []Encoding{fail("a"), fail("b"), ok})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if p.Encoding != "ok" {
		t.Fatalf("encoding=%s", p.Encoding)
	}
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("calls=%v", calls)
	}
}

func TestParseCSV_RaggedAndBlankLines(t *testing.T) {
	text := []byte(" Nome ;CNPJ;Grupo\nA;1\n;;\n\"B; Ltda\";2;G1;extra\n")
	headers, rows, lines, err := ParseCSV(text)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if headers[0] != "Nome" {
		t.Fatalf("header não foi aparado: %q", headers[0])
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d want=2 (%v)", len(rows), rows)
	}
	if _, ok := rows[0]["Grupo"]; ok {
		t.Fatal("célula ausente não deveria virar chave")
	}
	if rows[1]["Nome"] != "B; Ltda" || rows[1]["Grupo"] != "G1" {
		t.Fatalf("row2=%v", rows[1])
	}
	// o registro ";;" some, mas ocupa a posição 2
	if len(lines) != 2 || lines[0] != 1 || lines[1] != 3 {
		t.Fatalf("lines=%v want=[1 3]", lines)
	}
}

// linhas vazias, registros em branco e células com quebra de linha contam na posição
func TestParseCSV_LinePositions(t *testing.T) {
	text := []byte("Nome;Obs\nBoa;\n;\n\n\"Multi\nLinha\";x\nRuim;\n")
	_, rows, lines, err := ParseCSV(text)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d want=3 (%v)", len(rows), rows)
	}
	want := []int{1, 4, 5}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("lines=%v want=%v", lines, want)
		}
	}
	if rows[2]["Nome"] != "Ruim" {
		t.Fatalf("row3=%v", rows[2])
	}
}

func TestParseCSV_DuplicateHeaderKeepsFirst(t *testing.T) {
	_, rows, _, err := ParseCSV([]byte("Nome;Nome\nA;B\n"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rows[0]["Nome"] != "A" {
		t.Fatalf("got=%q", rows[0]["Nome"])
	}
}
