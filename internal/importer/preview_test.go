package importer

import "testing"

func TestBuildPreview(t *testing.T) {
	data := []byte("Razão Social;CNPJ;Municipio Sede;Observação\nAcme;1;Goiânia;x\n;2;;\n")
	p, err := BuildPreview(data, Variations())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if p.Encoding != EncodingUTF8 {
		t.Fatalf("encoding=%s", p.Encoding)
	}
	if p.TotalRows != 2 || p.ValidRows != 1 {
		t.Fatalf("total=%d valid=%d", p.TotalRows, p.ValidRows)
	}
	if p.Headers[0].Field != FieldName || p.Headers[1].Field != FieldCNPJ {
		t.Fatalf("headers=%+v", p.Headers)
	}
	if p.Headers[2].Field != "" || p.Headers[2].Suggestion != FieldMunicipality {
		t.Fatalf("municipio sede=%+v", p.Headers[2])
	}
}

func TestFoldHeader(t *testing.T) {
	if got := foldHeader("  Município   SEDE "); got != "municipio sede" {
		t.Fatalf("got=%q", got)
	}
}
