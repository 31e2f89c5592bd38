package utils

/*

go test -run 'TestParseBRL|TestFormatBRL' -v ./internal/utils -count=1

*/

import "testing"

func TestParseBRL(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"R$ 1.234,56", "1234.56", true},
		{"1234,5", "1234.5", true},
		{"1234.56", "1234.56", true},
		{" R$  980 ", "980", true},
		{"1.500.000,00", "1500000", true},
		{"R$ 1.500", "1500", true},
		{"2.000", "2000", true},
		{"1.234.567", "1234567", true},
		{"1,234.56", "1234.56", true},
		{"0.5", "0.5", true},
		{"1.5", "1.5", true},
		{"-R$ 1.500", "-1500", true},
		{"1.23.45", "0", false},
		{"", "0", false},
		{"R$", "0", false},
		{"abc", "0", false},
		{"12,34,56", "0", false},
	}
	for _, tc := range cases {
		got, ok := ParseBRL(tc.in)
		if ok != tc.wantOK {
			t.Fatalf("in=%q ok=%v want=%v", tc.in, ok, tc.wantOK)
		}
		if ok && got.String() != tc.want {
			t.Fatalf("in=%q got=%s want=%s", tc.in, got.String(), tc.want)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"12.5", "R$ 12,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1500000", "R$ 1.500.000,00"},
		{"-980.1", "-R$ 980,10"},
	}
	for _, tc := range cases {
		d, ok := ParseBRL(tc.in)
		if !ok {
			t.Fatalf("in=%q não parseou", tc.in)
		}
		if got := FormatBRL(d); got != tc.want {
			t.Fatalf("in=%q got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestValidateTaxID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11222333000181", true},
		{"12345678909", true},
		{"00000000000000", false},
		{"11111111111", false},
		{"123", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateTaxID(SanitizeTaxID(tc.in)); got != tc.want {
			t.Fatalf("in=%q want=%v got=%v", tc.in, tc.want, got)
		}
	}
	if got := SanitizeTaxID("11.222.333/0001-81"); got != "11222333000181" {
		t.Fatalf("sanitize got=%q", got)
	}
}
