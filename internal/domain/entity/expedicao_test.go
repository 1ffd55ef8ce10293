package entity

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewExpedicaoDefaults(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	e := NewExpedicao(now)

	if e.CNPJFilial != DefaultBranch().CNPJ {
		t.Fatalf("CNPJFilial = %q, want default branch %q", e.CNPJFilial, DefaultBranch().CNPJ)
	}
	if e.Emissao != "2025-03-14" {
		t.Fatalf("Emissao = %q, want 2025-03-14", e.Emissao)
	}
	if e.ClienteRetira {
		t.Fatal("ClienteRetira should default to false")
	}
	want := []Item{{NrItem: "1", Valor: "0", Quantidade: "1", ObsItem: StringPtr("")}}
	if diff := cmp.Diff(want, e.Itens); diff != "" {
		t.Fatalf("default items mismatch (-want +got):\n%s", diff)
	}
}

func TestNewExpedicaoUsesUTCDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2025, 3, 14, 22, 0, 0, 0, loc)

	if got := NewExpedicao(now).Emissao; got != "2025-03-15" {
		t.Fatalf("Emissao = %q, want the UTC date 2025-03-15", got)
	}
}

func TestRenumber(t *testing.T) {
	e := Expedicao{Itens: []Item{{NrItem: "3", Codigo: "a"}, {NrItem: "7", Codigo: "b"}}}
	e.Renumber()

	for i, want := range []string{"1", "2"} {
		if e.Itens[i].NrItem != want {
			t.Fatalf("item %d NrItem = %q, want %q", i, e.Itens[i].NrItem, want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewExpedicao(time.Now())
	orig.Observacao = StringPtr("fragile")
	clone := orig.Clone()

	*clone.Observacao = "changed"
	*clone.Destinatario.CEP = "01001000"
	*clone.Itens[0].ObsItem = "changed"
	clone.Itens[0].Codigo = "SKU"

	if *orig.Observacao != "fragile" {
		t.Fatalf("clone shares Observacao")
	}
	if *orig.Destinatario.CEP != "" {
		t.Fatalf("clone shares Destinatario.CEP")
	}
	if *orig.Itens[0].ObsItem != "" || orig.Itens[0].Codigo != "" {
		t.Fatalf("clone shares items")
	}
}

func TestTransportadoraIsBlank(t *testing.T) {
	cases := []struct {
		name string
		t    Transportadora
		want bool
	}{
		{"empty", Transportadora{}, true},
		{"only address", Transportadora{Logradouro: "Rua A", Cidade: "Recife"}, true},
		{"name", Transportadora{Nome: "Jadlog"}, false},
		{"cnpj", Transportadora{CNPJ: "04884082000135"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.t.IsBlank(); got != tc.want {
				t.Fatalf("IsBlank() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFillAbsent(t *testing.T) {
	e := Expedicao{
		Documento: "PED-9",
		Itens:     []Item{{NrItem: "1", Codigo: "X"}},
	}

	filled := e.FillAbsent()

	for name, p := range map[string]*string{
		"Observacao":                 filled.Observacao,
		"Destinatario.Complemento":   filled.Destinatario.Complemento,
		"Destinatario.CEP":           filled.Destinatario.CEP,
		"Transportadora.Complemento": filled.Transportadora.Complemento,
		"Transportadora.CEP":         filled.Transportadora.CEP,
		"Itens[0].ObsItem":           filled.Itens[0].ObsItem,
	} {
		if p == nil || *p != "" {
			t.Fatalf("%s = %v, want empty string", name, p)
		}
	}
	if e.Observacao != nil || e.Itens[0].ObsItem != nil {
		t.Fatal("FillAbsent modified its receiver")
	}
	if diff := cmp.Diff(filled, filled.FillAbsent()); diff != "" {
		t.Fatalf("FillAbsent is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestFillAbsentKeepsValues(t *testing.T) {
	e := NewExpedicao(time.Now())
	e.Destinatario.CEP = StringPtr("50000-000")
	e.Observacao = StringPtr("  keep spacing ")

	filled := e.FillAbsent()
	if *filled.Destinatario.CEP != "50000-000" || *filled.Observacao != "  keep spacing " {
		t.Fatalf("FillAbsent changed present values: %+v", filled)
	}
}

func TestPayloadFlattensOptionals(t *testing.T) {
	e := Expedicao{
		CNPJFilial: "20230376000280",
		Documento:  "PED-1",
		Emissao:    "2025-01-02",
		Itens:      []Item{{NrItem: "1", Codigo: "A", Valor: "10", Unidade: "UN", Quantidade: "2"}},
	}

	p := e.Payload()

	want := ExpedicaoPayload{
		CNPJFilial: "20230376000280",
		Documento:  "PED-1",
		Emissao:    "2025-01-02",
		Itens:      []ItemPayload{{NrItem: "1", Codigo: "A", Valor: "10", Unidade: "UN", Quantidade: "2"}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}
