package entity

import (
	"errors"
	"testing"
	"time"
)

func TestFieldNamesRoundTrip(t *testing.T) {
	for _, f := range Fields() {
		got, ok := ParseField(f.String())
		if !ok || got != f {
			t.Fatalf("ParseField(%q) = %v, %v; want %v", f.String(), got, ok, f)
		}
	}
	for _, f := range ItemFields() {
		got, ok := ParseItemField(f.String())
		if !ok || got != f {
			t.Fatalf("ParseItemField(%q) = %v, %v; want %v", f.String(), got, ok, f)
		}
	}
}

func TestParseFieldUnknown(t *testing.T) {
	for _, path := range []string{"", "Emissao", "Destinatario", "Destinatario.Foo", "Itens[0].Codigo"} {
		if _, ok := ParseField(path); ok {
			t.Fatalf("ParseField(%q) should fail", path)
		}
	}
	if _, ok := ParseItemField("NrItem"); ok {
		t.Fatal("NrItem must not be editable")
	}
}

func TestFieldSetLeavesSiblingsUntouched(t *testing.T) {
	for _, f := range Fields() {
		if f == FieldClienteRetira {
			continue
		}
		t.Run(f.String(), func(t *testing.T) {
			e := NewExpedicao(time.Now())
			before := e.Clone()

			if err := f.Set(&e, "value"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if got := f.Get(&e); got != "value" {
				t.Fatalf("Get = %q, want value", got)
			}
			for _, other := range Fields() {
				if other == f {
					continue
				}
				if other.Get(&e) != other.Get(&before) {
					t.Fatalf("setting %s changed %s", f, other)
				}
			}
		})
	}
}

func TestFieldSetClienteRetira(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"on", true},
		{"true", true},
		{"Sim", true},
		{"false", false},
		{"0", false},
	}
	for _, tc := range cases {
		e := NewExpedicao(time.Now())
		if err := FieldClienteRetira.Set(&e, tc.value); err != nil {
			t.Fatalf("Set(%q): %v", tc.value, err)
		}
		if e.ClienteRetira != tc.want {
			t.Fatalf("Set(%q) ClienteRetira = %v, want %v", tc.value, e.ClienteRetira, tc.want)
		}
	}

	e := NewExpedicao(time.Now())
	if err := FieldClienteRetira.Set(&e, "talvez"); !errors.Is(err, ErrInvalidFlag) {
		t.Fatalf("Set(talvez) error = %v, want ErrInvalidFlag", err)
	}
}

func TestItemFieldSet(t *testing.T) {
	item := NewItem(1)
	ItemQuantidade.Set(&item, "5")
	ItemObsItem.Set(&item, "frágil")

	if item.Quantidade != "5" || StringValue(item.ObsItem) != "frágil" {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.NrItem != "1" || item.Valor != "0" {
		t.Fatalf("siblings changed: %+v", item)
	}
}

func TestUnknownFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an undeclared field")
		}
	}()
	e := NewExpedicao(time.Now())
	_ = Field(999).Set(&e, "x")
}
