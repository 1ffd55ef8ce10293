package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFlag is returned when a boolean field receives a non boolean value
var ErrInvalidFlag = errors.New("invalid boolean value")

// Field identifies one editable field of an Expedicao. Emissao and the item
// sequence numbers are managed by the order itself and have no Field.
type Field int

const (
	FieldCNPJFilial Field = iota + 1
	FieldDocumento
	FieldClienteRetira
	FieldObservacao

	FieldDestinatarioCNPJCPF
	FieldDestinatarioNome
	FieldDestinatarioLogradouro
	FieldDestinatarioNumero
	FieldDestinatarioComplemento
	FieldDestinatarioBairro
	FieldDestinatarioCidade
	FieldDestinatarioUF
	FieldDestinatarioCEP

	FieldTransportadoraCNPJ
	FieldTransportadoraNome
	FieldTransportadoraLogradouro
	FieldTransportadoraNumero
	FieldTransportadoraComplemento
	FieldTransportadoraBairro
	FieldTransportadoraCidade
	FieldTransportadoraUF
	FieldTransportadoraCEP

	fieldEnd
)

var fieldNames = map[Field]string{
	FieldCNPJFilial:    "CNPJFilial",
	FieldDocumento:     "Documento",
	FieldClienteRetira: "ClienteRetira",
	FieldObservacao:    "Observacao",

	FieldDestinatarioCNPJCPF:     "Destinatario.CNPJCPF",
	FieldDestinatarioNome:        "Destinatario.Nome",
	FieldDestinatarioLogradouro:  "Destinatario.Logradouro",
	FieldDestinatarioNumero:      "Destinatario.Numero",
	FieldDestinatarioComplemento: "Destinatario.Complemento",
	FieldDestinatarioBairro:      "Destinatario.Bairro",
	FieldDestinatarioCidade:      "Destinatario.Cidade",
	FieldDestinatarioUF:          "Destinatario.UF",
	FieldDestinatarioCEP:         "Destinatario.CEP",

	FieldTransportadoraCNPJ:        "Transportadora.CNPJ",
	FieldTransportadoraNome:        "Transportadora.Nome",
	FieldTransportadoraLogradouro:  "Transportadora.Logradouro",
	FieldTransportadoraNumero:      "Transportadora.Numero",
	FieldTransportadoraComplemento: "Transportadora.Complemento",
	FieldTransportadoraBairro:      "Transportadora.Bairro",
	FieldTransportadoraCidade:      "Transportadora.Cidade",
	FieldTransportadoraUF:          "Transportadora.UF",
	FieldTransportadoraCEP:         "Transportadora.CEP",
}

var fieldsByName = func() map[string]Field {
	out := make(map[string]Field, len(fieldNames))
	for f, name := range fieldNames {
		out[name] = f
	}
	return out
}()

// Fields returns every editable field in form order
func Fields() []Field {
	out := make([]Field, 0, int(fieldEnd)-1)
	for f := FieldCNPJFilial; f < fieldEnd; f++ {
		out = append(out, f)
	}
	return out
}

// ParseField resolves a dotted form name such as "Destinatario.CNPJCPF"
func ParseField(path string) (Field, bool) {
	f, ok := fieldsByName[strings.TrimSpace(path)]
	return f, ok
}

// Valid reports whether f is one of the declared fields
func (f Field) Valid() bool {
	return f > 0 && f < fieldEnd
}

// String returns the dotted form name of the field
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Get returns the current value of the field on e
func (f Field) Get(e *Expedicao) string {
	if f == FieldClienteRetira {
		return strconv.FormatBool(e.ClienteRetira)
	}
	if p := f.optional(e); p != nil {
		return StringValue(*p)
	}
	return *f.required(e)
}

// Set replaces the field on e with value, leaving every other field untouched
func (f Field) Set(e *Expedicao, value string) error {
	if f == FieldClienteRetira {
		b, err := ParseFlag(value)
		if err != nil {
			return err
		}
		e.ClienteRetira = b
		return nil
	}
	if p := f.optional(e); p != nil {
		*p = StringPtr(value)
		return nil
	}
	*f.required(e) = value
	return nil
}

func (f Field) optional(e *Expedicao) **string {
	switch f {
	case FieldObservacao:
		return &e.Observacao
	case FieldDestinatarioComplemento:
		return &e.Destinatario.Complemento
	case FieldDestinatarioCEP:
		return &e.Destinatario.CEP
	case FieldTransportadoraComplemento:
		return &e.Transportadora.Complemento
	case FieldTransportadoraCEP:
		return &e.Transportadora.CEP
	}
	return nil
}

func (f Field) required(e *Expedicao) *string {
	switch f {
	case FieldCNPJFilial:
		return &e.CNPJFilial
	case FieldDocumento:
		return &e.Documento
	case FieldDestinatarioCNPJCPF:
		return &e.Destinatario.CNPJCPF
	case FieldDestinatarioNome:
		return &e.Destinatario.Nome
	case FieldDestinatarioLogradouro:
		return &e.Destinatario.Logradouro
	case FieldDestinatarioNumero:
		return &e.Destinatario.Numero
	case FieldDestinatarioBairro:
		return &e.Destinatario.Bairro
	case FieldDestinatarioCidade:
		return &e.Destinatario.Cidade
	case FieldDestinatarioUF:
		return &e.Destinatario.UF
	case FieldTransportadoraCNPJ:
		return &e.Transportadora.CNPJ
	case FieldTransportadoraNome:
		return &e.Transportadora.Nome
	case FieldTransportadoraLogradouro:
		return &e.Transportadora.Logradouro
	case FieldTransportadoraNumero:
		return &e.Transportadora.Numero
	case FieldTransportadoraBairro:
		return &e.Transportadora.Bairro
	case FieldTransportadoraCidade:
		return &e.Transportadora.Cidade
	case FieldTransportadoraUF:
		return &e.Transportadora.UF
	}
	panic(fmt.Sprintf("entity: unknown order field %s", f))
}

// ItemField identifies one editable field of an Item
type ItemField int

const (
	ItemCodigo ItemField = iota + 1
	ItemValor
	ItemUnidade
	ItemQuantidade
	ItemObsItem

	itemFieldEnd
)

var itemFieldNames = map[ItemField]string{
	ItemCodigo:     "Codigo",
	ItemValor:      "Valor",
	ItemUnidade:    "Unidade",
	ItemQuantidade: "Quantidade",
	ItemObsItem:    "ObsItem",
}

// ItemFields returns every editable item field in form order
func ItemFields() []ItemField {
	out := make([]ItemField, 0, int(itemFieldEnd)-1)
	for f := ItemCodigo; f < itemFieldEnd; f++ {
		out = append(out, f)
	}
	return out
}

// ParseItemField resolves an item field name such as "Quantidade"
func ParseItemField(name string) (ItemField, bool) {
	name = strings.TrimSpace(name)
	for f, n := range itemFieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// Valid reports whether f is one of the declared item fields
func (f ItemField) Valid() bool {
	return f > 0 && f < itemFieldEnd
}

func (f ItemField) String() string {
	if name, ok := itemFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("ItemField(%d)", int(f))
}

// Get returns the current value of the field on item
func (f ItemField) Get(item *Item) string {
	if f == ItemObsItem {
		return StringValue(item.ObsItem)
	}
	return *f.target(item)
}

// Set replaces the field on item with value
func (f ItemField) Set(item *Item, value string) {
	if f == ItemObsItem {
		item.ObsItem = StringPtr(value)
		return
	}
	*f.target(item) = value
}

func (f ItemField) target(item *Item) *string {
	switch f {
	case ItemCodigo:
		return &item.Codigo
	case ItemValor:
		return &item.Valor
	case ItemUnidade:
		return &item.Unidade
	case ItemQuantidade:
		return &item.Quantidade
	}
	panic(fmt.Sprintf("entity: unknown item field %s", f))
}

// ParseFlag reads a checkbox or boolean text value. An unchecked HTML checkbox
// is never posted, so the empty string is false.
func ParseFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return false, nil
	case "on", "sim":
		return true, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidFlag, value)
	}
	return b, nil
}
