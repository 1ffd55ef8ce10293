package entity

import (
	"strconv"
	"time"
)

// EmissaoLayout is the date layout the WMS expects for Emissao
const EmissaoLayout = "2006-01-02"

// Expedicao represents a shipment order being registered by an operator
type Expedicao struct {
	CNPJFilial     string         `json:"CNPJFilial" yaml:"CNPJFilial" validate:"required,branch"`
	Documento      string         `json:"Documento" yaml:"Documento" validate:"required"`
	Emissao        string         `json:"Emissao" yaml:"-" validate:"required,datetime=2006-01-02"`
	Destinatario   Destinatario   `json:"Destinatario" yaml:"Destinatario"`
	Itens          []Item         `json:"Itens" yaml:"Itens" validate:"min=1,dive"`
	Transportadora Transportadora `json:"Transportadora" yaml:"Transportadora"`
	ClienteRetira  bool           `json:"ClienteRetira" yaml:"ClienteRetira"`
	Observacao     *string        `json:"Observacao,omitempty" yaml:"Observacao,omitempty"`
}

// Destinatario is the party receiving the shipment
type Destinatario struct {
	CNPJCPF     string  `json:"CNPJCPF" yaml:"CNPJCPF" validate:"required,max=18"`
	Nome        string  `json:"Nome" yaml:"Nome" validate:"required"`
	Logradouro  string  `json:"Logradouro" yaml:"Logradouro" validate:"required"`
	Numero      string  `json:"Numero" yaml:"Numero" validate:"required"`
	Complemento *string `json:"Complemento,omitempty" yaml:"Complemento,omitempty"`
	Bairro      string  `json:"Bairro" yaml:"Bairro" validate:"required"`
	Cidade      string  `json:"Cidade" yaml:"Cidade" validate:"required"`
	UF          string  `json:"UF" yaml:"UF" validate:"required,alpha,len=2"`
	CEP         *string `json:"CEP,omitempty" yaml:"CEP,omitempty" validate:"omitempty,max=9"`
}

// Item is one product line of an Expedicao
type Item struct {
	NrItem     string  `json:"NrItem" yaml:"-"`
	Codigo     string  `json:"Codigo" yaml:"Codigo" validate:"required"`
	Valor      string  `json:"Valor" yaml:"Valor" validate:"required,numeric"`
	Unidade    string  `json:"Unidade" yaml:"Unidade" validate:"required"`
	Quantidade string  `json:"Quantidade" yaml:"Quantidade" validate:"required,numeric"`
	ObsItem    *string `json:"ObsItem,omitempty" yaml:"ObsItem,omitempty"`
}

// Transportadora is the carrier of the shipment. A blank carrier is replaced by
// the customer pickup record when the payload is built.
type Transportadora struct {
	CNPJ        string  `json:"CNPJ" yaml:"CNPJ"`
	Nome        string  `json:"Nome" yaml:"Nome"`
	Logradouro  string  `json:"Logradouro" yaml:"Logradouro"`
	Numero      string  `json:"Numero" yaml:"Numero"`
	Complemento *string `json:"Complemento,omitempty" yaml:"Complemento,omitempty"`
	Bairro      string  `json:"Bairro" yaml:"Bairro"`
	Cidade      string  `json:"Cidade" yaml:"Cidade"`
	UF          string  `json:"UF" yaml:"UF" validate:"max=2"`
	CEP         *string `json:"CEP,omitempty" yaml:"CEP,omitempty"`
}

// IsBlank reports whether neither the carrier name nor its tax id was filled in
func (t Transportadora) IsBlank() bool {
	return t.Nome == "" && t.CNPJ == ""
}

// NewExpedicao returns the default order an operator starts from: the default
// branch, the issue date of now and a single empty item.
func NewExpedicao(now time.Time) Expedicao {
	return Expedicao{
		CNPJFilial:     DefaultBranch().CNPJ,
		Emissao:        now.UTC().Format(EmissaoLayout),
		Destinatario:   Destinatario{Complemento: StringPtr(""), CEP: StringPtr("")},
		Itens:          []Item{NewItem(1)},
		Transportadora: Transportadora{Complemento: StringPtr(""), CEP: StringPtr("")},
		Observacao:     StringPtr(""),
	}
}

// NewItem returns an empty line item with the given sequence number
func NewItem(nr int) Item {
	return Item{
		NrItem:     strconv.Itoa(nr),
		Valor:      "0",
		Quantidade: "1",
		ObsItem:    StringPtr(""),
	}
}

// Renumber rewrites every NrItem so that the items are numbered 1..N in order
func (e *Expedicao) Renumber() {
	for i := range e.Itens {
		e.Itens[i].NrItem = strconv.Itoa(i + 1)
	}
}

// Clone returns a deep copy of the order
func (e Expedicao) Clone() Expedicao {
	out := e
	out.Observacao = clonePtr(e.Observacao)
	out.Destinatario.Complemento = clonePtr(e.Destinatario.Complemento)
	out.Destinatario.CEP = clonePtr(e.Destinatario.CEP)
	out.Transportadora.Complemento = clonePtr(e.Transportadora.Complemento)
	out.Transportadora.CEP = clonePtr(e.Transportadora.CEP)
	if e.Itens != nil {
		out.Itens = make([]Item, len(e.Itens))
		for i, item := range e.Itens {
			item.ObsItem = clonePtr(item.ObsItem)
			out.Itens[i] = item
		}
	}
	return out
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// StringValue dereferences p, treating nil as the empty string
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
