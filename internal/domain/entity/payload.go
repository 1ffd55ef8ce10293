package entity

// ExpedicaoPayload is the body posted to the WMS expedição endpoint. Unlike
// Expedicao it has no optional fields: everything the operator left absent is
// sent as an empty string.
type ExpedicaoPayload struct {
	CNPJFilial     string                `json:"CNPJFilial"`
	Documento      string                `json:"Documento"`
	Emissao        string                `json:"Emissao"`
	Destinatario   DestinatarioPayload   `json:"Destinatario"`
	Itens          []ItemPayload         `json:"Itens"`
	Transportadora TransportadoraPayload `json:"Transportadora"`
	ClienteRetira  bool                  `json:"ClienteRetira"`
	Observacao     string                `json:"Observacao"`
}

// DestinatarioPayload is the recipient as sent to the WMS
type DestinatarioPayload struct {
	CNPJCPF     string `json:"CNPJCPF"`
	Nome        string `json:"Nome"`
	Logradouro  string `json:"Logradouro"`
	Numero      string `json:"Numero"`
	Complemento string `json:"Complemento"`
	Bairro      string `json:"Bairro"`
	Cidade      string `json:"Cidade"`
	UF          string `json:"UF"`
	CEP         string `json:"CEP"`
}

// ItemPayload is a line item as sent to the WMS
type ItemPayload struct {
	NrItem     string `json:"NrItem"`
	Codigo     string `json:"Codigo"`
	Valor      string `json:"Valor"`
	Unidade    string `json:"Unidade"`
	Quantidade string `json:"Quantidade"`
	ObsItem    string `json:"ObsItem"`
}

// TransportadoraPayload is the carrier as sent to the WMS
type TransportadoraPayload struct {
	CNPJ        string `json:"CNPJ"`
	Nome        string `json:"Nome"`
	Logradouro  string `json:"Logradouro"`
	Numero      string `json:"Numero"`
	Complemento string `json:"Complemento"`
	Bairro      string `json:"Bairro"`
	Cidade      string `json:"Cidade"`
	UF          string `json:"UF"`
	CEP         string `json:"CEP"`
}

// Payload converts the order into its wire form. Absent optional fields become
// empty strings; no other value is changed.
func (e Expedicao) Payload() ExpedicaoPayload {
	p := ExpedicaoPayload{
		CNPJFilial:     e.CNPJFilial,
		Documento:      e.Documento,
		Emissao:        e.Emissao,
		Destinatario:   e.Destinatario.payload(),
		Itens:          make([]ItemPayload, 0, len(e.Itens)),
		Transportadora: e.Transportadora.payload(),
		ClienteRetira:  e.ClienteRetira,
		Observacao:     StringValue(e.Observacao),
	}
	for _, item := range e.Itens {
		p.Itens = append(p.Itens, ItemPayload{
			NrItem:     item.NrItem,
			Codigo:     item.Codigo,
			Valor:      item.Valor,
			Unidade:    item.Unidade,
			Quantidade: item.Quantidade,
			ObsItem:    StringValue(item.ObsItem),
		})
	}
	return p
}

func (d Destinatario) payload() DestinatarioPayload {
	return DestinatarioPayload{
		CNPJCPF:     d.CNPJCPF,
		Nome:        d.Nome,
		Logradouro:  d.Logradouro,
		Numero:      d.Numero,
		Complemento: StringValue(d.Complemento),
		Bairro:      d.Bairro,
		Cidade:      d.Cidade,
		UF:          d.UF,
		CEP:         StringValue(d.CEP),
	}
}

func (t Transportadora) payload() TransportadoraPayload {
	return TransportadoraPayload{
		CNPJ:        t.CNPJ,
		Nome:        t.Nome,
		Logradouro:  t.Logradouro,
		Numero:      t.Numero,
		Complemento: StringValue(t.Complemento),
		Bairro:      t.Bairro,
		Cidade:      t.Cidade,
		UF:          t.UF,
		CEP:         StringValue(t.CEP),
	}
}

// FillAbsent returns a copy of the order where every absent optional field is
// set to the empty string. Applying it more than once has no further effect.
func (e Expedicao) FillAbsent() Expedicao {
	out := e.Clone()
	fill := func(p **string) {
		if *p == nil {
			*p = StringPtr("")
		}
	}
	fill(&out.Observacao)
	fill(&out.Destinatario.Complemento)
	fill(&out.Destinatario.CEP)
	fill(&out.Transportadora.Complemento)
	fill(&out.Transportadora.CEP)
	for i := range out.Itens {
		fill(&out.Itens[i].ObsItem)
	}
	return out
}
