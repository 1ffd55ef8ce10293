package entity

// Fixed identifiers of the account orders are registered for. These are
// compiled in; only the tenant can be overridden through configuration.
const (
	ClientID   = "8A697099-E130-4A57-BE47-DD8B72E3C003"
	ClientName = "Um Grau e Meio"

	DefaultTenant = "F8A63EBF-A4C5-457D-9482-2D6381318B8E"

	ExpedicaoURL = "https://api.maglog.com.br/api-wms/rest/1/event/expedicao"

	// FixedObservation prefixes every note sent to the WMS
	FixedObservation = "Maglog: pedido criado por Um Grau e Meio via integração."

	// ObservationSeparator joins FixedObservation and the operator's note
	ObservationSeparator = " | "
)

// Branch is an originating location an order can be registered under
type Branch struct {
	CNPJ string `json:"cnpj"`
	Name string `json:"name"`
}

var branches = []Branch{
	{CNPJ: "20230376000280", Name: "MALAF TRANSPORTES E LOGISTICA LTDA (Matriz/Filial)"},
}

// Branches returns the selectable branches, default first
func Branches() []Branch {
	out := make([]Branch, len(branches))
	copy(out, branches)
	return out
}

// DefaultBranch returns the branch pre-selected on a new order
func DefaultBranch() Branch {
	return branches[0]
}

// IsBranch reports whether cnpj belongs to one of the selectable branches
func IsBranch(cnpj string) bool {
	for _, b := range branches {
		if b.CNPJ == cnpj {
			return true
		}
	}
	return false
}

// PickupCarrier returns the carrier record sent when the operator leaves the
// carrier blank: the recipient collects the goods.
func PickupCarrier() Transportadora {
	return Transportadora{
		CNPJ:        "00000000000000",
		Nome:        "Cliente Retira",
		Logradouro:  "Cliente Retira",
		Numero:      "S/N",
		Complemento: StringPtr(""),
		Bairro:      "Não informado",
		Cidade:      "",
		UF:          "",
		CEP:         StringPtr("00000000"),
	}
}
