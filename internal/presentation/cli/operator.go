package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/domain/entity"
)

var labels = map[entity.Field]string{
	entity.FieldDocumento:                 "Documento (Nº Pedido)",
	entity.FieldClienteRetira:             "Cliente retira?",
	entity.FieldObservacao:                "Observação",
	entity.FieldDestinatarioCNPJCPF:       "CNPJ/CPF",
	entity.FieldDestinatarioNome:          "Nome completo",
	entity.FieldDestinatarioLogradouro:    "Logradouro (Rua, Av.)",
	entity.FieldDestinatarioNumero:        "Número",
	entity.FieldDestinatarioComplemento:   "Complemento",
	entity.FieldDestinatarioBairro:        "Bairro",
	entity.FieldDestinatarioCidade:        "Cidade",
	entity.FieldDestinatarioUF:            "UF",
	entity.FieldDestinatarioCEP:           "CEP",
	entity.FieldTransportadoraCNPJ:        "CNPJ",
	entity.FieldTransportadoraNome:        "Nome",
	entity.FieldTransportadoraLogradouro:  "Logradouro",
	entity.FieldTransportadoraNumero:      "Número",
	entity.FieldTransportadoraComplemento: "Complemento",
	entity.FieldTransportadoraBairro:      "Bairro",
	entity.FieldTransportadoraCidade:      "Cidade",
	entity.FieldTransportadoraUF:          "UF",
	entity.FieldTransportadoraCEP:         "CEP",
}

var itemLabels = map[entity.ItemField]string{
	entity.ItemCodigo:     "Código",
	entity.ItemQuantidade: "Qtd",
	entity.ItemUnidade:    "UN",
	entity.ItemValor:      "Valor Unit.",
	entity.ItemObsItem:    "Observação do item",
}

var (
	recipientFields = []entity.Field{
		entity.FieldDestinatarioCNPJCPF,
		entity.FieldDestinatarioNome,
		entity.FieldDestinatarioLogradouro,
		entity.FieldDestinatarioNumero,
		entity.FieldDestinatarioComplemento,
		entity.FieldDestinatarioBairro,
		entity.FieldDestinatarioCEP,
		entity.FieldDestinatarioCidade,
		entity.FieldDestinatarioUF,
	}
	carrierFields = []entity.Field{
		entity.FieldTransportadoraCNPJ,
		entity.FieldTransportadoraNome,
		entity.FieldTransportadoraLogradouro,
		entity.FieldTransportadoraNumero,
		entity.FieldTransportadoraComplemento,
		entity.FieldTransportadoraBairro,
		entity.FieldTransportadoraCEP,
		entity.FieldTransportadoraCidade,
		entity.FieldTransportadoraUF,
	}
	itemPromptFields = []entity.ItemField{
		entity.ItemCodigo,
		entity.ItemQuantidade,
		entity.ItemUnidade,
		entity.ItemValor,
		entity.ItemObsItem,
	}
)

// Main menu entries, in display order
const (
	menuGeneral = iota
	menuRecipient
	menuItems
	menuCarrier
	menuNote
	menuPreview
	menuSubmit
	menuQuit
)

var menuOptions = []string{
	"Informações gerais",
	"Destinatário",
	"Itens do pedido",
	"Transportadora (opcional)",
	"Observação (opcional)",
	"Revisar envio",
	"Criar pedido",
	"Sair",
}

// Operator drives one order form from the terminal
type Operator struct {
	fc     *service.FormController
	driver PromptDriver
	dryRun bool
}

// NewOperator creates a terminal session over fc. With dryRun the submit
// entry prints the payload instead of sending it.
func NewOperator(fc *service.FormController, driver PromptDriver, dryRun bool) *Operator {
	return &Operator{fc: fc, driver: driver, dryRun: dryRun}
}

// Run shows the main menu until the operator quits. Aborting a prompt or
// cancelling ctx ends the session without error.
func (o *Operator) Run(ctx context.Context) error {
	err := o.loop(ctx)
	if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (o *Operator) loop(ctx context.Context) error {
	for {
		choice, err := o.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Cadastro de Pedidos - %s", entity.ClientName),
			Options: menuOptions,
		})
		if err != nil {
			return err
		}

		switch choice {
		case menuGeneral:
			err = o.editGeneral(ctx)
		case menuRecipient:
			err = o.editFields(ctx, recipientFields)
		case menuItems:
			err = o.editItems(ctx)
		case menuCarrier:
			err = o.editFields(ctx, carrierFields)
		case menuNote:
			err = o.editNote(ctx)
		case menuPreview:
			err = o.preview(ctx)
		case menuSubmit:
			err = o.submit(ctx)
		case menuQuit:
			return nil
		default:
			err = fmt.Errorf("cli: unknown menu entry %d", choice)
		}
		if err != nil {
			return err
		}
	}
}

func (o *Operator) editGeneral(ctx context.Context) error {
	order := o.fc.Order()
	branches := entity.Branches()
	options := make([]string, len(branches))
	current := 0
	for i, b := range branches {
		options[i] = b.CNPJ + " | " + b.Name
		if b.CNPJ == order.CNPJFilial {
			current = i
		}
	}
	idx, err := o.driver.Select(ctx, SelectConfig{Message: "CNPJ Filial", Options: options, DefaultIndex: current})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(branches) {
		return fmt.Errorf("cli: branch choice %d out of range", idx)
	}
	if err := o.fc.UpdateField(entity.FieldCNPJFilial, branches[idx].CNPJ); err != nil {
		return err
	}

	if err := o.editFields(ctx, []entity.Field{entity.FieldDocumento}); err != nil {
		return err
	}

	pickup, err := o.driver.Confirm(ctx, ConfirmConfig{Message: labels[entity.FieldClienteRetira], Default: order.ClienteRetira})
	if err != nil {
		return err
	}
	if err := o.fc.UpdateField(entity.FieldClienteRetira, fmt.Sprint(pickup)); err != nil {
		return err
	}
	return o.driver.Info(ctx, "Data de Emissão (fixo: hoje): "+order.Emissao)
}

func (o *Operator) editFields(ctx context.Context, fields []entity.Field) error {
	for _, field := range fields {
		order := o.fc.Order()
		value, err := o.driver.Input(ctx, InputConfig{
			Message: labels[field],
			Default: field.Get(&order),
		})
		if err != nil {
			return err
		}
		if err := o.fc.UpdateField(field, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func (o *Operator) editNote(ctx context.Context) error {
	order := o.fc.Order()
	note, err := o.driver.TextArea(ctx, InputConfig{
		Message: labels[entity.FieldObservacao],
		Default: entity.StringValue(order.Observacao),
	})
	if err != nil {
		return err
	}
	return o.fc.UpdateField(entity.FieldObservacao, note)
}

func (o *Operator) editItems(ctx context.Context) error {
	for {
		order := o.fc.Order()
		options := make([]string, 0, 2*len(order.Itens)+2)
		for _, item := range order.Itens {
			options = append(options, fmt.Sprintf("Editar item %s (%s)", item.NrItem, describeItem(item)))
		}
		for _, item := range order.Itens {
			options = append(options, fmt.Sprintf("Remover item %s", item.NrItem))
		}
		options = append(options, "+ Adicionar item", "Voltar")

		choice, err := o.driver.Select(ctx, SelectConfig{Message: "Itens do pedido", Options: options})
		if err != nil {
			return err
		}

		n := len(order.Itens)
		switch {
		case choice >= 0 && choice < n:
			if err := o.editItem(ctx, choice); err != nil {
				return err
			}
		case choice >= n && choice < 2*n:
			if err := o.fc.RemoveItem(choice - n); err != nil {
				return err
			}
		case choice == 2*n:
			if err := o.editItem(ctx, o.fc.AddItem()); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (o *Operator) editItem(ctx context.Context, index int) error {
	for _, field := range itemPromptFields {
		order := o.fc.Order()
		if index >= len(order.Itens) {
			return nil
		}
		value, err := o.driver.Input(ctx, InputConfig{
			Message: itemLabels[field],
			Default: field.Get(&order.Itens[index]),
		})
		if err != nil {
			return err
		}
		if err := o.fc.UpdateItem(index, field, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func (o *Operator) preview(ctx context.Context) error {
	body, err := json.MarshalIndent(o.fc.Payload(), "", "  ")
	if err != nil {
		return err
	}
	return o.driver.Info(ctx, string(body))
}

func (o *Operator) submit(ctx context.Context) error {
	if o.dryRun {
		return o.preview(ctx)
	}
	ok, err := o.driver.Confirm(ctx, ConfirmConfig{Message: "Enviar pedido para a Maglog?", Default: true})
	if err != nil || !ok {
		return err
	}
	// Once issued the request runs to completion, even when ctx is cancelled.
	// A failed submission keeps the order for correction; the notice says why.
	notice, _ := o.fc.Submit(context.WithoutCancel(ctx))
	if notice.Kind == "" {
		notice.Message = "Envio já em andamento."
	}
	return o.driver.Info(ctx, notice.Message)
}

func describeItem(item entity.Item) string {
	if item.Codigo == "" {
		return "vazio"
	}
	return fmt.Sprintf("%s, %s %s x %s", item.Codigo, item.Quantidade, item.Unidade, item.Valor)
}
