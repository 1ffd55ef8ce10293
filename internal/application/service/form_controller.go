package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sangkips/expedicao-api/internal/domain/entity"
	"github.com/sangkips/expedicao-api/internal/domain/repository"
	"github.com/sangkips/expedicao-api/pkg/apperror"
)

// NoticeKind tells the operator whether a submission went through
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
)

// UnknownErrorMessage is shown when a failure carries no message of its own
const UnknownErrorMessage = "Ocorreu um erro desconhecido."

// Notice is the message shown to the operator after a submission
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// OrderValidator checks an order before it is submitted
type OrderValidator interface {
	ValidateExpedicao(e *entity.Expedicao) error
}

// FormController owns the order an operator is filling in. All mutations go
// through its methods; the network call of Submit runs without holding the
// lock so the form stays readable meanwhile.
type FormController struct {
	mu         sync.Mutex
	order      entity.Expedicao
	submitting bool

	repo      repository.ExpedicaoRepository
	validator OrderValidator
	now       func() time.Time
}

// NewFormController creates a controller holding a fresh default order
func NewFormController(repo repository.ExpedicaoRepository, validator OrderValidator, now func() time.Time) *FormController {
	if now == nil {
		now = time.Now
	}
	return &FormController{
		order:     entity.NewExpedicao(now()),
		repo:      repo,
		validator: validator,
		now:       now,
	}
}

// Order returns a copy of the current order
func (fc *FormController) Order() entity.Expedicao {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.order.Clone()
}

// InProgress reports whether a submission is awaiting the WMS
func (fc *FormController) InProgress() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.submitting
}

// UpdateField replaces one order field. Passing a Field outside the declared
// set is a programming error and panics.
func (fc *FormController) UpdateField(field entity.Field, value string) error {
	if !field.Valid() {
		panic(fmt.Sprintf("service: update of unknown field %s", field))
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if err := field.Set(&fc.order, value); err != nil {
		return apperror.NewBadRequestError(fmt.Sprintf("%s: %v", field, err))
	}
	return nil
}

// UpdateItem replaces one field of the item at index
func (fc *FormController) UpdateItem(index int, field entity.ItemField, value string) error {
	if !field.Valid() {
		panic(fmt.Sprintf("service: update of unknown item field %s", field))
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if index < 0 || index >= len(fc.order.Itens) {
		return apperror.ErrItemOutOfRange
	}
	field.Set(&fc.order.Itens[index], value)
	return nil
}

// AddItem appends an empty item numbered after the last one and returns its index
func (fc *FormController) AddItem() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.order.Itens = append(fc.order.Itens, entity.NewItem(len(fc.order.Itens)+1))
	return len(fc.order.Itens) - 1
}

// RemoveItem deletes the item at index and renumbers the remaining items 1..N
func (fc *FormController) RemoveItem(index int) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if index < 0 || index >= len(fc.order.Itens) {
		return apperror.ErrItemOutOfRange
	}
	itens := make([]entity.Item, 0, len(fc.order.Itens)-1)
	itens = append(itens, fc.order.Itens[:index]...)
	itens = append(itens, fc.order.Itens[index+1:]...)
	fc.order.Itens = itens
	fc.order.Renumber()
	return nil
}

// Reset discards the current order and starts a fresh default one
func (fc *FormController) Reset() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.order = entity.NewExpedicao(fc.now())
}

// Payload returns the body Submit would send for the current order
func (fc *FormController) Payload() entity.ExpedicaoPayload {
	return BuildSubmissionPayload(fc.Order())
}

// Submit sends the current order to the WMS once.
//
// On success the form is reset to a fresh order. On failure the order is left
// exactly as it was so the operator can correct it and try again. The notice
// is filled in either way; the error is nil only on success. A second call
// while one is in flight fails with apperror.ErrSubmissionInProgress and does
// not touch the in-flight submission.
func (fc *FormController) Submit(ctx context.Context) (Notice, error) {
	fc.mu.Lock()
	if fc.submitting {
		fc.mu.Unlock()
		return Notice{}, apperror.ErrSubmissionInProgress
	}
	fc.submitting = true
	snapshot := fc.order.Clone()
	fc.mu.Unlock()

	defer func() {
		fc.mu.Lock()
		fc.submitting = false
		fc.mu.Unlock()
	}()

	if fc.validator != nil {
		if err := fc.validator.ValidateExpedicao(&snapshot); err != nil {
			return failureNotice(err), err
		}
	}

	payload := BuildSubmissionPayload(snapshot)
	if err := fc.repo.Create(ctx, &payload); err != nil {
		return failureNotice(err), err
	}

	fc.mu.Lock()
	fc.order = entity.NewExpedicao(fc.now())
	fc.mu.Unlock()

	return Notice{
		Kind:    NoticeSuccess,
		Message: fmt.Sprintf("Pedido manual \"%s\" criado com sucesso para o cliente %s!", snapshot.Documento, entity.ClientName),
	}, nil
}

func failureNotice(err error) Notice {
	msg := UnknownErrorMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Notice{
		Kind:    NoticeFailure,
		Message: "Erro ao criar pedido: " + msg,
	}
}
