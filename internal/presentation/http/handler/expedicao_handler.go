package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/domain/entity"
	"github.com/sangkips/expedicao-api/internal/presentation/http/dto/request"
	"github.com/sangkips/expedicao-api/internal/presentation/http/dto/response"
	"github.com/sangkips/expedicao-api/internal/presentation/http/middleware"
	"github.com/sangkips/expedicao-api/pkg/apperror"
)

// ExpedicaoHandler exposes the order form of the current session as JSON
type ExpedicaoHandler struct{}

// NewExpedicaoHandler creates a new expedição handler
func NewExpedicaoHandler() *ExpedicaoHandler {
	return &ExpedicaoHandler{}
}

// FormState is the JSON view of a session's form
type FormState struct {
	Order      entity.Expedicao `json:"order"`
	InProgress bool             `json:"in_progress"`
	Branches   []entity.Branch  `json:"branches"`
}

// SubmitResult is returned by the submit endpoint on success and on failure
type SubmitResult struct {
	Notice service.Notice   `json:"notice"`
	Order  entity.Expedicao `json:"order"`
}

func stateOf(fc *service.FormController) FormState {
	return FormState{
		Order:      fc.Order(),
		InProgress: fc.InProgress(),
		Branches:   entity.Branches(),
	}
}

// Get handles reading the current order
func (h *ExpedicaoHandler) Get(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", stateOf(fc))
}

// UpdateFields handles setting one or more order fields by dotted name. Every
// name is checked before any field is changed.
func (h *ExpedicaoHandler) UpdateFields(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	fields := make([]entity.Field, len(req.Fields))
	for i, f := range req.Fields {
		field, ok := entity.ParseField(f.Path)
		if !ok {
			response.Error(c, &apperror.AppError{
				Code:    apperror.ErrUnknownField.Code,
				Message: apperror.ErrUnknownField.Message,
				Errors:  []apperror.FieldError{{Field: f.Path, Message: "unknown field"}},
			})
			return
		}
		fields[i] = field
	}

	for i, field := range fields {
		if err := fc.UpdateField(field, req.Fields[i].Value); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.OK(c, "Order updated successfully", stateOf(fc))
}

// UpdateItem handles setting one field of an item
func (h *ExpedicaoHandler) UpdateItem(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	index, err := itemIndex(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	field, ok := entity.ParseItemField(req.Field)
	if !ok {
		response.Error(c, apperror.ErrUnknownField)
		return
	}

	if err := fc.UpdateItem(index, field, req.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", stateOf(fc))
}

// AddItem handles appending an empty item
func (h *ExpedicaoHandler) AddItem(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	fc.AddItem()
	response.Created(c, "Item added successfully", stateOf(fc))
}

// RemoveItem handles deleting an item
func (h *ExpedicaoHandler) RemoveItem(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	index, err := itemIndex(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := fc.RemoveItem(index); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed successfully", stateOf(fc))
}

// Payload handles previewing the body a submission would send
func (h *ExpedicaoHandler) Payload(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payload built successfully", fc.Payload())
}

// Submit handles sending the order to the WMS
func (h *ExpedicaoHandler) Submit(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	documento := fc.Order().Documento
	notice, err := fc.Submit(submitContext(c))
	logSubmission(c, documento, notice, err)
	if err != nil {
		response.ErrorWithData(c, err, SubmitResult{Notice: notice, Order: fc.Order()})
		return
	}

	response.Created(c, notice.Message, SubmitResult{Notice: notice, Order: fc.Order()})
}

// Reset handles discarding the current order
func (h *ExpedicaoHandler) Reset(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	fc.Reset()
	response.OK(c, "Order reset successfully", stateOf(fc))
}

func logSubmission(c *gin.Context, documento string, notice service.Notice, err error) {
	session := middleware.GetSessionID(c).String()
	switch {
	case err == nil:
		log.Printf("[%s] expedicao %q registered", session[:8], documento)
	case notice.Kind == "":
		log.Printf("[%s] expedicao %q not sent: %v", session[:8], documento, err)
	default:
		log.Printf("[%s] expedicao %q failed: %v", session[:8], documento, err)
	}
}
