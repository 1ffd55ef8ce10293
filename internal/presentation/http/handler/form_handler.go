package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/domain/entity"
	"github.com/sangkips/expedicao-api/internal/presentation/web"
	"github.com/sangkips/expedicao-api/pkg/apperror"
)

// Form actions posted by the buttons of the order form
const (
	ActionAddItem    = "add_item"
	ActionRemoveItem = "remove_item"
	ActionReset      = "reset"
)

// FormHandler serves the server-rendered order form
type FormHandler struct{}

// NewFormHandler creates a new form handler
func NewFormHandler() *FormHandler {
	return &FormHandler{}
}

// FormPage is the data the form template renders
type FormPage struct {
	ClientName string
	Branches   []entity.Branch
	Order      entity.Expedicao
	InProgress bool
	Notice     *service.Notice
	Errors     []apperror.FieldError
}

func (h *FormHandler) render(c *gin.Context, status int, fc *service.FormController, notice *service.Notice, errs []apperror.FieldError) {
	c.HTML(status, web.FormTemplate, FormPage{
		ClientName: entity.ClientName,
		Branches:   entity.Branches(),
		Order:      fc.Order(),
		InProgress: fc.InProgress(),
		Notice:     notice,
		Errors:     errs,
	})
}

// Show renders the form with the session's current order
func (h *FormHandler) Show(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	h.render(c, http.StatusOK, fc, nil, nil)
}

// Action applies the posted form, then performs the button's action
func (h *FormHandler) Action(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	if err := ApplyForm(fc, c.Request.PostForm); err != nil {
		h.renderError(c, fc, err)
		return
	}

	action := c.Request.PostForm.Get("action")
	switch {
	case action == ActionAddItem:
		fc.AddItem()
	case strings.HasPrefix(action, ActionRemoveItem+":"):
		index, convErr := strconv.Atoi(strings.TrimPrefix(action, ActionRemoveItem+":"))
		if convErr != nil {
			h.renderError(c, fc, apperror.NewBadRequestError("Invalid item index"))
			return
		}
		if err := fc.RemoveItem(index); err != nil {
			h.renderError(c, fc, err)
			return
		}
	case action == ActionReset:
		fc.Reset()
	case action == "":
	default:
		h.renderError(c, fc, apperror.NewBadRequestError("Unknown form action"))
		return
	}

	h.render(c, http.StatusOK, fc, nil, nil)
}

// Submit applies the posted form and sends the order to the WMS
func (h *FormHandler) Submit(c *gin.Context) {
	fc, err := formController(c)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	if err := ApplyForm(fc, c.Request.PostForm); err != nil {
		h.renderError(c, fc, err)
		return
	}

	documento := fc.Order().Documento
	notice, err := fc.Submit(submitContext(c))
	logSubmission(c, documento, notice, err)
	if err != nil {
		if notice.Kind == "" {
			h.renderError(c, fc, err)
			return
		}
		appErr := apperror.GetAppError(err)
		h.render(c, appErr.Code, fc, &notice, appErr.Errors)
		return
	}
	h.render(c, http.StatusOK, fc, &notice, nil)
}

func (h *FormHandler) renderError(c *gin.Context, fc *service.FormController, err error) {
	appErr := apperror.GetAppError(err)
	notice := service.Notice{Kind: service.NoticeFailure, Message: appErr.Message}
	h.render(c, appErr.Code, fc, &notice, appErr.Errors)
}

// ApplyForm copies the posted values onto the controller. Only fields present
// in the form are touched, except the pickup checkbox which browsers omit
// when unchecked.
func ApplyForm(fc *service.FormController, form url.Values) error {
	for _, field := range entity.Fields() {
		if field == entity.FieldClienteRetira {
			continue
		}
		if values, ok := form[field.String()]; ok && len(values) > 0 {
			if err := fc.UpdateField(field, values[0]); err != nil {
				return err
			}
		}
	}
	if err := fc.UpdateField(entity.FieldClienteRetira, form.Get(entity.FieldClienteRetira.String())); err != nil {
		return err
	}

	items := len(fc.Order().Itens)
	for i := 0; i < items; i++ {
		for _, field := range entity.ItemFields() {
			if values, ok := form[web.ItemInputName(i, field.String())]; ok && len(values) > 0 {
				if err := fc.UpdateItem(i, field, values[0]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
