package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/presentation/http/middleware"
	"github.com/sangkips/expedicao-api/pkg/apperror"
)

// formController returns the session's controller. The session middleware
// guarantees one exists on every form and API route.
func formController(c *gin.Context) (*service.FormController, error) {
	fc := middleware.GetFormController(c)
	if fc == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return fc, nil
}

// itemIndex parses the :index path parameter
func itemIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, apperror.NewBadRequestError("Invalid item index")
	}
	return index, nil
}

// submitContext detaches a submission from the browser request: once issued,
// closing the tab must not abort the call to the WMS.
func submitContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
