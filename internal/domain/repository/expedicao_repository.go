package repository

import (
	"context"

	"github.com/sangkips/expedicao-api/internal/domain/entity"
)

// ExpedicaoRepository registers shipment orders with the WMS
type ExpedicaoRepository interface {
	// Create posts the payload once. The returned error carries the message
	// the operator should see.
	Create(ctx context.Context, payload *entity.ExpedicaoPayload) error
}
