package repository

import (
	"context"

	"github.com/sangkips/expedicao-api/internal/domain/entity"
	"github.com/sangkips/expedicao-api/internal/domain/repository"
	"github.com/sangkips/expedicao-api/internal/infrastructure/maglog"
	"github.com/sangkips/expedicao-api/pkg/apperror"
)

type expedicaoRepository struct {
	client *maglog.Client
}

// NewExpedicaoRepository creates a new expedição repository backed by the WMS
func NewExpedicaoRepository(client *maglog.Client) repository.ExpedicaoRepository {
	return &expedicaoRepository{client: client}
}

// Create posts the payload to the WMS. Failures are returned as bad gateway
// AppErrors whose message is the WMS or transport message unchanged.
func (r *expedicaoRepository) Create(ctx context.Context, payload *entity.ExpedicaoPayload) error {
	if _, err := r.client.CreateExpedicao(ctx, payload); err != nil {
		return apperror.NewBadGatewayError(err)
	}
	return nil
}
