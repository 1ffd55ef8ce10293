package service

import (
	"github.com/sangkips/expedicao-api/internal/domain/entity"
)

// BuildSubmissionPayload shapes an order into the body sent to the WMS. It does
// not modify order.
//
// The note is always prefixed with the fixed integration text, a blank carrier
// is replaced by the customer pickup record and absent optional fields are
// sent as empty strings.
func BuildSubmissionPayload(order entity.Expedicao) entity.ExpedicaoPayload {
	out := order.Clone()

	if note := entity.StringValue(out.Observacao); note != "" {
		out.Observacao = entity.StringPtr(entity.FixedObservation + entity.ObservationSeparator + note)
	} else {
		out.Observacao = entity.StringPtr(entity.FixedObservation)
	}

	if out.Transportadora.IsBlank() {
		out.Transportadora = entity.PickupCarrier()
	}

	return out.FillAbsent().Payload()
}
