package eligible_slots

import (
	"context"

	eligibleSlots "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/eligible_slots"
)

type EligibleSlotsUseCase interface {
	Execute(ctx context.Context, req *eligibleSlots.Request) (*eligibleSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
