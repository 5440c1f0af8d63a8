package register_slot

import (
	"context"

	registerSlot "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/register_slot"
)

type RegisterSlotUseCase interface {
	Execute(ctx context.Context, req *registerSlot.Request) (*registerSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
