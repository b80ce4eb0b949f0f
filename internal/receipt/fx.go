package receipt

import (
	"github.com/gatoke/agencyledger/internal/receipt/repository"
	"github.com/gatoke/agencyledger/internal/receipt/service"
	"go.uber.org/fx"
)

var Module = fx.Module("receipt",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
