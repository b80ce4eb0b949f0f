package supplier

import (
	"github.com/gatoke/agencyledger/internal/supplier/repository"
	"github.com/gatoke/agencyledger/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
