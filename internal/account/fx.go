package account

import (
	"github.com/gatoke/agencyledger/internal/account/repository"
	"github.com/gatoke/agencyledger/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
