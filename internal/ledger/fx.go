package ledger

import (
	"github.com/gatoke/agencyledger/internal/ledger/repository"
	"github.com/gatoke/agencyledger/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
