package candidate

import (
	"github.com/gatoke/agencyledger/internal/candidate/repository"
	"github.com/gatoke/agencyledger/internal/candidate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("candidate",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
