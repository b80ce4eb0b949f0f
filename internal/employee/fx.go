package employee

import (
	"github.com/gatoke/agencyledger/internal/employee/repository"
	"github.com/gatoke/agencyledger/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
