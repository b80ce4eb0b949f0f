package reference

import (
	"github.com/gatoke/agencyledger/internal/reference/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("reference",
	fx.Provide(
		repository.Provide,
		NewCache,
	),
)
