package posting

import (
	"github.com/gatoke/agencyledger/internal/posting/repository"
	"github.com/gatoke/agencyledger/internal/posting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("posting",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
