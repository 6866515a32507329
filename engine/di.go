package engine

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// ModuleName names the fx module and tags the inspection http.Handler it provides,
// so listener.NewModule(ModuleName) serves it.
const ModuleName = "appconfig"

// Params are the optional dependencies picked up from the container.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger   `optional:"true"`
	LevelVar  *slog.LevelVar `optional:"true"`
}

// NewModule provides an *Engine resolved on application start and its inspection
// handler. Explicit options win over the logger and level var found in the container.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(func(params Params) (*Engine, error) {
			all := []Option{WithLogger(params.Logger)}
			if params.LevelVar != nil {
				all = append(all, WithLevelVar(params.LevelVar))
			}

			engine, err := New(append(all, opts...)...)
			if err != nil {
				return nil, fmt.Errorf("creating configuration engine: %w", err)
			}

			params.Lifecycle.Append(fx.Hook{OnStart: engine.Load})

			return engine, nil
		}),
		fx.Provide(
			fx.Annotate(
				func(engine *Engine) http.Handler { return engine.Handler() },
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, ModuleName)),
			),
		),
	)
}
