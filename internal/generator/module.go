package generator

import (
	"go.uber.org/fx"

	"github.com/ronappleton/autotests-backend/internal/config"
)

func Module() fx.Option {
	return fx.Provide(func(cfg config.Config) Renderer {
		return New(cfg.Github.ClassTemplatePath, cfg.Github.StepTemplatePath)
	})
}
