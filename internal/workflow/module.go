package workflow

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
)

type Params struct {
	fx.In

	Issues   IssueTracker
	Repos    RepoHost
	CI       CI
	Notifier Notifier
	Config   config.Config
	Logger   *zap.Logger
}

func Module() fx.Option {
	return fx.Provide(func(p Params) (*Engine, error) {
		return NewEngine(p.Issues, p.Repos, p.CI, p.Notifier, p.Config.Workflow, p.Logger)
	})
}
