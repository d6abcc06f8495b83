// Package provider wires the external service adapters into the workflow.
package provider

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/generator"
	"github.com/ronappleton/autotests-backend/internal/provider/github"
	"github.com/ronappleton/autotests-backend/internal/provider/jenkins"
	"github.com/ronappleton/autotests-backend/internal/provider/jira"
	"github.com/ronappleton/autotests-backend/internal/provider/slack"
	"github.com/ronappleton/autotests-backend/internal/provider/telegram"
	"github.com/ronappleton/autotests-backend/internal/workflow"
)

func Module() fx.Option {
	return fx.Provide(
		NewNotifier,
		NewIssueTracker,
		NewRepoHost,
		NewCI,
	)
}

// NewNotifier picks the chat backend named by notification.provider. The
// returned LinkFunc builds message links for the issue description.
func NewNotifier(cfg config.Config, logger *zap.Logger) (workflow.Notifier, jira.LinkFunc, error) {
	switch cfg.Notification.Provider {
	case config.ProviderTelegram:
		c := telegram.New(cfg.Notification.Telegram, logger)
		return c, c.MessageURL, nil
	case config.ProviderSlack:
		c := slack.New(cfg.Notification.Slack, logger)
		return c, c.MessageURL, nil
	default:
		return nil, nil, fmt.Errorf("unknown notification provider %q", cfg.Notification.Provider)
	}
}

func NewIssueTracker(cfg config.Config, link jira.LinkFunc, logger *zap.Logger) workflow.IssueTracker {
	return jira.New(cfg.Jira, link, logger)
}

func NewRepoHost(cfg config.Config, render generator.Renderer, logger *zap.Logger) (workflow.RepoHost, error) {
	return github.New(cfg.Github, render, logger)
}

func NewCI(cfg config.Config, logger *zap.Logger) workflow.CI {
	return jenkins.New(cfg.Jenkins, logger)
}
