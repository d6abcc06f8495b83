// Package github creates order repositories from a template and pushes the
// generated test class into them.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v30/github"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/generator"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/provider/rest"
	"github.com/ronappleton/autotests-backend/internal/wait"
)

const shaNotSupplied = `"sha" wasn't supplied`

var (
	// ErrShaNotSupplied means the test file already exists in the repository
	// and GitHub refused to overwrite it without the current blob sha.
	ErrShaNotSupplied = errors.New("github: sha wasn't supplied")
	ErrNoURL          = errors.New("github: response has no html_url")
)

type Client struct {
	gh            *gh.Client
	templateOwner string
	templateRepo  string
	owner         string
	testPath      string
	render        generator.Renderer
	logger        *zap.Logger
}

func New(cfg config.GithubConfig, render generator.Renderer, logger *zap.Logger) (*Client, error) {
	client := gh.NewClient(rest.NewAuthHTTPClient(cfg.Timeout, rest.TokenAuth(cfg.Token)))
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github base url: %w", err)
		}
		client.BaseURL = base
	}
	return &Client{
		gh:            client,
		templateOwner: cfg.TemplateOwner,
		templateRepo:  cfg.TemplateRepository,
		owner:         cfg.GeneratedOwner,
		testPath:      cfg.TestPath,
		render:        render,
		logger:        logger.Named("github"),
	}, nil
}

// CreateRepoFromTemplate creates owner/issueKey from the template repository
// and returns its html URL.
func (c *Client) CreateRepoFromTemplate(ctx context.Context, issueKey string) (string, error) {
	repo, _, err := c.gh.Repositories.CreateFromTemplate(ctx, c.templateOwner, c.templateRepo, &gh.TemplateRepoRequest{
		Name:  gh.String(issueKey),
		Owner: gh.String(c.owner),
	})
	if err != nil {
		c.logFailure("create repository from template failed", err, zap.String("repository", issueKey))
		return "", err
	}
	if repo.GetHTMLURL() == "" {
		return "", ErrNoURL
	}
	c.logger.Info("repository created", zap.String("repository", repo.GetFullName()), zap.String("url", repo.GetHTMLURL()))
	return repo.GetHTMLURL(), nil
}

// RepositoryReady reports wait.ErrNotReady until the repository and its
// default branch exist. Template generation is asynchronous on GitHub's side.
func (c *Client) RepositoryReady(ctx context.Context, issueKey string) error {
	repo, _, err := c.gh.Repositories.Get(ctx, c.owner, issueKey)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: repository %s/%s", wait.ErrNotReady, c.owner, issueKey)
		}
		return err
	}
	branch := repo.GetDefaultBranch()
	if branch == "" {
		return fmt.Errorf("%w: repository %s/%s has no default branch", wait.ErrNotReady, c.owner, issueKey)
	}
	if _, _, err := c.gh.Repositories.GetBranch(ctx, c.owner, issueKey, branch); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: branch %s of %s/%s", wait.ErrNotReady, branch, c.owner, issueKey)
		}
		return err
	}
	return nil
}

// PushGeneratedTest renders the test class for o and commits it to the
// configured path in owner/issueKey. It returns the file's html URL.
func (c *Client) PushGeneratedTest(ctx context.Context, o order.Order, issueKey string) (string, error) {
	source, err := c.render.Render(o)
	if err != nil {
		c.logger.Error("test class generation failed", zap.Error(err))
		return "", err
	}

	resp, _, err := c.gh.Repositories.CreateFile(ctx, c.owner, issueKey, c.testPath, &gh.RepositoryContentFileOptions{
		Message: gh.String(fmt.Sprintf("Added test '%s'", o.Title)),
		Content: []byte(source),
	})
	if err != nil {
		var errResp *gh.ErrorResponse
		if errors.As(err, &errResp) && strings.Contains(errResp.Message, shaNotSupplied) {
			c.logger.Warn("test class already exists", zap.String("repository", issueKey), zap.String("path", c.testPath))
			return "", fmt.Errorf("%w: %s", ErrShaNotSupplied, errResp.Message)
		}
		c.logFailure("push test class failed", err, zap.String("repository", issueKey))
		return "", err
	}
	if resp.GetContent().GetHTMLURL() == "" {
		return "", ErrNoURL
	}
	c.logger.Info("test class pushed", zap.String("url", resp.GetContent().GetHTMLURL()))
	return resp.GetContent().GetHTMLURL(), nil
}

func (c *Client) logFailure(msg string, err error, fields ...zap.Field) {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		fields = append(fields,
			zap.Int("status", errResp.Response.StatusCode),
			zap.String("message", errResp.Message),
			zap.Any("errors", errResp.Errors),
		)
	}
	c.logger.Error(msg, append(fields, zap.Error(err))...)
}

func isNotFound(err error) bool {
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}
