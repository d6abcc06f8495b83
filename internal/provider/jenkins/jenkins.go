// Package jenkins creates and starts the CI job that runs an order's tests.
package jenkins

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"text/template"

	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/provider/rest"
)

//go:embed templates/config.xml.tpl
var jobTemplateText string

var jobTemplate = template.Must(template.New("config.xml").
	Funcs(template.FuncMap{"xml": escapeXML}).
	Option("missingkey=error").
	Parse(jobTemplateText))

type jobConfig struct {
	Title           string
	IssueKey        string
	RepositoryURL   string
	ThreadMessageID string
}

type Client struct {
	rest   *rest.Client
	logger *zap.Logger
}

func New(cfg config.JenkinsConfig, logger *zap.Logger) *Client {
	logger = logger.Named("jenkins")
	return &Client{
		rest:   rest.NewClient(cfg.BaseURL, rest.BasicAuth(cfg.Username, cfg.Token), rest.NewHTTPClient(cfg.Timeout), logger),
		logger: logger,
	}
}

// CreateJob registers a job named issueKey that checks out repoURL. The
// thread message id is kept as a job parameter so build results can be
// reported into the order's discussion.
func (c *Client) CreateJob(ctx context.Context, o order.Order, issueKey, repoURL, threadMessageID string) error {
	raw, err := renderJob(jobConfig{
		Title:           o.Title,
		IssueKey:        issueKey,
		RepositoryURL:   repoURL,
		ThreadMessageID: threadMessageID,
	})
	if err != nil {
		c.logger.Error("job config rendering failed", zap.String("job", issueKey), zap.Error(err))
		return err
	}
	if _, err := c.rest.Do(ctx, rest.Request{
		Method:      http.MethodPost,
		Path:        "/createItem?name=" + url.QueryEscape(issueKey),
		Raw:         raw,
		ContentType: "application/xml",
	}, nil); err != nil {
		return err
	}
	c.logger.Info("job created", zap.String("job", issueKey))
	return nil
}

// LaunchJob queues a build of the job named issueKey. Jobs created by
// CreateJob are parameterized, and Jenkins rejects a plain /build for those.
func (c *Client) LaunchJob(ctx context.Context, issueKey string) error {
	form := url.Values{"ISSUE_KEY": {issueKey}}
	if _, err := c.rest.Do(ctx, rest.Request{
		Method:      http.MethodPost,
		Path:        "/job/" + url.PathEscape(issueKey) + "/buildWithParameters",
		Raw:         []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	}, nil); err != nil {
		return err
	}
	c.logger.Info("job launched", zap.String("job", issueKey))
	return nil
}

func renderJob(cfg jobConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := jobTemplate.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to render job config: %w", err)
	}
	return buf.Bytes(), nil
}

func escapeXML(s string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
