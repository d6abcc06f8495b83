// Package jira creates and updates the tracking issue of an order.
package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/provider/rest"
)

var ErrNoIssueKey = errors.New("jira: response has no issue key")

// LinkFunc turns a chat message id into a URL for the issue description.
type LinkFunc func(messageID string) string

type Client struct {
	rest      *rest.Client
	baseURL   string
	project   string
	issueType string
	link      LinkFunc
	logger    *zap.Logger
}

func New(cfg config.JiraConfig, link LinkFunc, logger *zap.Logger) *Client {
	logger = logger.Named("jira")
	return &Client{
		rest:      rest.NewClient(cfg.BaseURL, rest.BasicAuth(cfg.Username, cfg.Token), rest.NewHTTPClient(cfg.Timeout), logger),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		project:   cfg.ProjectKey,
		issueType: cfg.IssueType,
		link:      link,
		logger:    logger,
	}
}

type issueFields struct {
	Project     *keyRef  `json:"project,omitempty"`
	IssueType   *nameRef `json:"issuetype,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description"`
}

type keyRef struct {
	Key string `json:"key"`
}

type nameRef struct {
	Name string `json:"name"`
}

type issueRequest struct {
	Fields issueFields `json:"fields"`
}

type createIssueResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// CreateIssue opens a task for o and returns its key.
func (c *Client) CreateIssue(ctx context.Context, o order.Order) (string, error) {
	var resp createIssueResponse
	_, err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/rest/api/2/issue",
		JSON: issueRequest{Fields: issueFields{
			Project:     &keyRef{Key: c.project},
			IssueType:   &nameRef{Name: c.issueType},
			Summary:     o.Title,
			Description: describeSteps(o),
		}},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Key == "" {
		c.logger.Error("issue created without key", zap.String("id", resp.ID))
		return "", ErrNoIssueKey
	}
	c.logger.Info("issue created", zap.String("issue_key", resp.Key))
	return resp.Key, nil
}

// UpdateIssue rewrites the description of issueKey with links to the pushed
// test and the chat message.
func (c *Client) UpdateIssue(ctx context.Context, o order.Order, issueKey, testFileURL, messageID string) error {
	desc := describeSteps(o) + "\n\n" + fmt.Sprintf("Test class: [%s]", testFileURL)
	if c.link != nil {
		desc += "\n" + fmt.Sprintf("Discussion: [%s]", c.link(messageID))
	}
	_, err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "/rest/api/2/issue/" + issueKey,
		JSON:   issueRequest{Fields: issueFields{Description: desc}},
	}, nil)
	if err != nil {
		return err
	}
	c.logger.Info("issue updated", zap.String("issue_key", issueKey))
	return nil
}

// BrowseURL is the human-facing URL of an issue.
func (c *Client) BrowseURL(issueKey string) string {
	return c.baseURL + "/browse/" + issueKey
}

func describeSteps(o order.Order) string {
	var b strings.Builder
	b.WriteString("h3. Steps")
	for _, step := range o.StepList() {
		b.WriteString("\n# ")
		b.WriteString(step)
	}
	return b.String()
}
