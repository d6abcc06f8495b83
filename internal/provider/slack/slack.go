// Package slack is the Slack flavour of order notifications: a channel post
// whose thread carries the order's discussion.
package slack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/provider/rest"
	"github.com/ronappleton/autotests-backend/internal/wait"
)

// ErrThreadNotFound means the posted message is not yet visible through
// conversations.replies. It wraps wait.ErrNotReady.
var ErrThreadNotFound = fmt.Errorf("slack: thread not found: %w", wait.ErrNotReady)

const onboardingText = "Thanks for the order! The tests are being generated and the first build is on its way. " +
	"Build results will be posted in this thread."

// API is the part of *slack.Client used here.
type API interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
}

type Client struct {
	api       API
	channelID string
	logger    *zap.Logger
}

func New(cfg config.SlackConfig, logger *zap.Logger) *Client {
	opts := []slack.Option{slack.OptionHTTPClient(rest.NewHTTPClient(cfg.Timeout))}
	if cfg.BaseURL != "" {
		opts = append(opts, slack.OptionAPIURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}
	return NewWithAPI(slack.New(cfg.Token, opts...), cfg.ChannelID, logger)
}

func NewWithAPI(api API, channelID string, logger *zap.Logger) *Client {
	return &Client{api: api, channelID: channelID, logger: logger.Named("slack")}
}

// PostMessage announces the order in the channel and returns the message ts.
func (c *Client) PostMessage(ctx context.Context, o order.Order, issueKey, testFileURL string) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionText(announcement(o, issueKey, testFileURL), false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		c.logger.Error("post message failed", zap.String("channel", c.channelID), zap.Error(err))
		return "", err
	}
	c.logger.Info("channel post created", zap.String("ts", ts), zap.String("issue_key", issueKey))
	return ts, nil
}

// ResolveThreadMessageID returns the ts of the thread root for the message
// posted as messageID. For a top-level post this is the post itself.
func (c *Client) ResolveThreadMessageID(ctx context.Context, messageID string) (string, error) {
	msgs, _, _, err := c.api.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: c.channelID,
		Timestamp: messageID,
		Limit:     1,
	})
	if err != nil {
		var serr slack.SlackErrorResponse
		if errors.As(err, &serr) && serr.Err == "thread_not_found" {
			return "", ErrThreadNotFound
		}
		c.logger.Error("conversation replies failed", zap.String("ts", messageID), zap.Error(err))
		return "", err
	}
	for _, m := range msgs {
		if m.Timestamp != messageID {
			continue
		}
		root := m.ThreadTimestamp
		if root == "" {
			root = m.Timestamp
		}
		c.logger.Info("thread resolved", zap.String("ts", messageID), zap.String("thread_ts", root))
		return root, nil
	}
	return "", ErrThreadNotFound
}

// PostOnboardingReply answers in the thread rooted at threadMessageID.
func (c *Client) PostOnboardingReply(ctx context.Context, threadMessageID string) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionText(onboardingText, false),
		slack.MsgOptionTS(threadMessageID),
	)
	if err != nil {
		c.logger.Error("onboarding reply failed", zap.String("thread_ts", threadMessageID), zap.Error(err))
		return "", err
	}
	c.logger.Info("onboarding reply posted", zap.String("thread_ts", threadMessageID), zap.String("ts", ts))
	return ts, nil
}

// MessageURL links a message through Slack's archive redirect.
func (c *Client) MessageURL(messageID string) string {
	if messageID == "" {
		return ""
	}
	return "https://slack.com/archives/" + c.channelID + "/p" + strings.ReplaceAll(messageID, ".", "")
}

func announcement(o order.Order, issueKey, testFileURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", escape(o.Title))
	fmt.Fprintf(&b, "Issue: %s\n", escape(issueKey))
	fmt.Fprintf(&b, "Test class: <%s|%s>\n", testFileURL, escape(issueKey))
	b.WriteString("\nSteps:")
	for i, step := range o.StepList() {
		fmt.Fprintf(&b, "\n%d. %s", i+1, escape(step))
	}
	return b.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}
