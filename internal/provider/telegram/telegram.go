// Package telegram announces orders in a Telegram channel and replies in the
// discussion thread of the linked chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/provider/rest"
	"github.com/ronappleton/autotests-backend/internal/wait"
)

// ErrNotForwarded means the channel post has not yet shown up in the
// discussion chat. It always wraps wait.ErrNotReady.
var ErrNotForwarded = fmt.Errorf("telegram: channel post not forwarded to discussion chat: %w", wait.ErrNotReady)

var errNotOK = errors.New("telegram: request not ok")

// updatesPageSize is the getUpdates page limit; Telegram caps it at 100.
const updatesPageSize = 100

// maxPendingForwards bounds the forwards remembered for posts nobody has
// asked about yet.
const maxPendingForwards = 1024

const onboardingText = "Thanks for the order! The tests are being generated and the first build is on its way. " +
	"Build results will be posted in this thread."

type Client struct {
	rest        *rest.Client
	channelID   string
	channelName string
	chatID      int64
	logger      *zap.Logger

	// mu serializes getUpdates; Telegram rejects overlapping long polls.
	mu       sync.Mutex
	offset   int64
	forwards map[int64]int64
}

func New(cfg config.TelegramConfig, logger *zap.Logger) *Client {
	logger = logger.Named("telegram")
	base := strings.TrimRight(cfg.BaseURL, "/") + "/bot" + cfg.Token
	return &Client{
		rest:        rest.NewClient(base, nil, rest.NewHTTPClient(cfg.Timeout), logger).Redact(cfg.Token),
		channelID:   cfg.ChannelID,
		channelName: cfg.ChannelName,
		chatID:      cfg.ChatID,
		logger:      logger,
		forwards:    make(map[int64]int64),
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
	ReplyToMessageID      int64  `json:"reply_to_message_id,omitempty"`
}

type response[T any] struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      T      `json:"result"`
}

type chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Username string `json:"username"`
}

type message struct {
	MessageID            int64 `json:"message_id"`
	Chat                 chat  `json:"chat"`
	IsAutomaticForward   bool  `json:"is_automatic_forward"`
	ForwardFromMessageID int64 `json:"forward_from_message_id"`
	ForwardFromChat      *chat `json:"forward_from_chat"`
}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset,omitempty"`
	Limit          int      `json:"limit"`
	AllowedUpdates []string `json:"allowed_updates"`
}

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

// PostMessage announces the order in the channel and returns the post id.
func (c *Client) PostMessage(ctx context.Context, o order.Order, issueKey, testFileURL string) (string, error) {
	msg, err := c.send(ctx, sendMessageRequest{
		ChatID:                c.channelID,
		Text:                  announcement(o, issueKey, testFileURL),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return "", err
	}
	id := strconv.FormatInt(msg.MessageID, 10)
	c.logger.Info("channel post created", zap.String("message_id", id), zap.String("issue_key", issueKey))
	return id, nil
}

// ResolveThreadMessageID finds the copy of channel post messageID that
// Telegram forwards into the linked discussion chat. Replies to that copy form
// the post's comment thread. ErrNotForwarded is returned while the copy is
// not visible yet.
//
// Updates are consumed with an advancing offset so the queue never stalls on
// its first page. Forwards of other posts seen along the way are kept until
// their own lookup.
func (c *Client) ResolveThreadMessageID(ctx context.Context, messageID string) (string, error) {
	postID, err := strconv.ParseInt(messageID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("telegram: invalid message id %q: %w", messageID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if thread, ok := c.takeForward(postID); ok {
		return c.resolved(messageID, thread), nil
	}
	for {
		n, err := c.pollUpdates(ctx)
		if err != nil {
			return "", err
		}
		if thread, ok := c.takeForward(postID); ok {
			return c.resolved(messageID, thread), nil
		}
		if n < updatesPageSize {
			return "", ErrNotForwarded
		}
	}
}

// pollUpdates fetches one page after the current offset, records the
// automatic forwards it holds and advances the offset past it. It returns the
// page size. Caller holds c.mu.
func (c *Client) pollUpdates(ctx context.Context) (int, error) {
	var resp response[[]update]
	if _, err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/getUpdates",
		JSON: getUpdatesRequest{
			Offset:         c.offset,
			Limit:          updatesPageSize,
			AllowedUpdates: []string{"message"},
		},
	}, &resp); err != nil {
		return 0, err
	}
	if !resp.OK {
		c.logger.Error("getUpdates not ok", zap.String("description", resp.Description))
		return 0, fmt.Errorf("%w: %s", errNotOK, resp.Description)
	}

	for _, u := range resp.Result {
		if u.UpdateID >= c.offset {
			c.offset = u.UpdateID + 1
		}
		m := u.Message
		if m == nil || !m.IsAutomaticForward || m.ForwardFromMessageID == 0 {
			continue
		}
		if c.chatID != 0 && m.Chat.ID != c.chatID {
			continue
		}
		if len(c.forwards) >= maxPendingForwards {
			clear(c.forwards)
		}
		c.forwards[m.ForwardFromMessageID] = m.MessageID
	}
	c.logger.Debug("updates polled", zap.Int("count", len(resp.Result)), zap.Int64("offset", c.offset))
	return len(resp.Result), nil
}

func (c *Client) takeForward(postID int64) (int64, bool) {
	thread, ok := c.forwards[postID]
	if ok {
		delete(c.forwards, postID)
	}
	return thread, ok
}

func (c *Client) resolved(messageID string, thread int64) string {
	id := strconv.FormatInt(thread, 10)
	c.logger.Info("discussion thread resolved", zap.String("message_id", messageID), zap.String("thread_message_id", id))
	return id
}

// PostOnboardingReply replies to the thread root in the discussion chat.
func (c *Client) PostOnboardingReply(ctx context.Context, threadMessageID string) (string, error) {
	replyTo, err := strconv.ParseInt(threadMessageID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("telegram: invalid thread message id %q: %w", threadMessageID, err)
	}
	msg, err := c.send(ctx, sendMessageRequest{
		ChatID:           strconv.FormatInt(c.chatID, 10),
		Text:             onboardingText,
		ReplyToMessageID: replyTo,
	})
	if err != nil {
		return "", err
	}
	id := strconv.FormatInt(msg.MessageID, 10)
	c.logger.Info("onboarding reply posted", zap.String("thread_message_id", threadMessageID), zap.String("message_id", id))
	return id, nil
}

// MessageURL links a channel post. It is empty when the channel has no public
// name.
func (c *Client) MessageURL(messageID string) string {
	if c.channelName == "" {
		return ""
	}
	return "https://t.me/" + strings.TrimPrefix(c.channelName, "@") + "/" + messageID
}

func (c *Client) send(ctx context.Context, req sendMessageRequest) (message, error) {
	var resp response[message]
	if _, err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/sendMessage",
		JSON:   req,
	}, &resp); err != nil {
		return message{}, err
	}
	if !resp.OK {
		c.logger.Error("sendMessage not ok", zap.String("chat_id", req.ChatID), zap.String("description", resp.Description))
		return message{}, fmt.Errorf("%w: %s", errNotOK, resp.Description)
	}
	if resp.Result.MessageID == 0 {
		return message{}, errors.New("telegram: response has no message_id")
	}
	return resp.Result, nil
}

func announcement(o order.Order, issueKey, testFileURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(o.Title))
	fmt.Fprintf(&b, "Issue: %s\n", html.EscapeString(issueKey))
	fmt.Fprintf(&b, "Test class: <a href=\"%s\">%s</a>\n", html.EscapeString(testFileURL), html.EscapeString(issueKey))
	b.WriteString("\nSteps:")
	for i, step := range o.StepList() {
		fmt.Fprintf(&b, "\n%d. %s", i+1, html.EscapeString(step))
	}
	return b.String()
}
