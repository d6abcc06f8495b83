package workflow

import (
	"context"

	"github.com/ronappleton/autotests-backend/internal/order"
)

//go:generate mockgen -source=clients.go -destination=mock_clients_test.go -package=workflow

// IssueTracker owns the tracking issue of an order.
type IssueTracker interface {
	CreateIssue(ctx context.Context, o order.Order) (string, error)
	UpdateIssue(ctx context.Context, o order.Order, issueKey, testFileURL, messageID string) error
}

// RepoHost creates the order repository and commits the generated test.
// RepositoryReady is read-only and returns an error wrapping wait.ErrNotReady
// while the repository is still being created.
type RepoHost interface {
	CreateRepoFromTemplate(ctx context.Context, issueKey string) (string, error)
	RepositoryReady(ctx context.Context, issueKey string) error
	PushGeneratedTest(ctx context.Context, o order.Order, issueKey string) (string, error)
}

// CI registers and starts the job running the order's tests.
type CI interface {
	CreateJob(ctx context.Context, o order.Order, issueKey, repoURL, threadMessageID string) error
	LaunchJob(ctx context.Context, issueKey string) error
}

// Notifier announces the order in chat. ResolveThreadMessageID is read-only
// and may be polled.
type Notifier interface {
	PostMessage(ctx context.Context, o order.Order, issueKey, testFileURL string) (string, error)
	ResolveThreadMessageID(ctx context.Context, messageID string) (string, error)
	PostOnboardingReply(ctx context.Context, threadMessageID string) (string, error)
}
