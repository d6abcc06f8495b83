package workflow

import (
	"time"

	"github.com/ronappleton/autotests-backend/internal/order"
)

// Step names, in execution order.
const (
	StepCreateIssue         = "create_issue"
	StepCreateRepository    = "create_repository"
	StepPushTest            = "push_test"
	StepPostMessage         = "post_message"
	StepResolveThread       = "resolve_thread"
	StepLaunchJob           = "launch_job"
	StepUpdateIssue         = "update_issue"
	StepPostOnboardingReply = "post_onboarding_reply"
)

const (
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
)

// Run is everything one workflow execution has produced so far. It lives only
// for the duration of Engine.Run.
type Run struct {
	ID              string
	Order           order.Order
	IssueKey        string
	RepositoryURL   string
	TestFileURL     string
	MessageID       string
	ThreadMessageID string
	ReplyID         string
	Status          string
	Steps           []StepRun
}

type StepRun struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Result is the outcome of Engine.Run: MessageID on success, Failure
// otherwise.
type Result struct {
	RunID     string
	MessageID string
	Steps     []StepRun
	Failure   *StepFailure
}

func (r Result) OK() bool {
	return r.Failure == nil
}

// StepFailure names the step that stopped a run.
type StepFailure struct {
	Step    string
	Message string
	Err     error
}

func (f *StepFailure) Error() string {
	if f.Err == nil {
		return f.Step + ": " + f.Message
	}
	return f.Step + ": " + f.Message + ": " + f.Err.Error()
}

func (f *StepFailure) Unwrap() error {
	return f.Err
}
