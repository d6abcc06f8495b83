package workflow

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/wait"
)

const (
	instrumentationName = "github.com/ronappleton/autotests-backend/internal/workflow"
	defaultTimeout      = 5 * time.Minute
)

type Engine struct {
	issues  IssueTracker
	repos   RepoHost
	ci      CI
	chat    Notifier
	cfg     config.WorkflowConfig
	logger  *zap.Logger
	tracer  trace.Tracer
	runs    metric.Int64Counter
	stepDur metric.Float64Histogram
}

func NewEngine(issues IssueTracker, repos RepoHost, ci CI, chat Notifier, cfg config.WorkflowConfig, logger *zap.Logger) (*Engine, error) {
	meter := otel.Meter(instrumentationName)
	runs, err := meter.Int64Counter("workflow.runs",
		metric.WithDescription("Order workflow runs by outcome"))
	if err != nil {
		return nil, err
	}
	stepDur, err := meter.Float64Histogram("workflow.step.duration",
		metric.WithDescription("Duration of a workflow step"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Engine{
		issues:  issues,
		repos:   repos,
		ci:      ci,
		chat:    chat,
		cfg:     cfg,
		logger:  logger.Named("workflow"),
		tracer:  otel.Tracer(instrumentationName),
		runs:    runs,
		stepDur: stepDur,
	}, nil
}

type stage struct {
	name    string
	message string
	run     func(ctx context.Context, r *Run) error
}

func (e *Engine) stages(logger *zap.Logger) []stage {
	return []stage{
		{StepCreateIssue, "cannot create issue", func(ctx context.Context, r *Run) (err error) {
			r.IssueKey, err = e.issues.CreateIssue(ctx, r.Order)
			return err
		}},
		{StepCreateRepository, "cannot create repository", func(ctx context.Context, r *Run) (err error) {
			r.RepositoryURL, err = e.repos.CreateRepoFromTemplate(ctx, r.IssueKey)
			return err
		}},
		{StepPushTest, "cannot push test class", func(ctx context.Context, r *Run) (err error) {
			_, err = wait.For(ctx, e.policy(e.cfg.RepositoryWait, StepPushTest, logger), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, e.repos.RepositoryReady(ctx, r.IssueKey)
			})
			if err != nil {
				return err
			}
			r.TestFileURL, err = e.repos.PushGeneratedTest(ctx, r.Order, r.IssueKey)
			return err
		}},
		{StepPostMessage, "cannot post channel message", func(ctx context.Context, r *Run) (err error) {
			r.MessageID, err = e.chat.PostMessage(ctx, r.Order, r.IssueKey, r.TestFileURL)
			return err
		}},
		{StepResolveThread, "cannot resolve discussion thread", func(ctx context.Context, r *Run) (err error) {
			r.ThreadMessageID, err = wait.For(ctx, e.policy(e.cfg.ThreadWait, StepResolveThread, logger), func(ctx context.Context) (string, error) {
				return e.chat.ResolveThreadMessageID(ctx, r.MessageID)
			})
			return err
		}},
		{StepLaunchJob, "cannot launch CI job", func(ctx context.Context, r *Run) error {
			if err := e.ci.CreateJob(ctx, r.Order, r.IssueKey, r.RepositoryURL, r.ThreadMessageID); err != nil {
				return err
			}
			return e.ci.LaunchJob(ctx, r.IssueKey)
		}},
		{StepUpdateIssue, "cannot update issue", func(ctx context.Context, r *Run) error {
			return e.issues.UpdateIssue(ctx, r.Order, r.IssueKey, r.TestFileURL, r.MessageID)
		}},
		{StepPostOnboardingReply, "cannot post onboarding reply", func(ctx context.Context, r *Run) (err error) {
			r.ReplyID, err = e.chat.PostOnboardingReply(ctx, r.ThreadMessageID)
			return err
		}},
	}
}

// Run provisions o end to end. Steps run strictly in order and the first
// failing step ends the run; side effects of earlier steps are left in place.
// The run is detached from ctx cancellation and bounded by the configured
// workflow timeout instead.
func (e *Engine) Run(ctx context.Context, o order.Order) Result {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.Timeout)
	defer cancel()

	o.Steps = order.NormalizeNewlines(o.Steps)
	run := &Run{ID: newRunID(), Order: o, Status: StatusRunning}
	logger := e.logger.With(zap.String("run_id", run.ID))

	ctx, span := e.tracer.Start(ctx, "workflow.run", trace.WithAttributes(
		attribute.String("run.id", run.ID),
		attribute.Int("order.steps", len(o.StepList())),
	))
	defer span.End()

	logger.Info("run started", zap.String("title", o.Title))
	started := time.Now()

	for _, st := range e.stages(logger) {
		if err := e.execute(ctx, logger, run, st); err != nil {
			run.Status = StatusFailed
			failure := &StepFailure{Step: st.name, Message: st.message, Err: err}
			span.RecordError(failure)
			span.SetStatus(codes.Error, st.name)
			e.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed"), attribute.String("step", st.name)))
			logger.Error("run failed",
				zap.String("step", st.name),
				zap.String("issue_key", run.IssueKey),
				zap.Duration("elapsed", time.Since(started)),
				zap.Error(err),
			)
			return Result{RunID: run.ID, Steps: run.Steps, Failure: failure}
		}
	}

	run.Status = StatusSucceeded
	span.SetAttributes(attribute.String("issue.key", run.IssueKey))
	e.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "succeeded")))
	logger.Info("run succeeded",
		zap.String("issue_key", run.IssueKey),
		zap.String("repository_url", run.RepositoryURL),
		zap.String("test_file_url", run.TestFileURL),
		zap.String("message_id", run.MessageID),
		zap.String("thread_message_id", run.ThreadMessageID),
		zap.Duration("elapsed", time.Since(started)),
	)
	return Result{RunID: run.ID, MessageID: run.MessageID, Steps: run.Steps}
}

func (e *Engine) execute(ctx context.Context, logger *zap.Logger, run *Run, st stage) error {
	ctx, span := e.tracer.Start(ctx, "workflow.step."+st.name, trace.WithAttributes(attribute.String("step", st.name)))
	defer span.End()

	logger.Debug("step started", zap.String("step", st.name))
	start := time.Now()
	err := st.run(ctx, run)
	elapsed := time.Since(start)

	stepRun := StepRun{Name: st.name, Status: StatusSucceeded, Duration: elapsed}
	outcome := "succeeded"
	if err != nil {
		stepRun.Status = StatusFailed
		stepRun.Error = err.Error()
		outcome = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, st.message)
		logger.Warn("step failed", zap.String("step", st.name), zap.Duration("duration", elapsed), zap.Error(err))
	} else {
		logger.Info("step succeeded", zap.String("step", st.name), zap.Duration("duration", elapsed))
	}
	run.Steps = append(run.Steps, stepRun)
	e.stepDur.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("step", st.name),
		attribute.String("outcome", outcome),
	))
	return err
}

func (e *Engine) policy(cfg config.WaitConfig, step string, logger *zap.Logger) wait.Policy {
	return wait.Policy{
		InitialDelay: cfg.InitialDelay,
		Interval:     cfg.Interval,
		MaxInterval:  cfg.MaxInterval,
		Timeout:      cfg.Timeout,
		Notify: func(attempt int, err error, next time.Duration) {
			logger.Debug("not ready yet",
				zap.String("step", step),
				zap.Int("attempt", attempt),
				zap.Duration("next", next),
				zap.Error(err),
			)
		},
	}
}
