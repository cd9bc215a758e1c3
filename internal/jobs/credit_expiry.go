package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TaskCreditExpiry = "replacement:expire_credits"

// CreditExpirer is satisfied by replacementleave.Service.
type CreditExpirer interface {
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

// Tracker times one job run.
type Tracker interface {
	Track(job string) func(error) error
}

// CreditExpiryJob expires approved replacement credits past their expiry
// date. It is safe to run more than once a day; each credit expires once.
type CreditExpiryJob struct {
	Expirer CreditExpirer
	Metrics Tracker
	Logger  *zap.Logger
	clock   func() time.Time
}

func NewCreditExpiryJob(expirer CreditExpirer, metrics Tracker, logger *zap.Logger) *CreditExpiryJob {
	if logger == nil {
		logger = zap.L()
	}
	return &CreditExpiryJob{
		Expirer: expirer,
		Metrics: metrics,
		Logger:  logger.Named("jobs.credit_expiry"),
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

func NewCreditExpiryTask() *asynq.Task {
	return asynq.NewTask(TaskCreditExpiry, nil, asynq.Queue(QueueDefault), asynq.MaxRetry(3))
}

// Handle is the asynq handler for TaskCreditExpiry.
func (j *CreditExpiryJob) Handle(ctx context.Context, _ *asynq.Task) error {
	done := func(err error) error { return err }
	if j.Metrics != nil {
		done = j.Metrics.Track(TaskCreditExpiry)
	}

	now := j.clock()
	expired, err := j.Expirer.ExpireDue(ctx, now)
	if err != nil {
		j.Logger.Error("credit expiry run failed", zap.Int("expired", expired), zap.Error(err))
		return done(err)
	}
	j.Logger.Info("credit expiry run finished", zap.Int("expired", expired), zap.Time("as_of", now))
	return done(nil)
}

// Registration wires the job into a Worker on the given cron spec.
func (j *CreditExpiryJob) Registration(spec string) (TaskHandler, CronRegistration) {
	return TaskHandler{Type: TaskCreditExpiry, Handler: j.Handle},
		CronRegistration{Spec: spec, Task: NewCreditExpiryTask()}
}
