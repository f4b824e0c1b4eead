package queue

import (
	"context"
	"sync"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/loopjob"
	"gitee.com/flycash/order-notifier/internal/pkg/retry"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository"
	"gitee.com/flycash/order-notifier/internal/service/notification"
	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize    = 10
	defaultConcurrency  = 5
	defaultPollInterval = time.Second * 5
)

var jobCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notification_job_total",
		Help: "队列任务的处理结果",
	},
	[]string{"channel", "outcome"},
)

func init() {
	prometheus.MustRegister(jobCounter)
}

const (
	outcomeSent    = "sent"
	outcomeRetry   = "retry"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"
)

type Config struct {
	BatchSize    int           `yaml:"batchSize"`
	Concurrency  int           `yaml:"concurrency"`
	PollInterval time.Duration `yaml:"pollInterval"`
	Retry        retry.Config  `yaml:"retry"`
	// Key 为空时不加分布式锁，只适合单实例部署
	Lock loopjob.Config `yaml:"lock"`
}

// Processor 轮询到期任务并交给 Dispatcher
type Processor struct {
	repo       repository.JobRepository
	dispatcher notification.Dispatcher
	dclient    dlock.Client
	backoff    *retry.Backoff
	cfg        Config
	now        func() time.Time
	logger     *elog.Component

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewProcessor dclient 可以为 nil
func NewProcessor(repo repository.JobRepository, dispatcher notification.Dispatcher,
	dclient dlock.Client, cfg Config,
) (*Processor, error) {
	backoff, err := retry.NewBackoff(cfg.Retry)
	if err != nil {
		return nil, err
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Processor{
		repo:       repo,
		dispatcher: dispatcher,
		dclient:    dclient,
		backoff:    backoff,
		cfg:        cfg,
		now:        time.Now,
		logger:     elog.DefaultLogger.With(elog.String("component", "queue-processor")),
	}, nil
}

// Start 在后台开始轮询，重复调用不会启动第二个循环
func (p *Processor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.logger.Info("队列处理器已经在运行")
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.stopped = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		if p.dclient != nil && p.cfg.Lock.Key != "" {
			loopjob.NewInfiniteLoop(p.dclient, p.tick, p.cfg.Lock).Run(ctx)
			return
		}
		for ctx.Err() == nil {
			_ = p.tick(ctx)
		}
	}(p.stopped)
	p.logger.Info("队列处理器启动",
		elog.Int("batchSize", p.cfg.BatchSize),
		elog.Int("concurrency", p.cfg.Concurrency))
}

// Stop 等待正在处理的批次结束
func (p *Processor) Stop() {
	p.mu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.cancel, p.stopped = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-stopped
	p.logger.Info("队列处理器停止")
}

// tick 处理一批，批次不满说明暂时没有更多任务，等一个轮询间隔
func (p *Processor) tick(ctx context.Context) error {
	n, err := p.ProcessBatch(ctx)
	if err != nil {
		p.logger.Error("处理任务批次失败", elog.FieldErr(err))
	}
	if err != nil || n < p.cfg.BatchSize {
		wait(ctx, p.cfg.PollInterval)
	}
	return err
}

// ProcessBatch 跨租户拉取一批到期任务并发处理，返回拉取到的任务数
func (p *Processor) ProcessBatch(ctx context.Context) (int, error) {
	jobs, err := p.repo.FindDue(tenant.Detach(ctx), p.now(), p.cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	var eg errgroup.Group
	eg.SetLimit(p.cfg.Concurrency)
	for i := range jobs {
		job := jobs[i]
		eg.Go(func() error {
			p.process(ctx, job)
			return nil
		})
	}
	return len(jobs), eg.Wait()
}

func (p *Processor) process(ctx context.Context, job domain.Job) {
	sysCtx := tenant.Detach(ctx)
	claimed, ok, err := p.repo.Claim(sysCtx, job)
	if err != nil {
		p.logger.Error("抢占任务失败", elog.Any("jobId", job.ID), elog.FieldErr(err))
		return
	}
	if !ok {
		// 其他实例已经拿走了，或者任务被取消
		jobCounter.WithLabelValues(job.Channel.String(), outcomeSkipped).Inc()
		return
	}
	job = claimed

	tenantCtx := tenant.WithTenant(ctx, job.TenantID)
	// 抢占之后再确认一次状态，取消和抢占可能同时发生
	current, err := p.repo.GetByID(tenantCtx, job.ID)
	if err != nil || current.Status != domain.JobStatusProcessing {
		jobCounter.WithLabelValues(job.Channel.String(), outcomeSkipped).Inc()
		return
	}

	res, err := p.dispatcher.Send(tenantCtx, job.DispatchRequest())
	// 已经发出去的结果必须落库，停机时也不能丢
	sysCtx = context.WithoutCancel(sysCtx)
	if err == nil && res.Success {
		p.finish(job, outcomeSent, func() (bool, error) {
			return p.repo.MarkSent(sysCtx, job)
		})
		return
	}

	retryable, lastErr := res.Retryable, res.Error
	if err != nil {
		retryable, lastErr = errs.IsRetryable(err), err.Error()
	}
	attempt := job.CurrentRetries + 1
	if retryable && attempt < job.MaxRetries {
		next := p.now().Add(p.backoff.Delay(attempt))
		p.logger.Warn("任务发送失败，稍后重试",
			elog.Any("jobId", job.ID),
			elog.Int64("tenantId", job.TenantID),
			elog.Int("attempt", attempt),
			elog.String("next", next.Format(time.RFC3339)),
			elog.String("error", lastErr))
		p.finish(job, outcomeRetry, func() (bool, error) {
			return p.repo.MarkRetry(sysCtx, job, attempt, next, lastErr)
		})
		return
	}
	p.logger.Error("任务发送失败",
		elog.Any("jobId", job.ID),
		elog.Int64("tenantId", job.TenantID),
		elog.Int("attempt", attempt),
		elog.String("error", lastErr))
	p.finish(job, outcomeFailed, func() (bool, error) {
		return p.repo.MarkFailed(sysCtx, job, attempt, lastErr)
	})
}

func (p *Processor) finish(job domain.Job, outcome string, mark func() (bool, error)) {
	ok, err := mark()
	if err != nil {
		p.logger.Error("更新任务状态失败", elog.Any("jobId", job.ID), elog.String("outcome", outcome), elog.FieldErr(err))
		return
	}
	if !ok {
		p.logger.Warn("任务状态已经被修改", elog.Any("jobId", job.ID), elog.String("outcome", outcome))
		outcome = outcomeSkipped
	}
	jobCounter.WithLabelValues(job.Channel.String(), outcome).Inc()
}

func wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
