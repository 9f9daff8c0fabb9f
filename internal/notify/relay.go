// Package notify delivers new-order notifications to a chat webhook.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"rp-market/internal/domain"
)

var deliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "rpmarket_webhook_deliveries_total",
	Help: "Order webhook deliveries by result",
}, []string{"result"})

func init() {
	prometheus.MustRegister(deliveries)
}

type Options struct {
	URL         string
	MinInterval time.Duration
	QueueSize   int
	Timeout     time.Duration
}

type job struct {
	order   domain.Order
	product domain.Product
}

// Relay sends queued notifications one at a time on a single worker. Sends
// are spaced at least MinInterval after the previous successful one.
type Relay struct {
	opt    Options
	client *resty.Client
	log    *zap.Logger
	queue  chan job
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error

	lastOK time.Time

	startOnce sync.Once
	done      chan struct{}
	cancel    context.CancelFunc
}

func New(opt Options, log *zap.Logger) *Relay {
	if opt.QueueSize <= 0 {
		opt.QueueSize = 64
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 5 * time.Second
	}
	client := resty.New().
		SetTimeout(opt.Timeout).
		SetHeader("Content-Type", "application/json")
	if opt.URL == "" {
		log.Warn("order webhook url not configured, notifications disabled")
	}
	return &Relay{
		opt:    opt,
		client: client,
		log:    log,
		queue:  make(chan job, opt.QueueSize),
		now:    time.Now,
		sleep:  sleepCtx,
		done:   make(chan struct{}),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *Relay) Enabled() bool { return r.opt.URL != "" }

// NotifyOrder enqueues without blocking. A full queue drops the notification.
func (r *Relay) NotifyOrder(o domain.Order, p domain.Product) {
	if !r.Enabled() {
		return
	}
	select {
	case r.queue <- job{order: o, product: p}:
	default:
		deliveries.WithLabelValues("dropped").Inc()
		r.log.Warn("order webhook queue full, dropping", zap.String("order_id", o.ID))
	}
}

// Start runs the worker until ctx is cancelled or Stop is called.
func (r *Relay) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		ctx, r.cancel = context.WithCancel(ctx)
		go r.run(ctx)
	})
}

// Stop cancels the worker and waits for it. Queued jobs are discarded.
func (r *Relay) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Relay) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-r.queue:
			if err := r.deliver(ctx, j); err != nil {
				deliveries.WithLabelValues("failed").Inc()
				r.log.Error("order webhook failed", zap.String("order_id", j.order.ID), zap.Error(err))
				continue
			}
			deliveries.WithLabelValues("ok").Inc()
		}
	}
}

func (r *Relay) deliver(ctx context.Context, j job) error {
	if !r.lastOK.IsZero() {
		if wait := r.opt.MinInterval - r.now().Sub(r.lastOK); wait > 0 {
			if err := r.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(buildMessage(j.order, j.product, r.now())).
		Post(r.opt.URL)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode(), resp.String())
	}
	r.lastOK = r.now()
	return nil
}
