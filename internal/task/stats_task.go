// Package task runs the periodic storefront stats refresh.
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Counter is one stat source, e.g. OrderRepo.CountUnread.
type Counter func(ctx context.Context) (int64, error)

type Sources struct {
	UnreadOrders    Counter
	VisibleProducts Counter
	ActiveBackdoors Counter
}

type Snapshot struct {
	UnreadOrders    int64
	VisibleProducts int64
	ActiveBackdoors int64
}

type StatsTask struct {
	src     Sources
	log     *zap.Logger
	timeout time.Duration
	cron    *cron.Cron

	unread  prometheus.Gauge
	visible prometheus.Gauge
	active  prometheus.Gauge
}

// NewStatsTask registers its gauges on reg.
func NewStatsTask(src Sources, reg prometheus.Registerer, log *zap.Logger) (*StatsTask, error) {
	t := &StatsTask{
		src:     src,
		log:     log,
		timeout: 10 * time.Second,
		unread: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpmarket_unread_orders", Help: "Orders not yet marked as read",
		}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpmarket_visible_products", Help: "Products shown on the storefront",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpmarket_active_backdoor_accounts", Help: "Backdoor accounts allowed to log in",
		}),
	}
	for _, c := range []prometheus.Collector{t.unread, t.visible, t.active} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register stats gauge: %w", err)
		}
	}
	return t, nil
}

// Refresh reads every source once and publishes the gauges.
func (t *StatsTask) Refresh(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var s Snapshot
	var err error
	if s.UnreadOrders, err = t.src.UnreadOrders(ctx); err != nil {
		return s, fmt.Errorf("count unread orders: %w", err)
	}
	if s.VisibleProducts, err = t.src.VisibleProducts(ctx); err != nil {
		return s, fmt.Errorf("count visible products: %w", err)
	}
	if s.ActiveBackdoors, err = t.src.ActiveBackdoors(ctx); err != nil {
		return s, fmt.Errorf("count active backdoor accounts: %w", err)
	}
	t.unread.Set(float64(s.UnreadOrders))
	t.visible.Set(float64(s.VisibleProducts))
	t.active.Set(float64(s.ActiveBackdoors))
	return s, nil
}

// Start schedules Refresh on spec (standard cron or @every descriptors) and
// runs it once immediately.
func (t *StatsTask) Start(ctx context.Context, spec string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	job := func() {
		snap, err := t.Refresh(ctx)
		if err != nil {
			t.log.Warn("stats refresh failed", zap.Error(err))
			return
		}
		t.log.Debug("stats refreshed",
			zap.Int64("unread_orders", snap.UnreadOrders),
			zap.Int64("visible_products", snap.VisibleProducts),
			zap.Int64("active_backdoors", snap.ActiveBackdoors))
	}
	if _, err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("schedule stats task %q: %w", spec, err)
	}
	t.cron = c
	c.Start()
	go job()
	return nil
}

// Stop waits for a running refresh to finish.
func (t *StatsTask) Stop() {
	if t.cron == nil {
		return
	}
	<-t.cron.Stop().Done()
}
