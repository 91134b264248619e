package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOrderStatsSchedule runs the job every 30 seconds.
const DefaultOrderStatsSchedule = "*/30 * * * * *"

type OrderStatsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderStatsQuery) ([]queries.GetOrderStatsQueryResponse, error)
}

// OrderStatsJob periodically publishes the number of stored orders per
// status to the orders-by-status gauge.
type OrderStatsJob struct {
	handler  OrderStatsHandler
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatsJob creates the job. schedule is a six field cron expression
// (seconds first); an empty schedule falls back to DefaultOrderStatsSchedule.
func NewOrderStatsJob(
	handler OrderStatsHandler,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *OrderStatsJob {
	if schedule == "" {
		schedule = DefaultOrderStatsSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderStatsJob{
		handler:  handler,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_stats_job"),
	}
}

// Start refreshes the gauge once and then on every tick of the schedule.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.Run(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started", "schedule", j.schedule)
	return nil
}

// Run performs a single refresh. Failures are logged and the previous gauge
// values are kept.
func (j *OrderStatsJob) Run(ctx context.Context) {
	stats, err := j.handler.Handle(ctx, queries.NewGetOrderStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
		return
	}

	statuses := make([]string, 0, len(stats))
	counts := make(map[string]int64, len(stats))
	for _, s := range stats {
		statuses = append(statuses, s.Status.String())
		counts[s.Status.String()] = s.Count
	}
	j.metrics.SetOrdersByStatus(statuses, counts)
}

// Stop waits for a running refresh to finish.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
