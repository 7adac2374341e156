package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/akylbekov/task-tracker/internal/domain"
	"github.com/akylbekov/task-tracker/internal/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/robfig/cron/v3"
)

// Querier is satisfied by *pgxpool.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Collector refreshes the tasks_by_status gauge on a fixed schedule so
// dashboards see task counts without a query per scrape.
type Collector struct {
	db     Querier
	logger *slog.Logger
	cron   *cron.Cron
}

func NewCollector(db Querier, logger *slog.Logger) *Collector {
	return &Collector{
		db:     db,
		logger: logger.With("component", "stats"),
		cron:   cron.New(),
	}
}

func (c *Collector) Start() error {
	if _, err := c.cron.AddFunc("@every 1m", c.refresh); err != nil {
		return err
	}
	c.cron.Start()
	c.refresh()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (c *Collector) Stop() {
	<-c.cron.Stop().Done()
}

func (c *Collector) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := c.db.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		c.logger.Warn("task stats refresh", "error", err)
		return
	}
	defer rows.Close()

	counts := map[domain.Status]int64{
		domain.StatusPending:    0,
		domain.StatusInProgress: 0,
		domain.StatusCompleted:  0,
	}
	for rows.Next() {
		var status domain.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			c.logger.Warn("task stats scan", "error", err)
			return
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		c.logger.Warn("task stats rows", "error", err)
		return
	}

	for status, n := range counts {
		metrics.TasksByStatus.WithLabelValues(string(status)).Set(float64(n))
	}
}
