// Package etl sequences a full Extract -> Clean -> Transform -> Load run.
package etl

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/salesetl/internal/clock"
	"github.com/railzwaylabs/salesetl/internal/config"
	etldomain "github.com/railzwaylabs/salesetl/internal/etl/domain"
	extractservice "github.com/railzwaylabs/salesetl/internal/extract/service"
	loadservice "github.com/railzwaylabs/salesetl/internal/load/service"
	transformservice "github.com/railzwaylabs/salesetl/internal/transform/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Runner struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger

	genID       *snowflake.Node
	clock       clock.Clock
	reader      *extractservice.Reader
	cleaner     *transformservice.Cleaner
	transformer *transformservice.Transformer
	loader      *loadservice.Loader
	metrics     *Metrics
}

type RunnerParam struct {
	fx.In

	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Reader      *extractservice.Reader
	Cleaner     *transformservice.Cleaner
	Transformer *transformservice.Transformer
	Loader      *loadservice.Loader
	Metrics     *Metrics
}

func NewRunner(p RunnerParam) *Runner {
	return &Runner{
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("etl.runner"),
		genID:       p.GenID,
		clock:       p.Clock,
		reader:      p.Reader,
		cleaner:     p.Cleaner,
		transformer: p.Transformer,
		loader:      p.Loader,
		metrics:     p.Metrics,
	}
}

// Run executes one complete ETL run. It records an etl_runs audit row before
// touching the destination tables and finalizes it with the run outcome.
func (r *Runner) Run(ctx context.Context) error {
	startedAt := r.clock.Now(ctx)
	run := etldomain.RunRecord{
		ID:        r.genID.Generate(),
		StartedAt: startedAt,
		Status:    etldomain.RunStatusRunning,
	}
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return err
	}

	log := r.log.With(zap.Int64("run_id", int64(run.ID)))
	log.Info("etl run started", zap.Time("started_at", startedAt))

	stopMetrics := r.serveMetrics(log)
	defer stopMetrics()

	err := r.execute(ctx, log, startedAt, &run)

	finishedAt := r.clock.Now(ctx)
	run.FinishedAt = &finishedAt
	if err != nil {
		run.Status = etldomain.RunStatusFailed
		run.ErrorMessage = err.Error()
		log.Error("etl run failed", zap.Error(err))
	} else {
		run.Status = etldomain.RunStatusSucceeded
		log.Info("etl run succeeded", zap.Duration("elapsed", finishedAt.Sub(startedAt)))
	}
	r.metrics.Runs.WithLabelValues(string(run.Status)).Inc()

	if saveErr := r.db.WithContext(ctx).Save(&run).Error; saveErr != nil {
		log.Warn("failed to finalize run record", zap.Error(saveErr))
		if err == nil {
			err = saveErr
		}
	}
	return err
}

func (r *Runner) execute(ctx context.Context, log *zap.Logger, startedAt time.Time, run *etldomain.RunRecord) error {
	salesRows, err := r.reader.ReadSales()
	if err != nil {
		return err
	}
	customerRows, err := r.reader.ReadCustomers()
	if err != nil {
		return err
	}
	r.metrics.RowsExtracted.WithLabelValues("sales").Add(float64(len(salesRows)))
	r.metrics.RowsExtracted.WithLabelValues("customers").Add(float64(len(customerRows)))

	cleanedSales, droppedSales := r.cleaner.CleanSales(salesRows)
	cleanedCustomers, droppedCustomers := r.cleaner.CleanCustomers(customerRows)
	r.metrics.RowsDropped.WithLabelValues("sales").Add(float64(droppedSales))
	r.metrics.RowsDropped.WithLabelValues("customers").Add(float64(droppedCustomers))

	result := r.transformer.Transform(cleanedSales, cleanedCustomers, startedAt)

	for _, check := range result.RegionChecks {
		log.Info("region average check",
			zap.String("region", check.Region),
			zap.String("avg_check", check.AvgCheck.StringFixed(2)),
			zap.Int("orders", check.OrdersCount),
		)
	}

	if err := r.loader.Load(ctx, result.Sales, result.Summaries, result.Rankings, result.Customers); err != nil {
		return err
	}

	r.metrics.RowsLoaded.WithLabelValues("sales").Add(float64(len(result.Sales)))
	r.metrics.RowsLoaded.WithLabelValues("customers").Add(float64(len(result.Customers)))
	r.metrics.RowsLoaded.WithLabelValues("sales_summary").Add(float64(len(result.Summaries)))
	r.metrics.RowsLoaded.WithLabelValues("product_ranking").Add(float64(len(result.Rankings)))

	run.SalesLoaded = len(result.Sales)
	run.SalesDropped = droppedSales
	run.CustomersUpserted = len(result.Customers)
	return nil
}

// serveMetrics exposes the pipeline counters for the duration of the run
// when a metrics address is configured.
func (r *Runner) serveMetrics(log *zap.Logger) func() {
	if r.cfg.Metrics.Addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.metrics.Handler())
	srv := &http.Server{Addr: r.cfg.Metrics.Addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
