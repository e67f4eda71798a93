// Package service persists transformed data into the destination tables.
package service

import (
	"context"

	"github.com/railzwaylabs/salesetl/internal/load/domain"
	"github.com/railzwaylabs/salesetl/internal/load/repository"
	transformdomain "github.com/railzwaylabs/salesetl/internal/transform/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Loader struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

type LoaderParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewLoader(p LoaderParam) *Loader {
	return &Loader{
		db:   p.DB,
		log:  p.Log.Named("load.loader"),
		repo: repository.Provide(),
	}
}

// Load runs the five load steps in order, each inside its own transaction:
// reset the rebuilt tables, upsert customers by customer_id, then bulk
// insert sales, summaries and rankings. A failing step rolls back and stops
// the run; steps already committed stay committed.
func (l *Loader) Load(
	ctx context.Context,
	sales []transformdomain.SalesRecord,
	summaries []transformdomain.CategorySummary,
	rankings []transformdomain.ProductRanking,
	customers []transformdomain.CustomerRecord,
) error {
	steps := []struct {
		name string
		fn   func(ctx context.Context, tx *gorm.DB) error
	}{
		{domain.StepReset, func(ctx context.Context, tx *gorm.DB) error {
			return l.repo.Reset(ctx, tx)
		}},
		{domain.StepUpsertCustomers, func(ctx context.Context, tx *gorm.DB) error {
			return l.repo.UpsertCustomers(ctx, tx, customers)
		}},
		{domain.StepInsertSales, func(ctx context.Context, tx *gorm.DB) error {
			return l.repo.InsertSales(ctx, tx, sales)
		}},
		{domain.StepInsertSummaries, func(ctx context.Context, tx *gorm.DB) error {
			return l.repo.InsertSummaries(ctx, tx, summaries)
		}},
		{domain.StepInsertRankings, func(ctx context.Context, tx *gorm.DB) error {
			return l.repo.InsertRankings(ctx, tx, rankings)
		}},
	}

	for _, step := range steps {
		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return step.fn(ctx, tx)
		})
		if err != nil {
			l.log.Error("load step failed", zap.String("step", step.name), zap.Error(err))
			return &domain.StepError{Step: step.name, Err: err}
		}
		l.log.Info("load step complete", zap.String("step", step.name))
	}

	l.log.Info("load complete",
		zap.Int("sales", len(sales)),
		zap.Int("customers", len(customers)),
		zap.Int("summaries", len(summaries)),
		zap.Int("rankings", len(rankings)),
	)
	return nil
}
