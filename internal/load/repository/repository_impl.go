package repository

import (
	"context"

	"github.com/railzwaylabs/salesetl/internal/load/domain"
	transformdomain "github.com/railzwaylabs/salesetl/internal/transform/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Reset(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		return db.WithContext(ctx).Exec(
			`TRUNCATE TABLE sales, sales_summary, product_ranking RESTART IDENTITY`,
		).Error
	}

	// Non-Postgres dialects (in-memory test databases) have no multi-table
	// TRUNCATE.
	for _, table := range []string{"sales", "sales_summary", "product_ranking"} {
		if err := db.WithContext(ctx).Exec(`DELETE FROM ` + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) UpsertCustomers(ctx context.Context, db *gorm.DB, customers []transformdomain.CustomerRecord) error {
	if len(customers) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_name",
				"email",
				"email_valid",
				"registration_date",
				"region",
				"customer_days",
			}),
		}).
		CreateInBatches(&customers, insertBatchSize).Error
}

func (r *repo) InsertSales(ctx context.Context, db *gorm.DB, sales []transformdomain.SalesRecord) error {
	if len(sales) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&sales, insertBatchSize).Error
}

func (r *repo) InsertSummaries(ctx context.Context, db *gorm.DB, summaries []transformdomain.CategorySummary) error {
	if len(summaries) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&summaries, insertBatchSize).Error
}

func (r *repo) InsertRankings(ctx context.Context, db *gorm.DB, rankings []transformdomain.ProductRanking) error {
	if len(rankings) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&rankings, insertBatchSize).Error
}
