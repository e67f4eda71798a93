// Package domain defines the persistence contract for the destination
// tables.
package domain

import (
	"context"
	"fmt"

	transformdomain "github.com/railzwaylabs/salesetl/internal/transform/domain"
	"gorm.io/gorm"
)

// Load step names, reported when a step's transaction fails.
const (
	StepReset           = "reset"
	StepUpsertCustomers = "upsert_customers"
	StepInsertSales     = "insert_sales"
	StepInsertSummaries = "insert_summaries"
	StepInsertRankings  = "insert_rankings"
)

// StepError identifies which load step failed. The step's transaction has
// already been rolled back when this surfaces.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("load step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

type Repository interface {
	// Reset empties sales, sales_summary and product_ranking. Customers are
	// never reset, they persist across runs and are upserted by key.
	Reset(ctx context.Context, db *gorm.DB) error
	UpsertCustomers(ctx context.Context, db *gorm.DB, customers []transformdomain.CustomerRecord) error
	InsertSales(ctx context.Context, db *gorm.DB, sales []transformdomain.SalesRecord) error
	InsertSummaries(ctx context.Context, db *gorm.DB, summaries []transformdomain.CategorySummary) error
	InsertRankings(ctx context.Context, db *gorm.DB, rankings []transformdomain.ProductRanking) error
}
