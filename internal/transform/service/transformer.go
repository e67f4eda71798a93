package service

import (
	"sort"
	"time"

	"github.com/railzwaylabs/salesetl/internal/config"
	"github.com/railzwaylabs/salesetl/internal/transform/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultTopN = 5

// Transformer derives per-row fields and computes the run aggregates. It is
// a pure function of its inputs plus the injected reference date.
type Transformer struct {
	log  *zap.Logger
	topN int
}

func NewTransformer(cfg config.Config, log *zap.Logger) *Transformer {
	topN := cfg.Ranking.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	return &Transformer{
		log:  log.Named("transform.transformer"),
		topN: topN,
	}
}

type Result struct {
	Sales        []domain.SalesRecord
	Customers    []domain.CustomerRecord
	Summaries    []domain.CategorySummary
	Rankings     []domain.ProductRanking
	RegionChecks []domain.RegionCheck
}

func (t *Transformer) Transform(
	sales []domain.SalesRecord,
	customers []domain.CustomerRecord,
	referenceDate time.Time,
) Result {
	refDate := truncateToDate(referenceDate)

	enrichedSales := t.enrichSales(sales)
	enrichedCustomers := t.enrichCustomers(customers, refDate)

	res := Result{
		Sales:        enrichedSales,
		Customers:    enrichedCustomers,
		Summaries:    t.summarize(enrichedSales, refDate),
		Rankings:     t.rank(enrichedSales),
		RegionChecks: t.regionChecks(enrichedSales, enrichedCustomers),
	}

	t.log.Info("transform complete",
		zap.Int("sales", len(res.Sales)),
		zap.Int("customers", len(res.Customers)),
		zap.Int("summaries", len(res.Summaries)),
		zap.Int("rankings", len(res.Rankings)),
	)
	return res
}

func (t *Transformer) enrichSales(sales []domain.SalesRecord) []domain.SalesRecord {
	out := make([]domain.SalesRecord, len(sales))
	for i, rec := range sales {
		rec.TotalPrice = rec.UnitPrice.Mul(decimal.NewFromInt(int64(rec.Quantity)))
		rec.Month = rec.OrderDate.Format("2006-01")
		out[i] = rec
	}
	return out
}

func (t *Transformer) enrichCustomers(customers []domain.CustomerRecord, refDate time.Time) []domain.CustomerRecord {
	out := make([]domain.CustomerRecord, len(customers))
	for i, rec := range customers {
		days := int(refDate.Sub(truncateToDate(rec.RegistrationDate)).Hours() / 24)
		if days < 0 {
			days = 0
		}
		rec.CustomerDays = days
		rec.EmailValid = ValidateEmail(rec.Email)
		out[i] = rec
	}
	return out
}

// summarize groups sales by category. Output is sorted alphabetically by
// category so runs are deterministic. average_order_value is rounded to two
// decimal places, half away from zero.
func (t *Transformer) summarize(sales []domain.SalesRecord, refDate time.Time) []domain.CategorySummary {
	type bucket struct {
		totalSales    decimal.Decimal
		totalQuantity int
		orders        int
	}

	buckets := make(map[string]*bucket)
	for _, rec := range sales {
		b, ok := buckets[rec.Category]
		if !ok {
			b = &bucket{}
			buckets[rec.Category] = b
		}
		b.totalSales = b.totalSales.Add(rec.TotalPrice)
		b.totalQuantity += rec.Quantity
		b.orders++
	}

	categories := make([]string, 0, len(buckets))
	for cat := range buckets {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	summaries := make([]domain.CategorySummary, 0, len(categories))
	for _, cat := range categories {
		b := buckets[cat]
		avg := decimal.Zero
		if b.orders > 0 {
			avg = b.totalSales.DivRound(decimal.NewFromInt(int64(b.orders)), 2)
		}
		summaries = append(summaries, domain.CategorySummary{
			Category:          cat,
			TotalSales:        b.totalSales,
			TotalQuantity:     b.totalQuantity,
			AverageOrderValue: avg,
			PeriodDate:        refDate,
		})
	}
	return summaries
}

// rank orders products by total_revenue descending, breaking ties by
// total_sold descending, then product_id ascending, and keeps the top N.
func (t *Transformer) rank(sales []domain.SalesRecord) []domain.ProductRanking {
	type bucket struct {
		name    string
		sold    int
		revenue decimal.Decimal
	}

	buckets := make(map[string]*bucket)
	for _, rec := range sales {
		b, ok := buckets[rec.ProductID]
		if !ok {
			b = &bucket{name: rec.ProductName}
			buckets[rec.ProductID] = b
		}
		b.sold += rec.Quantity
		b.revenue = b.revenue.Add(rec.TotalPrice)
	}

	rankings := make([]domain.ProductRanking, 0, len(buckets))
	for id, b := range buckets {
		rankings = append(rankings, domain.ProductRanking{
			ProductID:    id,
			ProductName:  b.name,
			TotalSold:    b.sold,
			TotalRevenue: b.revenue,
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		cmp := rankings[i].TotalRevenue.Cmp(rankings[j].TotalRevenue)
		if cmp != 0 {
			return cmp > 0
		}
		if rankings[i].TotalSold != rankings[j].TotalSold {
			return rankings[i].TotalSold > rankings[j].TotalSold
		}
		return rankings[i].ProductID < rankings[j].ProductID
	})

	if len(rankings) > t.topN {
		rankings = rankings[:t.topN]
	}
	for i := range rankings {
		rankings[i].RankPosition = i + 1
	}
	return rankings
}

// regionChecks computes the average order total per customer region. Orders
// whose customer is unknown fall into the "Unknown" region.
func (t *Transformer) regionChecks(sales []domain.SalesRecord, customers []domain.CustomerRecord) []domain.RegionCheck {
	regionByCustomer := make(map[string]string, len(customers))
	for _, rec := range customers {
		regionByCustomer[rec.CustomerID] = rec.Region
	}

	type orderKey struct {
		orderID    int
		customerID string
	}
	orderTotals := make(map[orderKey]decimal.Decimal)
	for _, rec := range sales {
		key := orderKey{orderID: rec.OrderID, customerID: rec.CustomerID}
		orderTotals[key] = orderTotals[key].Add(rec.TotalPrice)
	}

	type bucket struct {
		total  decimal.Decimal
		orders int
	}
	buckets := make(map[string]*bucket)
	for key, total := range orderTotals {
		region, ok := regionByCustomer[key.customerID]
		if !ok {
			region = unknownValue
		}
		b, exists := buckets[region]
		if !exists {
			b = &bucket{}
			buckets[region] = b
		}
		b.total = b.total.Add(total)
		b.orders++
	}

	checks := make([]domain.RegionCheck, 0, len(buckets))
	for region, b := range buckets {
		checks = append(checks, domain.RegionCheck{
			Region:      region,
			AvgCheck:    b.total.DivRound(decimal.NewFromInt(int64(b.orders)), 2),
			OrdersCount: b.orders,
		})
	}

	sort.Slice(checks, func(i, j int) bool {
		cmp := checks[i].AvgCheck.Cmp(checks[j].AvgCheck)
		if cmp != 0 {
			return cmp > 0
		}
		return checks[i].Region < checks[j].Region
	})
	return checks
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
