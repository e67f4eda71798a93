package service

import (
	"testing"
	"time"

	"github.com/railzwaylabs/salesetl/internal/config"
	"github.com/railzwaylabs/salesetl/internal/transform/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTransformer(t *testing.T) *Transformer {
	t.Helper()
	return NewTransformer(config.Config{Ranking: config.RankingConfig{TopN: 5}}, zap.NewNop())
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func salesRecord(orderID int, customerID, productID, category string, qty int, price string) domain.SalesRecord {
	return domain.SalesRecord{
		OrderID:     orderID,
		CustomerID:  customerID,
		ProductID:   productID,
		ProductName: "Product " + productID,
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
		OrderDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Category:    category,
	}
}

func TestTransform_DerivedSalesFields(t *testing.T) {
	tr := newTestTransformer(t)

	res := tr.Transform(
		[]domain.SalesRecord{salesRecord(1, "C001", "P001", "A", 3, "19.99")},
		nil,
		time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
	)

	require.Len(t, res.Sales, 1)
	assert.True(t, res.Sales[0].TotalPrice.Equal(mustDecimal(t, "59.97")))
	assert.Equal(t, "2024-03", res.Sales[0].Month)
}

func TestTransform_CustomerDaysAndEmailFlag(t *testing.T) {
	tr := newTestTransformer(t)
	ref := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	res := tr.Transform(nil, []domain.CustomerRecord{
		{CustomerID: "C001", Email: "a@b.co", RegistrationDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "C002", Email: "bad-email", RegistrationDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
	}, ref)

	require.Len(t, res.Customers, 2)
	assert.Equal(t, 31, res.Customers[0].CustomerDays)
	assert.True(t, res.Customers[0].EmailValid)
	// Registration after the reference date clamps to zero.
	assert.Equal(t, 0, res.Customers[1].CustomerDays)
	assert.False(t, res.Customers[1].EmailValid)
}

func TestTransform_CategorySummaries(t *testing.T) {
	tr := newTestTransformer(t)
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	res := tr.Transform([]domain.SalesRecord{
		salesRecord(1, "C001", "P001", "A", 2, "10.00"),
		salesRecord(2, "C001", "P002", "A", 1, "5.00"),
		salesRecord(3, "C002", "P003", "B", 3, "20.00"),
	}, nil, ref)

	require.Len(t, res.Summaries, 2)

	a := res.Summaries[0]
	assert.Equal(t, "A", a.Category)
	assert.True(t, a.TotalSales.Equal(mustDecimal(t, "25.00")))
	assert.Equal(t, 3, a.TotalQuantity)
	assert.True(t, a.AverageOrderValue.Equal(mustDecimal(t, "12.50")))
	assert.Equal(t, ref, a.PeriodDate)

	b := res.Summaries[1]
	assert.Equal(t, "B", b.Category)
	assert.True(t, b.TotalSales.Equal(mustDecimal(t, "60.00")))
	assert.Equal(t, 3, b.TotalQuantity)
	assert.True(t, b.AverageOrderValue.Equal(mustDecimal(t, "60.00")))
}

func TestTransform_SummaryConservation(t *testing.T) {
	tr := newTestTransformer(t)

	sales := []domain.SalesRecord{
		salesRecord(1, "C001", "P001", "A", 2, "10.01"),
		salesRecord(2, "C001", "P002", "B", 1, "5.99"),
		salesRecord(3, "C002", "P003", "C", 7, "0.33"),
		salesRecord(4, "C002", "P004", "A", 4, "12.75"),
	}
	res := tr.Transform(sales, nil, time.Now())

	total := decimal.Zero
	for _, rec := range res.Sales {
		total = total.Add(rec.TotalPrice)
	}
	summed := decimal.Zero
	for _, s := range res.Summaries {
		summed = summed.Add(s.TotalSales)
	}
	assert.True(t, total.Equal(summed), "sum of per-category totals must equal sum over all rows")
}

func TestTransform_AverageOrderValueRounding(t *testing.T) {
	tr := newTestTransformer(t)

	// 10.01 / 2 = 5.005, rounded half away from zero -> 5.01.
	res := tr.Transform([]domain.SalesRecord{
		salesRecord(1, "C001", "P001", "A", 1, "5.01"),
		salesRecord(2, "C001", "P002", "A", 1, "5.00"),
	}, nil, time.Now())

	require.Len(t, res.Summaries, 1)
	assert.True(t, res.Summaries[0].AverageOrderValue.Equal(mustDecimal(t, "5.01")))
}

func TestTransform_ProductRankingTieBreaks(t *testing.T) {
	tr := newTestTransformer(t)

	res := tr.Transform([]domain.SalesRecord{
		salesRecord(1, "C001", "P1", "A", 1, "100.00"),
		salesRecord(2, "C001", "P2", "A", 5, "60.00"),
		salesRecord(3, "C002", "P3", "A", 10, "30.00"),
		salesRecord(4, "C002", "P4", "A", 1, "50.00"),
	}, nil, time.Now())

	// P2 and P3 both have revenue 300; P3 sold more units so it ranks first.
	require.Len(t, res.Rankings, 4)
	assert.Equal(t, []string{"P3", "P2", "P1", "P4"}, rankedIDs(res.Rankings))
	for i, r := range res.Rankings {
		assert.Equal(t, i+1, r.RankPosition)
	}
}

func TestTransform_RankingTopFiveAndMonotonicRevenue(t *testing.T) {
	tr := newTestTransformer(t)

	var sales []domain.SalesRecord
	for i := 0; i < 8; i++ {
		sales = append(sales, salesRecord(i+1, "C001", string(rune('A'+i)), "Cat", i+1, "10.00"))
	}
	res := tr.Transform(sales, nil, time.Now())

	require.Len(t, res.Rankings, 5)
	for i := 1; i < len(res.Rankings); i++ {
		assert.Equal(t, i+1, res.Rankings[i].RankPosition)
		cmp := res.Rankings[i-1].TotalRevenue.Cmp(res.Rankings[i].TotalRevenue)
		assert.GreaterOrEqual(t, cmp, 0, "revenue must be non-increasing across ranks")
	}
}

func TestTransform_RegionChecks(t *testing.T) {
	tr := newTestTransformer(t)

	res := tr.Transform(
		[]domain.SalesRecord{
			salesRecord(1, "C001", "P1", "A", 1, "10.00"),
			salesRecord(1, "C001", "P2", "A", 1, "20.00"), // same order, summed
			salesRecord(2, "C002", "P3", "A", 1, "40.00"),
			salesRecord(3, "CXXX", "P4", "A", 1, "5.00"), // unknown customer
		},
		[]domain.CustomerRecord{
			{CustomerID: "C001", Email: "a@b.co", RegistrationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Region: "North"},
			{CustomerID: "C002", Email: "b@b.co", RegistrationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Region: "South"},
		},
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)

	require.Len(t, res.RegionChecks, 3)
	assert.Equal(t, "South", res.RegionChecks[0].Region)
	assert.True(t, res.RegionChecks[0].AvgCheck.Equal(mustDecimal(t, "40.00")))
	assert.Equal(t, "North", res.RegionChecks[1].Region)
	assert.True(t, res.RegionChecks[1].AvgCheck.Equal(mustDecimal(t, "30.00")))
	assert.Equal(t, "Unknown", res.RegionChecks[2].Region)
	assert.Equal(t, 1, res.RegionChecks[2].OrdersCount)
}

func rankedIDs(rankings []domain.ProductRanking) []string {
	ids := make([]string, len(rankings))
	for i, r := range rankings {
		ids[i] = r.ProductID
	}
	return ids
}
