package service

import (
	"testing"

	extractdomain "github.com/railzwaylabs/salesetl/internal/extract/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func salesRow(overrides map[string]string) extractdomain.RawRow {
	row := extractdomain.RawRow{
		"order_id":     "1",
		"customer_id":  "C001",
		"product_id":   "P001",
		"product_name": "Widget",
		"quantity":     "2",
		"unit_price":   "10.00",
		"order_date":   "2024-03-05",
		"category":     "Tools",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestCleanSales_TrimsAndCoerces(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, dropped := c.CleanSales([]extractdomain.RawRow{
		salesRow(map[string]string{
			"product_name": "  Widget  ",
			"quantity":     " 2 ",
			"unit_price":   " 10.00 ",
		}),
	})
	require.Len(t, records, 1)
	assert.Zero(t, dropped)

	rec := records[0]
	assert.Equal(t, 1, rec.OrderID)
	assert.Equal(t, "Widget", rec.ProductName)
	assert.Equal(t, 2, rec.Quantity)
	assert.True(t, rec.UnitPrice.Equal(mustDecimal(t, "10.00")))
	assert.Equal(t, "2024-03-05", rec.OrderDate.Format("2006-01-02"))
}

func TestCleanSales_DropsInvalidRows(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, dropped := c.CleanSales([]extractdomain.RawRow{
		salesRow(nil),
		salesRow(map[string]string{"order_id": "2", "quantity": "abc"}),
		salesRow(map[string]string{"order_id": "3", "quantity": "-1"}),
		salesRow(map[string]string{"order_id": "4", "unit_price": "-5.00"}),
		salesRow(map[string]string{"order_id": "5", "unit_price": "n/a"}),
		salesRow(map[string]string{"order_id": "6", "order_date": "05/03/2024"}),
		salesRow(map[string]string{"order_id": "7", "order_date": ""}),
		salesRow(map[string]string{"order_id": "8", "customer_id": " "}),
	})

	require.Len(t, records, 1)
	assert.Equal(t, 7, dropped)
	assert.Equal(t, 1, records[0].OrderID)
}

func TestCleanSales_ZeroQuantityAndPriceKept(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, dropped := c.CleanSales([]extractdomain.RawRow{
		salesRow(map[string]string{"quantity": "0", "unit_price": "0"}),
	})
	require.Len(t, records, 1)
	assert.Zero(t, dropped)
}

func TestCleanSales_DefaultsCategory(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, _ := c.CleanSales([]extractdomain.RawRow{
		salesRow(map[string]string{"category": "  "}),
	})
	require.Len(t, records, 1)
	assert.Equal(t, "Unknown", records[0].Category)
}

func TestCleanSales_RemovesDuplicatesKeepingFirst(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, dropped := c.CleanSales([]extractdomain.RawRow{
		salesRow(map[string]string{"category": "Tools"}),
		salesRow(map[string]string{"category": "Other"}), // same order/product/qty/price
		salesRow(map[string]string{"quantity": "3"}),     // different quantity, kept
	})

	require.Len(t, records, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "Tools", records[0].Category)
}

func customerRow(overrides map[string]string) extractdomain.RawRow {
	row := extractdomain.RawRow{
		"customer_id":       "C001",
		"customer_name":     "Alice",
		"email":             "alice@example.com",
		"registration_date": "2024-01-15",
		"region":            "North",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestCleanCustomers_DropsInvalidRows(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, dropped := c.CleanCustomers([]extractdomain.RawRow{
		customerRow(nil),
		customerRow(map[string]string{"customer_id": ""}),
		customerRow(map[string]string{"customer_id": "C002", "registration_date": "not-a-date"}),
	})

	require.Len(t, records, 1)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, "C001", records[0].CustomerID)
}

func TestCleanCustomers_DedupeLastWins(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, dropped := c.CleanCustomers([]extractdomain.RawRow{
		customerRow(map[string]string{"region": "North"}),
		customerRow(map[string]string{"customer_id": "C002", "customer_name": "Bob"}),
		customerRow(map[string]string{"region": "West"}),
	})

	require.Len(t, records, 2)
	assert.Zero(t, dropped)
	// First-seen order is preserved, last occurrence's fields win.
	assert.Equal(t, "C001", records[0].CustomerID)
	assert.Equal(t, "West", records[0].Region)
	assert.Equal(t, "C002", records[1].CustomerID)
}

func TestCleanCustomers_DefaultsRegion(t *testing.T) {
	c := NewCleaner(zap.NewNop())

	records, _ := c.CleanCustomers([]extractdomain.RawRow{
		customerRow(map[string]string{"region": ""}),
	})
	require.Len(t, records, 1)
	assert.Equal(t, "Unknown", records[0].Region)
}
