package service

import (
	"strconv"
	"strings"
	"time"

	extractdomain "github.com/railzwaylabs/salesetl/internal/extract/domain"
	"github.com/railzwaylabs/salesetl/internal/transform/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

const unknownValue = "Unknown"

// Cleaner turns raw CSV rows into typed records. Rows that fail type
// coercion are dropped and counted, never fatal.
type Cleaner struct {
	log *zap.Logger
}

func NewCleaner(log *zap.Logger) *Cleaner {
	return &Cleaner{log: log.Named("transform.cleaner")}
}

// CleanSales coerces sales rows. A row is dropped when order_id, quantity or
// unit_price is non-numeric, quantity or unit_price is negative, or
// order_date does not parse. Duplicate rows (same order_id, product_id,
// quantity, unit_price) keep the first occurrence.
func (c *Cleaner) CleanSales(rows []extractdomain.RawRow) ([]domain.SalesRecord, int) {
	records := make([]domain.SalesRecord, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	dropped := 0
	duplicates := 0

	for _, row := range rows {
		rec, ok := c.cleanSalesRow(row)
		if !ok {
			dropped++
			continue
		}

		key := strings.Join([]string{
			strconv.Itoa(rec.OrderID),
			rec.ProductID,
			strconv.Itoa(rec.Quantity),
			rec.UnitPrice.String(),
		}, "|")
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}

		records = append(records, rec)
	}

	if dropped > 0 {
		c.log.Warn("dropped invalid sales rows", zap.Int("count", dropped))
	}
	if duplicates > 0 {
		c.log.Warn("removed duplicate sales rows", zap.Int("count", duplicates))
	}
	return records, dropped + duplicates
}

func (c *Cleaner) cleanSalesRow(row extractdomain.RawRow) (domain.SalesRecord, bool) {
	orderID, err := strconv.Atoi(field(row, "order_id"))
	if err != nil {
		return domain.SalesRecord{}, false
	}

	quantity, err := strconv.Atoi(field(row, "quantity"))
	if err != nil || quantity < 0 {
		return domain.SalesRecord{}, false
	}

	unitPrice, err := decimal.NewFromString(field(row, "unit_price"))
	if err != nil || unitPrice.IsNegative() {
		return domain.SalesRecord{}, false
	}

	orderDate, err := time.Parse(dateLayout, field(row, "order_date"))
	if err != nil {
		return domain.SalesRecord{}, false
	}

	customerID := field(row, "customer_id")
	if customerID == "" {
		return domain.SalesRecord{}, false
	}

	category := field(row, "category")
	if category == "" {
		category = unknownValue
	}

	return domain.SalesRecord{
		OrderID:     orderID,
		CustomerID:  customerID,
		ProductID:   field(row, "product_id"),
		ProductName: field(row, "product_name"),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		OrderDate:   orderDate,
		Category:    category,
	}, true
}

// CleanCustomers coerces customer rows. Rows without a customer_id or with
// an unparsable registration_date are dropped. Duplicate customer_ids keep
// the last occurrence, CSV order being authoritative.
func (c *Cleaner) CleanCustomers(rows []extractdomain.RawRow) ([]domain.CustomerRecord, int) {
	byID := make(map[string]domain.CustomerRecord, len(rows))
	order := make([]string, 0, len(rows))
	dropped := 0
	superseded := 0

	for _, row := range rows {
		rec, ok := c.cleanCustomerRow(row)
		if !ok {
			dropped++
			continue
		}
		if _, exists := byID[rec.CustomerID]; exists {
			superseded++
		} else {
			order = append(order, rec.CustomerID)
		}
		byID[rec.CustomerID] = rec
	}

	if dropped > 0 {
		c.log.Warn("dropped invalid customer rows", zap.Int("count", dropped))
	}
	if superseded > 0 {
		c.log.Info("deduplicated customer rows, last occurrence wins", zap.Int("count", superseded))
	}

	records := make([]domain.CustomerRecord, 0, len(order))
	for _, id := range order {
		records = append(records, byID[id])
	}
	return records, dropped
}

func (c *Cleaner) cleanCustomerRow(row extractdomain.RawRow) (domain.CustomerRecord, bool) {
	customerID := field(row, "customer_id")
	if customerID == "" {
		return domain.CustomerRecord{}, false
	}

	registrationDate, err := time.Parse(dateLayout, field(row, "registration_date"))
	if err != nil {
		return domain.CustomerRecord{}, false
	}

	region := field(row, "region")
	if region == "" {
		region = unknownValue
	}

	return domain.CustomerRecord{
		CustomerID:       customerID,
		CustomerName:     field(row, "customer_name"),
		Email:            field(row, "email"),
		RegistrationDate: registrationDate,
		Region:           region,
	}, true
}

func field(row extractdomain.RawRow, key string) string {
	return strings.TrimSpace(row[key])
}
