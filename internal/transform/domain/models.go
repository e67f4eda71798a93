// Package domain contains the cleaned and aggregated shapes persisted by the
// loader.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is one cleaned sales line item. TotalPrice is always recomputed
// from Quantity and UnitPrice, never taken from input.
type SalesRecord struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     int             `gorm:"not null;index"`
	CustomerID  string          `gorm:"type:varchar(50);not null"`
	ProductID   string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OrderDate   time.Time       `gorm:"type:date;not null"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Month       string          `gorm:"type:varchar(7);not null"`
}

func (SalesRecord) TableName() string { return "sales" }

// CustomerRecord is one cleaned customer. Invalid emails are kept and flagged
// so sales rows never lose their customer reference.
type CustomerRecord struct {
	ID               uint      `gorm:"primaryKey"`
	CustomerID       string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName     string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255)"`
	EmailValid       bool      `gorm:"not null;default:false"`
	RegistrationDate time.Time `gorm:"type:date;not null"`
	Region           string    `gorm:"type:varchar(100);not null"`
	CustomerDays     int       `gorm:"not null"`
}

func (CustomerRecord) TableName() string { return "customers" }

// CategorySummary is one aggregate row per distinct category per run.
type CategorySummary struct {
	ID                uint            `gorm:"primaryKey"`
	Category          string          `gorm:"type:varchar(100);not null"`
	TotalSales        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalQuantity     int             `gorm:"not null"`
	AverageOrderValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PeriodDate        time.Time       `gorm:"type:date;not null"`
}

func (CategorySummary) TableName() string { return "sales_summary" }

// ProductRanking is one row of the top-N products by revenue.
type ProductRanking struct {
	ID           uint            `gorm:"primaryKey"`
	ProductID    string          `gorm:"type:varchar(50);not null"`
	ProductName  string          `gorm:"type:varchar(255);not null"`
	TotalSold    int             `gorm:"not null"`
	TotalRevenue decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RankPosition int             `gorm:"not null"`
}

func (ProductRanking) TableName() string { return "product_ranking" }

// RegionCheck is the per-region average order total. It is reported, not
// persisted.
type RegionCheck struct {
	Region      string
	AvgCheck    decimal.Decimal
	OrdersCount int
}
