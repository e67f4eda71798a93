// Package domain defines the raw tabular shapes handed to the cleaner.
package domain

// RawRow is one CSV record keyed by column header. Values are untrimmed and
// untyped; the cleaner owns coercion.
type RawRow map[string]string

var SalesRequiredColumns = []string{
	"order_id",
	"customer_id",
	"product_id",
	"product_name",
	"quantity",
	"unit_price",
	"order_date",
	"category",
}

var CustomersRequiredColumns = []string{
	"customer_id",
	"customer_name",
	"email",
	"registration_date",
	"region",
}
