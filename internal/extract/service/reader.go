// Package service reads the source CSV files into raw rows.
package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/railzwaylabs/salesetl/internal/config"
	"github.com/railzwaylabs/salesetl/internal/extract/domain"
	"go.uber.org/zap"
)

var (
	ErrEmptyFile      = errors.New("csv file is empty")
	ErrMissingColumns = errors.New("csv file is missing required columns")
)

type Reader struct {
	cfg config.Config
	log *zap.Logger
}

func NewReader(cfg config.Config, log *zap.Logger) *Reader {
	return &Reader{
		cfg: cfg,
		log: log.Named("extract.reader"),
	}
}

// ReadSales reads sales.csv from the configured data directory.
func (r *Reader) ReadSales() ([]domain.RawRow, error) {
	path := filepath.Join(r.cfg.Data.Dir, r.cfg.Data.SalesFile)
	return r.readFile(path, domain.SalesRequiredColumns)
}

// ReadCustomers reads customers.csv from the configured data directory.
func (r *Reader) ReadCustomers() ([]domain.RawRow, error) {
	path := filepath.Join(r.cfg.Data.Dir, r.cfg.Data.CustomersFile)
	return r.readFile(path, domain.CustomersRequiredColumns)
}

func (r *Reader) readFile(path string, required []string) ([]domain.RawRow, error) {
	r.log.Info("reading csv file", zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f, required)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r.log.Info("csv file read",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

// ReadRows parses CSV content into raw rows and checks the header carries
// every required column.
func ReadRows(src io.Reader, required []string) ([]domain.RawRow, error) {
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if missing := missingColumns(header, required); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var rows []domain.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		row := make(domain.RawRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func missingColumns(header, required []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = struct{}{}
	}

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}
