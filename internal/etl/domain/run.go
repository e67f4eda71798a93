// Package domain holds the bookkeeping model for ETL runs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunRecord is the audit row written for every ETL run.
type RunRecord struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	StartedAt         time.Time    `gorm:"not null"`
	FinishedAt        *time.Time
	Status            RunStatus `gorm:"type:varchar(20);not null"`
	SalesLoaded       int       `gorm:"not null"`
	SalesDropped      int       `gorm:"not null"`
	CustomersUpserted int       `gorm:"not null"`
	ErrorMessage      string    `gorm:"type:text"`
}

func (RunRecord) TableName() string { return "etl_runs" }
