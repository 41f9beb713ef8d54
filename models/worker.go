package models

import "time"

// WorkerStatus is the lifecycle state of the infrastructure worker run.
type WorkerStatus string

const (
	StatusPending   WorkerStatus = "pending"
	StatusRunning   WorkerStatus = "running"
	StatusCompleted WorkerStatus = "completed"
	StatusFailed    WorkerStatus = "failed"
)

// WorkerConfig configures one infrastructure worker instance.
type WorkerConfig struct {
	CronSchedule   string        `json:"cron_schedule"`
	LockTimeout    time.Duration `json:"lock_timeout"`
	Environment    string        `json:"environment"`
	RequiredTables []string      `json:"required_tables"`
	LockFilePath   string        `json:"lock_file_path"`
	StatusFilePath string        `json:"status_file_path"`
	RunOnce        bool          `json:"run_once"`
}

// TableStatus records the outcome for one table the worker ensured.
type TableStatus struct {
	TableName string `json:"table_name"`
	Created   bool   `json:"created"`
	Error     string `json:"error,omitempty"`
}

// ExecutionResult is the status file payload: what the last worker run
// did and how it ended.
type ExecutionResult struct {
	Status        WorkerStatus  `json:"status"`
	Success       bool          `json:"success"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	Duration      time.Duration `json:"duration"`
	TablesEnsured []TableStatus `json:"tables_ensured"`
	Error         string        `json:"error,omitempty"`
	Owner         string        `json:"owner"`
}

// LockInfo is the lockfile payload guarding concurrent worker runs.
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}
