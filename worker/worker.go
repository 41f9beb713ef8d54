// Package worker runs the infrastructure setup job: it makes sure the
// report tables exist before the API starts serving, on a schedule or
// once at boot.
package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"jmtec-reports/dal"
	"jmtec-reports/infrastructure"
	"jmtec-reports/models"
	"jmtec-reports/utils/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

type Worker struct {
	config        *models.Config
	workerConfig  *models.WorkerConfig
	dbClient      dal.RecordStoreInterface
	logger        logger.Logger
	cronJob       *cron.Cron
	lockManager   *LockManager
	statusManager *StatusManager
	ownerID       string

	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewWorker(ctx context.Context, cfg *models.Config, db dal.RecordStoreInterface, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	// Generate unique owner ID for this instance
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	workerConfig := &models.WorkerConfig{
		CronSchedule:   cronScheduleForEnvironment(cfg.AppEnv),
		LockTimeout:    30 * time.Minute,
		Environment:    cfg.AppEnv,
		RequiredTables: cfg.Tables,
		LockFilePath:   fmt.Sprintf("/tmp/jmtec-reports-infrastructure-%s.lock", cfg.AppEnv),
		StatusFilePath: fmt.Sprintf("/tmp/jmtec-reports-status-%s.json", cfg.AppEnv),
		RunOnce:        os.Getenv("INFRASTRUCTURE_RUN_ONCE") != "false",
	}

	workerCtx, cancel := context.WithCancel(ctx)

	return &Worker{
		config:        cfg,
		workerConfig:  workerConfig,
		dbClient:      db,
		logger:        log,
		cronJob:       cron.New(),
		lockManager:   NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout, workerConfig.Environment),
		statusManager: NewStatusManager(workerConfig.StatusFilePath),
		ownerID:       ownerID,
		ctx:           workerCtx,
		cancel:        cancel,
	}, nil
}

func cronScheduleForEnvironment(env string) string {
	if env == "production" {
		// Nightly check in production
		return "0 0 3 * * *"
	}
	// Hourly elsewhere
	return "0 0 * * * *"
}

// Start runs the setup job, either once or on the cron schedule.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("worker is already running")
	}

	w.logger.Infof("Starting infrastructure worker %s (schedule: %s, run once: %v)",
		w.ownerID, w.workerConfig.CronSchedule, w.workerConfig.RunOnce)

	if completed, err := w.statusManager.IsSetupCompleted(); err == nil && completed {
		w.logger.Info("Infrastructure setup already completed, verifying tables anyway")
	}

	if w.workerConfig.RunOnce {
		w.isRunning = true
		go func() {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Errorf("Setup run panicked: %v", r)
				}
				w.Stop()
			}()
			ctx, cancel := context.WithTimeout(w.ctx, 15*time.Minute)
			defer cancel()
			w.runSetup(ctx)
		}()
		return nil
	}

	if err := w.cronJob.AddFunc(w.workerConfig.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(w.ctx, 15*time.Minute)
		defer cancel()
		w.runSetup(ctx)
	}); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.cronJob.Start()
	w.isRunning = true
	w.logger.Info("Infrastructure worker started successfully")
	return nil
}

// Stop stops the scheduler and releases the lock.
func (w *Worker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return nil
	}

	w.cronJob.Stop()
	w.cancel()
	if err := w.lockManager.ReleaseLock(w.ownerID); err != nil {
		w.logger.Warnf("Failed to release lock: %v", err)
	}
	w.isRunning = false
	w.logger.Info("Infrastructure worker stopped")
	return nil
}

// runSetup ensures every required table exists, under the lock, and
// records the outcome in the status file.
func (w *Worker) runSetup(ctx context.Context) {
	if _, err := w.lockManager.AcquireLock(w.ownerID); err != nil {
		w.logger.Warnf("Skipping setup run, lock unavailable: %v", err)
		return
	}
	defer func() {
		if err := w.lockManager.ReleaseLock(w.ownerID); err != nil {
			w.logger.Warnf("Failed to release lock: %v", err)
		}
	}()

	result := &models.ExecutionResult{
		Status:    models.StatusRunning,
		StartTime: time.Now(),
		Owner:     w.ownerID,
	}
	if err := w.statusManager.SaveStatus(result); err != nil {
		w.logger.Warnf("Failed to save status: %v", err)
	}

	success := true
	for _, table := range w.workerConfig.RequiredTables {
		status := w.ensureTable(ctx, table)
		result.TablesEnsured = append(result.TablesEnsured, status)
		if status.Error != "" {
			success = false
		}
	}

	result.Success = success
	if success {
		result.Status = models.StatusCompleted
		w.logger.Info("Infrastructure setup completed successfully")
	} else {
		result.Status = models.StatusFailed
		result.Error = "one or more tables could not be ensured"
		w.logger.Error("Infrastructure setup failed")
	}

	if err := w.statusManager.SaveStatus(result); err != nil {
		w.logger.Warnf("Failed to save status: %v", err)
	}
}

// ensureTable creates the table when DescribeTable says it is missing.
func (w *Worker) ensureTable(ctx context.Context, table string) models.TableStatus {
	tableName := w.dbClient.TableName(table)
	status := models.TableStatus{TableName: tableName}

	if _, err := w.dbClient.DescribeTable(ctx, tableName); err == nil {
		w.logger.Debugf("Table %s already exists", tableName)
		return status
	}

	input, err := infrastructure.GetTables(tableName)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	if err := w.dbClient.CreateTable(ctx, input); err != nil {
		w.logger.Errorf("Failed to create table %s: %v", tableName, err)
		status.Error = err.Error()
		return status
	}

	w.logger.Infof("Created table %s", tableName)
	status.Created = true
	return status
}
