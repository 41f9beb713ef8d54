package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jmtec-reports/models"
)

// LockManager handles file-based locking so only one worker instance
// runs table setup at a time.
type LockManager struct {
	lockFilePath string
	lockTimeout  time.Duration
	environment  string
}

// NewLockManager creates a new lock manager
func NewLockManager(lockPath string, timeout time.Duration, env string) *LockManager {
	return &LockManager{
		lockFilePath: lockPath,
		lockTimeout:  timeout,
		environment:  env,
	}
}

// AcquireLock takes the lock for ownerID, extending it when this owner
// already holds it. A live lock held by someone else is an error.
func (lm *LockManager) AcquireLock(ownerID string) (*models.LockInfo, error) {
	if err := os.MkdirAll(filepath.Dir(lm.lockFilePath), 0755); err != nil {
		return nil, err
	}

	if existingLock, err := lm.readLockFile(); err == nil {
		if time.Now().Before(existingLock.ExpiresAt) {
			if existingLock.Owner == ownerID && existingLock.Environment == lm.environment {
				existingLock.ExpiresAt = time.Now().Add(lm.lockTimeout)
				if err := lm.writeLockFile(existingLock); err != nil {
					return nil, fmt.Errorf("failed to extend lock: %w", err)
				}
				return existingLock, nil
			}
			return nil, fmt.Errorf("lock held by %s until %s", existingLock.Owner, existingLock.ExpiresAt)
		}
	}

	lockInfo := &models.LockInfo{
		ID:          fmt.Sprintf("infra-lock-%d", time.Now().UnixNano()),
		Owner:       ownerID,
		AcquiredAt:  time.Now(),
		ExpiresAt:   time.Now().Add(lm.lockTimeout),
		Environment: lm.environment,
	}

	if err := lm.writeLockFile(lockInfo); err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	return lockInfo, nil
}

// ReleaseLock drops the lock if ownerID still holds it.
func (lm *LockManager) ReleaseLock(ownerID string) error {
	existingLock, err := lm.readLockFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if existingLock.Owner != ownerID {
		return fmt.Errorf("lock owned by %s, not %s", existingLock.Owner, ownerID)
	}

	return os.Remove(lm.lockFilePath)
}

func (lm *LockManager) readLockFile() (*models.LockInfo, error) {
	data, err := os.ReadFile(lm.lockFilePath)
	if err != nil {
		return nil, err
	}

	var lockInfo models.LockInfo
	if err := json.Unmarshal(data, &lockInfo); err != nil {
		return nil, err
	}
	return &lockInfo, nil
}

func (lm *LockManager) writeLockFile(lockInfo *models.LockInfo) error {
	data, err := json.MarshalIndent(lockInfo, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(lm.lockFilePath, data, 0644)
}
