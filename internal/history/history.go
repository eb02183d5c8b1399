// Package history persists summaries of completed batches so the history
// command can show what stevedore did recently.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// BatchRecord summarizes one completed batch. Only finished batches are
// recorded; a cancelled run never leaves a partial record.
type BatchRecord struct {
	BatchID          string        `json:"batch_id"`
	Operation        string        `json:"operation"`
	Succeeded        int           `json:"succeeded"`
	AlreadySatisfied int           `json:"already_satisfied"`
	Failed           int           `json:"failed"`
	Duration         time.Duration `json:"duration"`
	Timestamp        time.Time     `json:"timestamp"`
}

var mu sync.Mutex

const stateFileName = "stevedore_history.json"

func stateFilePath() string {
	if dir := os.Getenv("STEVEDORE_STATE_DIR"); dir != "" {
		return filepath.Join(dir, stateFileName)
	}
	// Prefer a persistent location; fall back to the working dir rather than
	// a temp dir that may be cleared on reboot.
	defaultDir := "/var/lib/stevedore"
	if err := os.MkdirAll(defaultDir, 0o755); err == nil {
		return filepath.Join(defaultDir, stateFileName)
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, stateFileName)
	}
	return filepath.Join(os.TempDir(), stateFileName)
}

// loadAllUnlocked reads the history file. Caller must hold the package mutex.
func loadAllUnlocked() ([]BatchRecord, error) {
	data, err := os.ReadFile(stateFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}
	var out []BatchRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return out, nil
}

// saveAllUnlocked writes the history file. Caller must hold the package mutex.
func saveAllUnlocked(records []BatchRecord) error {
	p := stateFilePath()
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("mkdir history dir: %w", err)
	}
	if err := os.WriteFile(p, b, 0o640); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// Record appends a batch record, dropping the oldest entries beyond limit.
// The whole read-modify-write cycle runs under the package mutex to avoid
// lost updates.
func Record(r BatchRecord, limit int) error {
	mu.Lock()
	defer mu.Unlock()
	records, err := loadAllUnlocked()
	if err != nil {
		return err
	}
	records = append(records, r)
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return saveAllUnlocked(records)
}

// All returns the persisted records, oldest first.
func All() ([]BatchRecord, error) {
	mu.Lock()
	defer mu.Unlock()
	return loadAllUnlocked()
}
