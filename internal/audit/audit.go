package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

// Entry records one authentication resolution or authorization decision.
type Entry struct {
	Time      time.Time `json:"time"`
	RequestID string    `json:"request_id,omitempty"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity,omitempty"`
	EntityID  string    `json:"entity_id,omitempty"`
	Allowed   bool      `json:"allowed"`
	Note      string    `json:"note,omitempty"`
}

// Trail is an append-only JSONL audit log, fsynced per write so a crash never
// loses an acknowledged entry.
type Trail struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open creates the trail file (and its directory) if needed and opens it for
// appending.
func Open(path string) (*Trail, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return &Trail{file: file, path: path}, nil
}

// Record appends an entry. The entry time is stamped here when unset.
func (t *Trail) Record(e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		logger.Log.Error("audit: failed to marshal entry",
			zap.String("action", e.Action),
			zap.Error(err),
		)
		return err
	}

	if _, err := t.file.Write(append(data, '\n')); err != nil {
		logger.Log.Error("audit: failed to append entry",
			zap.String("action", e.Action),
			zap.Error(err),
		)
		return err
	}

	return t.file.Sync()
}

// ReadAll returns every entry in the trail, oldest first. Lines that fail to
// parse are skipped; a torn final line from a crash must not poison reads.
func (t *Trail) ReadAll() ([]Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var entries []Entry
	scanner := bufio.NewScanner(t.file)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Restore append position.
	if _, err := t.file.Seek(0, 2); err != nil {
		return nil, err
	}

	return entries, nil
}

func (t *Trail) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}
