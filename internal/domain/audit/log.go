package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one audit record. Request entries carry the caller and, for
// sensitive endpoints, the masked payload; response entries carry status
// and duration.
type Entry struct {
	Timestamp   time.Time `json:"timestamp"`
	Method      string    `json:"method"`
	Endpoint    string    `json:"endpoint"`
	User        string    `json:"user,omitempty"`
	IP          string    `json:"ip,omitempty"`
	RequestID   string    `json:"requestId,omitempty"`
	Sensitive   bool      `json:"sensitiveOperation,omitempty"`
	RequestData any       `json:"requestData,omitempty"`
	Status      int       `json:"status,omitempty"`
	DurationMs  int64     `json:"durationMs,omitempty"`
}

// Log is an append-only audit sink backed by a single file. It is opened at
// process start, shared across requests, and closed at shutdown. Appends
// never rewrite earlier entries.
type Log struct {
	mu   sync.Mutex
	file *os.File
	path string
}

func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	return &Log{file: file, path: path}, nil
}

func (l *Log) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.file.Write(line)
	return err
}

// Tail returns the last n raw entries and the total entry count.
func (l *Log) Tail(n int) ([]string, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	total := len(lines)
	if n > 0 && total > n {
		lines = lines[total-n:]
	}
	return lines, total, nil
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
