// Package history provides a size-capped, thread-safe log of past
// evaluations. The expression engine never touches it; callers append the
// results they choose to keep.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxEntries caps the log; adding beyond it evicts the oldest entry.
const MaxEntries = 200

// Entry is one evaluation record.
type Entry struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
}

// Log is a thread-safe, ordered, size-capped evaluation log.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// New creates an empty log.
func New() *Log {
	return &Log{}
}

// Add appends a record and returns it. The oldest entry is evicted once the
// log holds MaxEntries.
func (l *Log) Add(expression, result string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{
		ID:         uuid.NewString(),
		Expression: expression,
		Result:     result,
		Timestamp:  time.Now().UTC(),
	}
	l.entries = append(l.entries, e)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[len(l.entries)-MaxEntries:]
	}
	return e
}

// Entries returns the log newest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear removes all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Save writes the log to path as JSON lines, oldest first.
func (l *Log) Save(path string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range l.entries {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		w.Write(b)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Load reads a JSON-lines history file written by Save, replacing the
// current contents. A missing file leaves the log empty and is not an
// error. Malformed lines are skipped; anything beyond MaxEntries keeps only
// the newest records.
func (l *Log) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}
