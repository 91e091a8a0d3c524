// Package history keeps the append-only log of generated posts.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one generated post
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
}

// NewEntry stamps a new entry with an ID and the current time
func NewEntry(topic, content string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Topic:     topic,
		Content:   content,
	}
}

// Log is an append-only record of entries. List returns entries in the
// order they were appended.
type Log interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// Recent returns the last n entries, oldest first
func Recent(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

const lineTopicWidth = 50

// Line renders entry n as "NN. 2006-01-02T15:04:05 - topic", cutting the
// topic at 50 characters
func Line(n int, e Entry) string {
	topic := e.Topic
	if r := []rune(topic); len(r) > lineTopicWidth {
		topic = string(r[:lineTopicWidth]) + "..."
	}
	return fmt.Sprintf("%2d. %s - %s", n, e.Timestamp.Format("2006-01-02T15:04:05"), topic)
}

// Open returns the backend named by kind, storing its file in dir
func Open(kind, dir string) (Log, error) {
	switch kind {
	case "sqlite":
		l, err := OpenSQLite(SQLitePath(dir))
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return NewJSONLog(JSONPath(dir)), nil
	}
}
