package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Store reads and writes the task file at a fixed path.
type Store struct {
	path   string
	logger *log.Logger
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load and save failures.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp new tasks.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a store for the task file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the task file. Unlike LoadOrEmpty it reports
// a missing file or invalid JSON to the caller.
func (s *Store) Load() (List, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return decodeList(data)
}

// LoadOrEmpty reads the task file, treating a missing, empty, or corrupt
// file as an empty list.
func (s *Store) LoadOrEmpty() List {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("task file unreadable, using empty list", "path", s.path, "err", err)
		}
		return List{}
	}
	tasks, err := decodeList(data)
	if err != nil {
		s.logger.Warn("task file corrupt, using empty list", "path", s.path, "err", err)
		return List{}
	}
	return tasks
}

// Save writes the full list to the task file with 2-space indentation,
// replacing whatever was there.
func (s *Store) Save(tasks List) error {
	data, err := encodeList(tasks)
	if err != nil {
		s.logger.Error("encode tasks", "path", s.path, "err", err)
		return fmt.Errorf("marshal task file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Error("save tasks", "path", s.path, "err", err)
		return fmt.Errorf("write task file: %w", err)
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

func decodeList(data []byte) (List, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return List{}, nil
	}
	var tasks List
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if tasks == nil {
		tasks = List{}
	}
	return tasks, nil
}

func encodeList(tasks List) ([]byte, error) {
	if tasks == nil {
		tasks = List{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// Encode appends the trailing newline.
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
