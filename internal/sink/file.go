package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/event"
)

// File appends one JSON document per result.
type File struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewFile opens path for appending, creating it if needed.
func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return &File{f: f, enc: json.NewEncoder(f)}, nil
}

func (s *File) Kind() string { return "file" }

func (s *File) Publish(_ context.Context, r *event.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(r); err != nil {
		return fmt.Errorf("write result %s: %w", r.EventID, err)
	}
	return nil
}

func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
