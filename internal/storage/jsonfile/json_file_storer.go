package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/google/uuid"
)

// JsonFileStorer appends every evaluation as one JSON document per line.
type JsonFileStorer struct {
	mu       sync.Mutex
	filePath string
}

func NewJsonFileStorer(filePath string) *JsonFileStorer {
	return &JsonFileStorer{
		filePath: filePath,
	}
}

func (s *JsonFileStorer) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	if evaluation.CreatedAt.IsZero() {
		evaluation.CreatedAt = time.Now().UTC()
	}

	line, err := json.Marshal(evaluation)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal evaluation: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return uuid.Nil, fmt.Errorf("failed to append evaluation: %w", err)
	}

	slog.Debug("Saved evaluation to JSON file", "id", evaluation.ID, "path", s.filePath)
	return evaluation.ID, nil
}

func (s *JsonFileStorer) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	items, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *JsonFileStorer) List(ctx context.Context, cursor *domain.Cursor, size int) (*storage.ListResult, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	items := make([]domain.Evaluation, 0, len(all))
	for _, ev := range all {
		if cursor == nil || cursor.Precedes(ev) {
			items = append(items, ev)
		}
	}
	sort.Slice(items, func(i, j int) bool { return domain.NewerFirst(items[i], items[j]) })

	if len(items) > size+1 {
		items = items[:size+1]
	}
	return storage.NewListResult(items, size), nil
}

func (s *JsonFileStorer) readAll() ([]domain.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	// records are streamed so a single long expression has no size limit
	var items []domain.Evaluation
	dec := json.NewDecoder(f)
	for dec.More() {
		var ev domain.Evaluation
		if err := dec.Decode(&ev); err != nil {
			return nil, fmt.Errorf("failed to decode history record %d: %w", len(items)+1, err)
		}
		items = append(items, ev)
	}
	return items, nil
}
