package in_mem

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/google/uuid"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Evaluation
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]domain.Evaluation),
	}
}

func (s *InMemStorer) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	if evaluation.CreatedAt.IsZero() {
		evaluation.CreatedAt = time.Now().UTC()
	}

	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	s.storage[evaluation.ID] = evaluation

	slog.Debug("Saved evaluation to in-memory storage", "id", evaluation.ID, "expression", evaluation.Expression)
	return evaluation.ID, nil
}

func (s *InMemStorer) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	ev, ok := s.storage[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &ev, nil
}

func (s *InMemStorer) List(ctx context.Context, cursor *domain.Cursor, size int) (*storage.ListResult, error) {
	s.storageLock.RLock()
	items := make([]domain.Evaluation, 0, len(s.storage))
	for _, ev := range s.storage {
		if cursor == nil || cursor.Precedes(ev) {
			items = append(items, ev)
		}
	}
	s.storageLock.RUnlock()

	sort.Slice(items, func(i, j int) bool { return domain.NewerFirst(items[i], items[j]) })

	if len(items) > size+1 {
		items = items[:size+1]
	}
	return storage.NewListResult(items, size), nil
}
