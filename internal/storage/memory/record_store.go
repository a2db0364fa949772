package memory

import (
	"context"
	"sort"
	"sync"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/storage"
)

// RecordStore is an in-memory implementation of storage.RecordStore.
type RecordStore struct {
	mu     sync.RWMutex
	tables map[domain.Platform]map[string]*domain.Table // platform -> category -> table
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		tables: make(map[domain.Platform]map[string]*domain.Table),
	}
}

// InsertTable stores a copy of t. Returns ErrDuplicateKey if the category exists.
func (s *RecordStore) InsertTable(_ context.Context, platform domain.Platform, t *domain.Table) error {
	if err := storage.ValidateTable(platform, t); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byCategory, ok := s.tables[platform]
	if !ok {
		byCategory = make(map[string]*domain.Table)
		s.tables[platform] = byCategory
	}
	if _, exists := byCategory[t.Category]; exists {
		return storage.ErrDuplicateKey
	}

	byCategory[t.Category] = t.Clone()
	return nil
}

// Platforms returns platforms with at least one table, sorted.
func (s *RecordStore) Platforms(_ context.Context) ([]domain.Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Platform, 0, len(s.tables))
	for p, byCategory := range s.tables {
		if len(byCategory) > 0 {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// Categories returns sorted category names for platform.
func (s *RecordStore) Categories(_ context.Context, platform domain.Platform) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, 0, len(s.tables[platform]))
	for c := range s.tables[platform] {
		result = append(result, c)
	}
	sort.Strings(result)
	return result, nil
}

// Load returns a copy of the table. Returns ErrNotFound if absent.
func (s *RecordStore) Load(ctx context.Context, platform domain.Platform, category string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tables[platform][category]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return t.Clone(), nil
}

var _ storage.RecordStore = (*RecordStore)(nil)
