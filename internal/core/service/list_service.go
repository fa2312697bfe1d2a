package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
	"github.com/rl1809/shopping-assistant/internal/port"
)

// ListsKey is the storage key holding the JSON-encoded list collection.
const ListsKey = "shoppingLists"

// ListService owns the shopping lists and mirrors them to the key-value store
// after every mutation.
type ListService struct {
	mu       sync.Mutex
	store    port.KeyValueStore
	lists    []domain.ShoppingList
	degraded bool
	// unread is set while the stored collection could not be read, so the
	// in-memory lists must never replace it.
	unread bool
	now      func() time.Time
	logger   *zap.Logger
}

func NewListService(store port.KeyValueStore, logger *zap.Logger) *ListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListService{
		store:  store,
		lists:  []domain.ShoppingList{},
		now:    time.Now,
		logger: logger.Named("lists"),
	}
}

func (s *ListService) CreateList(ctx context.Context, name string) (domain.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ShoppingList{}, domain.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := domain.ShoppingList{
		ID:    s.nextIDLocked(),
		Name:  name,
		Items: []int64{},
	}
	s.lists = append(s.lists, list)
	s.writeThroughLocked(ctx)

	s.logger.Debug("list created", zap.Int64("list_id", list.ID), zap.String("name", name))
	return list.Clone(), nil
}

// AddItem appends productID to the first list in creation order.
func (s *ListService) AddItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lists) == 0 {
		return domain.ErrNoListExists
	}
	s.lists[0].Items = append(s.lists[0].Items, productID)
	s.writeThroughLocked(ctx)
	return nil
}

func (s *ListService) AddItemToList(ctx context.Context, listID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lists) == 0 {
		return domain.ErrNoListExists
	}
	i := s.indexLocked(listID)
	if i < 0 {
		return domain.ErrListNotFound
	}
	s.lists[i].Items = append(s.lists[i].Items, productID)
	s.writeThroughLocked(ctx)
	return nil
}

// RemoveItem drops every occurrence of productID from the list. An unknown
// list is a no-op.
func (s *ListService) RemoveItem(ctx context.Context, listID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(listID)
	if i < 0 {
		return nil
	}

	kept := s.lists[i].Items[:0]
	for _, id := range s.lists[i].Items {
		if id != productID {
			kept = append(kept, id)
		}
	}
	s.lists[i].Items = kept
	s.writeThroughLocked(ctx)
	return nil
}

// Load replaces the in-memory lists with the stored collection. Missing or
// malformed data yields an empty collection. A failed read also yields an
// empty collection but switches the service to memory-only operation so the
// saved lists are left untouched.
func (s *ListService) Load(ctx context.Context) []domain.ShoppingList {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.readLocked(ctx)
	if err != nil {
		s.unread = true
		s.degraded = true
		s.logger.Warn("failed to read saved lists, continuing in memory", zap.Error(err))
	} else {
		s.unread = false
	}
	s.lists = lists
	return s.snapshotLocked()
}

// Persist overwrites the stored collection with the in-memory lists. It
// refuses to write while the stored collection has not been read.
func (s *ListService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unread {
		return fmt.Errorf("%w: saved lists were never loaded", domain.ErrStorageUnavailable)
	}
	return s.persistLocked(ctx)
}

func (s *ListService) Lists() []domain.ShoppingList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ListService) Get(listID int64) (domain.ShoppingList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(listID)
	if i < 0 {
		return domain.ShoppingList{}, false
	}
	return s.lists[i].Clone(), true
}

// Degraded reports whether a failed read or write has switched the service
// to memory-only operation.
func (s *ListService) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *ListService) readLocked(ctx context.Context) ([]domain.ShoppingList, error) {
	raw, found, err := s.store.Get(ctx, ListsKey)
	if err != nil {
		return []domain.ShoppingList{}, err
	}
	if !found {
		return []domain.ShoppingList{}, nil
	}

	var lists []domain.ShoppingList
	if err := json.Unmarshal([]byte(raw), &lists); err != nil {
		s.logger.Warn("discarding malformed saved lists", zap.Error(err))
		return []domain.ShoppingList{}, nil
	}
	if err := validateLists(lists); err != nil {
		s.logger.Warn("discarding malformed saved lists", zap.Error(err))
		return []domain.ShoppingList{}, nil
	}
	if lists == nil {
		return []domain.ShoppingList{}, nil
	}
	for i := range lists {
		if lists[i].Items == nil {
			lists[i].Items = []int64{}
		}
	}
	return lists, nil
}

// validateLists checks the decoded collection for non-blank names and
// unique ids.
func validateLists(lists []domain.ShoppingList) error {
	seen := make(map[int64]struct{}, len(lists))
	for i, l := range lists {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("list at index %d has no name", i)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("duplicate list id %d", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return nil
}

func (s *ListService) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.lists)
	if err != nil {
		return fmt.Errorf("encode lists: %w", err)
	}
	if err := s.store.Set(ctx, ListsKey, string(data)); err != nil {
		return fmt.Errorf("persist lists: %w", err)
	}
	return nil
}

func (s *ListService) writeThroughLocked(ctx context.Context) {
	if s.degraded {
		return
	}
	if err := s.persistLocked(ctx); err != nil {
		s.degraded = true
		s.logger.Warn("list persistence failed, continuing in memory", zap.Error(err))
	}
}

func (s *ListService) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	for _, l := range s.lists {
		if l.ID >= id {
			id = l.ID + 1
		}
	}
	return id
}

func (s *ListService) indexLocked(listID int64) int {
	for i, l := range s.lists {
		if l.ID == listID {
			return i
		}
	}
	return -1
}

func (s *ListService) snapshotLocked() []domain.ShoppingList {
	out := make([]domain.ShoppingList, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.Clone()
	}
	return out
}
