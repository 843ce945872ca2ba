package store

import (
	"sort"
	"sync"

	mkerrors "github.com/flogin/prodadmin/internal/mockapi/errors"
)

// CategoryStore keeps the seeded category set.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[int64]Category
	nextID     int64
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		categories: make(map[int64]Category),
		nextID:     1,
	}
}

// Seed adds a category with the next id and returns it.
func (s *CategoryStore) Seed(name string) Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Category{ID: s.nextID, Name: name}
	s.nextID++
	s.categories[c.ID] = c
	return c
}

// FindByID retrieves a category by its ID.
// Returns ErrCategoryNotFound if no category exists with the given ID.
func (s *CategoryStore) FindByID(id int64) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, mkerrors.ErrCategoryNotFound
	}
	return &c, nil
}

// FindAll retrieves all categories ordered by id.
func (s *CategoryStore) FindAll() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
