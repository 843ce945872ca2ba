package store

import (
	"sort"
	"sync"

	mkerrors "github.com/flogin/prodadmin/internal/mockapi/errors"
)

// ProductStore keeps products in an id-keyed map.
type ProductStore struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *ProductStore) FindByID(id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, mkerrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products ordered by id.
func (s *ProductStore) FindAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Create assigns the next id and stores the product.
func (s *ProductStore) Create(p Product) *Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.products[p.ID] = p
	return &p
}

// Update replaces the stored product with the given id.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *ProductStore) Update(id int64, p Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return nil, mkerrors.ErrProductNotFound
	}
	p.ID = id
	s.products[id] = p
	return &p, nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *ProductStore) DeleteByID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return mkerrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}
