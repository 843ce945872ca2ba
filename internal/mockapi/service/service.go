// Package service provides the business logic of the mock backend.
package service

import (
	"fmt"

	"github.com/flogin/prodadmin/internal/mockapi/store"
)

// CategoryDto represents a category in API responses.
type CategoryDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductDto represents a product in API responses. Category is embedded
// as an object, matching what the admin client expects.
type ProductDto struct {
	ID          int64       `json:"id"`
	ProductName string      `json:"productName"`
	Price       float64     `json:"price"`
	Quantity    int         `json:"quantity"`
	Description string      `json:"description,omitempty"`
	Category    CategoryDto `json:"category"`
}

// ProductRequestDto is the request body for create and update. The same
// shape serves both, like the original backend's request DTO.
type ProductRequestDto struct {
	ProductName string  `json:"productName" validate:"required,min=3,max=100"`
	Price       float64 `json:"price"       validate:"required,gt=0,lte=999999999"`
	Quantity    int     `json:"quantity"    validate:"gte=0,lte=99999"`
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
}

// Service implements product and category operations over the in-memory
// stores.
type Service struct {
	products   *store.ProductStore
	categories *store.CategoryStore
}

func NewService(products *store.ProductStore, categories *store.CategoryStore) *Service {
	return &Service{products: products, categories: categories}
}

// FindAllProducts returns all products as DTOs.
func (s *Service) FindAllProducts() []ProductDto {
	products := s.products.FindAll()
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = s.toDto(p)
	}
	return dtos
}

// CreateProduct validates the category reference and stores the product.
// Returns ErrCategoryNotFound when the referenced category is unknown.
func (s *Service) CreateProduct(req ProductRequestDto) (*ProductDto, error) {
	if _, err := s.categories.FindByID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	created := s.products.Create(store.Product{
		Name:        req.ProductName,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	dto := s.toDto(*created)
	return &dto, nil
}

// UpdateProduct replaces the product's mutable fields and returns the
// full updated object. Returns ErrProductNotFound for unknown ids and
// ErrCategoryNotFound for unknown category references.
func (s *Service) UpdateProduct(id int64, req ProductRequestDto) (*ProductDto, error) {
	if _, err := s.categories.FindByID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	updated, err := s.products.Update(id, store.Product{
		Name:        req.ProductName,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	dto := s.toDto(*updated)
	return &dto, nil
}

// DeleteProduct removes a product by id.
// Returns ErrProductNotFound for unknown ids.
func (s *Service) DeleteProduct(id int64) error {
	return s.products.DeleteByID(id)
}

// FindAllCategories returns the seeded category set as DTOs.
func (s *Service) FindAllCategories() []CategoryDto {
	categories := s.categories.FindAll()
	dtos := make([]CategoryDto, len(categories))
	for i, c := range categories {
		dtos[i] = CategoryDto{ID: c.ID, Name: c.Name}
	}
	return dtos
}

// toDto resolves the category reference into an embedded object. A
// dangling reference yields an empty category rather than an error; the
// list endpoint should not fail wholesale over one bad row.
func (s *Service) toDto(p store.Product) ProductDto {
	dto := ProductDto{
		ID:          p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
	}
	if c, err := s.categories.FindByID(p.CategoryID); err == nil {
		dto.Category = CategoryDto{ID: c.ID, Name: c.Name}
	}
	return dto
}
