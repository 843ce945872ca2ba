package form

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/flogin/prodadmin/internal/client/api"
	"github.com/flogin/prodadmin/internal/client/session"
	"github.com/flogin/prodadmin/internal/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a mock implementation of the api.Client interface that
// counts backend calls, so tests can assert that invalid forms never
// reach the backend.
type mockClient struct {
	mu          sync.Mutex
	token       string
	categories  []api.Category
	product     *api.Product
	error       error
	loginCalls  int
	createCalls int
	updateCalls int
}

func (m *mockClient) Login(_ context.Context, _, _ string) (string, error) {
	m.mu.Lock()
	m.loginCalls++
	m.mu.Unlock()
	return m.token, m.error
}

func (m *mockClient) Profile(_ context.Context) (*api.Profile, error) {
	return nil, m.error
}

func (m *mockClient) Categories(_ context.Context) ([]api.Category, error) {
	return m.categories, m.error
}

func (m *mockClient) Products(_ context.Context) ([]api.Product, error) {
	return nil, m.error
}

func (m *mockClient) CreateProduct(_ context.Context, _ api.ProductPayload) (*api.Product, error) {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	return m.product, m.error
}

func (m *mockClient) UpdateProduct(_ context.Context, _ int64, _ api.ProductPayload) (*api.Product, error) {
	m.mu.Lock()
	m.updateCalls++
	m.mu.Unlock()
	return m.product, m.error
}

func (m *mockClient) DeleteProduct(_ context.Context, _ int64) error {
	return m.error
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newSessions(client api.Client) *session.Store {
	return session.NewStore(client, session.NewMemoryCredentialStore(), time.Hour, discardLogger())
}

// newCaches builds product and category caches with the category set
// already loaded.
func newCaches(t *testing.T, client *mockClient) (*store.ProductCache, *store.CategoryCache) {
	t.Helper()
	products := store.NewProductCache(client, discardLogger())
	categories := store.NewCategoryCache(client, discardLogger())
	if client.categories != nil {
		require.NoError(t, categories.Refresh(context.Background()))
	}
	return products, categories
}

func Test_LoginForm_Validate(t *testing.T) {
	testCases := []struct {
		name         string
		username     string
		password     string
		expectFields []string
	}{
		{
			name:     "Success - both fields valid",
			username: "admin123",
			password: "admin123",
		},
		{
			name:         "Error - both fields reported at once",
			username:     "",
			password:     "short",
			expectFields: []string{"username", "password"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			f := NewLoginForm(newSessions(&mockClient{}))
			f.Username = tc.username
			f.Password = tc.password
			// when
			errs := f.Validate()
			// then
			if len(tc.expectFields) == 0 {
				assert.True(t, errs.Valid())
				return
			}
			assert.Len(t, errs, len(tc.expectFields))
			for _, field := range tc.expectFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func Test_LoginForm_Submit_FieldErrorsSkipBackend(t *testing.T) {
	// given
	client := &mockClient{token: "tok-1"}
	f := NewLoginForm(newSessions(client))
	f.Username = "x"
	f.Password = ""
	// when
	errs, err := f.Submit(context.Background())
	// then: both problems reported, no backend call made
	require.NoError(t, err)
	assert.Len(t, errs, 2)
	assert.Equal(t, 0, client.loginCalls)
}

func Test_LoginForm_Submit_Success(t *testing.T) {
	// given
	client := &mockClient{token: "tok-1"}
	sessions := newSessions(client)
	f := NewLoginForm(sessions)
	f.Username = "admin123"
	f.Password = "admin123"
	// when
	errs, err := f.Submit(context.Background())
	// then
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.True(t, sessions.LoggedIn())
	assert.Equal(t, "", f.Password, "password must be cleared after a successful login")
	assert.Equal(t, "admin123", f.Username)
}

func Test_LoginForm_Submit_BackendFailureIsGeneral(t *testing.T) {
	// given
	client := &mockClient{error: api.ErrInvalidCredentials}
	sessions := newSessions(client)
	f := NewLoginForm(sessions)
	f.Username = "admin123"
	f.Password = "wrong1pass"
	// when
	errs, err := f.Submit(context.Background())
	// then: the failure is a single general error, never field-level
	assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	assert.Nil(t, errs)
	assert.False(t, sessions.LoggedIn())
}

func Test_ProductForm_Validate_AllErrorsAtOnce(t *testing.T) {
	// given: four invalid fields simultaneously
	client := &mockClient{categories: []api.Category{{ID: 1, Name: "Electronics"}}}
	products, categories := newCaches(t, client)
	f := NewProductForm(products, categories)
	f.ProductName = "ab"
	f.Price = "-1"
	f.Quantity = "1.5"
	f.CategoryID = ""
	// when
	errs := f.Validate()
	// then: every failure is reported in the same pass
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "productName")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "quantity")
	assert.Contains(t, errs, "categoryId")
}

func Test_ProductForm_Submit_FieldErrorsSkipBackend(t *testing.T) {
	// given
	client := &mockClient{categories: []api.Category{{ID: 1, Name: "Electronics"}}}
	products, categories := newCaches(t, client)
	f := NewProductForm(products, categories)
	f.ProductName = "ab"
	f.Price = "x"
	// when
	errs, err := f.Submit(context.Background())
	// then
	require.NoError(t, err)
	assert.False(t, errs.Valid())
	assert.Equal(t, 0, client.createCalls)
	assert.Equal(t, 0, client.updateCalls)
}

func Test_ProductForm_Submit_Add(t *testing.T) {
	// given
	client := &mockClient{
		categories: []api.Category{{ID: 1, Name: "Electronics"}},
		product:    &api.Product{ID: 5, ProductName: "Red Mug", Price: 9.99, Quantity: 3},
	}
	products, categories := newCaches(t, client)
	f := NewProductForm(products, categories)
	f.ProductName = "Red Mug"
	f.Price = "9.99"
	f.Quantity = "3"
	f.CategoryID = "1"
	// when
	errs, err := f.Submit(context.Background())
	// then: the cache holds the server-assigned id and the form reset
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, 1, client.createCalls)
	assert.Equal(t, 1, products.Count())
	assert.Equal(t, "", f.ProductName)
	assert.False(t, f.Editing())
}

func Test_ProductForm_Submit_AddWithEmptyQuantity(t *testing.T) {
	// given: quantity left blank coerces to 0
	client := &mockClient{
		categories: []api.Category{{ID: 1, Name: "Electronics"}},
		product:    &api.Product{ID: 6, ProductName: "Red Mug", Price: 9.99},
	}
	products, categories := newCaches(t, client)
	f := NewProductForm(products, categories)
	f.ProductName = "Red Mug"
	f.Price = "9.99"
	f.Quantity = ""
	f.CategoryID = "1"
	// when
	errs, err := f.Submit(context.Background())
	// then
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, 1, client.createCalls)
}

func Test_ProductForm_Submit_Edit(t *testing.T) {
	// given: a form prefilled from an existing product
	client := &mockClient{
		categories: []api.Category{{ID: 1, Name: "Electronics"}},
		product:    &api.Product{ID: 5, ProductName: "Blue Mug", Price: 12, Quantity: 2},
	}
	products, categories := newCaches(t, client)
	f := NewProductForm(products, categories)
	f.SetProduct(&api.Product{
		ID:          5,
		ProductName: "Red Mug",
		Price:       9.99,
		Quantity:    3,
		Category:    &api.Category{ID: 1, Name: "Electronics"},
	})
	require.True(t, f.Editing())
	assert.Equal(t, "9.99", f.Price)
	assert.Equal(t, "1", f.CategoryID)

	f.ProductName = "Blue Mug"
	// when
	errs, err := f.Submit(context.Background())
	// then: the update path is taken and the form stays in edit mode
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, 1, client.updateCalls)
	assert.Equal(t, 0, client.createCalls)
	assert.True(t, f.Editing())
}

func Test_ProductForm_Reset(t *testing.T) {
	// given
	client := &mockClient{categories: []api.Category{{ID: 1, Name: "Electronics"}}}
	products, categories := newCaches(t, client)
	f := NewProductForm(products, categories)
	f.SetProduct(&api.Product{ID: 5, ProductName: "Red Mug", Price: 9.99, Quantity: 3})
	// when
	f.Reset()
	// then
	assert.False(t, f.Editing())
	assert.Equal(t, "", f.ProductName)
	assert.Equal(t, "", f.Price)
	assert.Equal(t, "", f.Quantity)
	assert.Equal(t, "", f.CategoryID)
	assert.Equal(t, "", f.Description)
}
