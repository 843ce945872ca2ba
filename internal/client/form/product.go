package form

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/flogin/prodadmin/internal/client/api"
	"github.com/flogin/prodadmin/internal/client/store"
	"github.com/flogin/prodadmin/internal/client/validate"
)

// ProductForm validates raw product input and drives the product cache.
// A form with a zero product id adds; SetProduct switches it to editing.
// Field values stay raw strings until submission so validation sees
// exactly what the user typed.
type ProductForm struct {
	ProductName string
	Price       string
	Quantity    string
	CategoryID  string
	Description string

	mu         sync.Mutex
	submitting bool
	productID  int64
	products   *store.ProductCache
	categories *store.CategoryCache
}

func NewProductForm(products *store.ProductCache, categories *store.CategoryCache) *ProductForm {
	return &ProductForm{products: products, categories: categories}
}

// SetProduct prefills the form from an existing product and switches it
// into edit mode.
func (f *ProductForm) SetProduct(p *api.Product) {
	f.productID = p.ID
	f.ProductName = p.ProductName
	f.Price = strconv.FormatFloat(p.Price, 'f', -1, 64)
	f.Quantity = strconv.Itoa(p.Quantity)
	f.Description = p.Description
	if p.Category != nil {
		f.CategoryID = strconv.FormatInt(p.Category.ID, 10)
	} else {
		f.CategoryID = ""
	}
}

// Reset clears every field and returns the form to add mode.
func (f *ProductForm) Reset() {
	f.productID = 0
	f.ProductName = ""
	f.Price = ""
	f.Quantity = ""
	f.CategoryID = ""
	f.Description = ""
}

// Editing reports whether the form targets an existing product.
func (f *ProductForm) Editing() bool {
	return f.productID != 0
}

// Validate runs all field validators against the raw input and the
// currently loaded category set, collecting every failure.
func (f *ProductForm) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.put("productName", validate.ProductName(f.ProductName))
	errs.put("price", validate.Price(f.Price))
	errs.put("quantity", validate.Quantity(f.Quantity))
	errs.put("categoryId", validate.CategoryID(f.CategoryID, f.categories.Categories()))
	errs.put("description", validate.Description(f.Description))
	return errs
}

// Submit validates and, when clean, adds or updates through the product
// cache. No backend call is made while any field is invalid. After a
// successful add the form resets to empty; after a successful edit the
// caller is expected to close it.
func (f *ProductForm) Submit(ctx context.Context) (FieldErrors, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if errs := f.Validate(); !errs.Valid() {
		return errs, nil
	}

	payload := f.payload()
	if f.Editing() {
		if _, err := f.products.Update(ctx, f.productID, payload); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if _, err := f.products.Add(ctx, payload); err != nil {
		return nil, err
	}
	f.Reset()
	return nil, nil
}

// payload converts the validated raw fields into the request body.
// It must only run after Validate passed; parse failures cannot happen
// for validated input, so results are taken as-is.
func (f *ProductForm) payload() api.ProductPayload {
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	quantity := 0
	if q := strings.TrimSpace(f.Quantity); q != "" {
		quantity, _ = strconv.Atoi(q)
	}
	categoryID, _ := strconv.ParseInt(strings.TrimSpace(f.CategoryID), 10, 64)
	return api.ProductPayload{
		ProductName: f.ProductName,
		Price:       price,
		Quantity:    quantity,
		CategoryID:  categoryID,
		Description: f.Description,
	}
}
