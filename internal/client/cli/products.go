package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/flogin/prodadmin/internal/client/api"
	"github.com/flogin/prodadmin/internal/client/form"
)

// List refreshes the product cache and prints it as a table.
func (a *App) List(ctx context.Context) error {
	if err := a.products.Refresh(ctx); err != nil {
		return a.reportBackendError(ctx, err)
	}

	products := a.products.Products()
	if len(products) == 0 {
		a.printf("No products yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tCATEGORY\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%s\t%s\n",
			p.ID, p.ProductName, p.Price, p.Quantity, p.CategoryName(), p.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("%d product(s).", a.products.Count())
	return nil
}

// Categories refreshes and prints the category list.
func (a *App) Categories(ctx context.Context) error {
	if err := a.categories.Refresh(ctx); err != nil {
		return a.reportBackendError(ctx, err)
	}
	cats := a.categories.Categories()
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	for _, c := range cats {
		a.printf("%3d  %s", c.ID, c.Name)
	}
	return nil
}

// Add prompts for the product fields and submits them through the product
// form. All field errors are shown at once; nothing is sent while any
// field is invalid.
func (a *App) Add(ctx context.Context) error {
	if err := a.ensureCategories(ctx); err != nil {
		return err
	}

	f := form.NewProductForm(a.products, a.categories)
	if err := a.fillProductForm(f); err != nil {
		return err
	}

	fieldErrs, err := f.Submit(ctx)
	if err != nil {
		return a.reportBackendError(ctx, err)
	}
	if !fieldErrs.Valid() {
		printFieldErrors(a.out, fieldErrs)
		return nil
	}
	a.printf("Product added.")
	return nil
}

// Edit loads an existing product into the form, lets the user change each
// field (empty answer keeps the current value), and submits.
func (a *App) Edit(ctx context.Context) error {
	if err := a.ensureCategories(ctx); err != nil {
		return err
	}

	id, err := a.askProductID("Product ID to edit")
	if err != nil {
		return err
	}
	current, ok := a.products.Find(id)
	if !ok {
		a.printf("Product %d is not in the list; run 'list' first.", id)
		return nil
	}

	f := form.NewProductForm(a.products, a.categories)
	f.SetProduct(current)

	if f.ProductName, err = GetDefaultedText(a.reader, "Name", f.ProductName, a.out); err != nil {
		return err
	}
	if f.Price, err = GetDefaultedText(a.reader, "Price", f.Price, a.out); err != nil {
		return err
	}
	if f.Quantity, err = GetDefaultedText(a.reader, "Quantity", f.Quantity, a.out); err != nil {
		return err
	}
	if f.CategoryID, err = GetDefaultedText(a.reader, "Category ID", f.CategoryID, a.out); err != nil {
		return err
	}
	if f.Description, err = GetDefaultedText(a.reader, "Description", f.Description, a.out); err != nil {
		return err
	}

	fieldErrs, err := f.Submit(ctx)
	if err != nil {
		return a.reportBackendError(ctx, err)
	}
	if !fieldErrs.Valid() {
		printFieldErrors(a.out, fieldErrs)
		return nil
	}
	a.printf("Product updated.")
	return nil
}

// Delete asks for confirmation before removing a product.
func (a *App) Delete(ctx context.Context) error {
	id, err := a.askProductID("Product ID to delete")
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete product %d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.")
		return nil
	}

	if err := a.products.Delete(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			a.printf("Product %d no longer exists on the server.", id)
			return nil
		}
		return a.reportBackendError(ctx, err)
	}
	a.printf("Product deleted.")
	return nil
}

// ensureCategories loads the category set once so the form can validate
// the selection against it.
func (a *App) ensureCategories(ctx context.Context) error {
	if len(a.categories.Categories()) > 0 {
		return nil
	}
	if err := a.categories.Refresh(ctx); err != nil {
		return a.reportBackendError(ctx, err)
	}
	return nil
}

func (a *App) fillProductForm(f *form.ProductForm) error {
	var err error
	if f.ProductName, err = GetSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if f.Price, err = GetSimpleText(a.reader, "Price", a.out); err != nil {
		return err
	}
	if f.Quantity, err = GetSimpleText(a.reader, "Quantity", a.out); err != nil {
		return err
	}
	a.printf("Categories:")
	for _, c := range a.categories.Categories() {
		a.printf("  %d: %s", c.ID, c.Name)
	}
	if f.CategoryID, err = GetSimpleText(a.reader, "Category ID", a.out); err != nil {
		return err
	}
	if f.Description, err = GetSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	return nil
}

func (a *App) askProductID(prompt string) (int64, error) {
	raw, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return id, nil
}

// reportBackendError translates the error taxonomy into user-facing
// messages. An expired token clears the session and sends the user back
// to login; everything else is reported and the caches stay as they were.
func (a *App) reportBackendError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, api.ErrNoToken):
		a.sessions.LogOut(ctx)
		a.printf("Session expired, please log in again.")
		return nil
	case errors.Is(err, api.ErrUnavailable):
		a.printf("Cannot reach the server, check your connection and try again.")
		return nil
	case errors.Is(err, api.ErrServer):
		a.printf("The server had a problem, try again later.")
		return nil
	default:
		return err
	}
}

func printFieldErrors(w io.Writer, errs form.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
}
