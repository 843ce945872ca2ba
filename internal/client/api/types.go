package api

// Category is a read-only classification fetched in bulk from the backend.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product mirrors the backend's product representation. Description and
// Category may be absent in server responses; accessors provide the
// documented fallbacks so absence is handled once, at the boundary.
type Product struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

// CategoryName returns the product's category name, or "" when the server
// omitted the category.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// CategoryID returns the product's category id, or 0 when absent.
func (p *Product) CategoryID() int64 {
	if p.Category == nil {
		return 0
	}
	return p.Category.ID
}

// ProductPayload is the request body for product create and update calls.
type ProductPayload struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CategoryID  int64   `json:"category_id"`
	Description string  `json:"description"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}
