package groceries

// CreateListInput carries the caller-supplied fields for a new list.
type CreateListInput struct {
	Name        string
	Description string
}

// UpdateListInput replaces both mutable list fields. Partial update is not
// supported at this layer.
type UpdateListInput struct {
	Name        string
	Description string
}

// AddProductInput carries the fields for a product appended to a list.
type AddProductInput struct {
	Name     string
	Brand    string
	Price    float64
	ImageURL string
}

// ProductPatch is the allow-listed partial update for an embedded product.
// Only price and image_url are mutable after creation; nil means "leave
// untouched".
type ProductPatch struct {
	Price    *float64
	ImageURL *string
}

// Empty reports whether the patch carries no mutable fields.
func (p ProductPatch) Empty() bool {
	return p.Price == nil && p.ImageURL == nil
}

// AddProductResult pairs the appended product with the updated parent list.
type AddProductResult struct {
	Product Product     `json:"product"`
	List    GroceryList `json:"list"`
}
