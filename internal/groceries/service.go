package groceries

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	pkgerrors "github.com/ssamu04/groceria/pkg/errors"
)

// ServiceParams groups dependencies for the aggregate service.
type ServiceParams struct {
	Repo Repository
}

// Service enforces the aggregate rules: products exist only as children of a
// list, identity is assigned on append, and partial product updates are
// allow-listed.
type Service interface {
	CreateList(ctx context.Context, input CreateListInput) (GroceryList, error)
	ListLists(ctx context.Context) ([]GroceryList, error)
	GetList(ctx context.Context, id string) (GroceryList, error)
	UpdateList(ctx context.Context, id string, input UpdateListInput) (GroceryList, error)
	DeleteList(ctx context.Context, id string) (GroceryList, error)
	AddProduct(ctx context.Context, listID string, input AddProductInput) (AddProductResult, error)
	ListProducts(ctx context.Context, listID string) ([]Product, error)
	RemoveProduct(ctx context.Context, listID, productID string) (Product, error)
	UpdateProduct(ctx context.Context, listID, productID string, patch ProductPatch) (Product, error)
}

type service struct {
	repo Repository
}

// NewService builds the aggregate service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "grocery repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// CreateList persists a new list with an empty product sequence.
func (s *service) CreateList(ctx context.Context, input CreateListInput) (GroceryList, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" {
		return GroceryList{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if description == "" {
		return GroceryList{}, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	list, err := s.repo.Insert(ctx, GroceryList{
		Name:        name,
		Description: description,
		Products:    []Product{},
	})
	if err != nil {
		return GroceryList{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create grocery list")
	}
	return list, nil
}

// ListLists returns every list, newest first.
func (s *service) ListLists(ctx context.Context) ([]GroceryList, error) {
	lists, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list grocery lists")
	}
	return lists, nil
}

// GetList fetches one list by id.
func (s *service) GetList(ctx context.Context, id string) (GroceryList, error) {
	oid, err := parseID(id, "list id")
	if err != nil {
		return GroceryList{}, err
	}
	list, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return GroceryList{}, s.mapRepoError(err, "fetch grocery list")
	}
	return list, nil
}

// UpdateList replaces both mutable fields and returns the updated list.
func (s *service) UpdateList(ctx context.Context, id string, input UpdateListInput) (GroceryList, error) {
	oid, err := parseID(id, "list id")
	if err != nil {
		return GroceryList{}, err
	}
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" {
		return GroceryList{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if description == "" {
		return GroceryList{}, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	list, err := s.repo.UpdateFields(ctx, oid, name, description)
	if err != nil {
		return GroceryList{}, s.mapRepoError(err, "update grocery list")
	}
	return list, nil
}

// DeleteList removes the list and every embedded product with it, returning
// the prior state for confirmation.
func (s *service) DeleteList(ctx context.Context, id string) (GroceryList, error) {
	oid, err := parseID(id, "list id")
	if err != nil {
		return GroceryList{}, err
	}
	list, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return GroceryList{}, s.mapRepoError(err, "delete grocery list")
	}
	return list, nil
}

// AddProduct appends a product with a freshly assigned id to the list.
func (s *service) AddProduct(ctx context.Context, listID string, input AddProductInput) (AddProductResult, error) {
	oid, err := parseID(listID, "list id")
	if err != nil {
		return AddProductResult{}, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return AddProductResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(input.Brand) == "" {
		return AddProductResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product brand is required")
	}

	product := Product{
		ID:       primitive.NewObjectID(),
		Name:     strings.TrimSpace(input.Name),
		Brand:    strings.TrimSpace(input.Brand),
		Price:    input.Price,
		ImageURL: strings.TrimSpace(input.ImageURL),
	}

	list, err := s.repo.PushProduct(ctx, oid, product)
	if err != nil {
		return AddProductResult{}, s.mapRepoError(err, "add product")
	}
	return AddProductResult{Product: product, List: list}, nil
}

// ListProducts returns the current ordered product sequence.
func (s *service) ListProducts(ctx context.Context, listID string) ([]Product, error) {
	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return list.Products, nil
}

// RemoveProduct removes the matching entry and returns it.
func (s *service) RemoveProduct(ctx context.Context, listID, productID string) (Product, error) {
	oid, err := parseID(listID, "list id")
	if err != nil {
		return Product{}, err
	}
	pid, err := parseID(productID, "product id")
	if err != nil {
		return Product{}, err
	}
	product, err := s.repo.PullProduct(ctx, oid, pid)
	if err != nil {
		return Product{}, s.mapRepoError(err, "remove product")
	}
	return product, nil
}

// UpdateProduct applies the allow-listed partial update. Fields outside the
// allow list never reach the store.
func (s *service) UpdateProduct(ctx context.Context, listID, productID string, patch ProductPatch) (Product, error) {
	oid, err := parseID(listID, "list id")
	if err != nil {
		return Product{}, err
	}
	pid, err := parseID(productID, "product id")
	if err != nil {
		return Product{}, err
	}
	product, err := s.repo.PatchProduct(ctx, oid, pid, patch)
	if err != nil {
		return Product{}, s.mapRepoError(err, "update product")
	}
	return product, nil
}

func (s *service) mapRepoError(err error, action string) error {
	switch {
	case errors.Is(err, ErrListNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Grocery list not found")
	case errors.Is(err, ErrProductNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found in list")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
	}
}

func parseID(raw, field string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return oid, nil
}
