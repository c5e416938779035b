package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/ssamu04/groceria/pkg/errors"
	"github.com/ssamu04/groceria/pkg/openfoodfacts"
)

type fakeSearchClient struct {
	searchFn func(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error)
	lastReq  openfoodfacts.SearchRequest
}

func (f *fakeSearchClient) Search(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error) {
	f.lastReq = req
	if f.searchFn != nil {
		return f.searchFn(ctx, req)
	}
	return nil, nil
}

func newTestService(t *testing.T, client SearchClient) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Client:          client,
		DefaultPageSize: 2,
		MaxPageSize:     10,
		UpstreamFetch:   50,
	})
	require.NoError(t, err)
	return svc
}

func upstreamProducts() []openfoodfacts.Product {
	return []openfoodfacts.Product{
		{Name: "Whole Milk", Brand: "Acme"},
		{Name: "Dark Chocolate", Brand: "Choco Co"},
		{Name: "Oat MILK Drink", Brand: "Oaty"},
		{Name: "Butter", Brand: "Milkmaid"},
		{Name: "Granola", Brand: "Crunch"},
	}
}

func TestSearchFiltersByNameOrBrandCaseInsensitively(t *testing.T) {
	client := &fakeSearchClient{
		searchFn: func(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error) {
			return upstreamProducts(), nil
		},
	}
	svc := newTestService(t, client)

	result, err := svc.Search(context.Background(), SearchParams{Query: "milk", PageSize: 10})
	require.NoError(t, err)

	// "Whole Milk" and "Oat MILK Drink" match on name, "Milkmaid" on brand.
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 1, result.TotalPages)
	require.Len(t, result.Products, 3)
	assert.Equal(t, "Whole Milk", result.Products[0].Name)
	assert.Equal(t, "Butter", result.Products[2].Name)
}

func TestSearchPaginatesFilteredResults(t *testing.T) {
	client := &fakeSearchClient{
		searchFn: func(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error) {
			return upstreamProducts(), nil
		},
	}
	svc := newTestService(t, client)

	result, err := svc.Search(context.Background(), SearchParams{Query: "milk", Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Butter", result.Products[0].Name)
}

func TestSearchPageBeyondRangeReturnsEmptySlice(t *testing.T) {
	client := &fakeSearchClient{
		searchFn: func(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error) {
			return upstreamProducts(), nil
		},
	}
	svc := newTestService(t, client)

	result, err := svc.Search(context.Background(), SearchParams{Query: "milk", Page: 9, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 9, result.Page)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 2, result.TotalPages)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
}

func TestSearchAppliesDefaults(t *testing.T) {
	client := &fakeSearchClient{
		searchFn: func(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error) {
			return nil, nil
		},
	}
	svc := newTestService(t, client)

	result, err := svc.Search(context.Background(), SearchParams{Query: "milk"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, 0, result.TotalPages)
	assert.Equal(t, DefaultSort, client.lastReq.SortBy)
	assert.Equal(t, 50, client.lastReq.PageSize)
}

func TestSearchCapsPageSize(t *testing.T) {
	client := &fakeSearchClient{
		searchFn: func(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error) {
			return upstreamProducts(), nil
		},
	}
	svc := newTestService(t, client)

	result, err := svc.Search(context.Background(), SearchParams{Query: "milk", PageSize: 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPages)
}

func TestSearchRequiresQuery(t *testing.T) {
	svc := newTestService(t, &fakeSearchClient{})
	_, err := svc.Search(context.Background(), SearchParams{Query: "  "})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSearchPropagatesUpstreamFailure(t *testing.T) {
	client := &fakeSearchClient{
		searchFn: func(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("status 502"), "catalog search request failed")
		},
	}
	svc := newTestService(t, client)

	_, err := svc.Search(context.Background(), SearchParams{Query: "milk"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestNewServiceRequiresClient(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}
