package catalog

import (
	"context"
	"strings"

	pkgerrors "github.com/ssamu04/groceria/pkg/errors"
	"github.com/ssamu04/groceria/pkg/openfoodfacts"
)

// DefaultSort matches the upstream's popularity ordering.
const DefaultSort = "unique_scans_n"

// SearchClient is the upstream catalog surface the proxy depends on.
type SearchClient interface {
	Search(ctx context.Context, req openfoodfacts.SearchRequest) ([]openfoodfacts.Product, error)
}

// ServiceParams groups dependencies and tuning for the search proxy.
type ServiceParams struct {
	Client          SearchClient
	DefaultPageSize int
	MaxPageSize     int
	UpstreamFetch   int
}

// SearchParams are the caller-supplied query inputs.
type SearchParams struct {
	Query    string
	Page     int
	PageSize int
	Sort     string
}

// SearchResult is the paged, narrowed view of the upstream response.
type SearchResult struct {
	Page       int                     `json:"page"`
	TotalPages int                     `json:"totalPages"`
	Count      int                     `json:"count"`
	Products   []openfoodfacts.Product `json:"products"`
}

// Service narrows and paginates upstream catalog results. The upstream's own
// relevance filtering is unreliable, so its results are treated as a
// superset and re-filtered here. Stateless: no retry, no cache.
type Service interface {
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type service struct {
	client          SearchClient
	defaultPageSize int
	maxPageSize     int
	upstreamFetch   int
}

// NewService builds the search proxy.
func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog client is required")
	}
	if params.DefaultPageSize <= 0 {
		params.DefaultPageSize = 20
	}
	if params.MaxPageSize <= 0 {
		params.MaxPageSize = 100
	}
	if params.UpstreamFetch <= 0 {
		params.UpstreamFetch = 100
	}
	return &service{
		client:          params.Client,
		defaultPageSize: params.DefaultPageSize,
		maxPageSize:     params.MaxPageSize,
		upstreamFetch:   params.UpstreamFetch,
	}, nil
}

func (s *service) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return SearchResult{}, pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	sort := strings.TrimSpace(params.Sort)
	if sort == "" {
		sort = DefaultSort
	}

	upstream, err := s.client.Search(ctx, openfoodfacts.SearchRequest{
		Terms:    query,
		SortBy:   sort,
		PageSize: s.upstreamFetch,
	})
	if err != nil {
		return SearchResult{}, err
	}

	filtered := filterByQuery(upstream, query)
	count := len(filtered)
	totalPages := (count + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > count {
		start = count
	}
	end := start + pageSize
	if end > count {
		end = count
	}

	return SearchResult{
		Page:       page,
		TotalPages: totalPages,
		Count:      count,
		Products:   filtered[start:end],
	}, nil
}

func filterByQuery(products []openfoodfacts.Product, query string) []openfoodfacts.Product {
	needle := strings.ToLower(query)
	filtered := []openfoodfacts.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
