package service

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/pkg/pagination"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/catalog"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

// ListProductsInput holds the shop page query.
type ListProductsInput struct {
	Category string
	Search   string
	Sort     []string
	Page     pagination.Params
}

// ProductList is a page of products plus the normalized sort selection.
type ProductList struct {
	pagination.Result[domain.Product]
	Sort []string `json:"sort"`
}

// CatalogService serves the read-only product catalog.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(c *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: c}
}

// ListProducts filters, sorts and paginates the catalog. Sort values are
// replayed as toggles, so "newest,oldest" ends with only "oldest" active.
func (s *CatalogService) ListProducts(ctx context.Context, input ListProductsInput) (*ProductList, error) {
	sel, err := catalog.ParseSelection(input.Sort)
	if err != nil {
		return nil, unknownSortError(ctx, err, input.Sort)
	}

	products := s.catalog.Search(catalog.Filter{
		Category: strings.TrimSpace(input.Category),
		Search:   input.Search,
	}, sel)

	return &ProductList{
		Result: pagination.Paginate(products, input.Page),
		Sort:   sel.Strings(),
	}, nil
}

// GetProduct resolves a product by id or slug.
func (s *CatalogService) GetProduct(ctx context.Context, ref string) (domain.Product, error) {
	p, ok := s.catalog.Lookup(ref)
	if !ok {
		return domain.Product{}, localize(apperrors.NotFound("product", ref), i18n.T(i18n.FromContext(ctx), i18n.MsgProductNotFound))
	}
	return p, nil
}

// Categories returns the distinct product categories.
func (s *CatalogService) Categories(_ context.Context) []string {
	return s.catalog.Categories()
}

// SortOptions returns the sort menu.
func (s *CatalogService) SortOptions(_ context.Context) []catalog.GroupInfo {
	return catalog.Groups()
}

func unknownSortError(ctx context.Context, err error, raw []string) error {
	bad := strings.Join(raw, ",")
	var optErr *catalog.UnknownOptionError
	if errors.As(err, &optErr) {
		bad = optErr.Option
	}
	return apperrors.InvalidInput(i18n.T(i18n.FromContext(ctx), i18n.MsgUnknownSortOption, bad)).
		WithCode("INVALID_SORT_OPTION")
}
