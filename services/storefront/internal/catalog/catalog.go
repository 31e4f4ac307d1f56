// Package catalog holds the store's fixed product list and the filter and
// sort rules of the shop page.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Georgesib05/comming-soon/pkg/slug"
	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

//go:embed seed.yaml
var seed []byte

// Catalog is an immutable, indexed product list. It is safe for concurrent use.
type Catalog struct {
	products []domain.Product
	byID     map[int]int
	bySlug   map[string]int
}

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID       int       `yaml:"id"`
	Name     string    `yaml:"name"`
	Slug     string    `yaml:"slug"`
	Price    string    `yaml:"price"`
	Image    string    `yaml:"image"`
	Category string    `yaml:"category"`
	Added    time.Time `yaml:"added"`
	Popular  bool      `yaml:"popular"`
	Sizes    []string  `yaml:"sizes"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(seed)
}

// Load reads a catalog from a YAML file. An empty path yields the embedded
// catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	products := make([]domain.Product, 0, len(f.Products))
	for _, sp := range f.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid price %q: %w", sp.ID, sp.Price, err)
		}
		s := sp.Slug
		if s == "" {
			s = slug.Generate(sp.Name)
		}
		products = append(products, domain.Product{
			ID:        sp.ID,
			Name:      sp.Name,
			Slug:      s,
			Price:     price,
			Image:     sp.Image,
			Category:  sp.Category,
			CreatedAt: sp.Added.UTC(),
			Popular:   sp.Popular,
			Sizes:     sp.Sizes,
		})
	}
	return New(products)
}

// New indexes products. IDs and slugs must be unique, prices non-negative
// and every product must come in at least one size.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("product %d: name is required", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: price must not be negative", p.ID)
		}
		if len(p.Sizes) == 0 {
			return nil, fmt.Errorf("product %d: at least one size is required", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.Slug != "" {
			if _, dup := c.bySlug[p.Slug]; dup {
				return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
			}
			c.bySlug[p.Slug] = i
		}
		p.Sizes = slices.Clone(p.Sizes)
		c.products[i] = p
		c.byID[p.ID] = i
	}
	return c, nil
}

// All returns a copy of the products in catalog order.
func (c *Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

// Len is the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID looks a product up by numeric id.
func (c *Catalog) ByID(id int) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Lookup resolves a product reference, which is either a numeric id or a slug.
func (c *Catalog) Lookup(ref string) (domain.Product, bool) {
	if id, err := strconv.Atoi(ref); err == nil {
		return c.ByID(id)
	}
	i, ok := c.bySlug[strings.ToLower(ref)]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	return Categories(c.products)
}

// Search filters and sorts the catalog.
func (c *Catalog) Search(f Filter, sel Selection) []domain.Product {
	return Apply(c.products, f, sel)
}
