// Package catalog holds the static product dataset, loaded once at startup
// and read-only for the lifetime of the process.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// ErrNotLoaded is returned by every query when the dataset failed to load
// at startup. Distinct from an empty result.
var ErrNotLoaded = errors.New("catalog dataset not initialized")

// ErrNoMatch signals a successful query with zero matching records.
var ErrNoMatch = errors.New("no matching products")

// Product mirrors one row of the catalog CSV. Year is kept as a string
// because the dataset leaves it blank for some rows.
type Product struct {
	ID                 int    `csv:"id" json:"id"`
	Gender             string `csv:"gender" json:"gender"`
	MasterCategory     string `csv:"masterCategory" json:"masterCategory"`
	SubCategory        string `csv:"subCategory" json:"subCategory"`
	ArticleType        string `csv:"articleType" json:"articleType"`
	BaseColour         string `csv:"baseColour" json:"baseColour"`
	Season             string `csv:"season" json:"season"`
	Year               string `csv:"year" json:"year"`
	Usage              string `csv:"usage" json:"usage"`
	ProductDisplayName string `csv:"productDisplayName" json:"productDisplayName"`
}

type Catalog struct {
	products []Product
}

// Load reads the product CSV into memory. The returned catalog is never
// mutated afterwards, so queries need no locking.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()

	var products []Product
	if err := gocsv.UnmarshalFile(f, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	logger.Info("catalog loaded", zap.String("path", path), zap.Int("products", len(products)))
	return &Catalog{products: products}, nil
}

// All returns every product record.
func (c *Catalog) All() ([]Product, error) {
	if c == nil || c.products == nil {
		return nil, ErrNotLoaded
	}
	return c.products, nil
}

// ByType returns products whose articleType contains the given substring,
// case-insensitively. Records with a blank articleType never match.
func (c *Catalog) ByType(articleType string) ([]Product, error) {
	if c == nil || c.products == nil {
		return nil, ErrNotLoaded
	}

	needle := strings.ToLower(articleType)
	var matched []Product
	for _, p := range c.products {
		if p.ArticleType == "" {
			continue
		}
		if strings.Contains(strings.ToLower(p.ArticleType), needle) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoMatch
	}
	return matched, nil
}

// ByCategory returns products whose masterCategory equals the given value,
// case-insensitively.
func (c *Catalog) ByCategory(category string) ([]Product, error) {
	if c == nil || c.products == nil {
		return nil, ErrNotLoaded
	}

	var matched []Product
	for _, p := range c.products {
		if strings.EqualFold(p.MasterCategory, category) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoMatch
	}
	return matched, nil
}

// Size returns the number of loaded records, 0 when unloaded.
func (c *Catalog) Size() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}
