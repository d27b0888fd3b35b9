package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polkiloo/storefront/internal/cache"
	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const (
	productKeyPattern  = "product:{{.}}"
	productsKeyPattern = "products:{{.CategoryID}}"
)

// CatalogUseCase serves catalog reads through the result cache.
type CatalogUseCase struct {
	product  *cache.Func[int64, model.Product]
	products *cache.QueryFunc[model.ProductFilter, []model.Product]
}

// NewCatalogUseCase wraps product reads with the cache. Missing products are
// cached as empty results so repeated misses do not reach the database.
func NewCatalogUseCase(products repository.ProductRepository, c *cache.Cache, cfg *config.Config) (*CatalogUseCase, error) {
	productKey, err := cache.Template[int64](productKeyPattern)
	if err != nil {
		return nil, fmt.Errorf("product cache key: %w", err)
	}
	listKey, err := cache.Template[model.ProductFilter](productsKeyPattern)
	if err != nil {
		return nil, fmt.Errorf("products cache key: %w", err)
	}

	var ttl time.Duration
	if cfg != nil {
		ttl = cfg.CacheTTL
	}

	return &CatalogUseCase{
		product: cache.Wrap(c, productKey, ttl, func(ctx context.Context, id int64) (cache.Option[model.Product], error) {
			p, err := products.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, domainErrors.ErrNotFound) {
					return cache.None[model.Product](), nil
				}
				return cache.None[model.Product](), err
			}
			return cache.Some(*p), nil
		}),
		products: cache.WrapByQuery(c, listKey, ttl, func(ctx context.Context, f model.ProductFilter) (cache.Option[[]model.Product], error) {
			list, err := products.List(ctx, f)
			if err != nil {
				return cache.None[[]model.Product](), err
			}
			return cache.Some(list), nil
		}),
	}, nil
}

// Product returns a single catalog item. Force skips the cached copy and refreshes it.
func (u *CatalogUseCase) Product(ctx context.Context, id int64, force bool) (*model.Product, error) {
	if id <= 0 {
		return nil, domainErrors.ErrNotFound
	}
	res, err := u.product.Call(ctx, id, callOptions(force)...)
	if err != nil {
		return nil, err
	}
	p, ok := res.Get()
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

// Products returns a page of the catalog. rawQuery is the request query
// string the page was asked with and becomes part of the cache key.
func (u *CatalogUseCase) Products(ctx context.Context, filter model.ProductFilter, rawQuery string, force bool) ([]model.Product, error) {
	res, err := u.products.Call(ctx, filter.Normalize(), rawQuery, callOptions(force)...)
	if err != nil {
		return nil, err
	}
	list, _ := res.Get()
	if list == nil {
		list = []model.Product{}
	}
	return list, nil
}

func callOptions(force bool) []cache.CallOption {
	if force {
		return []cache.CallOption{cache.Force()}
	}
	return nil
}
