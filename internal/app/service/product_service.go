package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
	"stylemart/internal/domain/repository"
)

// ProductService serves the public catalog with a redis read-through cache
// and lets admins manage products. A nil redis client disables caching,
// which keeps the service usable in tests.
type ProductService struct {
	productRepo repository.ProductRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
}

func NewProductService(productRepo repository.ProductRepository, rdb *redis.Client, cacheTTL time.Duration) *ProductService {
	return &ProductService{productRepo: productRepo, rdb: rdb, cacheTTL: cacheTTL}
}

type CreateProductRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    model.ProductCategory `json:"category"`
	ImageURL    string                `json:"image_url"`
	PriceCents  int64                 `json:"price_cents"`
	Stock       int                   `json:"stock"`
	Featured    bool                  `json:"featured"`
}

type CatalogPage struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func catalogListKey(page, pageSize int, category model.ProductCategory, search string) string {
	return fmt.Sprintf("catalog:list:p%d:s%d:c%s:q%s", page, pageSize, category, search)
}

func catalogProductKey(productSlug string) string {
	return "catalog:product:" + productSlug
}

func (s *ProductService) List(ctx context.Context, page, pageSize int, category model.ProductCategory, search string) (*CatalogPage, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, common.ErrBadRequest)
	}

	key := catalogListKey(page, pageSize, category, search)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var result CatalogPage
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result, nil
			}
		}
	}

	limit := pageSize
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	products, total, err := s.productRepo.List(ctx, limit, offset, category, search)
	if err != nil {
		return nil, err
	}
	result := &CatalogPage{Products: products, Total: total, Page: page, PageSize: pageSize}

	if s.rdb != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				log.Printf("WARN: failed to cache catalog page: %v", err)
			}
		}
	}
	return result, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	key := catalogProductKey(productSlug)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var product model.Product
			if err := json.Unmarshal(cached, &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(product); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				log.Printf("WARN: failed to cache product %s: %v", productSlug, err)
			}
		}
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	if req.Title == "" || req.Category == "" || req.PriceCents <= 0 {
		return nil, fmt.Errorf("title, category and a positive price are required: %w", common.ErrValidation)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("unknown category %q: %w", req.Category, common.ErrValidation)
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		// Repo returns common.ErrConflict when the slug is taken
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req CreateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("unknown category %q: %w", req.Category, common.ErrValidation)
	}

	oldSlug := product.Slug
	product.Title = req.Title
	product.Slug = slug.Make(req.Title)
	product.Description = req.Description
	product.Category = req.Category
	product.ImageURL = req.ImageURL
	product.PriceCents = req.PriceCents
	product.Stock = req.Stock
	product.Featured = req.Featured

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.evictProduct(ctx, oldSlug, product.Slug)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.evictProduct(ctx, product.Slug)
	return nil
}

// evictProduct drops per-product cache entries. List pages are left to age
// out through their TTL.
func (s *ProductService) evictProduct(ctx context.Context, slugs ...string) {
	if s.rdb == nil {
		return
	}
	for _, sl := range slugs {
		if err := s.rdb.Del(ctx, catalogProductKey(sl)).Err(); err != nil {
			log.Printf("WARN: failed to evict cached product %s: %v", sl, err)
		}
	}
}
