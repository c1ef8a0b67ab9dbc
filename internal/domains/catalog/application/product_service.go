package application

import (
	"context"
	"strings"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

var _ ports.ProductService = (*ProductService)(nil)

// ProductService manages the product catalog.
type ProductService struct {
	repo ports.Repository
}

func NewProductService(repo ports.Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*ports.ProductProjection, error) {
	product, err := domain.NewProduct(input.Name, input.Price, input.Stock)
	if err != nil {
		return nil, mapError(err)
	}
	if err := product.SetDiscount(input.DiscountPercent); err != nil {
		return nil, mapError(err)
	}
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.Brand = input.Brand
	product.SKU = input.SKU
	product.Tags = input.Tags
	product.ImageURLs = input.ImageURLs
	product.Featured = input.Featured
	product.CreatedByID = input.ActorID

	saved, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *ProductService) Update(ctx context.Context, input ports.UpdateProductInput) (*ports.ProductProjection, error) {
	found, err := s.repo.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	product := found.Entity

	if input.Name != nil {
		if err := product.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Price != nil {
		if err := product.SetPrice(*input.Price); err != nil {
			return nil, mapError(err)
		}
	}
	if input.DiscountPercent != nil {
		if err := product.SetDiscount(*input.DiscountPercent); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Stock != nil {
		if err := product.SetStock(*input.Stock); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Tags != nil {
		product.Tags = append([]string{}, (*input.Tags)...)
	}
	if input.ImageURLs != nil {
		product.ImageURLs = append([]string{}, (*input.ImageURLs)...)
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	saved, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*ports.ProductProjection, error) {
	found, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return mapError(s.repo.DeleteProduct(ctx, id))
}

func (s *ProductService) ListActive(ctx context.Context, page pagination.Request) (pagination.Page[*ports.ProductProjection], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListActive(ctx, page)
	if err != nil {
		return pagination.Page[*ports.ProductProjection]{}, mapError(err)
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *ProductService) List(ctx context.Context, page pagination.Request) (pagination.Page[*ports.ProductProjection], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListProducts(ctx, page)
	if err != nil {
		return pagination.Page[*ports.ProductProjection]{}, mapError(err)
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *ProductService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidInput("category name is required")
	}
	saved, err := s.repo.SaveCategory(ctx, &domain.Category{Name: name, Description: description})
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	list, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}
