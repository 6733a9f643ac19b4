package service

import (
	"context"

	"cafemanagement/internal/cache"
	"cafemanagement/internal/dto"
	"cafemanagement/internal/model"
	"cafemanagement/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, onlyAvailable bool) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo   repository.ProductRepository
	caches *cache.Collections
}

func NewProductService(repo repository.ProductRepository, caches *cache.Collections) ProductService {
	return &productService{repo: repo, caches: caches}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	cache.RefreshAsync("products", s.caches.RefreshProducts)
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, onlyAvailable bool) ([]dto.ProductResponse, error) {
	var (
		products []model.Product
		err      error
	)
	if onlyAvailable {
		products, err = s.repo.ListAvailable(ctx)
	} else {
		products, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = *productToResponse(&products[i])
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		// Existing order details keep their snapshot; only future orders see
		// the new price.
		p.Price = *req.Price
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	cache.RefreshAsync("products", s.caches.RefreshProducts)
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.RefreshAsync("products", s.caches.RefreshProducts)
	return nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		IsAvailable: p.IsAvailable,
	}
}
