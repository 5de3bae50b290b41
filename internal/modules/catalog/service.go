package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradebridge/internal/domain"
	"tradebridge/internal/repository"
)

type Service struct {
	products ProductRepository
}

func NewService(products ProductRepository) *Service {
	return &Service{products: products}
}

func (s *Service) Create(ctx context.Context, lenderID uuid.UUID, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		LenderID:    lenderID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		PricePerDay: req.PricePerDay,
		Value:       req.Value,
		Available:   true,
		ImageURL:    req.ImageURL,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, id int64, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.LenderID != userID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Condition != nil {
		p.Condition = *req.Condition
	}
	if req.PricePerDay != nil {
		p.PricePerDay = *req.PricePerDay
	}
	if req.Value != nil {
		p.Value = *req.Value
	}
	if req.Available != nil {
		p.Available = *req.Available
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.LenderID != userID {
		return ErrForbidden
	}
	return s.products.Delete(ctx, id)
}
