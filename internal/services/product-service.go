package services

import (
	"strings"

	"github.com/nqvinh-dev/minishop/internal/apperr"
	"github.com/nqvinh-dev/minishop/internal/domain"
	"github.com/nqvinh-dev/minishop/internal/dto"
	"github.com/nqvinh-dev/minishop/internal/repository"
	"github.com/nqvinh-dev/minishop/pkg/idgen"
)

// Storefront section sizes.
const (
	latestLimit      = 8
	bestSellingLimit = 6
	mostViewedLimit  = 8
	topDiscountLimit = 4
)

type ProductService interface {
	CreateProduct(input dto.CreateProductRequest) (*domain.Product, error)
	ListProducts() (*dto.ProductListResponse, error)
	GetProductDetail(id int64) (*dto.ProductView, error)
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) CreateProduct(input dto.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Category) == "" {
		return nil, apperr.Validation("Please provide valid inputs")
	}

	existing, err := s.products.FindByName(name)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Validation("Product name already exists")
	}

	if input.Price <= 0 {
		return nil, apperr.Validation("Invalid product price")
	}
	if input.Stock < 0 {
		return nil, apperr.Validation("Invalid product stock")
	}
	if input.Discount < 0 || input.Discount > 100 {
		return nil, apperr.Validation("Invalid product discount")
	}

	p := &domain.Product{
		ID:          idgen.NewID(),
		Name:        name,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		Discount:    input.Discount,
		Stock:       input.Stock,
		Category:    strings.TrimSpace(input.Category),
		Like:        input.Like,
		Sell:        input.Sell,
	}
	if err := s.products.CreateProduct(p); err != nil {
		return nil, apperr.Internal(err)
	}
	return p, nil
}

func (s *productService) ListProducts() (*dto.ProductListResponse, error) {
	latest, err := s.products.ListTop("created_at", latestLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	bestSelling, err := s.products.ListTop("sell", bestSellingLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	mostViewed, err := s.products.ListTop("view", mostViewedLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	topDiscount, err := s.products.ListTop("discount", topDiscountLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &dto.ProductListResponse{
		LatestProducts:          toViews(latest),
		BestSellingProducts:     toViews(bestSelling),
		MostViewedProducts:      toViews(mostViewed),
		HighestDiscountProducts: toViews(topDiscount),
	}, nil
}

func (s *productService) GetProductDetail(id int64) (*dto.ProductView, error) {
	// bump the counter first so the returned view reflects this visit
	bumped, err := s.products.IncrementView(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !bumped {
		return nil, apperr.NotFound("Product not found")
	}

	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p == nil {
		return nil, apperr.NotFound("Product not found")
	}

	view := dto.NewProductView(*p)
	return &view, nil
}

func toViews(products []domain.Product) []dto.ProductView {
	views := make([]dto.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, dto.NewProductView(p))
	}
	return views
}
