package dto

import "github.com/nqvinh-dev/minishop/internal/domain"

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
	Image       string  `json:"image"`
	Like        int     `json:"like"`
	Sell        int     `json:"sell"`
}

// ProductView is a product plus its computed discounted price.
type ProductView struct {
	domain.Product
	DiscountedPrice float64 `json:"discountedPrice"`
}

func NewProductView(p domain.Product) ProductView {
	return ProductView{Product: p, DiscountedPrice: p.DiscountedPrice()}
}

// ProductListResponse holds the four ranked storefront sections.
type ProductListResponse struct {
	LatestProducts          []ProductView `json:"latestProducts"`
	BestSellingProducts     []ProductView `json:"bestSellingProducts"`
	MostViewedProducts      []ProductView `json:"mostViewedProducts"`
	HighestDiscountProducts []ProductView `json:"highestDiscountProducts"`
}
