package repository

import (
	"errors"

	"github.com/nqvinh-dev/minishop/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository interface {
	CreateProduct(p *domain.Product) error
	FindByName(name string) (*domain.Product, error)
	FindByID(id int64) (*domain.Product, error)

	// ListTop returns up to limit products ordered by the given column
	// descending. orderBy must be one of the fixed ranking columns.
	ListTop(orderBy string, limit int) ([]domain.Product, error)

	// IncrementView bumps the view counter in a single UPDATE. Returns
	// false when the product does not exist.
	IncrementView(id int64) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(p *domain.Product) error {
	if p == nil {
		return errors.New("nil product")
	}
	return r.db.Create(p).Error
}

func (r *productRepository) FindByName(name string) (*domain.Product, error) {
	return r.findOne("name = ?", name)
}

func (r *productRepository) FindByID(id int64) (*domain.Product, error) {
	return r.findOne("id = ?", id)
}

func (r *productRepository) findOne(query string, arg interface{}) (*domain.Product, error) {
	p := &domain.Product{}
	err := r.db.First(p, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

var rankingColumns = map[string]bool{
	"created_at": true,
	"sell":       true,
	"view":       true,
	"discount":   true,
}

func (r *productRepository) ListTop(orderBy string, limit int) ([]domain.Product, error) {
	if !rankingColumns[orderBy] {
		return nil, errors.New("unsupported ranking column")
	}

	var products []domain.Product
	err := r.db.Order(orderBy + " DESC").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) IncrementView(id int64) (bool, error) {
	res := r.db.Model(&domain.Product{}).
		Where("id = ?", id).
		Update("view", gorm.Expr("view + 1"))
	return res.RowsAffected > 0, res.Error
}
