package repository

import (
	"context"

	"gorm.io/gorm"

	"cafemanagement/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListAvailable(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint) error
	// RemoveDuplicateNames is a migration tool for databases created before
	// the unique index on name existed: it keeps the lowest id per name and
	// deletes the rest, returning the number of rows removed.
	RemoveDuplicateNames(ctx context.Context) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	err := r.db.WithContext(ctx).Create(p).Error
	return translate(err, "product not found", "product name already exists")
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, translate(err, "product not found", "")
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name").Find(&products).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return products, nil
}

func (r *productRepo) ListAvailable(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("is_available = ?", true).Order("name").Find(&products).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	err := r.db.WithContext(ctx).Save(p).Error
	return translate(err, "product not found", "product name already exists")
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	// Order details keep their price snapshot and tolerate the dangling
	// product reference, so no cascade is issued here.
	err := r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
	return translate(err, "product not found", "")
}

func (r *productRepo) RemoveDuplicateNames(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		DELETE FROM products
		WHERE id NOT IN (SELECT MIN(id) FROM products GROUP BY name)`)
	if res.Error != nil {
		return 0, translate(res.Error, "", "")
	}
	return res.RowsAffected, nil
}
