package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cafemanagement/internal/model"
)

type OrderRepository interface {
	// Create inserts the order header and all line items in one transaction.
	// TotalAmount is recomputed from the items before insert; on any partial
	// failure the whole order rolls back.
	Create(ctx context.Context, o *model.Order) error
	// AddDetail appends a line item to an existing order and rewrites the
	// stored total in the same transaction.
	AddDetail(ctx context.Context, d *model.OrderDetail, total decimal.Decimal) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	// ListByStatuses returns orders whose status is in the given set, newest
	// first. An empty set yields an empty list without touching storage.
	ListByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	// ListDetails loads the line items of one order, joining products for
	// display name and image. Dangling product references get placeholders.
	ListDetails(ctx context.Context, orderID uint) ([]model.OrderDetail, error)
	// UpdateStatus writes the status unconditionally and reports whether a
	// row was affected. Transition validation lives in the service layer.
	UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

const (
	// Placeholder display values for line items whose product was deleted.
	placeholderProductName  = "Producto no disponible"
	placeholderProductImage = "assets/img/placeholder.png"
)

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextOrderSequence(tx)
		if err != nil {
			return err
		}
		o.OrderNumber = fmt.Sprintf("ORD-%06d", seq)
		o.TotalAmount = o.Total()
		// Create cascades into Items via the association.
		return tx.Create(o).Error
	})
	return translate(err, "order not found", "order number already taken")
}

// nextOrderSequence allocates the next client-visible order number. It runs
// inside the creation transaction; the single-writer handle keeps it atomic.
func nextOrderSequence(tx *gorm.DB) (int64, error) {
	var max *int64
	err := tx.Raw(`SELECT MAX(CAST(SUBSTR(order_number, 5) AS INTEGER)) FROM orders`).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *orderRepo) AddDetail(ctx context.Context, d *model.OrderDetail, total decimal.Decimal) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		return tx.Model(&model.Order{}).Where("id = ?", d.OrderID).
			Updates(map[string]any{
				"total_amount": total,
				"updated_at":   time.Now(),
			}).Error
	})
	return translate(err, "order not found", "order item conflict")
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		return nil, translate(err, "order not found", "")
	}
	return &o, nil
}

func (r *orderRepo) ListByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	if len(statuses) == 0 {
		return []model.Order{}, nil
	}
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return orders, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return orders, nil
}

func (r *orderRepo) ListDetails(ctx context.Context, orderID uint) ([]model.OrderDetail, error) {
	type row struct {
		model.OrderDetail
		Name     *string
		ImageURL *string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("order_details").
		Select("order_details.*, products.name AS name, products.image_url AS image_url").
		Joins("LEFT JOIN products ON products.id = order_details.product_id").
		Where("order_details.order_id = ?", orderID).
		Order("order_details.id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "", "")
	}

	details := make([]model.OrderDetail, 0, len(rows))
	for _, rw := range rows {
		d := rw.OrderDetail
		d.ProductName = placeholderProductName
		d.ProductImage = placeholderProductImage
		if rw.Name != nil {
			d.ProductName = *rw.Name
		}
		if rw.ImageURL != nil {
			d.ProductImage = *rw.ImageURL
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return false, translate(res.Error, "order not found", "")
	}
	return res.RowsAffected > 0, nil
}
