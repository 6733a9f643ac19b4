package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cafemanagement/internal/model"
)

// TopProduct is one row of the best-seller aggregation.
type TopProduct struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	TotalSold int64           `json:"total_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type ReportRepository interface {
	// TotalSales sums totalAmount for orders created in the inclusive date
	// range whose status is in the given set. No matches yields zero.
	TotalSales(ctx context.Context, start, end time.Time, statuses []model.OrderStatus) (decimal.Decimal, error)
	CountOrders(ctx context.Context, start, end time.Time, statuses []model.OrderStatus) (int64, error)
	// TopSellingProducts aggregates quantities across all non-cancelled
	// orders, descending, truncated to limit.
	TopSellingProducts(ctx context.Context, limit int) ([]TopProduct, error)
	Save(ctx context.Context, r *model.SalesReport) error
	List(ctx context.Context) ([]model.SalesReport, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) TotalSales(ctx context.Context, start, end time.Time, statuses []model.OrderStatus) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}
	var total *string
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("SUM(total_amount)").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Where("status IN ?", statuses).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, translate(err, "", "")
	}
	if total == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*total)
}

func (r *reportRepo) CountOrders(ctx context.Context, start, end time.Time, statuses []model.OrderStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Where("status IN ?", statuses).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "", "")
	}
	return count, nil
}

func (r *reportRepo) TopSellingProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		return []TopProduct{}, nil
	}
	type row struct {
		ProductID uint
		Name      *string
		TotalSold int64
		Revenue   string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("order_details").
		Select(`order_details.product_id,
			products.name AS name,
			SUM(order_details.quantity) AS total_sold,
			SUM(order_details.price * order_details.quantity) AS revenue`).
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Joins("LEFT JOIN products ON products.id = order_details.product_id").
		Where("orders.status <> ?", model.StatusCancelado).
		Where("order_details.product_id IS NOT NULL").
		Group("order_details.product_id, products.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "", "")
	}

	out := make([]TopProduct, 0, len(rows))
	for _, rw := range rows {
		name := placeholderProductName
		if rw.Name != nil {
			name = *rw.Name
		}
		revenue, err := decimal.NewFromString(rw.Revenue)
		if err != nil {
			revenue = decimal.Zero
		}
		out = append(out, TopProduct{
			ProductID: rw.ProductID,
			Name:      name,
			TotalSold: rw.TotalSold,
			Revenue:   revenue,
		})
	}
	return out, nil
}

func (r *reportRepo) Save(ctx context.Context, rep *model.SalesReport) error {
	err := r.db.WithContext(ctx).Create(rep).Error
	return translate(err, "", "")
}

func (r *reportRepo) List(ctx context.Context) ([]model.SalesReport, error) {
	var reports []model.SalesReport
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, translate(err, "", "")
	}
	return reports, nil
}
