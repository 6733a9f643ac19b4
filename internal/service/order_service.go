package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cafemanagement/internal/apperror"
	"cafemanagement/internal/cache"
	"cafemanagement/internal/dto"
	"cafemanagement/internal/model"
	"cafemanagement/internal/repository"
)

// OrderService is the order lifecycle controller. The repository accepts any
// status write; every transition is validated here against the state machine
// in model, and Entregado/Cancelado are terminal.
type OrderService interface {
	CreateOrder(ctx context.Context, userID *uint, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id uint) (*dto.OrderResponse, error)
	ListByStatuses(ctx context.Context, statuses []string) ([]dto.OrderResponse, error)
	ListByUser(ctx context.Context, userID uint) ([]dto.OrderResponse, error)
	ChangeStatus(ctx context.Context, orderID uint, newStatus string) (*dto.OrderResponse, error)
	AddItem(ctx context.Context, orderID uint, req dto.OrderItemRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	repo     repository.OrderRepository
	products repository.ProductRepository
	caches   *cache.Collections
}

func NewOrderService(repo repository.OrderRepository, products repository.ProductRepository, caches *cache.Collections) OrderService {
	return &orderService{repo: repo, products: products, caches: caches}
}

func (s *orderService) CreateOrder(ctx context.Context, userID *uint, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	// Resolve products up front so the price snapshot is taken at order time.
	items := make([]model.OrderDetail, 0, len(req.Items))
	for _, item := range req.Items {
		p, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if apperror.Is(err, apperror.NotFound) {
				return nil, apperror.New(apperror.InvalidInput,
					fmt.Sprintf("producto %d no existe", item.ProductID))
			}
			return nil, err
		}
		if !p.IsAvailable {
			return nil, apperror.New(apperror.InvalidInput,
				fmt.Sprintf("producto %q no está disponible", p.Name))
		}
		pid := p.ID
		items = append(items, model.OrderDetail{
			ProductID: &pid,
			Quantity:  item.Quantity,
			Size:      item.Size,
			MilkType:  item.MilkType,
			Price:     p.Price,
		})
	}

	order := &model.Order{
		UserID:        userID,
		TableNumber:   req.TableNumber,
		Status:        model.StatusSolicitado,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	}

	// Header and line items commit atomically; a failed item insert rolls
	// back the header.
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	cache.RefreshAsync("orders", s.caches.RefreshOrders)
	return s.orderToResponse(ctx, order)
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.orderToResponse(ctx, order)
}

func (s *orderService) ListByStatuses(ctx context.Context, statuses []string) ([]dto.OrderResponse, error) {
	parsed := make([]model.OrderStatus, 0, len(statuses))
	for _, raw := range statuses {
		st := model.OrderStatus(raw)
		if !st.Valid() {
			return nil, apperror.New(apperror.InvalidInput, fmt.Sprintf("estado %q inválido", raw))
		}
		parsed = append(parsed, st)
	}

	orders, err := s.repo.ListByStatuses(ctx, parsed)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *orderHeaderToResponse(&orders[i]))
	}
	return resp, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uint) ([]dto.OrderResponse, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *orderHeaderToResponse(&orders[i]))
	}
	return resp, nil
}

func (s *orderService) ChangeStatus(ctx context.Context, orderID uint, newStatus string) (*dto.OrderResponse, error) {
	next := model.OrderStatus(newStatus)
	if !next.Valid() {
		return nil, apperror.New(apperror.InvalidInput, fmt.Sprintf("estado %q inválido", newStatus))
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, apperror.New(apperror.Conflict,
			fmt.Sprintf("el pedido ya está en estado terminal %q", order.Status))
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperror.New(apperror.Conflict,
			fmt.Sprintf("transición %q → %q no permitida", order.Status, next))
	}

	affected, err := s.repo.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}
	if !affected {
		return nil, apperror.New(apperror.NotFound, "pedido no encontrado")
	}
	order.Status = next

	// Any transition moves the order between status buckets, so the whole
	// list is refreshed; terminal states are no different, the full re-fetch
	// guarantees consistency with storage.
	cache.RefreshAsync("orders", s.caches.RefreshOrders)
	return s.orderToResponse(ctx, order)
}

func (s *orderService) AddItem(ctx context.Context, orderID uint, req dto.OrderItemRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, apperror.New(apperror.Conflict, "no se pueden agregar items a un pedido terminado")
	}

	p, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	pid := p.ID
	detail := &model.OrderDetail{
		OrderID:   orderID,
		ProductID: &pid,
		Quantity:  req.Quantity,
		Size:      req.Size,
		MilkType:  req.MilkType,
		Price:     p.Price,
	}

	// Item insert and total recompute commit together; the repository maps
	// driver errors into the shared taxonomy.
	order.Items = append(order.Items, *detail)
	if err := s.repo.AddDetail(ctx, detail, order.Total()); err != nil {
		return nil, err
	}
	order.TotalAmount = order.Total()

	cache.RefreshAsync("orders", s.caches.RefreshOrders)
	return s.orderToResponse(ctx, order)
}

func (s *orderService) orderToResponse(ctx context.Context, o *model.Order) (*dto.OrderResponse, error) {
	details, err := s.repo.ListDetails(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	resp := orderHeaderToResponse(o)
	resp.Items = make([]dto.OrderItemResponse, 0, len(details))
	for _, d := range details {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:           d.ID,
			ProductID:    d.ProductID,
			ProductName:  d.ProductName,
			ProductImage: d.ProductImage,
			Quantity:     d.Quantity,
			Size:         d.Size,
			MilkType:     d.MilkType,
			Price:        d.Price,
			Subtotal:     d.Price.Mul(decimal.NewFromInt(int64(d.Quantity))),
		})
	}
	return resp, nil
}

func orderHeaderToResponse(o *model.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		TableNumber:   o.TableNumber,
		Status:        string(o.Status),
		Notes:         o.Notes,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}
