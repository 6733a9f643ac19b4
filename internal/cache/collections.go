package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"cafemanagement/internal/model"
	"cafemanagement/internal/repository"
)

// refreshTimeout bounds a single background re-fetch.
const refreshTimeout = 5 * time.Second

// Collections bundles the published users/products/orders feeds. After any
// mutation the owning service calls the matching Refresh, which re-fetches
// the whole collection and publishes it (invalidation by re-fetch, so changes
// made outside this process are also picked up).
type Collections struct {
	Users    *Feed[model.User]
	Products *Feed[model.Product]
	Orders   *Feed[model.Order]

	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func NewCollections(users repository.UserRepository, products repository.ProductRepository, orders repository.OrderRepository) *Collections {
	return &Collections{
		Users:    NewFeed[model.User](),
		Products: NewFeed[model.Product](),
		Orders:   NewFeed[model.Order](),
		users:    users,
		products: products,
		orders:   orders,
	}
}

// allStatuses covers every lifecycle bucket for the orders feed.
var allStatuses = []model.OrderStatus{
	model.StatusSolicitado,
	model.StatusEnProceso,
	model.StatusListo,
	model.StatusEntregado,
	model.StatusCancelado,
}

func (c *Collections) RefreshUsers(ctx context.Context) error {
	users, err := c.users.List(ctx)
	if err != nil {
		return err
	}
	// Password hashes never leave the data layer through the feed.
	for i := range users {
		users[i].PasswordHash = ""
	}
	c.Users.Publish(users)
	return nil
}

func (c *Collections) RefreshProducts(ctx context.Context) error {
	products, err := c.products.List(ctx)
	if err != nil {
		return err
	}
	c.Products.Publish(products)
	return nil
}

func (c *Collections) RefreshOrders(ctx context.Context) error {
	orders, err := c.orders.ListByStatuses(ctx, allStatuses)
	if err != nil {
		return err
	}
	c.Orders.Publish(orders)
	return nil
}

// RefreshAsync runs a refresh in its own goroutine with a detached timeout
// context. Mutating callers return without waiting, so subscribers are
// eventually consistent with storage; a failed refresh keeps the previous
// snapshot and is only logged.
func RefreshAsync(name string, refresh func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := refresh(ctx); err != nil {
			log.Warn().Str("collection", name).Err(err).Msg("cache refresh failed")
		}
	}()
}
