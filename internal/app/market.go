package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"artisanmarket/internal/util"
	"artisanmarket/pkg/domain"
)

// CreateProduct lists a new product for the artisan.
func (a *App) CreateProduct(artisanID string, p domain.Product) (domain.Product, error) {
	p.ArtisanID = artisanID
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.Product{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if p.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if p.StockCount < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock count must not be negative", ErrValidation)
	}
	now := time.Now().UTC()
	p.ID = util.NewID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := a.store.SaveProduct(p); err != nil {
		return domain.Product{}, fmt.Errorf("save product: %w", err)
	}
	return p, nil
}

// ListProducts returns the public catalog, newest first.
func (a *App) ListProducts() ([]domain.Product, error) {
	return a.store.ListProducts()
}

// ListMyProducts returns the artisan's own listings.
func (a *App) ListMyProducts(artisanID string) ([]domain.Product, error) {
	return a.store.ListProductsByArtisan(artisanID)
}

// GetProduct returns one product by id.
func (a *App) GetProduct(id string) (domain.Product, error) {
	p, found, err := a.store.GetProduct(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("fetch product: %w", err)
	}
	if !found {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

// UpdateProduct overwrites a listing the artisan owns. Updating a missing or
// foreign product reports ErrNotFound, never which of the two it was.
func (a *App) UpdateProduct(artisanID string, p domain.Product) (domain.Product, error) {
	p.ArtisanID = artisanID
	p.Title = strings.TrimSpace(p.Title)
	if strings.TrimSpace(p.ID) == "" || p.Title == "" {
		return domain.Product{}, fmt.Errorf("%w: id and title are required", ErrValidation)
	}
	if p.Price < 0 || p.StockCount < 0 {
		return domain.Product{}, fmt.Errorf("%w: price and stock count must not be negative", ErrValidation)
	}
	p.UpdatedAt = time.Now().UTC()
	updated, err := a.store.UpdateProduct(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	if !updated {
		return domain.Product{}, ErrNotFound
	}
	stored, found, err := a.store.GetProduct(p.ID)
	if err != nil || !found {
		return p, nil
	}
	return stored, nil
}

// DeleteProduct removes a listing the artisan owns.
func (a *App) DeleteProduct(id, artisanID string) error {
	deleted, err := a.store.DeleteProduct(id, artisanID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// OrderItem is one cart line in a checkout request.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrder stores one order row per cart line. Price and artisan are taken
// from the stored product row, never from the request. An order-placed event
// is published per row when messaging is configured.
func (a *App) PlaceOrder(ctx context.Context, buyerID string, items []OrderItem) ([]domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	now := time.Now().UTC()
	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, fmt.Errorf("%w: product id is required", ErrValidation)
		}
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		product, found, err := a.store.GetProduct(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("fetch product: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID)
		}
		orders = append(orders, domain.Order{
			ID:         util.NewID(),
			BuyerID:    buyerID,
			ProductID:  product.ID,
			ArtisanID:  product.ArtisanID,
			Quantity:   quantity,
			TotalPrice: product.Price * float64(quantity),
			Status:     domain.OrderPending,
			CreatedAt:  now,
		})
	}
	for _, o := range orders {
		if err := a.store.SaveOrder(o); err != nil {
			return nil, fmt.Errorf("save order: %w", err)
		}
		if err := a.events.PublishOrderPlaced(ctx, o); err != nil {
			util.LoggerFromContext(ctx).Warn("publish order event failed", "order_id", o.ID, "error", err)
		}
	}
	return orders, nil
}

// ListBuyerOrders returns the buyer's order history joined with product and
// artisan display fields.
func (a *App) ListBuyerOrders(buyerID string) ([]domain.BuyerOrder, error) {
	return a.store.ListOrdersByBuyer(buyerID)
}

// CreateBlog publishes a story authored by the user.
func (a *App) CreateBlog(authorID string, b domain.Blog) (domain.Blog, error) {
	b.AuthorID = authorID
	b.Title = strings.TrimSpace(b.Title)
	b.Content = strings.TrimSpace(b.Content)
	if b.Title == "" || b.Content == "" {
		return domain.Blog{}, fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	b.ID = util.NewID()
	b.CreatedAt = time.Now().UTC()
	if err := a.store.SaveBlog(b); err != nil {
		return domain.Blog{}, fmt.Errorf("save blog: %w", err)
	}
	return b, nil
}

// ListBlogs returns all stories, newest first.
func (a *App) ListBlogs() ([]domain.Blog, error) {
	return a.store.ListBlogs()
}

// GetBlog returns one story by id.
func (a *App) GetBlog(id string) (domain.Blog, error) {
	b, found, err := a.store.GetBlog(id)
	if err != nil {
		return domain.Blog{}, fmt.Errorf("fetch blog: %w", err)
	}
	if !found {
		return domain.Blog{}, ErrNotFound
	}
	return b, nil
}

// DeleteBlog removes a story the user authored.
func (a *App) DeleteBlog(id, authorID string) error {
	deleted, err := a.store.DeleteBlog(id, authorID)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Contact stores a message from the public contact form.
func (a *App) Contact(name, email, message string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return fmt.Errorf("%w: name, email and message are required", ErrValidation)
	}
	msg := domain.ContactMessage{
		ID:        util.NewID(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveContactMessage(msg); err != nil {
		return fmt.Errorf("save contact message: %w", err)
	}
	return nil
}
