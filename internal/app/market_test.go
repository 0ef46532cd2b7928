package app

import (
	"context"
	"errors"
	"testing"

	"artisanmarket/pkg/domain"
)

func TestSignUpAndLogin(t *testing.T) {
	a := newTestApp(t)
	user, tok, err := a.SignUp(SignUpInput{Name: "Meera", Email: "Meera@Example.com", Password: "hunter22", Role: "artisan", CraftType: "block printing"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.Email != "meera@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != domain.RoleArtisan {
		t.Fatalf("role = %q", user.Role)
	}
	if tok == "" {
		t.Fatalf("no token issued")
	}
	resolved, ok := a.UserFromToken(tok)
	if !ok || resolved.ID != user.ID {
		t.Fatalf("token does not resolve to the user")
	}
	if _, _, err := a.Login("meera@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, _, err := a.Login("meera@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	if _, _, err := a.SignUp(SignUpInput{Name: "A", Email: "a@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	if _, _, err := a.SignUp(SignUpInput{Name: "B", Email: "a@example.com", Password: "pw123456"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignUpRejectsUnknownRole(t *testing.T) {
	a := newTestApp(t)
	if _, _, err := a.SignUp(SignUpInput{Name: "A", Email: "a@example.com", Password: "pw", Role: "admin"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestProductLifecycle(t *testing.T) {
	a := newTestApp(t)
	p, err := a.CreateProduct("artisan-1", domain.Product{Title: "Clay pot", Price: 450, StockCount: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("product id not assigned")
	}
	all, err := a.ListProducts()
	if err != nil || len(all) != 1 {
		t.Fatalf("list = %v (%v)", all, err)
	}

	// Updates from a different artisan must not land.
	if _, err := a.UpdateProduct("artisan-2", domain.Product{ID: p.ID, Title: "Stolen"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign update err = %v, want ErrNotFound", err)
	}
	updated, err := a.UpdateProduct("artisan-1", domain.Product{ID: p.ID, Title: "Terracotta pot", Price: 500})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Terracotta pot" {
		t.Fatalf("title = %q", updated.Title)
	}

	if err := a.DeleteProduct(p.ID, "artisan-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrNotFound", err)
	}
	if err := a.DeleteProduct(p.ID, "artisan-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.GetProduct(p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestPlaceOrderDerivesPriceFromCatalog(t *testing.T) {
	a := newTestApp(t)
	p, err := a.CreateProduct("artisan-1", domain.Product{Title: "Shawl", Price: 1200})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	orders, err := a.PlaceOrder(context.Background(), "buyer-1", []OrderItem{{ProductID: p.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	o := orders[0]
	if o.TotalPrice != 2400 || o.ArtisanID != "artisan-1" || o.Status != domain.OrderPending {
		t.Fatalf("order = %+v", o)
	}
	history, err := a.ListBuyerOrders("buyer-1")
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(history) != 1 || history[0].ProductTitle != "Shawl" {
		t.Fatalf("history = %+v", history)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.PlaceOrder(context.Background(), "buyer-1", nil); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if _, err := a.PlaceOrder(context.Background(), "buyer-1", []OrderItem{{ProductID: "ghost"}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPlaceOrderRowPerCartLine(t *testing.T) {
	a := newTestApp(t)
	p1, _ := a.CreateProduct("artisan-1", domain.Product{Title: "Pot", Price: 100})
	p2, _ := a.CreateProduct("artisan-2", domain.Product{Title: "Rug", Price: 900})
	orders, err := a.PlaceOrder(context.Background(), "buyer-1", []OrderItem{
		{ProductID: p1.ID, Quantity: 3},
		{ProductID: p2.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want one row per line", len(orders))
	}
	if orders[0].ArtisanID != "artisan-1" || orders[1].ArtisanID != "artisan-2" {
		t.Fatalf("artisan ids not derived from products: %+v", orders)
	}
}

func TestBlogLifecycle(t *testing.T) {
	a := newTestApp(t)
	b, err := a.CreateBlog("author-1", domain.Blog{Title: "Reviving natural dyes", Content: "Long form story."})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}
	got, err := a.GetBlog(b.ID)
	if err != nil || got.Title != b.Title {
		t.Fatalf("get blog = %+v (%v)", got, err)
	}
	if err := a.DeleteBlog(b.ID, "someone-else"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrNotFound", err)
	}
	if err := a.DeleteBlog(b.ID, "author-1"); err != nil {
		t.Fatalf("delete blog: %v", err)
	}
	if _, err := a.GetBlog(b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestContactValidation(t *testing.T) {
	a := newTestApp(t)
	if err := a.Contact("", "a@example.com", "hi"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if err := a.Contact("A", "a@example.com", "Do you ship abroad?"); err != nil {
		t.Fatalf("contact: %v", err)
	}
}
