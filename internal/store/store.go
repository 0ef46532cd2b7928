package store

import "artisanmarket/pkg/domain"

// Store defines persistence operations for users, products, orders, blogs,
// and the artisan portfolio tables.
//
// Upserts are full overwrites keyed by the stable identity column: every
// listed column is rewritten with the supplied value on conflict, never a
// partial merge. Work/achievement deletes are scoped by both the entity id
// and the owning artisan id and are idempotent no-ops when nothing matches.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)

	// products
	SaveProduct(domain.Product) error
	ListProducts() ([]domain.Product, error)
	ListProductsByArtisan(artisanID string) ([]domain.Product, error)
	GetProduct(id string) (domain.Product, bool, error)
	UpdateProduct(p domain.Product) (bool, error)
	DeleteProduct(id, artisanID string) (bool, error)

	// orders
	SaveOrder(domain.Order) error
	ListOrdersByBuyer(buyerID string) ([]domain.BuyerOrder, error)

	// blogs
	SaveBlog(domain.Blog) error
	ListBlogs() ([]domain.Blog, error)
	GetBlog(id string) (domain.Blog, bool, error)
	DeleteBlog(id, authorID string) (bool, error)

	// contact
	SaveContactMessage(domain.ContactMessage) error

	// portfolio
	UpsertProfile(domain.ArtisanProfile) error
	GetProfile(artisanID string) (domain.ArtisanProfile, bool, error)
	UpsertWork(domain.Work) error
	ListWorksByArtisan(artisanID string) ([]domain.Work, error)
	DeleteWork(workID, artisanID string) error
	UpsertAchievement(domain.Achievement) error
	ListAchievementsByArtisan(artisanID string) ([]domain.Achievement, error)
	DeleteAchievement(achievementID, artisanID string) error
	UpsertSocialLinks(domain.SocialLinks) error
	GetSocialLinks(artisanID string) (domain.SocialLinks, bool, error)
}
