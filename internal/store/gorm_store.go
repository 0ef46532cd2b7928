package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artisanmarket/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&UserModel{}, &ProductModel{}, &OrderModel{}, &BlogModel{}, &ContactMessageModel{},
		&ProfileModel{}, &WorkModel{}, &AchievementModel{}, &SocialLinksModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveUser registers or updates a user.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "password_hash", "craft_type", "location", "role"}),
	}).Create(&model).Error
}

// HasUserEmail checks if email exists.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// SaveProduct stores or updates a product.
func (s *GormStore) SaveProduct(p domain.Product) error {
	model := productToModel(p)
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "price", "category", "cultural_story",
			"is_customizable", "stock_count", "image_url", "updated_at",
		}),
	}).Create(&model).Error
}

// ListProducts returns all products, newest first.
func (s *GormStore) ListProducts() ([]domain.Product, error) {
	return s.listProducts()
}

// ListProductsByArtisan returns one artisan's products, newest first.
func (s *GormStore) ListProductsByArtisan(artisanID string) ([]domain.Product, error) {
	return s.listProducts("artisan_id = ?", artisanID)
}

func (s *GormStore) listProducts(conds ...any) ([]domain.Product, error) {
	var models []ProductModel
	tx := s.db.Order("created_at DESC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Product, 0, len(models))
	for _, m := range models {
		res = append(res, productFromModel(m))
	}
	return res, nil
}

// GetProduct retrieves a product.
func (s *GormStore) GetProduct(id string) (domain.Product, bool, error) {
	var model ProductModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, err
	}
	return productFromModel(model), true, nil
}

// UpdateProduct overwrites a product's editable columns, scoped to the owner.
// Returns false when no row matched (absent or foreign-owned).
func (s *GormStore) UpdateProduct(p domain.Product) (bool, error) {
	res := s.db.Model(&ProductModel{}).
		Where("id = ? AND artisan_id = ?", p.ID, p.ArtisanID).
		Updates(map[string]any{
			"title":           p.Title,
			"description":     p.Description,
			"price":           p.Price,
			"category":        p.Category,
			"cultural_story":  p.CulturalStory,
			"is_customizable": p.IsCustomizable,
			"stock_count":     p.StockCount,
			"image_url":       p.ImageURL,
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteProduct removes a product scoped to the owner.
func (s *GormStore) DeleteProduct(id, artisanID string) (bool, error) {
	res := s.db.Delete(&ProductModel{}, "id = ? AND artisan_id = ?", id, artisanID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SaveOrder records one order line.
func (s *GormStore) SaveOrder(o domain.Order) error {
	model := orderToModel(o)
	return s.db.Create(&model).Error
}

type buyerOrderRow struct {
	OrderID      string
	Quantity     int
	TotalPrice   float64
	Status       string
	CreatedAt    time.Time
	ProductTitle string
	ProductImage string
	ArtisanName  string
}

// ListOrdersByBuyer returns the buyer's order history joined with product
// and artisan display fields, newest first.
func (s *GormStore) ListOrdersByBuyer(buyerID string) ([]domain.BuyerOrder, error) {
	var rows []buyerOrderRow
	err := s.db.Table("orders AS o").
		Select("o.id AS order_id, o.quantity, o.total_price, o.status, o.created_at, " +
			"p.title AS product_title, p.image_url AS product_image, u.name AS artisan_name").
		Joins("JOIN products p ON o.product_id = p.id").
		Joins("JOIN users u ON o.artisan_id = u.id").
		Where("o.buyer_id = ?", buyerID).
		Order("o.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.BuyerOrder, 0, len(rows))
	for _, r := range rows {
		res = append(res, domain.BuyerOrder{
			OrderID:      r.OrderID,
			Quantity:     r.Quantity,
			TotalPrice:   r.TotalPrice,
			Status:       domain.OrderStatus(r.Status),
			CreatedAt:    r.CreatedAt,
			ProductTitle: r.ProductTitle,
			ProductImage: r.ProductImage,
			ArtisanName:  r.ArtisanName,
		})
	}
	return res, nil
}

// SaveBlog stores or updates a blog post.
func (s *GormStore) SaveBlog(b domain.Blog) error {
	model := blogToModel(b)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "content", "cover_image"}),
	}).Create(&model).Error
}

// ListBlogs returns all blog posts, newest first.
func (s *GormStore) ListBlogs() ([]domain.Blog, error) {
	var models []BlogModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Blog, 0, len(models))
	for _, m := range models {
		res = append(res, blogFromModel(m))
	}
	return res, nil
}

// GetBlog retrieves a blog post.
func (s *GormStore) GetBlog(id string) (domain.Blog, bool, error) {
	var model BlogModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Blog{}, false, nil
		}
		return domain.Blog{}, false, err
	}
	return blogFromModel(model), true, nil
}

// DeleteBlog removes a blog post scoped to its author.
func (s *GormStore) DeleteBlog(id, authorID string) (bool, error) {
	res := s.db.Delete(&BlogModel{}, "id = ? AND author_id = ?", id, authorID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SaveContactMessage records a contact form submission.
func (s *GormStore) SaveContactMessage(m domain.ContactMessage) error {
	model := ContactMessageModel{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
	return s.db.Create(&model).Error
}

// UpsertProfile inserts or fully overwrites the artisan's profile row.
func (s *GormStore) UpsertProfile(p domain.ArtisanProfile) error {
	model := profileToModel(p)
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "artisan_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "profile_image", "cover_image", "tagline", "location",
			"email", "phone", "about", "experience", "specialization",
			"language", "updated_at",
		}),
	}).Create(&model).Error
}

// GetProfile returns the artisan's profile row, if any.
func (s *GormStore) GetProfile(artisanID string) (domain.ArtisanProfile, bool, error) {
	var model ProfileModel
	if err := s.db.First(&model, "artisan_id = ?", artisanID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ArtisanProfile{}, false, nil
		}
		return domain.ArtisanProfile{}, false, err
	}
	return profileFromModel(model), true, nil
}

// UpsertWork inserts or fully overwrites a work row keyed by its id. The
// conflict update only fires when the stored row already belongs to the
// supplied artisan, so colliding with a foreign id cannot hijack the row.
func (s *GormStore) UpsertWork(w domain.Work) error {
	model, err := workToModel(w)
	if err != nil {
		return err
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "works", Name: "artisan_id"}, Value: w.ArtisanID},
		}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "category", "description", "image_urls", "price_range",
			"creation_date", "available_for_order",
		}),
	}).Create(&model).Error
}

// ListWorksByArtisan returns the artisan's works in creation order.
func (s *GormStore) ListWorksByArtisan(artisanID string) ([]domain.Work, error) {
	var models []WorkModel
	if err := s.db.Where("artisan_id = ?", artisanID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Work, 0, len(models))
	for _, m := range models {
		w, err := workFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, nil
}

// DeleteWork removes a work scoped by (work id, artisan id). Deleting an
// absent or foreign-owned work affects zero rows and is not an error.
func (s *GormStore) DeleteWork(workID, artisanID string) error {
	return s.db.Delete(&WorkModel{}, "id = ? AND artisan_id = ?", workID, artisanID).Error
}

// UpsertAchievement inserts or fully overwrites an achievement row, with the
// same ownership guard as UpsertWork.
func (s *GormStore) UpsertAchievement(a domain.Achievement) error {
	model := achievementToModel(a)
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "achievements", Name: "artisan_id"}, Value: a.ArtisanID},
		}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "year", "description", "award_image"}),
	}).Create(&model).Error
}

// ListAchievementsByArtisan returns the artisan's achievements, most recent
// year first.
func (s *GormStore) ListAchievementsByArtisan(artisanID string) ([]domain.Achievement, error) {
	var models []AchievementModel
	if err := s.db.Where("artisan_id = ?", artisanID).Order("year DESC, created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Achievement, 0, len(models))
	for _, m := range models {
		res = append(res, achievementFromModel(m))
	}
	return res, nil
}

// DeleteAchievement removes an achievement scoped by (id, artisan id).
func (s *GormStore) DeleteAchievement(achievementID, artisanID string) error {
	return s.db.Delete(&AchievementModel{}, "id = ? AND artisan_id = ?", achievementID, artisanID).Error
}

// UpsertSocialLinks inserts or fully overwrites the artisan's social links
// row; all four platform columns are rewritten every call.
func (s *GormStore) UpsertSocialLinks(l domain.SocialLinks) error {
	model := SocialLinksModel{
		ArtisanID: l.ArtisanID,
		Instagram: l.Instagram,
		Facebook:  l.Facebook,
		Youtube:   l.Youtube,
		Website:   l.Website,
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "artisan_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"instagram", "facebook", "youtube", "website", "updated_at"}),
	}).Create(&model).Error
}

// GetSocialLinks returns the artisan's social links row, if any.
func (s *GormStore) GetSocialLinks(artisanID string) (domain.SocialLinks, bool, error) {
	var model SocialLinksModel
	if err := s.db.First(&model, "artisan_id = ?", artisanID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.SocialLinks{}, false, nil
		}
		return domain.SocialLinks{}, false, err
	}
	return domain.SocialLinks{
		ArtisanID: model.ArtisanID,
		Instagram: model.Instagram,
		Facebook:  model.Facebook,
		Youtube:   model.Youtube,
		Website:   model.Website,
	}, true, nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CraftType:    u.CraftType,
		Location:     u.Location,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CraftType:    m.CraftType,
		Location:     m.Location,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func productToModel(p domain.Product) ProductModel {
	return ProductModel{
		ID:             p.ID,
		ArtisanID:      p.ArtisanID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		Category:       p.Category,
		CulturalStory:  p.CulturalStory,
		IsCustomizable: p.IsCustomizable,
		StockCount:     p.StockCount,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func productFromModel(m ProductModel) domain.Product {
	return domain.Product{
		ID:             m.ID,
		ArtisanID:      m.ArtisanID,
		Title:          m.Title,
		Description:    m.Description,
		Price:          m.Price,
		Category:       m.Category,
		CulturalStory:  m.CulturalStory,
		IsCustomizable: m.IsCustomizable,
		StockCount:     m.StockCount,
		ImageURL:       m.ImageURL,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func orderToModel(o domain.Order) OrderModel {
	return OrderModel{
		ID:         o.ID,
		BuyerID:    o.BuyerID,
		ProductID:  o.ProductID,
		ArtisanID:  o.ArtisanID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}
}

func blogToModel(b domain.Blog) BlogModel {
	return BlogModel{
		ID:         b.ID,
		AuthorID:   b.AuthorID,
		Title:      b.Title,
		Content:    b.Content,
		CoverImage: b.CoverImage,
		CreatedAt:  b.CreatedAt,
	}
}

func blogFromModel(m BlogModel) domain.Blog {
	return domain.Blog{
		ID:         m.ID,
		AuthorID:   m.AuthorID,
		Title:      m.Title,
		Content:    m.Content,
		CoverImage: m.CoverImage,
		CreatedAt:  m.CreatedAt,
	}
}

func profileToModel(p domain.ArtisanProfile) ProfileModel {
	return ProfileModel{
		ArtisanID:      p.ArtisanID,
		Name:           p.Name,
		ProfileImage:   p.ProfileImage,
		CoverImage:     p.CoverImage,
		Tagline:        p.Tagline,
		Location:       p.Location,
		Email:          p.Email,
		Phone:          p.Phone,
		About:          p.About,
		Experience:     p.Experience,
		Specialization: p.Specialization,
		Language:       p.Language,
		UpdatedAt:      p.UpdatedAt,
	}
}

func profileFromModel(m ProfileModel) domain.ArtisanProfile {
	return domain.ArtisanProfile{
		ArtisanID:      m.ArtisanID,
		Name:           m.Name,
		ProfileImage:   m.ProfileImage,
		CoverImage:     m.CoverImage,
		Tagline:        m.Tagline,
		Location:       m.Location,
		Email:          m.Email,
		Phone:          m.Phone,
		About:          m.About,
		Experience:     m.Experience,
		Specialization: m.Specialization,
		Language:       m.Language,
		UpdatedAt:      m.UpdatedAt,
	}
}

func workToModel(w domain.Work) (WorkModel, error) {
	urls := w.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return WorkModel{}, fmt.Errorf("marshal image urls: %w", err)
	}
	return WorkModel{
		ID:                w.ID,
		ArtisanID:         w.ArtisanID,
		Title:             w.Title,
		Category:          w.Category,
		Description:       w.Description,
		ImageURLs:         datatypes.JSON(raw),
		PriceRange:        w.PriceRange,
		CreationDate:      w.CreationDate,
		AvailableForOrder: w.AvailableForOrder,
		CreatedAt:         w.CreatedAt,
	}, nil
}

func workFromModel(m WorkModel) (domain.Work, error) {
	var urls []string
	if len(m.ImageURLs) > 0 {
		if err := json.Unmarshal(m.ImageURLs, &urls); err != nil {
			return domain.Work{}, fmt.Errorf("unmarshal image urls: %w", err)
		}
	}
	if urls == nil {
		urls = []string{}
	}
	return domain.Work{
		ID:                m.ID,
		ArtisanID:         m.ArtisanID,
		Title:             m.Title,
		Category:          m.Category,
		Description:       m.Description,
		ImageURLs:         urls,
		PriceRange:        m.PriceRange,
		CreationDate:      m.CreationDate,
		AvailableForOrder: m.AvailableForOrder,
		CreatedAt:         m.CreatedAt,
	}, nil
}

func achievementToModel(a domain.Achievement) AchievementModel {
	return AchievementModel{
		ID:          a.ID,
		ArtisanID:   a.ArtisanID,
		Title:       a.Title,
		Year:        a.Year,
		Description: a.Description,
		AwardImage:  a.AwardImage,
		CreatedAt:   a.CreatedAt,
	}
}

func achievementFromModel(m AchievementModel) domain.Achievement {
	return domain.Achievement{
		ID:          m.ID,
		ArtisanID:   m.ArtisanID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		AwardImage:  m.AwardImage,
		CreatedAt:   m.CreatedAt,
	}
}
