package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CraftType    string
	Location     string
	Role         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type ProductModel struct {
	ID             string `gorm:"primaryKey"`
	ArtisanID      string `gorm:"not null;index"`
	Title          string `gorm:"not null"`
	Description    string
	Price          float64 `gorm:"not null"`
	Category       string
	CulturalStory  string
	IsCustomizable bool
	StockCount     int
	ImageURL       string
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (ProductModel) TableName() string { return "products" }

type OrderModel struct {
	ID         string `gorm:"primaryKey"`
	BuyerID    string `gorm:"not null;index"`
	ProductID  string `gorm:"not null;index"`
	ArtisanID  string `gorm:"not null;index"`
	Quantity   int    `gorm:"not null"`
	TotalPrice float64
	Status     string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (OrderModel) TableName() string { return "orders" }

type BlogModel struct {
	ID         string `gorm:"primaryKey"`
	AuthorID   string `gorm:"not null;index"`
	Title      string `gorm:"not null"`
	Content    string
	CoverImage string
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (BlogModel) TableName() string { return "blogs" }

type ContactMessageModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time `gorm:"not null"`
}

func (ContactMessageModel) TableName() string { return "contact_messages" }

// ProfileModel holds at most one row per artisan id.
type ProfileModel struct {
	ArtisanID      string `gorm:"primaryKey"`
	Name           string
	ProfileImage   string
	CoverImage     string
	Tagline        string
	Location       string
	Email          string
	Phone          string
	About          string
	Experience     string
	Specialization string
	Language       string
	UpdatedAt      time.Time `gorm:"not null"`
}

func (ProfileModel) TableName() string { return "artisan_profiles" }

// WorkModel serializes the ordered image reference list into one JSON column.
type WorkModel struct {
	ID                string `gorm:"primaryKey"`
	ArtisanID         string `gorm:"not null;index"`
	Title             string `gorm:"not null"`
	Category          string
	Description       string
	ImageURLs         datatypes.JSON `gorm:"column:image_urls"`
	PriceRange        string
	CreationDate      string
	AvailableForOrder bool
	CreatedAt         time.Time `gorm:"not null"`
}

func (WorkModel) TableName() string { return "works" }

type AchievementModel struct {
	ID          string `gorm:"primaryKey"`
	ArtisanID   string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Year        int
	Description string
	AwardImage  string
	CreatedAt   time.Time `gorm:"not null"`
}

func (AchievementModel) TableName() string { return "achievements" }

type SocialLinksModel struct {
	ArtisanID string `gorm:"primaryKey"`
	Instagram string
	Facebook  string
	Youtube   string
	Website   string
	UpdatedAt time.Time `gorm:"not null"`
}

func (SocialLinksModel) TableName() string { return "social_links" }
